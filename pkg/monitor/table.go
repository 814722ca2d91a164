package monitor

import (
	"cmp"
	"slices"
	"time"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/ja7ad/sysmon/pkg/system/proc"
	"github.com/ja7ad/sysmon/pkg/system/util"
	"github.com/ja7ad/sysmon/pkg/types"
)

// Table is the cross-poll process registry. Records are kept in discovery
// order; Processes returns them ranked by CPU.
//
// A Table is not safe for concurrent use; Monitor serializes access.
type Table struct {
	src        Source
	logger     *zap.Logger
	metrics    *Metrics
	evictAfter int

	records []ProcessRecord
	index   map[int]int // pid -> position in records
}

// NewTable returns an empty table reading from src.
func NewTable(src Source, opts ...Option) *Table {
	o := buildOptions(opts)
	return newTable(src, o)
}

func newTable(src Source, o options) *Table {
	return &Table{
		src:        src,
		logger:     o.logger.Named("table"),
		metrics:    o.metrics,
		evictAfter: o.evictAfter,
		index:      make(map[int]int),
	}
}

// Len reports the number of tracked records.
func (t *Table) Len() int { return len(t.records) }

// Processes runs one discovery and refresh cycle and returns a copy of the
// table sorted by CPU, highest first. Records with equal CPU keep discovery
// order.
func (t *Table) Processes() []ProcessRecord {
	start := time.Now()

	t.discover()
	t.refresh()
	t.evict()

	out := slices.Clone(t.records)
	slices.SortStableFunc(out, func(a, b ProcessRecord) int {
		return cmp.Compare(b.CPU, a.CPU)
	})

	t.metrics.recordPoll(time.Since(start), len(t.records))
	return out
}

func (t *Table) discover() {
	pids := t.src.PIDs()
	live := make(map[int]struct{}, len(pids))

	for _, pid := range pids {
		live[pid] = struct{}{}
		if i, ok := t.index[pid]; ok {
			t.records[i].Alive = true
			t.records[i].Missed = 0
			continue
		}
		t.index[pid] = len(t.records)
		t.records = append(t.records, ProcessRecord{PID: pid, Alive: true})
	}

	for i := range t.records {
		if _, ok := live[t.records[i].PID]; !ok {
			t.records[i].Alive = false
			t.records[i].Missed++
		}
	}
}

func (t *Table) refresh() {
	uptime, haveUptime := t.src.Uptime()
	clk := t.src.ClockTicks()

	var users map[string]string
	lookup := func(uid string) (string, bool) {
		if users == nil {
			users = t.src.Users()
		}
		name, ok := users[uid]
		return name, ok
	}

	for i := range t.records {
		rec := &t.records[i]
		if !rec.Alive {
			continue
		}

		st, err := t.src.Stat(rec.PID)
		if err != nil {
			t.readFailed(rec.PID, "stat", err)
			continue
		}
		if rec.StartTicks != 0 && st.StartTime != rec.StartTicks {
			t.logger.Debug("pid reused",
				zap.Int("pid", rec.PID),
				zap.Uint64("old_start", rec.StartTicks),
				zap.Uint64("new_start", st.StartTime))
			*rec = ProcessRecord{PID: rec.PID, Alive: true}
		}
		rec.StartTicks = st.StartTime

		if haveUptime {
			cpu, age := util.ProcessCPU(st.Ticks(), st.StartTime, clk, uptime)
			rec.CPU = cpu
			rec.AgeSeconds = int64(age)
		}

		status, err := t.src.Status(rec.PID)
		switch {
		case err != nil:
			t.readFailed(rec.PID, "status", err)
			// stat's vsize is the same figure in bytes
			if st.VSize > 0 {
				rec.RAM = types.Some(types.Bytes(st.VSize).WholeMB())
			}
		default:
			if kb, ok := status.VmSizeKB.Get(); ok {
				rec.RAM = types.Some(util.KBToMB(kb))
			}
		}

		if !rec.identified {
			t.identify(rec, st, status, err == nil, lookup)
		}
	}
}

// identify fills the fields that are read once per process lifetime. It
// runs again on the next refresh until both status and cmdline were read.
func (t *Table) identify(rec *ProcessRecord, st proc.PIDStat, status proc.PIDStatus, statusOK bool, lookup func(string) (string, bool)) {
	if statusOK && !rec.UID.Valid() {
		if uid, ok := status.UID.Get(); ok {
			rec.UID = types.Some(uid)
			if name, ok := lookup(uid); ok {
				rec.User = types.Some(name)
			}
		}
	}

	if !rec.Command.Valid() {
		cmd, err := t.src.Cmdline(rec.PID)
		if err != nil {
			t.readFailed(rec.PID, "cmdline", err)
		} else {
			if cmd == "" {
				cmd = "[" + st.Comm + "]"
			}
			rec.Command = types.Some(cmd)
		}
	}

	rec.identified = statusOK && rec.Command.Valid()
}

func (t *Table) evict() {
	if t.evictAfter <= 0 {
		return
	}
	kept := lo.Filter(t.records, func(r ProcessRecord, _ int) bool {
		return r.Missed < t.evictAfter
	})
	n := len(t.records) - len(kept)
	if n == 0 {
		return
	}

	t.records = kept
	clear(t.index)
	for i, r := range t.records {
		t.index[r.PID] = i
	}
	t.metrics.recordEvictions(n)
	t.logger.Debug("evicted records", zap.Int("count", n), zap.Int("remaining", len(kept)))
}

func (t *Table) readFailed(pid int, file string, err error) {
	t.metrics.recordReadFailure(file, err)
	t.logger.Debug("process read failed",
		zap.Int("pid", pid),
		zap.String("file", file),
		zap.Error(err))
}
