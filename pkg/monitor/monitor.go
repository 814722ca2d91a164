package monitor

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// Frame is the result of one Monitor poll.
type Frame struct {
	Snapshot  Snapshot        `json:"snapshot"`
	Processes []ProcessRecord `json:"processes"`
	At        time.Time       `json:"at"`
}

// Monitor bundles a System, a Table and an optional Sampler and serializes
// polls. It is safe for concurrent use.
type Monitor struct {
	mu      sync.Mutex
	system  *System
	table   *Table
	sampler *Sampler
	now     func() time.Time
	logger  *zap.Logger
}

// New returns a Monitor reading from src.
func New(src Source, opts ...Option) *Monitor {
	o := buildOptions(opts)
	m := &Monitor{
		system: newSystem(src, o),
		table:  newTable(src, o),
		now:    o.now,
		logger: o.logger,
	}
	if o.interval {
		m.sampler = NewSampler(src, o.alpha)
	}
	return m
}

// Poll takes one snapshot and refreshes the process table.
func (m *Monitor) Poll() Frame {
	m.mu.Lock()
	defer m.mu.Unlock()

	at := m.now()
	snap := m.system.Snapshot()
	if m.sampler != nil {
		snap.CPU = m.sampler.Sample()
	}

	procs := m.table.Processes()
	m.logger.Debug("poll",
		zap.Int("tracked", len(procs)),
		zap.Float64("cpu", snap.CPU),
		zap.Float64("memory", snap.Memory))

	return Frame{Snapshot: snap, Processes: procs, At: at}
}

// Tracked reports the number of records in the process table.
func (m *Monitor) Tracked() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.table.Len()
}
