package proc

import (
	"fmt"
	"strconv"
	"strings"
)

// StatField is a 1-based field position in /proc/<pid>/stat, numbered as in
// proc(5).
type StatField int

const (
	StatPID       StatField = 1
	StatComm      StatField = 2
	StatState     StatField = 3
	StatUTime     StatField = 14
	StatSTime     StatField = 15
	StatCUTime    StatField = 16
	StatCSTime    StatField = 17
	StatStartTime StatField = 22
	StatVSize     StatField = 23
)

var statSchema = map[StatField]string{
	StatPID:       "pid",
	StatComm:      "comm",
	StatState:     "state",
	StatUTime:     "utime",
	StatSTime:     "stime",
	StatCUTime:    "cutime",
	StatCSTime:    "cstime",
	StatStartTime: "starttime",
	StatVSize:     "vsize",
}

func (f StatField) String() string {
	if name, ok := statSchema[f]; ok {
		return name
	}
	return "field" + strconv.Itoa(int(f))
}

// PIDStat is the subset of /proc/<pid>/stat the monitor uses.
// Times are in clock ticks; VSize is in bytes.
type PIDStat struct {
	PID       int
	Comm      string
	State     string
	UTime     uint64
	STime     uint64
	CUTime    uint64
	CSTime    uint64
	StartTime uint64
	VSize     uint64
}

// Ticks is utime + stime + cutime + cstime.
func (s PIDStat) Ticks() uint64 { return s.UTime + s.STime + s.CUTime + s.CSTime }

// ParseStat parses one /proc/<pid>/stat line.
//
// Caveats:
//   - comm (field 2) is wrapped in parentheses and may itself contain spaces
//     or ')'. Everything between the first '(' and the last ')' is comm; the
//     fields after the last ')' start at field 3.
//   - vsize (field 23) is optional: very old kernels stop earlier, and the
//     monitor reads VmSize from status anyway.
func ParseStat(line string) (PIDStat, error) {
	open := strings.IndexByte(line, '(')
	end := strings.LastIndexByte(line, ')')
	if open < 0 || end < open {
		return PIDStat{}, ErrNoStat
	}
	pid, err := strconv.Atoi(strings.TrimSpace(line[:open]))
	if err != nil {
		return PIDStat{}, fmt.Errorf("%w: pid: %v", ErrNoStat, err)
	}
	rest := strings.Fields(line[end+1:])
	if len(rest) < int(StatStartTime-StatState)+1 {
		return PIDStat{}, ErrShortStat
	}

	field := func(f StatField) (string, bool) {
		i := int(f - StatState)
		if i < 0 || i >= len(rest) {
			return "", false
		}
		return rest[i], true
	}

	st := PIDStat{PID: pid, Comm: line[open+1 : end]}
	st.State, _ = field(StatState)

	for _, target := range []struct {
		f   StatField
		dst *uint64
	}{
		{StatUTime, &st.UTime},
		{StatSTime, &st.STime},
		{StatCUTime, &st.CUTime},
		{StatCSTime, &st.CSTime},
		{StatStartTime, &st.StartTime},
	} {
		tok, _ := field(target.f)
		v, err := parseTicks(tok)
		if err != nil {
			return PIDStat{}, fmt.Errorf("%w: %s: %v", ErrNoStat, target.f, err)
		}
		*target.dst = v
	}
	if tok, ok := field(StatVSize); ok {
		st.VSize, _ = strconv.ParseUint(tok, 10, 64)
	}
	return st, nil
}

// parseTicks accepts the signed "long" the kernel prints for cutime/cstime
// and clamps negatives to zero.
func parseTicks(s string) (uint64, error) {
	if v, err := strconv.ParseUint(s, 10, 64); err == nil {
		return v, nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, err
	}
	if v < 0 {
		return 0, nil
	}
	return uint64(v), nil
}
