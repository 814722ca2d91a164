package monitor

import (
	"path/filepath"

	"go.uber.org/zap"

	"github.com/ja7ad/sysmon/pkg/system/cgroup"
	"github.com/ja7ad/sysmon/pkg/system/util"
	"github.com/ja7ad/sysmon/pkg/types"
)

// Snapshot is a point-in-time view of machine-wide figures.
type Snapshot struct {
	OperatingSystem  string                   `json:"operating_system"`
	Kernel           string                   `json:"kernel"`
	UpTimeSeconds    int64                    `json:"uptime_seconds"`
	CPU              float64                  `json:"cpu"`
	Memory           float64                  `json:"memory"`
	MemoryAvailable  types.Maybe[types.Bytes] `json:"memory_available_bytes"`
	TotalProcesses   int                      `json:"total_processes"`
	RunningProcesses int                      `json:"running_processes"`
	Cgroup           string                   `json:"cgroup"`
}

// System computes machine-wide figures. Every accessor reads its source
// afresh and can be called alone, in any order. Unreadable sources yield
// zero values.
type System struct {
	src    Source
	logger *zap.Logger
}

func NewSystem(src Source, opts ...Option) *System {
	o := buildOptions(opts)
	return newSystem(src, o)
}

func newSystem(src Source, o options) *System {
	return &System{src: src, logger: o.logger.Named("system")}
}

func (s *System) OperatingSystem() string { return s.src.OperatingSystem() }

func (s *System) Kernel() string { return s.src.Kernel() }

// UpTime is whole seconds since boot.
func (s *System) UpTime() int64 {
	up, ok := s.src.Uptime()
	if !ok {
		return 0
	}
	return int64(up)
}

// MemoryUtilization is (MemTotal-MemFree)/MemTotal.
func (s *System) MemoryUtilization() float64 {
	mi, ok := s.src.MemInfo()
	if !ok {
		return 0
	}
	return util.MemoryUtilization(mi.TotalKB, mi.FreeKB)
}

// MemoryAvailable is the kernel's estimate of memory available for new
// work. Absent when meminfo has no MemAvailable line.
func (s *System) MemoryAvailable() types.Maybe[types.Bytes] {
	mi, ok := s.src.MemInfo()
	if !ok {
		return types.None[types.Bytes]()
	}
	if kb, ok := mi.AvailableKB.Get(); ok {
		return types.Some(types.FromKB(kb))
	}
	return types.None[types.Bytes]()
}

// CPUUtilization is the busy share of all jiffies since boot.
func (s *System) CPUUtilization() float64 {
	ct, ok := s.src.CPUTimes()
	if !ok {
		return 0
	}
	return util.CPUUtilization(ct.TotalJiffies(), ct.IdleJiffies())
}

// TotalProcesses is the kernel's fork count since boot.
func (s *System) TotalProcesses() int {
	total, _ := s.src.ProcessCounts()
	return total
}

func (s *System) RunningProcesses() int {
	_, running := s.src.ProcessCounts()
	return running
}

// Cgroup reports the cgroup hierarchy mode, or "" when mountinfo is unreadable.
func (s *System) Cgroup() string {
	v, err := cgroup.Detect(s.src.Fs(), filepath.Join(s.src.Root(), "self", "mountinfo"))
	if err != nil {
		s.logger.Debug("cgroup detection failed", zap.Error(err))
		return ""
	}
	return v.String()
}

// Snapshot assembles every accessor.
func (s *System) Snapshot() Snapshot {
	total, running := s.src.ProcessCounts()
	return Snapshot{
		OperatingSystem:  s.OperatingSystem(),
		Kernel:           s.Kernel(),
		UpTimeSeconds:    s.UpTime(),
		CPU:              s.CPUUtilization(),
		Memory:           s.MemoryUtilization(),
		MemoryAvailable:  s.MemoryAvailable(),
		TotalProcesses:   total,
		RunningProcesses: running,
		Cgroup:           s.Cgroup(),
	}
}
