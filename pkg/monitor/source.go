package monitor

import (
	"github.com/spf13/afero"

	"github.com/ja7ad/sysmon/pkg/system/proc"
)

// Source is the counter source the monitor samples. *proc.Source implements it.
type Source interface {
	Fs() afero.Fs
	Root() string
	ClockTicks() int

	OperatingSystem() string
	Kernel() string
	MemInfo() (proc.MemInfo, bool)
	Uptime() (float64, bool)
	CPUTimes() (proc.CPUTimes, bool)
	ProcessCounts() (total, running int)
	PIDs() []int

	Stat(pid int) (proc.PIDStat, error)
	Status(pid int) (proc.PIDStatus, error)
	Cmdline(pid int) (string, error)
	Users() map[string]string
}

var _ Source = (*proc.Source)(nil)
