package proc

import (
	"bufio"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/afero"

	"github.com/ja7ad/sysmon/pkg/types"
)

// MemInfo holds the /proc/meminfo figures the monitor needs, in kB.
type MemInfo struct {
	TotalKB     uint64
	FreeKB      uint64
	AvailableKB types.Maybe[uint64] // absent before Linux 3.14
}

// CPUTimes are the aggregate jiffy counters from the "cpu" line of /proc/stat.
type CPUTimes struct {
	User, Nice, System, Idle, IOWait, IRQ, SoftIRQ, Steal uint64
}

// TotalJiffies is the sum of all eight counters.
func (c CPUTimes) TotalJiffies() uint64 {
	return c.User + c.Nice + c.System + c.Idle + c.IOWait + c.IRQ + c.SoftIRQ + c.Steal
}

// IdleJiffies is idle + iowait.
func (c CPUTimes) IdleJiffies() uint64 { return c.Idle + c.IOWait }

// ActiveJiffies is user + nice + irq + softirq + steal.
func (c CPUTimes) ActiveJiffies() uint64 { return c.User + c.Nice + c.IRQ + c.SoftIRQ + c.Steal }

// OperatingSystem returns PRETTY_NAME from os-release, or "" if unavailable.
func (s *Source) OperatingSystem() string {
	f := s.Fields(s.osRelease, []string{"PRETTY_NAME"}, EncodeSpaces())
	if vals := f["PRETTY_NAME"]; len(vals) > 0 {
		return strings.Join(vals, " ")
	}
	return ""
}

// Kernel returns the release string from /proc/version
// ("Linux version 6.8.0-45-generic ..." -> "6.8.0-45-generic").
func (s *Source) Kernel() string {
	f, err := s.fs.Open(s.path("version"))
	if err != nil {
		return ""
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	if !sc.Scan() {
		return ""
	}
	fs := strings.Fields(sc.Text())
	if len(fs) < 3 {
		return ""
	}
	return fs[2]
}

// MemInfo reads MemTotal, MemFree and MemAvailable. ok is false when
// MemTotal is missing.
func (s *Source) MemInfo() (MemInfo, bool) {
	f := s.Fields(s.path("meminfo"), []string{"MemTotal", "MemFree", "MemAvailable"})
	total, ok := firstUint(f, "MemTotal")
	if !ok {
		return MemInfo{}, false
	}
	free, _ := firstUint(f, "MemFree")
	mi := MemInfo{TotalKB: total, FreeKB: free}
	if avail, ok := firstUint(f, "MemAvailable"); ok {
		mi.AvailableKB = types.Some(avail)
	}
	return mi, true
}

// Uptime returns seconds since boot (first token of /proc/uptime).
func (s *Source) Uptime() (float64, bool) {
	b, err := afero.ReadFile(s.fs, s.path("uptime"))
	if err != nil {
		return 0, false
	}
	fs := strings.Fields(string(b))
	if len(fs) == 0 {
		return 0, false
	}
	v, err := strconv.ParseFloat(fs[0], 64)
	if err != nil || v < 0 {
		return 0, false
	}
	return v, true
}

// CPUTimes reads the aggregate "cpu" line of /proc/stat. Columns the kernel
// does not report (steal before 2.6.11, ...) are zero; fewer than four
// columns is treated as missing.
func (s *Source) CPUTimes() (CPUTimes, bool) {
	vals := s.Fields(s.path("stat"), []string{"cpu"})["cpu"]
	if len(vals) < 4 {
		return CPUTimes{}, false
	}
	var n [8]uint64
	for i := 0; i < len(n) && i < len(vals); i++ {
		v, err := strconv.ParseUint(vals[i], 10, 64)
		if err != nil {
			return CPUTimes{}, false
		}
		n[i] = v
	}
	return CPUTimes{
		User: n[0], Nice: n[1], System: n[2], Idle: n[3],
		IOWait: n[4], IRQ: n[5], SoftIRQ: n[6], Steal: n[7],
	}, true
}

// ProcessCounts returns the "processes" (forks since boot) and
// "procs_running" figures from /proc/stat. Missing values are zero.
func (s *Source) ProcessCounts() (total, running int) {
	f := s.Fields(s.path("stat"), []string{"processes", "procs_running"})
	t, _ := firstUint(f, "processes")
	r, _ := firstUint(f, "procs_running")
	return int(t), int(r)
}

// PIDs lists the numeric directories under the proc root in ascending order.
// An unreadable root yields nil.
func (s *Source) PIDs() []int {
	entries, err := afero.ReadDir(s.fs, s.root)
	if err != nil {
		return nil
	}
	pids := lo.FilterMap(entries, func(e os.FileInfo, _ int) (int, bool) {
		if !e.IsDir() || !isNumeric(e.Name()) {
			return 0, false
		}
		pid, err := strconv.Atoi(e.Name())
		return pid, err == nil && pid > 0
	})
	slices.Sort(pids)
	return pids
}
