package monitor

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ja7ad/sysmon/pkg/types"
)

func TestSystem_Accessors(t *testing.T) {
	s := NewSystem(newFakeProc(t).source())

	assert.Equal(t, "Debian GNU/Linux 12 (bookworm)", s.OperatingSystem())
	assert.Equal(t, "6.8.0-45-generic", s.Kernel())
	assert.Equal(t, int64(1000), s.UpTime())
	assert.InDelta(t, 0.75, s.MemoryUtilization(), 1e-9)
	assert.InDelta(t, 0.1667, s.CPUUtilization(), 1e-4)
	assert.Equal(t, 321, s.TotalProcesses())
	assert.Equal(t, 2, s.RunningProcesses())
	assert.Equal(t, "cgroup v2", s.Cgroup())
	assert.Equal(t, types.Some(types.Bytes(400*1024)), s.MemoryAvailable())
}

func TestSystem_MemoryAvailableAbsent(t *testing.T) {
	f := newFakeProc(t)
	f.write("/proc/meminfo", "MemTotal: 1000 kB\nMemFree: 250 kB\n")
	s := NewSystem(f.source())
	assert.Equal(t, types.None[types.Bytes](), s.MemoryAvailable())
	assert.InDelta(t, 0.75, s.MemoryUtilization(), 1e-9)
}

func TestSystem_UpTimeTruncates(t *testing.T) {
	f := newFakeProc(t)
	f.write("/proc/uptime", "12345.67 6789.10\n")
	assert.Equal(t, int64(12345), NewSystem(f.source()).UpTime())
}

func TestSystem_AccessorsIndependent(t *testing.T) {
	f := newFakeProc(t)
	s := NewSystem(f.source())

	// reading one figure never depends on another having been read first
	assert.Equal(t, 2, s.RunningProcesses())
	assert.InDelta(t, 0.75, s.MemoryUtilization(), 1e-9)
	assert.Equal(t, "cgroup v2", s.Cgroup())
	assert.Equal(t, int64(1000), s.UpTime())

	// and nothing is cached between calls
	f.write("/proc/meminfo", "MemTotal: 1000 kB\nMemFree: 1000 kB\n")
	f.write("/etc/os-release", "PRETTY_NAME=\"Alpine Linux v3.20\"\n")
	assert.Zero(t, s.MemoryUtilization())
	assert.Equal(t, "Alpine Linux v3.20", s.OperatingSystem())
}

func TestSystem_MissingSources(t *testing.T) {
	f := newFakeProc(t)
	for _, name := range []string{
		"/etc/os-release", "/proc/version", "/proc/uptime",
		"/proc/meminfo", "/proc/stat", "/proc/self/mountinfo",
	} {
		assert.NoError(t, f.fs.Remove(name))
	}
	s := NewSystem(f.source())

	assert.Equal(t, Snapshot{}, s.Snapshot())
}

func TestSystem_MemTotalZero(t *testing.T) {
	f := newFakeProc(t)
	f.write("/proc/meminfo", "MemTotal: 0 kB\nMemFree: 0 kB\n")
	assert.Zero(t, NewSystem(f.source()).MemoryUtilization())
}

func TestSystem_Snapshot(t *testing.T) {
	snap := NewSystem(newFakeProc(t).source()).Snapshot()

	assert.Equal(t, "Debian GNU/Linux 12 (bookworm)", snap.OperatingSystem)
	assert.Equal(t, "6.8.0-45-generic", snap.Kernel)
	assert.Equal(t, int64(1000), snap.UpTimeSeconds)
	assert.InDelta(t, 0.1667, snap.CPU, 1e-4)
	assert.InDelta(t, 0.75, snap.Memory, 1e-9)
	assert.Equal(t, 321, snap.TotalProcesses)
	assert.Equal(t, 2, snap.RunningProcesses)
	assert.Equal(t, "cgroup v2", snap.Cgroup)
	assert.Equal(t, types.Some(types.Bytes(400*1024)), snap.MemoryAvailable)
}
