package monitor

import (
	"fmt"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/ja7ad/sysmon/pkg/system/proc"
)

// fakeProc is an in-memory proc tree with CLK_TCK 100.
type fakeProc struct {
	t  *testing.T
	fs afero.Fs
}

type fakeProcess struct {
	pid     int
	comm    string
	uid     string
	utime   uint64
	stime   uint64
	start   uint64 // ticks since boot
	vmKB    uint64 // 0 means no VmSize line
	cmdline string // NUL separated
}

func newFakeProc(t *testing.T) *fakeProc {
	t.Helper()
	f := &fakeProc{t: t, fs: afero.NewMemMapFs()}
	f.write("/etc/os-release", "NAME=\"Debian GNU/Linux\"\nPRETTY_NAME=\"Debian GNU/Linux 12 (bookworm)\"\n")
	f.write("/etc/passwd", "root:x:0:0:root:/root:/bin/bash\nalice:x:1000:1000:Alice::/bin/bash\n")
	f.write("/proc/version", "Linux version 6.8.0-45-generic (buildd@lcy02) #45-Ubuntu SMP\n")
	f.write("/proc/uptime", "1000.00 3000.00\n")
	f.write("/proc/meminfo", "MemTotal: 1000 kB\nMemFree: 250 kB\nMemAvailable: 400 kB\n")
	f.write("/proc/stat", "cpu 10 0 5 70 5 0 0 0\nprocesses 321\nprocs_running 2\n")
	f.write("/proc/self/mountinfo", "35 24 0:30 / /sys/fs/cgroup rw - cgroup2 cgroup2 rw\n")
	return f
}

func (f *fakeProc) write(name, body string) {
	f.t.Helper()
	require.NoError(f.t, f.fs.MkdirAll(filepath.Dir(name), 0o755))
	require.NoError(f.t, afero.WriteFile(f.fs, name, []byte(body), 0o644))
}

func (f *fakeProc) add(p fakeProcess) {
	f.t.Helper()
	dir := "/proc/" + strconv.Itoa(p.pid)
	f.write(dir+"/stat", fmt.Sprintf(
		"%d (%s) S 1 1 1 0 -1 4194304 0 0 0 0 %d %d 0 0 20 0 1 0 %d %d 0\n",
		p.pid, p.comm, p.utime, p.stime, p.start, p.vmKB*1024))

	status := fmt.Sprintf("Name:\t%s\nUid:\t%s\t%s\t%s\t%s\n", p.comm, p.uid, p.uid, p.uid, p.uid)
	if p.vmKB > 0 {
		status += fmt.Sprintf("VmSize:\t%d kB\n", p.vmKB)
	}
	f.write(dir+"/status", status)
	f.write(dir+"/cmdline", p.cmdline)
}

func (f *fakeProc) remove(pid int) {
	f.t.Helper()
	require.NoError(f.t, f.fs.RemoveAll("/proc/"+strconv.Itoa(pid)))
}

func (f *fakeProc) source() *proc.Source {
	return proc.NewSource(proc.WithFs(f.fs), proc.WithClockTicks(100))
}
