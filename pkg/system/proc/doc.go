// Package proc reads machine-wide and per-process counters from a Linux
// /proc tree. It only parses: nothing is cached and no utilization is
// computed here (see pkg/system/util and pkg/monitor).
//
// Overview
//
//   - Source:
//     NewSource(opts ...Option) *Source
//
//     All reads go through an afero.Fs rooted at the proc mount point, so a
//     test (or an alternate counter source) can supply an in-memory tree with
//     WithFs/WithRoot. Every method opens, parses and closes its own file.
//
//   - Generic field parser:
//     ParseFields(r, keys, opts...) map[string][]string
//
//     Line-oriented text; ':', '=' and '"' become whitespace, the first token
//     selects the line, the rest are positional values. Keys that never match
//     are simply absent. Source.Fields wraps it and treats an unopenable file
//     as "no data".
//
//   - System-wide readers (best effort, never fail):
//     OperatingSystem : PRETTY_NAME from os-release
//     Kernel          : third token of /proc/version
//     MemInfo         : MemTotal / MemFree / MemAvailable (kB)
//     Uptime          : first token of /proc/uptime (seconds)
//     CPUTimes        : the eight counters of the aggregate "cpu" line
//     ProcessCounts   : "processes" and "procs_running" from /proc/stat
//     PIDs            : numeric directories under the root
//
//   - Per-process readers (may race with process exit):
//     Stat    : /proc/<pid>/stat through a named-field schema (StatField)
//     Status  : VmSize and Uid from /proc/<pid>/status
//     Cmdline : /proc/<pid>/cmdline, NULs rendered as spaces
//
//     A process that exits between discovery and read yields ErrProcessGone
//     (which also matches fs.ErrNotExist), never stale or partial data.
//
//   - User database:
//     LookupUser / Users resolve numeric uids from /etc/passwd.
//
// # Clock ticks
//
// Jiffy counters are converted with ClockTicks(): CLK_TCK from the
// environment when set, otherwise USER_HZ (100).
//
// Example:
//
//	/*
//	src := proc.NewSource()
//	times, ok := src.CPUTimes()
//	if ok {
//	    fmt.Println(util.CPUUtilization(times.TotalJiffies(), times.IdleJiffies()))
//	}
//	for _, pid := range src.PIDs() {
//	    st, err := src.Stat(pid)
//	    if errors.Is(err, proc.ErrProcessGone) {
//	        continue
//	    }
//	    fmt.Println(pid, st.Comm, st.Ticks())
//	}
//	*/
//
// Package import path: github.com/ja7ad/sysmon/pkg/system/proc
package proc
