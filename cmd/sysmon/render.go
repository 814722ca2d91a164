//go:build linux

package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"golang.org/x/term"

	"github.com/ja7ad/sysmon/pkg/monitor"
	"github.com/ja7ad/sysmon/pkg/system/util"
	"github.com/ja7ad/sysmon/pkg/types"
)

var (
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575")).Bold(true)
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// headerLines is the number of lines printed above the process rows.
const headerLines = 6

// screen writes frames to out. On a terminal it clears between frames,
// styles the header and fits the table to the window.
type screen struct {
	out    io.Writer
	fd     int
	tty    bool
	width  int
	height int
}

func newScreen(w io.Writer) *screen {
	f, ok := w.(*os.File)
	if !ok {
		return &screen{out: w}
	}
	s := &screen{out: f, fd: int(f.Fd())}
	if term.IsTerminal(s.fd) {
		s.tty = true
		if w, h, err := term.GetSize(s.fd); err == nil {
			s.width, s.height = w, h
		}
	}
	return s
}

// draw clears the terminal (when there is one) and prints f.
func (s *screen) draw(f monitor.Frame, rows int) {
	if s.tty {
		fmt.Fprint(s.out, "\033[H\033[2J")
		if w, h, err := term.GetSize(s.fd); err == nil {
			s.width, s.height = w, h
		}
	}
	s.print(f, rows)
}

func (s *screen) print(f monitor.Frame, rows int) {
	s.header(f.Snapshot, len(f.Processes))
	s.processes(f.Processes, s.fit(rows))
}

// fit limits rows to what the terminal can show.
func (s *screen) fit(rows int) int {
	if s.tty && s.height > 0 {
		room := s.height - headerLines - 1
		if room < 1 {
			room = 1
		}
		rows = min(rows, room)
	}
	return rows
}

func (s *screen) style(st lipgloss.Style, v string) string {
	if !s.tty {
		return v
	}
	return st.Render(v)
}

func (s *screen) header(snap monitor.Snapshot, tracked int) {
	label := func(v string) string { return s.style(labelStyle, v) }

	fmt.Fprintln(s.out, s.style(titleStyle, "sysmon"))
	fmt.Fprintf(s.out, "%s %s   %s %s   %s %s\n",
		label("OS:"), orUnknown(snap.OperatingSystem),
		label("Kernel:"), orUnknown(snap.Kernel),
		label("Cgroup:"), orUnknown(snap.Cgroup))
	fmt.Fprintf(s.out, "%s %s   %s %s (%s available)   %s %s\n",
		label("CPU:"), percent(snap.CPU),
		label("Memory:"), percent(snap.Memory), snap.MemoryAvailable,
		label("Uptime:"), util.ElapsedTime(snap.UpTimeSeconds))
	fmt.Fprintf(s.out, "%s %s   %s %s   %s %s\n",
		label("Processes:"), humanize.Comma(int64(snap.TotalProcesses)),
		label("Running:"), humanize.Comma(int64(snap.RunningProcesses)),
		label("Tracked:"), humanize.Comma(int64(tracked)))
	fmt.Fprintln(s.out)
}

func (s *screen) processes(procs []monitor.ProcessRecord, rows int) {
	tw := tabwriter.NewWriter(s.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "PID\tUSER\tCPU%\tRAM\tAGE\tCOMMAND")
	for i, p := range procs {
		if i >= rows {
			break
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			strconv.Itoa(p.PID),
			p.User.String(),
			percent(p.CPU),
			ram(p.RAM),
			util.ElapsedTime(p.AgeSeconds),
			s.truncate(p.Command.String()),
		)
	}
	tw.Flush()
}

// truncate cuts the command so a row fits the terminal width.
func (s *screen) truncate(cmd string) string {
	const fixedColumns = 50
	if !s.tty || s.width <= fixedColumns {
		return cmd
	}
	limit := s.width - fixedColumns
	if r := []rune(cmd); len(r) > limit {
		return string(r[:limit-1]) + "…"
	}
	return cmd
}

func percent(v float64) string {
	return strconv.FormatFloat(v*100, 'f', 1, 64) + "%"
}

func ram(mb types.Maybe[uint64]) string {
	v, ok := mb.Get()
	if !ok {
		return types.Unknown
	}
	return types.Bytes(v << 20).String()
}

func orUnknown(v string) string {
	if v == "" {
		return types.Unknown
	}
	return v
}
