package proc

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/spf13/afero"

	"github.com/ja7ad/sysmon/pkg/types"
)

// PIDStatus is the subset of /proc/<pid>/status the monitor uses.
type PIDStatus struct {
	// VmSizeKB is the virtual memory size in kB. Kernel threads have none.
	VmSizeKB types.Maybe[uint64]
	// UID is the real user id, as printed by the kernel.
	UID types.Maybe[string]
}

func (s *Source) readPID(pid int, name string) ([]byte, error) {
	b, err := afero.ReadFile(s.fs, s.path(strconv.Itoa(pid), name))
	if err != nil {
		return nil, gone(pid, err)
	}
	return b, nil
}

// Stat reads and parses /proc/<pid>/stat.
func (s *Source) Stat(pid int) (PIDStat, error) {
	b, err := s.readPID(pid, "stat")
	if err != nil {
		return PIDStat{}, err
	}
	line, _, _ := strings.Cut(string(b), "\n")
	if strings.TrimSpace(line) == "" {
		return PIDStat{}, ErrNoStat
	}
	return ParseStat(line)
}

// Status reads VmSize and Uid from /proc/<pid>/status.
func (s *Source) Status(pid int) (PIDStatus, error) {
	b, err := s.readPID(pid, "status")
	if err != nil {
		return PIDStatus{}, err
	}
	f := ParseFields(bytes.NewReader(b), []string{"VmSize", "Uid"})

	var st PIDStatus
	if kb, ok := firstUint(f, "VmSize"); ok {
		st.VmSizeKB = types.Some(kb)
	}
	if vals := f["Uid"]; len(vals) > 0 {
		st.UID = types.Some(vals[0])
	}
	return st, nil
}

// Cmdline reads /proc/<pid>/cmdline. Arguments are NUL-separated in the file;
// they come back joined by spaces with trailing separators removed. Kernel
// threads have an empty command line.
func (s *Source) Cmdline(pid int) (string, error) {
	b, err := s.readPID(pid, "cmdline")
	if err != nil {
		return "", err
	}
	line, _, _ := bytes.Cut(b, []byte{'\n'})
	line = bytes.ReplaceAll(line, []byte{0}, []byte{' '})
	return strings.TrimRight(string(line), " "), nil
}
