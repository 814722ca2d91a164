package proc

import (
	"errors"
	"fmt"
	"io/fs"
)

var (
	// ErrProcessGone indicates that a /proc/<pid> file could not be opened,
	// usually because the process exited between discovery and read.
	// It wraps fs.ErrNotExist.
	ErrProcessGone = fmt.Errorf("proc: process gone: %w", fs.ErrNotExist)

	// ErrNoStat indicates that /proc/<pid>/stat was empty or malformed.
	ErrNoStat = errors.New("proc: malformed or empty stat")

	// ErrShortStat indicates that /proc/<pid>/stat had fewer fields than expected.
	ErrShortStat = errors.New("proc: short stat")
)

// gone maps a per-process open error to ErrProcessGone when the file is
// missing, keeping the pid in the message.
func gone(pid int, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("pid %d: %w", pid, ErrProcessGone)
	}
	return fmt.Errorf("pid %d: %w", pid, err)
}
