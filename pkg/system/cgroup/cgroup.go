package cgroup

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/afero"
)

type Version int

const (
	Unsupported Version = iota // no cgroup mounts
	V1                         // legacy multi-hierarchy cgroup v1
	V2                         // unified cgroup v2
	Hybrid                     // both v1 and v2 present
)

func (v Version) String() string {
	switch v {
	case V1:
		return "cgroup v1"
	case V2:
		return "cgroup v2"
	case Hybrid:
		return "cgroup hybrid"
	default:
		return "unsupported"
	}
}

// Parse reads mountinfo-formatted text and classifies the cgroup mounts.
//
// The line format has a " - fstype " separator; lines with fewer than the
// five mount fields before it (see proc(5)) are skipped.
func Parse(r io.Reader) (Version, error) {
	var (
		hasV1, hasV2 bool
		sc           = bufio.NewScanner(r)
	)
	for sc.Scan() {
		line := sc.Text()
		// <fields> - <fstype> <source> <superopts>
		sep := " - "
		i := strings.LastIndex(line, sep)
		if i < 0 {
			continue
		}
		tail := strings.Fields(line[i+len(sep):])
		if len(tail) < 1 {
			continue
		}
		if len(strings.Fields(line[:i])) < 5 {
			continue
		}

		switch tail[0] {
		case "cgroup2":
			hasV2 = true
		case "cgroup":
			hasV1 = true
		}
	}
	if err := sc.Err(); err != nil {
		return Unsupported, fmt.Errorf("scan mountinfo: %w", err)
	}

	switch {
	case hasV1 && hasV2:
		return Hybrid, nil
	case hasV2:
		return V2, nil
	case hasV1:
		return V1, nil
	}
	return Unsupported, nil
}

// Detect parses the mountinfo file at path (usually <proc>/self/mountinfo).
func Detect(fs afero.Fs, path string) (Version, error) {
	f, err := fs.Open(path)
	if err != nil {
		return Unsupported, fmt.Errorf("open mountinfo: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()
	return Parse(f)
}
