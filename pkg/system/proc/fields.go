package proc

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

// separators are turned into whitespace before a line is tokenized.
var separators = strings.NewReplacer(":", " ", "=", " ", `"`, " ")

type parseConfig struct {
	encodeSpaces bool
}

// ParseOption tunes ParseFields.
type ParseOption func(*parseConfig)

// EncodeSpaces keeps multi-word values in one token: spaces in the raw line
// become '_' before tokenizing and '_' is turned back into a space in the
// returned values. Used for os-release, whose values are quoted strings.
func EncodeSpaces() ParseOption {
	return func(c *parseConfig) { c.encodeSpaces = true }
}

// ParseFields scans line-oriented text for the given keys.
//
// Each line has ':', '=' and '"' normalized to whitespace and is split on
// whitespace. When the first token equals one of keys, the remaining tokens
// are recorded as that key's positional values. Only the first matching line
// per key is kept. Keys that never match are absent from the result.
//
//	MemTotal:  16318412 kB      -> "MemTotal": ["16318412", "kB"]
//	cpu  10 0 5 70 5 0 0 0      -> "cpu": ["10", "0", "5", ...]
//	PRETTY_NAME="Ubuntu 22.04"  -> "PRETTY_NAME": ["Ubuntu 22.04"] (EncodeSpaces)
func ParseFields(r io.Reader, keys []string, opts ...ParseOption) map[string][]string {
	var cfg parseConfig
	for _, o := range opts {
		o(&cfg)
	}

	want := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		want[k] = struct{}{}
	}
	out := make(map[string][]string, len(keys))
	if len(want) == 0 {
		return out
	}

	// Lines are unbounded: the intr line of /proc/stat passes 64 KiB on
	// hosts with many interrupts.
	br := bufio.NewReader(r)
	for {
		raw, err := br.ReadString('\n')
		if raw != "" && parseLine(raw, want, out, cfg) && len(out) == len(want) {
			break
		}
		if err != nil {
			break
		}
	}
	return out
}

// parseLine records the line's values if its key is wanted and unseen.
func parseLine(raw string, want map[string]struct{}, out map[string][]string, cfg parseConfig) bool {
	line := strings.TrimSpace(raw)
	if cfg.encodeSpaces {
		line = strings.ReplaceAll(line, " ", "_")
	}
	fs := strings.Fields(separators.Replace(line))
	if len(fs) == 0 {
		return false
	}
	key := fs[0]
	if _, ok := want[key]; !ok {
		return false
	}
	if _, seen := out[key]; seen {
		return false
	}
	vals := fs[1:]
	if cfg.encodeSpaces {
		for i := range vals {
			vals[i] = strings.ReplaceAll(vals[i], "_", " ")
		}
	}
	out[key] = vals
	return true
}

// firstUint parses the first value recorded for key.
func firstUint(fields map[string][]string, key string) (uint64, bool) {
	vals := fields[key]
	if len(vals) == 0 {
		return 0, false
	}
	v, err := strconv.ParseUint(vals[0], 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
