package proc

import (
	"path/filepath"

	"github.com/spf13/afero"
)

const (
	DefaultRoot      = "/proc"
	DefaultOSRelease = "/etc/os-release"
	DefaultPasswd    = "/etc/passwd"
)

// Source reads kernel counters from a proc tree. It keeps no state between
// calls: every method opens, parses and closes its file.
//
// A Source is safe for concurrent use as long as its Fs is.
type Source struct {
	fs        afero.Fs
	root      string
	osRelease string
	passwd    string
	clkTck    int
}

// Option configures a Source.
type Option func(*Source)

// WithFs sets the filesystem the Source reads from (default: the OS filesystem).
func WithFs(fs afero.Fs) Option {
	return func(s *Source) {
		if fs != nil {
			s.fs = fs
		}
	}
}

// WithRoot sets the proc mount point (default /proc).
func WithRoot(root string) Option {
	return func(s *Source) {
		if root != "" {
			s.root = filepath.Clean(root)
		}
	}
}

// WithOSRelease sets the os-release path (default /etc/os-release).
func WithOSRelease(path string) Option {
	return func(s *Source) {
		if path != "" {
			s.osRelease = path
		}
	}
}

// WithPasswd sets the user database path (default /etc/passwd).
func WithPasswd(path string) Option {
	return func(s *Source) {
		if path != "" {
			s.passwd = path
		}
	}
}

// WithClockTicks overrides the clock-tick rate (default ClockTicks()).
func WithClockTicks(hz int) Option {
	return func(s *Source) {
		if hz > 0 {
			s.clkTck = hz
		}
	}
}

// NewSource returns a Source reading the live system unless options say otherwise.
func NewSource(opts ...Option) *Source {
	s := &Source{
		fs:        afero.NewOsFs(),
		root:      DefaultRoot,
		osRelease: DefaultOSRelease,
		passwd:    DefaultPasswd,
		clkTck:    ClockTicks(),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Fs returns the filesystem the Source reads from.
func (s *Source) Fs() afero.Fs { return s.fs }

// Root returns the proc mount point.
func (s *Source) Root() string { return s.root }

// ClockTicks returns the clock-tick rate used to convert jiffies to seconds.
func (s *Source) ClockTicks() int { return s.clkTck }

func (s *Source) path(elem ...string) string {
	return filepath.Join(append([]string{s.root}, elem...)...)
}

// Fields opens path and runs ParseFields over it. A file that cannot be
// opened yields an empty map.
func (s *Source) Fields(path string, keys []string, opts ...ParseOption) map[string][]string {
	f, err := s.fs.Open(path)
	if err != nil {
		return map[string][]string{}
	}
	defer f.Close()
	return ParseFields(f, keys, opts...)
}
