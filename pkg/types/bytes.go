package types

import "github.com/dustin/go-humanize"

// Bytes is a uint64 wrapper representing a size in bytes.
type Bytes uint64

// FromKB converts a kernel "kB" figure (1024 base, as used by meminfo and
// status) to Bytes.
func FromKB(kb uint64) Bytes { return Bytes(kb * 1024) }

// String renders the size with IEC units, e.g. "200 MiB".
func (b Bytes) String() string { return humanize.IBytes(uint64(b)) }

// WholeMB returns the size in megabytes, truncated.
func (b Bytes) WholeMB() uint64 { return uint64(b) >> 20 }
