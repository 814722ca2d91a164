package monitor

import (
	"github.com/ja7ad/sysmon/pkg/types"
)

// ProcessRecord is one tracked process.
//
// CPU, RAM and AgeSeconds are recomputed on every poll. User, UID and Command
// are read when the PID is first seen and again only if the PID is reused.
type ProcessRecord struct {
	PID int `json:"pid"`
	// CPU is cumulative CPU seconds over process age. It may exceed 1 for
	// multi-threaded processes.
	CPU float64 `json:"cpu"`
	// RAM is VmSize in MB.
	RAM     types.Maybe[uint64] `json:"ram_mb"`
	User    types.Maybe[string] `json:"user"`
	UID     types.Maybe[string] `json:"uid"`
	Command types.Maybe[string] `json:"command"`

	AgeSeconds int64  `json:"age_seconds"`
	StartTicks uint64 `json:"start_ticks"`

	// Alive is false when the PID was missing from the latest discovery;
	// Missed counts consecutive such discoveries.
	Alive  bool `json:"alive"`
	Missed int  `json:"missed"`

	identified bool
}
