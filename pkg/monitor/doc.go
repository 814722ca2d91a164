// Package monitor turns raw /proc counters into a machine snapshot and a
// ranked process table that persists across polls.
//
// The caller owns the cadence: each call to Table.Processes or Monitor.Poll
// is one discovery and refresh cycle. Per-process CPU is cumulative CPU time
// divided by process age; system CPU is the average since boot unless
// WithIntervalCPU is given.
//
// Example:
//
//	m := monitor.New(proc.NewSource(), monitor.WithLogger(logger))
//	for range ticker.C {
//		f := m.Poll()
//		fmt.Printf("cpu %.1f%% mem %.1f%%\n", f.Snapshot.CPU*100, f.Snapshot.Memory*100)
//	}
package monitor
