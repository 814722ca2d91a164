package util

import "fmt"

// MemoryUtilization returns (total-free)/total for meminfo kB figures.
// A zero total yields 0.
func MemoryUtilization(totalKB, freeKB uint64) float64 {
	if totalKB == 0 {
		return 0
	}
	return (float64(totalKB) - float64(freeKB)) / float64(totalKB)
}

// CPUUtilization returns (total-idle)/total for jiffy counters taken from a
// single /proc/stat sample. The result is the average load since boot, not
// the load over a recent window. A zero total yields 0.
func CPUUtilization(total, idle uint64) float64 {
	if total == 0 {
		return 0
	}
	return SafeDiv(float64(total)-float64(idle), float64(total))
}

// ProcessCPU converts a process's cumulative CPU ticks (utime+stime+cutime+cstime)
// and its start tick into a CPU fraction and an age in seconds.
//
//	busy = ticks / clkTck
//	age  = uptime - startTicks / clkTck
//	cpu  = busy / age
//
// Caveats:
//   - uptime and the process stat are read at different instants, so age may
//     come out slightly negative for a process that just started; age is then
//     clamped to 0.
//   - age == 0 reports cpu 0 instead of dividing by zero.
//   - cpu is not clamped above 1: a multi-threaded process may exceed one core.
func ProcessCPU(ticks, startTicks uint64, clkTck int, uptime float64) (cpu, age float64) {
	if clkTck <= 0 {
		return 0, 0
	}
	hz := float64(clkTck)
	busy := float64(ticks) / hz
	age = uptime - float64(startTicks)/hz
	if age <= 0 {
		return 0, 0
	}
	cpu = SafeDiv(busy, age)
	if cpu < 0 {
		cpu = 0
	}
	return cpu, age
}

// KBToMB converts kB to MB with integer division (204800 kB -> 200 MB).
func KBToMB(kb uint64) uint64 { return kb / 1024 }

// ElapsedTime formats seconds as HH:MM:SS. Hours are not wrapped at 24.
// Negative input is treated as 0.
func ElapsedTime(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d:%02d", seconds/3600, (seconds%3600)/60, seconds%60)
}
