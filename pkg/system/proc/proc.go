package proc

import (
	"os"
	"strconv"
)

// DefaultClockTicks is USER_HZ on every Go-supported Linux platform.
const DefaultClockTicks = 100

// ClockTicks returns the number of jiffies (clock ticks) per second.
// It first checks the env var CLK_TCK (useful for testing), otherwise
// falls back to DefaultClockTicks.
//
// Note: On real systems, the authoritative way is `sysconf(_SC_CLK_TCK)`,
// but calling that requires cgo. The kernel exports USER_HZ (100) to
// userspace regardless of its internal tick rate, so the constant is safe.
func ClockTicks() int {
	v, _ := strconv.Atoi(os.Getenv("CLK_TCK"))
	if v > 0 {
		return v
	}
	return DefaultClockTicks
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
