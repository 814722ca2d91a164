package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemoryUtilization(t *testing.T) {
	t.Run("half_used", func(t *testing.T) {
		assert.InDelta(t, 0.5, MemoryUtilization(1000, 500), 1e-12)
	})
	t.Run("all_free", func(t *testing.T) {
		assert.Equal(t, 0.0, MemoryUtilization(1000, 1000))
	})
	t.Run("nothing_free", func(t *testing.T) {
		assert.Equal(t, 1.0, MemoryUtilization(1000, 0))
	})
	t.Run("zero_total_is_guarded", func(t *testing.T) {
		assert.Equal(t, 0.0, MemoryUtilization(0, 0))
		assert.Equal(t, 0.0, MemoryUtilization(0, 10))
	})
	t.Run("bounded_for_consistent_inputs", func(t *testing.T) {
		for total := uint64(1); total < 2000; total += 97 {
			for free := uint64(0); free <= total; free += 13 {
				u := MemoryUtilization(total, free)
				assert.GreaterOrEqual(t, u, 0.0, "total=%d free=%d", total, free)
				assert.LessOrEqual(t, u, 1.0, "total=%d free=%d", total, free)
			}
		}
	})
	t.Run("inconsistent_data_exceeds_bounds", func(t *testing.T) {
		assert.Less(t, MemoryUtilization(100, 200), 0.0)
	})
}

func TestCPUUtilization(t *testing.T) {
	// cpu 10 0 5 70 5 0 0 0 -> total 90, idle 75
	assert.InDelta(t, 0.1667, CPUUtilization(90, 75), 1e-4)
	assert.Equal(t, 0.0, CPUUtilization(0, 0))
	assert.Equal(t, 0.0, CPUUtilization(100, 100))
	assert.Equal(t, 1.0, CPUUtilization(100, 0))
}

func TestProcessCPU(t *testing.T) {
	t.Run("regular", func(t *testing.T) {
		// 500 ticks busy = 5s, started at tick 1000 = 10s, uptime 110s -> age 100s
		cpu, age := ProcessCPU(500, 1000, 100, 110)
		assert.InDelta(t, 0.05, cpu, 1e-12)
		assert.InDelta(t, 100.0, age, 1e-12)
	})
	t.Run("multi_core_not_clamped", func(t *testing.T) {
		cpu, _ := ProcessCPU(4000, 0, 100, 20)
		assert.InDelta(t, 2.0, cpu, 1e-12)
	})
	t.Run("zero_age", func(t *testing.T) {
		cpu, age := ProcessCPU(100, 1000, 100, 10)
		assert.Equal(t, 0.0, cpu)
		assert.Equal(t, 0.0, age)
	})
	t.Run("negative_age_from_clock_skew", func(t *testing.T) {
		cpu, age := ProcessCPU(100, 1050, 100, 10)
		assert.Equal(t, 0.0, cpu)
		assert.Equal(t, 0.0, age)
	})
	t.Run("bad_clock_ticks", func(t *testing.T) {
		cpu, age := ProcessCPU(100, 0, 0, 10)
		assert.Equal(t, 0.0, cpu)
		assert.Equal(t, 0.0, age)
	})
	t.Run("other_tick_rate", func(t *testing.T) {
		cpu, age := ProcessCPU(250, 0, 250, 4)
		assert.InDelta(t, 0.25, cpu, 1e-12)
		assert.InDelta(t, 4.0, age, 1e-12)
	})
}

func TestKBToMB(t *testing.T) {
	assert.Equal(t, uint64(200), KBToMB(204800))
	assert.Equal(t, uint64(0), KBToMB(1023))
	assert.Equal(t, uint64(1), KBToMB(2047))
}

func TestElapsedTime(t *testing.T) {
	tests := map[int64]string{
		0:      "00:00:00",
		59:     "00:00:59",
		61:     "00:01:01",
		3600:   "01:00:00",
		12345:  "03:25:45",
		360000: "100:00:00",
		-5:     "00:00:00",
	}
	for in, want := range tests {
		assert.Equal(t, want, ElapsedTime(in), "ElapsedTime(%d)", in)
	}
}
