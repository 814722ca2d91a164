package monitor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSampler_Sample(t *testing.T) {
	f := newFakeProc(t)
	s := NewSampler(f.source(), 0)

	// first call: average since boot
	assert.InDelta(t, 0.1667, s.Sample(), 1e-4)

	// +100 jiffies, 25 of them idle
	f.write("/proc/stat", "cpu 60 0 30 90 10 0 0 0\n")
	assert.InDelta(t, 0.75, s.Sample(), 1e-9)

	// no movement
	assert.Zero(t, s.Sample())
}

func TestSampler_CounterReset(t *testing.T) {
	f := newFakeProc(t)
	s := NewSampler(f.source(), 0)
	s.Sample()

	f.write("/proc/stat", "cpu 1 0 1 1 0 0 0 0\n")
	assert.Zero(t, s.Sample())

	f.write("/proc/stat", "cpu 5 0 1 3 0 0 0 0\n")
	assert.InDelta(t, 4.0/6.0, s.Sample(), 1e-9)
}

func TestSampler_IdleAheadOfTotalClamps(t *testing.T) {
	f := newFakeProc(t)
	s := NewSampler(f.source(), 0)
	s.Sample()

	// idle moved more than total: the kernel adjusts iowait backwards at times
	f.write("/proc/stat", "cpu 10 0 0 100 0 0 0 0\n")
	v := s.Sample()
	assert.GreaterOrEqual(t, v, 0.0)
	assert.LessOrEqual(t, v, 1.0)
}

func TestSampler_UnreadableRepeatsLast(t *testing.T) {
	f := newFakeProc(t)
	s := NewSampler(f.source(), 0)
	first := s.Sample()

	assert.NoError(t, f.fs.Remove("/proc/stat"))
	assert.Equal(t, first, s.Sample())
}

func TestSampler_EMA(t *testing.T) {
	f := newFakeProc(t)
	s := NewSampler(f.source(), 0.5)

	// seeds the average
	first := s.Sample()
	assert.InDelta(t, 0.1667, first, 1e-4)

	// raw 1.0 -> 0.5*1.0 + 0.5*first
	f.write("/proc/stat", "cpu 110 0 5 70 5 0 0 0\n")
	assert.InDelta(t, 0.5+first/2, s.Sample(), 1e-9)
}
