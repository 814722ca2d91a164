package monitor

import (
	"github.com/ja7ad/sysmon/pkg/system/proc"
	"github.com/ja7ad/sysmon/pkg/system/util"
)

// Sampler reports system CPU load over the interval between two calls to
// Sample, as opposed to System.CPUUtilization which averages since boot.
type Sampler struct {
	src  Source
	ema  *util.EMA
	prev proc.CPUTimes
	have bool
	last float64
}

// NewSampler returns a Sampler. alpha in (0,1] smooths results with an
// exponential moving average; alpha <= 0 disables smoothing.
func NewSampler(src Source, alpha float64) *Sampler {
	s := &Sampler{src: src}
	if alpha > 0 {
		s.ema = util.NewEMA(alpha)
	}
	return s
}

// Sample returns the busy share of jiffies elapsed since the previous call,
// in [0,1]. The first call has no previous sample and returns the average
// since boot. If the counters went backwards the result is 0 and smoothing
// restarts. An unreadable /proc/stat repeats the last result.
func (s *Sampler) Sample() float64 {
	ct, ok := s.src.CPUTimes()
	if !ok {
		return s.last
	}

	var v float64
	if !s.have {
		v = util.CPUUtilization(ct.TotalJiffies(), ct.IdleJiffies())
	} else {
		if ct.TotalJiffies() < s.prev.TotalJiffies() {
			// counters reset
			if s.ema != nil {
				s.ema.Reset()
			}
		}
		dt := util.DeltaU64(ct.TotalJiffies(), s.prev.TotalJiffies())
		di := util.DeltaU64(ct.IdleJiffies(), s.prev.IdleJiffies())
		v = util.SafeDiv(float64(dt)-float64(di), float64(dt))
	}
	s.prev, s.have = ct, true

	v = util.Clamp01(v)
	if s.ema != nil {
		v = util.Clamp01(s.ema.Next(v))
	}
	s.last = v
	return v
}
