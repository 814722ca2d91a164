package monitor

import (
	"time"

	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

type options struct {
	logger     *zap.Logger
	meter      metric.Meter
	metrics    *Metrics
	evictAfter int
	interval   bool
	alpha      float64
	now        func() time.Time
}

// Option configures a Table or a Monitor.
type Option func(*options)

// WithLogger sets the logger (default: no-op).
func WithLogger(l *zap.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithMeter sets the OpenTelemetry meter instruments are created on
// (default: the global meter provider).
func WithMeter(m metric.Meter) Option {
	return func(o *options) { o.meter = m }
}

// WithMetrics shares an existing instrument set.
func WithMetrics(m *Metrics) Option {
	return func(o *options) { o.metrics = m }
}

// WithEvictAfter drops records not seen for n consecutive discoveries.
// Zero or negative keeps every record for the life of the table.
func WithEvictAfter(n int) Option {
	return func(o *options) { o.evictAfter = max(n, 0) }
}

// WithIntervalCPU makes Monitor report system CPU as the load between two
// polls instead of the average since boot. alpha in (0,1] enables EMA
// smoothing; 0 disables it.
func WithIntervalCPU(alpha float64) Option {
	return func(o *options) { o.interval, o.alpha = true, alpha }
}

// WithClock sets the clock used to stamp frames (default time.Now).
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}
	if o.metrics == nil {
		o.metrics = NewMetrics(o.meter, o.logger)
	}
	return o
}
