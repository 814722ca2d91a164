package monitor

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	"github.com/ja7ad/sysmon/pkg/system/proc"
)

const instrumentationName = "github.com/ja7ad/sysmon/pkg/monitor"

// Metrics holds the OpenTelemetry instruments the table and monitor report
// to. A nil instrument is skipped.
type Metrics struct {
	polls        metric.Int64Counter
	readFailures metric.Int64Counter
	evictions    metric.Int64Counter
	pollDuration metric.Float64Histogram
	tracked      metric.Int64Gauge
}

// NewMetrics creates the instruments on meter, or on the global meter
// provider when meter is nil. Instruments that fail to register are logged
// and left nil.
func NewMetrics(meter metric.Meter, logger *zap.Logger) *Metrics {
	if meter == nil {
		meter = otel.Meter(instrumentationName)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	m := &Metrics{}
	var err error

	m.polls, err = meter.Int64Counter(
		"sysmon_polls_total",
		metric.WithDescription("Process table refreshes"),
		metric.WithUnit("1"),
	)
	if err != nil {
		logger.Debug("Failed to create polls counter", zap.Error(err))
		m.polls = nil
	}

	m.readFailures, err = meter.Int64Counter(
		"sysmon_read_failures_total",
		metric.WithDescription("Per-process reads that failed during a refresh"),
		metric.WithUnit("1"),
	)
	if err != nil {
		logger.Debug("Failed to create read failures counter", zap.Error(err))
		m.readFailures = nil
	}

	m.evictions, err = meter.Int64Counter(
		"sysmon_evictions_total",
		metric.WithDescription("Records dropped by the eviction policy"),
		metric.WithUnit("1"),
	)
	if err != nil {
		logger.Debug("Failed to create evictions counter", zap.Error(err))
		m.evictions = nil
	}

	m.pollDuration, err = meter.Float64Histogram(
		"sysmon_poll_duration_seconds",
		metric.WithDescription("Process table refresh duration"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0),
	)
	if err != nil {
		logger.Debug("Failed to create poll duration histogram", zap.Error(err))
		m.pollDuration = nil
	}

	m.tracked, err = meter.Int64Gauge(
		"sysmon_table_size",
		metric.WithDescription("Records held by the process table"),
		metric.WithUnit("1"),
	)
	if err != nil {
		logger.Debug("Failed to create table size gauge", zap.Error(err))
		m.tracked = nil
	}

	return m
}

func (m *Metrics) recordPoll(d time.Duration, size int) {
	if m == nil {
		return
	}
	ctx := context.Background()
	if m.polls != nil {
		m.polls.Add(ctx, 1)
	}
	if m.pollDuration != nil {
		m.pollDuration.Record(ctx, d.Seconds())
	}
	if m.tracked != nil {
		m.tracked.Record(ctx, int64(size))
	}
}

// recordReadFailure counts one failed per-process read. file is the
// /proc/<pid> entry; reason is one of "gone", "malformed" or "io".
func (m *Metrics) recordReadFailure(file string, err error) {
	if m == nil || m.readFailures == nil {
		return
	}
	m.readFailures.Add(context.Background(), 1, metric.WithAttributes(
		attribute.String("file", file),
		attribute.String("reason", failureReason(err)),
	))
}

func (m *Metrics) recordEvictions(n int) {
	if m == nil || m.evictions == nil || n == 0 {
		return
	}
	m.evictions.Add(context.Background(), int64(n))
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, proc.ErrProcessGone):
		return "gone"
	case errors.Is(err, proc.ErrNoStat), errors.Is(err, proc.ErrShortStat):
		return "malformed"
	default:
		return "io"
	}
}
