// Package telemetry sets up the OpenTelemetry meter provider the monitor
// reports to.
package telemetry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.uber.org/zap"
)

const (
	ServiceName          = "sysmon"
	defaultExportPeriod  = 30 * time.Second
	instrumentationScope = "github.com/ja7ad/sysmon"
)

// Config selects the metric readers. With neither set the provider is a
// no-op.
type Config struct {
	// Registerer receives the instruments as Prometheus collectors.
	Registerer prometheus.Registerer
	// OTLPEndpoint is a host:port OTLP/gRPC collector.
	OTLPEndpoint string
	// ExportInterval is the OTLP push period (default 30s).
	ExportInterval time.Duration
	// Version is reported as service.version.
	Version string
}

// Provider owns the SDK meter provider.
type Provider struct {
	meterProvider *sdkmetric.MeterProvider
	logger        *zap.Logger
}

// NewProvider builds a meter provider for cfg.
func NewProvider(ctx context.Context, cfg Config, logger *zap.Logger) (*Provider, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	p := &Provider{logger: logger}
	if cfg.Registerer == nil && cfg.OTLPEndpoint == "" {
		return p, nil
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			attribute.String("service.name", ServiceName),
			attribute.String("service.version", cfg.Version),
		),
		resource.WithHost(),
		resource.WithOS(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	var readers []sdkmetric.Reader

	if cfg.Registerer != nil {
		// instrument names already carry their unit suffix
		promExporter, err := otelprom.New(
			otelprom.WithRegisterer(cfg.Registerer),
			otelprom.WithoutUnits(),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create Prometheus exporter: %w", err)
		}
		readers = append(readers, promExporter)
	}

	if cfg.OTLPEndpoint != "" {
		exporter, err := otlpmetricgrpc.New(ctx,
			otlpmetricgrpc.WithEndpoint(cfg.OTLPEndpoint),
			otlpmetricgrpc.WithInsecure(),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create OTLP metric exporter: %w", err)
		}
		interval := cfg.ExportInterval
		if interval <= 0 {
			interval = defaultExportPeriod
		}
		readers = append(readers, sdkmetric.NewPeriodicReader(exporter,
			sdkmetric.WithInterval(interval),
		))
		logger.Info("exporting metrics over OTLP", zap.String("endpoint", cfg.OTLPEndpoint))
	}

	opts := []sdkmetric.Option{sdkmetric.WithResource(res)}
	for _, r := range readers {
		opts = append(opts, sdkmetric.WithReader(r))
	}
	p.meterProvider = sdkmetric.NewMeterProvider(opts...)
	return p, nil
}

// Meter returns the sysmon meter, or a no-op meter when nothing is exported.
func (p *Provider) Meter() metric.Meter {
	if p.meterProvider == nil {
		return noop.NewMeterProvider().Meter(instrumentationScope)
	}
	return p.meterProvider.Meter(instrumentationScope)
}

// Shutdown flushes and stops the readers.
func (p *Provider) Shutdown(ctx context.Context) error {
	if p.meterProvider == nil {
		return nil
	}
	if err := p.meterProvider.Shutdown(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("failed to shutdown meter provider: %w", err)
	}
	return nil
}
