package observability

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/kbukum/recskit/logger"
)

const meterName = "github.com/kbukum/recskit/observability"

// MeterConfig configures stage metrics export.
type MeterConfig struct {
	Export
	// Interval is the export period. Zero keeps the SDK default.
	Interval time.Duration
}

// DefaultMeterConfig exports to a local collector every 15 seconds.
func DefaultMeterConfig(serviceName string) MeterConfig {
	return MeterConfig{Export: DefaultExport(serviceName), Interval: 15 * time.Second}
}

// InitMeter installs a periodic OTLP meter provider as the global one.
// The caller shuts it down to flush the last interval.
func InitMeter(ctx context.Context, cfg *MeterConfig) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{otlpmetrichttp.WithEndpoint(cfg.Endpoint)}
	if cfg.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}
	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}
	res, err := cfg.resource()
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	var readerOpts []sdkmetric.PeriodicReaderOption
	if cfg.Interval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(cfg.Interval))
	}
	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(mp)

	logger.Get("recs").Debug("meter initialized", logger.Fields(
		"endpoint", cfg.Endpoint,
		"interval", cfg.Interval.String(),
	))
	return mp, nil
}

// Meter returns a named meter from the global provider.
func Meter(name string) metric.Meter {
	return otel.Meter(name)
}

// StageMetrics holds the instruments recorded by instrumented stages.
type StageMetrics struct {
	entriesIn     metric.Int64Counter
	entriesOut    metric.Int64Counter
	closeDuration metric.Float64Histogram
	errorTotal    metric.Int64Counter
}

// NewStageMetrics creates stage instruments on the given meter.
func NewStageMetrics(meter metric.Meter) (*StageMetrics, error) {
	entriesIn, err := meter.Int64Counter("recs.stage.entries_in",
		metric.WithDescription("Entries written into a stage"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating recs.stage.entries_in counter: %w", err)
	}

	entriesOut, err := meter.Int64Counter("recs.stage.entries_out",
		metric.WithDescription("Entries emitted by a stage"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating recs.stage.entries_out counter: %w", err)
	}

	closeDuration, err := meter.Float64Histogram("recs.stage.close_duration",
		metric.WithDescription("Time spent flushing a stage on close"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating recs.stage.close_duration histogram: %w", err)
	}

	errorTotal, err := meter.Int64Counter("recs.stage.errors",
		metric.WithDescription("Stages that reported an error on close"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating recs.stage.errors counter: %w", err)
	}

	return &StageMetrics{
		entriesIn:     entriesIn,
		entriesOut:    entriesOut,
		closeDuration: closeDuration,
		errorTotal:    errorTotal,
	}, nil
}

var (
	defaultMetrics     *StageMetrics
	defaultMetricsOnce sync.Once
)

// stageMetrics returns instruments on the global meter. The global
// provider forwards to whatever provider InitMeter installs later.
func stageMetrics() *StageMetrics {
	defaultMetricsOnce.Do(func() {
		m, err := NewStageMetrics(Meter(meterName))
		if err != nil {
			logger.Get("recs").Warn("stage metrics disabled", logger.ErrorFields("new_stage_metrics", err))
			return
		}
		defaultMetrics = m
	})
	return defaultMetrics
}

func stageAttrs(stage string) metric.MeasurementOption {
	return metric.WithAttributes(attribute.String(AttrStageName, stage))
}
