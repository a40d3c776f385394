// Package telemetry wires OpenTelemetry traces, metrics and logs plus
// Pyroscope continuous profiling for the partner service.
package telemetry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/abstratium/partner/internal/infrastructure/config"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.37.0"
	"go.uber.org/zap"
)

// TracerName is the instrumentation scope for spans started by this service.
const TracerName = "github.com/abstratium/partner"

const (
	serviceVersion  = "1.0.0"
	shutdownTimeout = 10 * time.Second
)

// Providers bundles every telemetry provider so they can be shut down together.
type Providers struct {
	Tracer      *TracerProvider
	Meter       *MeterProvider
	Logs        *LoggerProvider
	Profiler    *Profiler
	serviceName string
}

// Option replaces the OTLP exporter of a signal. Tests use it to collect
// spans, metrics and log records in memory.
type Option func(*setupOptions)

type setupOptions struct {
	spanExporter sdktrace.SpanExporter
	metricReader sdkmetric.Reader
	logExporter  sdklog.Exporter
}

// WithSpanExporter exports spans synchronously to exp.
func WithSpanExporter(exp sdktrace.SpanExporter) Option {
	return func(o *setupOptions) { o.spanExporter = exp }
}

// WithMetricReader collects metrics through reader.
func WithMetricReader(reader sdkmetric.Reader) Option {
	return func(o *setupOptions) { o.metricReader = reader }
}

// WithLogExporter exports log records synchronously to exp.
func WithLogExporter(exp sdklog.Exporter) Option {
	return func(o *setupOptions) { o.logExporter = exp }
}

// Setup creates all providers from configuration. Disabled signals get no-op
// providers; a failure part way through shuts down what was already started.
func Setup(ctx context.Context, cfg config.TelemetryConfig, logger *zap.Logger, opts ...Option) (*Providers, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	var o setupOptions
	for _, opt := range opts {
		opt(&o)
	}

	p := &Providers{
		Tracer:      &TracerProvider{logger: logger},
		Meter:       &MeterProvider{},
		Logs:        &LoggerProvider{},
		Profiler:    &Profiler{logger: logger},
		serviceName: cfg.ServiceName,
	}
	if !cfg.Enabled && !cfg.ProfilingEnabled {
		logger.Info("Telemetry disabled")
		return p, nil
	}

	fail := func(err error) (*Providers, error) {
		_ = p.Shutdown(ctx)
		return nil, err
	}

	if cfg.Enabled {
		res, err := newResource(cfg.ServiceName)
		if err != nil {
			return nil, err
		}
		if p.Tracer, err = newTracerProvider(ctx, cfg, res, o.spanExporter, logger); err != nil {
			return fail(err)
		}
		if cfg.MetricsEnabled {
			if p.Meter, err = newMeterProvider(ctx, cfg, res, o.metricReader); err != nil {
				return fail(err)
			}
		}
		if cfg.LogsEnabled {
			if p.Logs, err = newLoggerProvider(ctx, cfg, res, o.logExporter); err != nil {
				return fail(err)
			}
		}
		logger.Info("OpenTelemetry initialized",
			zap.String("collector_endpoint", cfg.CollectorEndpoint),
			zap.Float64("sampling_ratio", cfg.SamplingRatio),
			zap.Bool("metrics", p.Meter.IsEnabled()),
			zap.Bool("logs", p.Logs.IsEnabled()),
		)
	}

	profiler, err := NewProfiler(ProfilerConfig{
		Enabled:         cfg.ProfilingEnabled,
		ServerAddress:   cfg.ProfilingServer,
		ApplicationName: cfg.ServiceName,
	}, logger)
	if err != nil {
		return fail(err)
	}
	p.Profiler = profiler
	if profiler.IsEnabled() {
		p.Tracer.EnableSpanProfiles()
	}
	return p, nil
}

// Shutdown flushes and stops every provider, returning all errors joined.
func (p *Providers) Shutdown(ctx context.Context) error {
	if p == nil {
		return nil
	}
	var errs []error
	if p.Profiler != nil {
		errs = append(errs, p.Profiler.Stop())
	}
	if p.Logs != nil {
		errs = append(errs, p.Logs.Shutdown(ctx))
	}
	if p.Meter != nil {
		errs = append(errs, p.Meter.Shutdown(ctx))
	}
	if p.Tracer != nil {
		errs = append(errs, p.Tracer.Shutdown(ctx))
	}
	return errors.Join(errs...)
}

// shutdownWithin bounds a provider shutdown by shutdownTimeout
func shutdownWithin(ctx context.Context, name string, fn func(context.Context) error) error {
	ctx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()
	if err := fn(ctx); err != nil {
		return fmt.Errorf("failed to shutdown %s provider: %w", name, err)
	}
	return nil
}

func newResource(serviceName string) (*resource.Resource, error) {
	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion(serviceVersion),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}
	return res, nil
}
