package telemetry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/abstratium/partner/internal/infrastructure/config"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
)

const defaultMetricsInterval = time.Minute

// Metric attribute keys
var (
	AttrHTTPMethod   = attribute.Key("http.method")
	AttrHTTPRoute    = attribute.Key("http.route")
	AttrHTTPStatus   = attribute.Key("http.status_code")
	AttrPartnerKind  = attribute.Key("partner.kind")
	AttrExportSink   = attribute.Key("export.sink")
	AttrExportStatus = attribute.Key("export.status")
)

// MeterProvider owns the SDK meter provider registered as the global one.
// The zero value is a disabled provider.
type MeterProvider struct {
	sdk *sdkmetric.MeterProvider
}

func newMeterProvider(ctx context.Context, cfg config.TelemetryConfig, res *resource.Resource, reader sdkmetric.Reader) (*MeterProvider, error) {
	if reader == nil {
		opts := []otlpmetricgrpc.Option{otlpmetricgrpc.WithEndpoint(cfg.CollectorEndpoint)}
		if cfg.Insecure {
			opts = append(opts, otlpmetricgrpc.WithInsecure())
		}
		otlp, err := otlpmetricgrpc.New(ctx, opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to create OTLP metrics exporter: %w", err)
		}
		interval := cfg.MetricsInterval
		if interval <= 0 {
			interval = defaultMetricsInterval
		}
		reader = sdkmetric.NewPeriodicReader(otlp, sdkmetric.WithInterval(interval))
	}

	sdk := sdkmetric.NewMeterProvider(sdkmetric.WithResource(res), sdkmetric.WithReader(reader))
	otel.SetMeterProvider(sdk)
	return &MeterProvider{sdk: sdk}, nil
}

// Shutdown flushes pending metrics and stops the provider.
func (mp *MeterProvider) Shutdown(ctx context.Context) error {
	if mp.sdk == nil {
		return nil
	}
	return shutdownWithin(ctx, "meter", mp.sdk.Shutdown)
}

// Meter returns a named meter, falling back to the global provider when
// metrics are off.
func (mp *MeterProvider) Meter(name string, opts ...metric.MeterOption) metric.Meter {
	if mp == nil || mp.sdk == nil {
		return otel.GetMeterProvider().Meter(name, opts...)
	}
	return mp.sdk.Meter(name, opts...)
}

// IsEnabled reports whether metrics are exported.
func (mp *MeterProvider) IsEnabled() bool {
	return mp != nil && mp.sdk != nil
}

// Instruments creates instruments on one meter and keeps every creation
// error, so a set of instruments is checked once with Err.
//
//	in := telemetry.NewInstruments(meter)
//	total := in.Counter("partner_created_total", "Partners created", "{partner}")
//	if err := in.Err(); err != nil { ... }
type Instruments struct {
	meter metric.Meter
	errs  []error
}

// NewInstruments starts an instrument set on meter.
func NewInstruments(meter metric.Meter) *Instruments {
	return &Instruments{meter: meter}
}

// Counter creates a monotonic Int64 counter.
func (in *Instruments) Counter(name, description, unit string) metric.Int64Counter {
	c, err := in.meter.Int64Counter(name, metric.WithDescription(description), metric.WithUnit(unit))
	in.track(name, err)
	return c
}

// UpDownCounter creates an Int64 counter that can go down.
func (in *Instruments) UpDownCounter(name, description, unit string) metric.Int64UpDownCounter {
	c, err := in.meter.Int64UpDownCounter(name, metric.WithDescription(description), metric.WithUnit(unit))
	in.track(name, err)
	return c
}

// Seconds creates a Float64 histogram of durations in seconds with the
// given bucket boundaries.
func (in *Instruments) Seconds(name, description string, buckets ...float64) metric.Float64Histogram {
	h, err := in.meter.Float64Histogram(name,
		metric.WithDescription(description),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(buckets...),
	)
	in.track(name, err)
	return h
}

// Err returns every creation error joined, or nil.
func (in *Instruments) Err() error {
	return errors.Join(in.errs...)
}

func (in *Instruments) track(name string, err error) {
	if err != nil {
		in.errs = append(in.errs, fmt.Errorf("instrument %s: %w", name, err))
	}
}
