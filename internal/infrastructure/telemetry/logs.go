package telemetry

import (
	"context"
	"fmt"

	"github.com/abstratium/partner/internal/infrastructure/config"
	"go.opentelemetry.io/contrib/bridges/otelzap"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploggrpc"
	"go.opentelemetry.io/otel/log/global"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LoggerProvider owns the SDK log provider that zap entries are bridged to.
// The zero value is a disabled provider.
type LoggerProvider struct {
	sdk *sdklog.LoggerProvider
}

func newLoggerProvider(ctx context.Context, cfg config.TelemetryConfig, res *resource.Resource, exp sdklog.Exporter) (*LoggerProvider, error) {
	var processor sdklog.Processor
	if exp != nil {
		processor = sdklog.NewSimpleProcessor(exp)
	} else {
		opts := []otlploggrpc.Option{otlploggrpc.WithEndpoint(cfg.CollectorEndpoint)}
		if cfg.Insecure {
			opts = append(opts, otlploggrpc.WithInsecure())
		}
		otlp, err := otlploggrpc.New(ctx, opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to create OTLP logs exporter: %w", err)
		}
		processor = sdklog.NewBatchProcessor(otlp)
	}

	sdk := sdklog.NewLoggerProvider(sdklog.WithResource(res), sdklog.WithProcessor(processor))
	global.SetLoggerProvider(sdk)
	return &LoggerProvider{sdk: sdk}, nil
}

// Shutdown flushes pending records and stops the provider.
func (lp *LoggerProvider) Shutdown(ctx context.Context) error {
	if lp.sdk == nil {
		return nil
	}
	return shutdownWithin(ctx, "logger", lp.sdk.Shutdown)
}

// IsEnabled reports whether log records are exported.
func (lp *LoggerProvider) IsEnabled() bool {
	return lp != nil && lp.sdk != nil
}

// BridgeLogger tees base into the OTEL log pipeline for entries at or above
// level. base is returned as is when log export is off.
func (p *Providers) BridgeLogger(base *zap.Logger, level string) *zap.Logger {
	if p == nil || !p.Logs.IsEnabled() {
		return base
	}
	minLevel, err := zapcore.ParseLevel(level)
	if err != nil {
		minLevel = zapcore.InfoLevel
	}

	var bridge zapcore.Core = otelzap.NewCore(p.serviceName, otelzap.WithLoggerProvider(p.Logs.sdk))
	if filtered, err := zapcore.NewIncreaseLevelCore(bridge, minLevel); err == nil {
		bridge = filtered
	}
	return base.WithOptions(zap.WrapCore(func(core zapcore.Core) zapcore.Core {
		return zapcore.NewTee(core, bridge)
	}))
}
