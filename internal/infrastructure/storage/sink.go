package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/abstratium/partner/internal/infrastructure/config"
	"go.uber.org/zap"
)

// Sink receives a rendered export and reports where it was stored
type Sink interface {
	Write(ctx context.Context, r io.Reader) (string, error)
}

var (
	_ Sink = (*FileSink)(nil)
	_ Sink = (*S3Sink)(nil)
)

// NewExportSink builds the sink selected by cfg.Export.Sink
func NewExportSink(ctx context.Context, cfg *config.Config, logger *zap.Logger) (Sink, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	switch cfg.Export.Sink {
	case "", config.ExportSinkFile:
		return NewFileSink(cfg.Export.FilePath, logger), nil
	case config.ExportSinkS3:
		sink, err := NewS3Sink(cfg.Storage, cfg.Export.ObjectKey, logger)
		if err != nil {
			return nil, err
		}
		if cfg.Storage.CreateBucket {
			if err := sink.EnsureBucket(ctx); err != nil {
				return nil, err
			}
		}
		return sink, nil
	default:
		return nil, fmt.Errorf("unknown export sink %q", cfg.Export.Sink)
	}
}
