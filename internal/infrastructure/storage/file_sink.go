package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

const defaultExportPath = "/tmp/partners.txt"

// FileSink writes exports to a local file, replacing any previous export
type FileSink struct {
	path   string
	logger *zap.Logger
}

// NewFileSink creates a FileSink writing to path
func NewFileSink(path string, logger *zap.Logger) *FileSink {
	if path == "" {
		path = defaultExportPath
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FileSink{path: path, logger: logger}
}

// Write copies r into the export file and returns its path
func (s *FileSink) Write(_ context.Context, r io.Reader) (string, error) {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return "", fmt.Errorf("create export directory: %w", err)
	}

	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return "", fmt.Errorf("open export file: %w", err)
	}
	n, err := io.Copy(f, r)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return "", fmt.Errorf("write export file: %w", err)
	}

	s.logger.Info("Export written", zap.String("path", s.path), zap.Int64("bytes", n))
	return s.path, nil
}

// Path returns the export file location
func (s *FileSink) Path() string {
	return s.path
}
