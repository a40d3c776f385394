package partner

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/abstratium/partner/internal/domain/partner"
	"github.com/abstratium/partner/internal/domain/shared"
	"github.com/abstratium/partner/internal/infrastructure/logger"
	"github.com/abstratium/partner/internal/infrastructure/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// PartnerExportService writes a plain text listing of all partners
type PartnerExportService struct {
	partnerRepo partner.PartnerRepository
	sink        ExportSink
	logger      *zap.Logger
	metrics     *telemetry.PartnerMetrics
	sinkName    string
}

// NewPartnerExportService creates a new PartnerExportService
func NewPartnerExportService(partnerRepo partner.PartnerRepository, sink ExportSink, logger *zap.Logger) *PartnerExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PartnerExportService{partnerRepo: partnerRepo, sink: sink, logger: logger}
}

// SetMetrics sets the metrics recorder and the sink label exports are counted under
func (s *PartnerExportService) SetMetrics(m *telemetry.PartnerMetrics, sinkName string) {
	s.metrics = m
	s.sinkName = sinkName
}

// Export writes one "<number> <display name>" line per partner, ordered by
// partner number, and returns where the export was stored
func (s *PartnerExportService) Export(ctx context.Context) (_ *ExportResponse, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "partner", "export")
	start := time.Now()
	defer func() {
		s.metrics.RecordExport(ctx, s.sinkName, time.Since(start), err)
		telemetry.RecordError(span, err)
		span.End()
	}()

	partners, err := s.partnerRepo.FindAll(ctx, shared.Filter{})
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := WriteExport(&buf, partners); err != nil {
		return nil, err
	}
	location, err := s.sink.Write(ctx, &buf)
	if err != nil {
		logger.For(ctx, s.logger).Error("Failed to write partner export", zap.Error(err))
		return nil, fmt.Errorf("write partner export: %w", err)
	}

	span.SetAttributes(attribute.Int(telemetry.SpanAttrExportCount, len(partners)))
	logger.For(ctx, s.logger).Info("Partners exported", zap.String("location", location), zap.Int("count", len(partners)))
	return &ExportResponse{Location: location, Count: len(partners)}, nil
}

// WriteExport renders partners in export format
func WriteExport(w io.Writer, partners []*partner.Partner) error {
	for _, p := range partners {
		if _, err := fmt.Fprintf(w, "%s %s\n", p.Number(), p.DisplayName()); err != nil {
			return err
		}
	}
	return nil
}
