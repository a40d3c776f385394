package telemetry

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel/metric"
)

// ErrNilMeter is returned when partner metrics are built without a meter.
var ErrNilMeter = errors.New("telemetry: meter is nil")

var exportDurationBuckets = []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30}

// PartnerMetrics records partner lifecycle and export activity.
// A nil *PartnerMetrics records nothing.
type PartnerMetrics struct {
	created        metric.Int64Counter
	deleted        metric.Int64Counter
	exports        metric.Int64Counter
	exportDuration metric.Float64Histogram
}

// NewPartnerMetrics registers the partner instruments on meter.
func NewPartnerMetrics(meter metric.Meter) (*PartnerMetrics, error) {
	if meter == nil {
		return nil, ErrNilMeter
	}
	in := NewInstruments(meter)
	m := &PartnerMetrics{
		created:        in.Counter("partner_created_total", "Partners created", "{partner}"),
		deleted:        in.Counter("partner_deleted_total", "Partners deleted", "{partner}"),
		exports:        in.Counter("partner_export_total", "Partner export runs", "{export}"),
		exportDuration: in.Seconds("partner_export_duration_seconds", "Partner export duration", exportDurationBuckets...),
	}
	if err := in.Err(); err != nil {
		return nil, err
	}
	return m, nil
}

// RecordCreated counts a new partner of kind.
func (m *PartnerMetrics) RecordCreated(ctx context.Context, kind string) {
	if m == nil {
		return
	}
	m.created.Add(ctx, 1, metric.WithAttributes(AttrPartnerKind.String(kind)))
}

// RecordDeleted counts a deleted partner.
func (m *PartnerMetrics) RecordDeleted(ctx context.Context) {
	if m == nil {
		return
	}
	m.deleted.Add(ctx, 1)
}

// RecordExport counts an export run by sink and outcome and records how long it took.
func (m *PartnerMetrics) RecordExport(ctx context.Context, sink string, d time.Duration, err error) {
	if m == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "failed"
	}
	m.exports.Add(ctx, 1, metric.WithAttributes(AttrExportSink.String(sink), AttrExportStatus.String(status)))
	m.exportDuration.Record(ctx, d.Seconds(), metric.WithAttributes(AttrExportSink.String(sink)))
}
