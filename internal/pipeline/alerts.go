package pipeline

import (
	"log/slog"

	"github.com/couchcryptid/thermal-comfort-service/internal/domain"
	"github.com/couchcryptid/thermal-comfort-service/internal/report"
)

// AlertBuilder turns report tables into per-area alerts.
type AlertBuilder struct {
	codec  domain.AreaCodec
	logger *slog.Logger
}

// NewAlertBuilder creates an AlertBuilder labelling areas with codec.
func NewAlertBuilder(codec domain.AreaCodec, logger *slog.Logger) *AlertBuilder {
	return &AlertBuilder{codec: codec, logger: logger}
}

// Build returns the short-term alerts followed by the long-term alerts.
// Either table may be nil.
func (b *AlertBuilder) Build(short *report.ShortTermTable, long *report.LongTermTable) []domain.Alert {
	var alerts []domain.Alert
	if short != nil {
		for _, row := range short.Rows {
			alerts = append(alerts, domain.NewShortTermAlert(horizonRow(row), b.codec, short.GeneratedAt))
		}
	}
	if long != nil {
		for _, row := range long.Rows {
			alerts = append(alerts, domain.NewLongTermAlert(row, long.GeneratedAt))
		}
	}
	b.logger.Debug("alerts built", "count", len(alerts))
	return alerts
}

func horizonRow(row report.ShortTermRow) domain.HorizonRow {
	entries := make([]domain.HorizonEntry, len(row.Horizons))
	for i, c := range row.Horizons {
		entries[i] = domain.HorizonEntry{Days: c.Days, Hours: c.Hours}
	}
	return domain.HorizonRow{AreaID: row.AreaID, Entries: entries}
}
