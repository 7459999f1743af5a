// Package report computes the validation, short-term and long-term views from
// freshly loaded datasets. Nothing is cached between calls.
package report

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/couchcryptid/thermal-comfort-service/internal/config"
	"github.com/couchcryptid/thermal-comfort-service/internal/domain"
	"github.com/couchcryptid/thermal-comfort-service/internal/observability"
)

// ErrAreaNotFound is returned when a requested area is absent from the dataset.
var ErrAreaNotFound = errors.New("area not found")

// ErrUnknownKind is returned by Areas for an unrecognised report kind.
var ErrUnknownKind = errors.New("unknown report kind")

// ErrDataset wraps failures to load a dataset, including malformed files.
var ErrDataset = errors.New("dataset unavailable")

// Kind names one of the three dashboard views.
type Kind string

const (
	KindValidation Kind = "validation"
	KindShortTerm  Kind = "shortterm"
	KindLongTerm   Kind = "longterm"
)

// Summer months of the long-term climate scenarios.
const (
	SummerStart = time.May
	SummerEnd   = time.September
)

// Dataset loads the three datasets. Implementations must read fresh data on
// every call.
type Dataset interface {
	Simulation(ctx context.Context) ([]domain.SimulationSeries, error)
	ShortTerm(ctx context.Context) ([]domain.ForecastSeries, error)
	LongTerm(ctx context.Context) ([]domain.AreaSeries, error)
}

// Service computes reports on demand.
type Service struct {
	data       Dataset
	codec      domain.AreaCodec
	thresholds domain.Thresholds
	bands      domain.RiskBands
	horizons   []int
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewService creates a Service using the thresholds, risk bands and area
// label from cfg.
func NewService(data Dataset, cfg *config.Config, metrics *observability.Metrics, logger *slog.Logger) *Service {
	return &Service{
		data:       data,
		codec:      domain.NewAreaCodec(cfg.AreaType),
		thresholds: cfg.Thresholds,
		bands:      cfg.RiskBands,
		horizons:   domain.DefaultHorizons,
		metrics:    metrics,
		logger:     logger,
	}
}

// Codec returns the area label codec used by the service.
func (s *Service) Codec() domain.AreaCodec {
	return s.codec
}

// AreaOption is one selectable area.
type AreaOption struct {
	AreaID domain.AreaID `json:"area_id"`
	Label  string        `json:"label"`
}

// Areas lists the areas present in the dataset behind kind.
func (s *Service) Areas(ctx context.Context, kind Kind) ([]AreaOption, error) {
	var ids []domain.AreaID
	err := s.observe(string(kind)+"_areas", func() error {
		switch kind {
		case KindValidation:
			sim, err := s.data.Simulation(ctx)
			if err != nil {
				return datasetErr(err)
			}
			ids = domain.SimulationAreaIDs(sim)
		case KindShortTerm:
			fc, err := s.data.ShortTerm(ctx)
			if err != nil {
				return datasetErr(err)
			}
			ids = domain.ForecastAreaIDs(fc)
		case KindLongTerm:
			lt, err := s.summerSeries(ctx)
			if err != nil {
				return err
			}
			for _, a := range lt {
				if len(a.Series) > 0 {
					ids = append(ids, a.AreaID)
				}
			}
			ids = domain.SortedAreaIDs(ids)
		default:
			return fmt.Errorf("%w: %q", ErrUnknownKind, kind)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	out := make([]AreaOption, len(ids))
	for i, id := range ids {
		out[i] = AreaOption{AreaID: id, Label: s.codec.Encode(id)}
	}
	return out, nil
}

// observe records the outcome and latency of one report computation.
func (s *Service) observe(report string, fn func() error) error {
	start := time.Now()
	err := fn()
	s.metrics.ReportDuration.WithLabelValues(report).Observe(time.Since(start).Seconds())

	outcome := "success"
	if err != nil {
		outcome = "error"
		s.logger.Warn("report failed", "report", report, "error", err)
	}
	s.metrics.ReportRequests.WithLabelValues(report, outcome).Inc()
	return err
}

func datasetErr(err error) error {
	return fmt.Errorf("%w: %w", ErrDataset, err)
}

// opt converts NaN to a missing value.
func opt(v float64) *float64 {
	if math.IsNaN(v) {
		return nil
	}
	return &v
}
