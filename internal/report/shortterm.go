package report

import (
	"context"
	"fmt"
	"time"

	"github.com/couchcryptid/thermal-comfort-service/internal/domain"
)

// HorizonCell is one column of the short-term alert table.
type HorizonCell struct {
	Days  int    `json:"days"`
	Label string `json:"label"`
	Hours *int   `json:"hours"`
}

// ShortTermRow holds the cumulative overheating hours of one area.
type ShortTermRow struct {
	AreaID   domain.AreaID `json:"area_id"`
	Area     string        `json:"area"`
	Horizons []HorizonCell `json:"horizons"`
}

// ShortTermTable is the short-term alert table across all areas, computed on
// the P90 forecast band.
type ShortTermTable struct {
	GeneratedAt  time.Time      `json:"generated_at"`
	ThresholdIAT float64        `json:"threshold_iat"`
	Rows         []ShortTermRow `json:"rows"`
}

// ForecastPoint is one hour of the forecast bands.
type ForecastPoint struct {
	Time  time.Time `json:"time"`
	IAT10 *float64  `json:"iat_p10"`
	IAT50 *float64  `json:"iat_p50"`
	IAT90 *float64  `json:"iat_p90"`
	OAT10 *float64  `json:"oat_p10"`
	OAT50 *float64  `json:"oat_p50"`
	OAT90 *float64  `json:"oat_p90"`
}

// ShortTermArea is the forecast of one area with its alert row.
type ShortTermArea struct {
	AreaID       domain.AreaID   `json:"area_id"`
	Area         string          `json:"area"`
	GeneratedAt  time.Time       `json:"generated_at"`
	ThresholdIAT float64         `json:"threshold_iat"`
	Horizons     []HorizonCell   `json:"horizons"`
	Points       []ForecastPoint `json:"points"`
}

// ShortTermTable computes cumulative overheating hours per area at each horizon.
func (s *Service) ShortTermTable(ctx context.Context) (*ShortTermTable, error) {
	var out *ShortTermTable
	err := s.observe(string(KindShortTerm), func() error {
		fc, err := s.loadForecast(ctx)
		if err != nil {
			return err
		}
		rows, err := s.horizonRows(fc)
		if err != nil {
			return err
		}
		out = &ShortTermTable{
			GeneratedAt:  domain.Now(),
			ThresholdIAT: s.thresholds.IAT,
			Rows:         rows,
		}
		return nil
	})
	return out, err
}

// ShortTermArea returns the forecast bands and alert row of one area.
func (s *Service) ShortTermArea(ctx context.Context, area domain.AreaID) (*ShortTermArea, error) {
	var out *ShortTermArea
	err := s.observe(string(KindShortTerm)+"_area", func() error {
		fc, err := s.loadForecast(ctx)
		if err != nil {
			return err
		}
		var series *domain.ForecastSeries
		for i := range fc {
			if fc[i].AreaID == area {
				series = &fc[i]
				break
			}
		}
		if series == nil {
			return fmt.Errorf("%w: %s", ErrAreaNotFound, s.codec.Encode(area))
		}

		rows, err := s.horizonRows([]domain.ForecastSeries{*series})
		if err != nil {
			return err
		}

		points := make([]ForecastPoint, len(series.Samples))
		for i, p := range series.Samples {
			points[i] = ForecastPoint{
				Time:  p.Time,
				IAT10: opt(p.IAT10), IAT50: opt(p.IAT50), IAT90: opt(p.IAT90),
				OAT10: opt(p.OAT10), OAT50: opt(p.OAT50), OAT90: opt(p.OAT90),
			}
		}
		out = &ShortTermArea{
			AreaID:       area,
			Area:         s.codec.Encode(area),
			GeneratedAt:  domain.Now(),
			ThresholdIAT: s.thresholds.IAT,
			Horizons:     rows[0].Horizons,
			Points:       points,
		}
		return nil
	})
	return out, err
}

func (s *Service) loadForecast(ctx context.Context) ([]domain.ForecastSeries, error) {
	fc, err := s.data.ShortTerm(ctx)
	if err != nil {
		return nil, datasetErr(err)
	}
	n := 0
	for _, f := range fc {
		n += len(f.Samples)
	}
	s.metrics.DatasetRows.WithLabelValues("shortterm").Set(float64(n))
	return fc, nil
}

func (s *Service) horizonRows(fc []domain.ForecastSeries) ([]ShortTermRow, error) {
	flags := make([]domain.FlagSeries, len(fc))
	for i, f := range fc {
		flags[i] = domain.ClassifyOverheating(f.Upper(), s.thresholds.IAT)
	}
	table, err := domain.HorizonTable(flags, s.horizons)
	if err != nil {
		return nil, fmt.Errorf("short-term table: %w", err)
	}

	rows := make([]ShortTermRow, len(table))
	for i, r := range table {
		cells := make([]HorizonCell, len(r.Entries))
		for j, e := range r.Entries {
			cells[j] = HorizonCell{Days: e.Days, Label: e.Label(), Hours: e.Hours}
		}
		rows[i] = ShortTermRow{AreaID: r.AreaID, Area: s.codec.Encode(r.AreaID), Horizons: cells}
	}
	return rows, nil
}
