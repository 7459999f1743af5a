package report

import (
	"context"
	"fmt"
	"time"

	"github.com/couchcryptid/thermal-comfort-service/internal/domain"
)

// LongTermTable is the overheating risk table across all areas.
type LongTermTable struct {
	GeneratedAt time.Time        `json:"generated_at"`
	Bands       domain.RiskBands `json:"bands"`
	Rows        []domain.RiskRow `json:"rows"`
}

// YearlyPoint is one summer of an area with its percentages and risk flags.
type YearlyPoint struct {
	Year                int      `json:"year"`
	OverheatingPct      *float64 `json:"overheating_pct"`
	NightOverheatingPct *float64 `json:"night_overheating_pct"`
	Overheating         *bool    `json:"overheating"`
	NightOverheating    *bool    `json:"night_overheating"`
}

// LongTermArea holds the yearly overheating percentages of one area against
// the acceptable thresholds.
type LongTermArea struct {
	AreaID                       domain.AreaID  `json:"area_id"`
	Area                         string         `json:"area"`
	GeneratedAt                  time.Time      `json:"generated_at"`
	ThresholdOverheatingPct      float64        `json:"threshold_overheating_pct"`
	ThresholdNightOverheatingPct float64        `json:"threshold_night_overheating_pct"`
	Risk                         domain.RiskRow `json:"risk"`
	Years                        []YearlyPoint  `json:"years"`
}

// LongTermTable computes the risk of overheating per area over the summers of
// the climate scenarios.
func (s *Service) LongTermTable(ctx context.Context) (*LongTermTable, error) {
	var out *LongTermTable
	err := s.observe(string(KindLongTerm), func() error {
		pcts, err := s.yearlyPercentages(ctx)
		if err != nil {
			return err
		}
		rows, err := s.riskRows(pcts)
		if err != nil {
			return err
		}
		out = &LongTermTable{GeneratedAt: domain.Now(), Bands: s.bands, Rows: rows}
		return nil
	})
	return out, err
}

// LongTermArea returns the yearly percentages, flags and risk of one area.
func (s *Service) LongTermArea(ctx context.Context, area domain.AreaID) (*LongTermArea, error) {
	var out *LongTermArea
	err := s.observe(string(KindLongTerm)+"_area", func() error {
		all, err := s.yearlyPercentages(ctx)
		if err != nil {
			return err
		}
		var pcts []domain.YearlyPercentage
		for _, p := range all {
			if p.AreaID == area {
				pcts = append(pcts, p)
			}
		}
		if len(pcts) == 0 {
			return fmt.Errorf("%w: %s", ErrAreaNotFound, s.codec.Encode(area))
		}

		rows, err := s.riskRows(pcts)
		if err != nil {
			return err
		}

		flags := domain.YearlyRiskFlags(pcts, s.thresholds)
		years := make([]YearlyPoint, len(pcts))
		for i, p := range pcts {
			years[i] = YearlyPoint{
				Year:                p.Year,
				OverheatingPct:      p.OverheatingPct,
				NightOverheatingPct: p.NightOverheatingPct,
				Overheating:         flags[i].Overheating,
				NightOverheating:    flags[i].NightOverheating,
			}
		}
		out = &LongTermArea{
			AreaID:                       area,
			Area:                         s.codec.Encode(area),
			GeneratedAt:                  domain.Now(),
			ThresholdOverheatingPct:      s.thresholds.OverheatingPct,
			ThresholdNightOverheatingPct: s.thresholds.NightOverheatingPct,
			Risk:                         rows[0],
			Years:                        years,
		}
		return nil
	})
	return out, err
}

// YearlyAggregates returns the per-summer overheating hours of every area.
func (s *Service) YearlyAggregates(ctx context.Context) ([]domain.YearlyAggregate, error) {
	series, err := s.summerSeries(ctx)
	if err != nil {
		return nil, err
	}
	aggs, err := domain.YearlyHours(series, s.thresholds)
	if err != nil {
		return nil, fmt.Errorf("long-term hours: %w", err)
	}
	return aggs, nil
}

func (s *Service) yearlyPercentages(ctx context.Context) ([]domain.YearlyPercentage, error) {
	aggs, err := s.YearlyAggregates(ctx)
	if err != nil {
		return nil, err
	}
	pcts, err := domain.YearlyPercentages(aggs)
	if err != nil {
		return nil, fmt.Errorf("long-term percentages: %w", err)
	}
	return pcts, nil
}

func (s *Service) riskRows(pcts []domain.YearlyPercentage) ([]domain.RiskRow, error) {
	summaries, err := domain.RiskSummaries(pcts, s.thresholds)
	if err != nil {
		return nil, fmt.Errorf("long-term risk: %w", err)
	}
	rows, err := domain.RiskTable(summaries, s.codec, s.bands)
	if err != nil {
		return nil, fmt.Errorf("long-term risk table: %w", err)
	}
	return rows, nil
}

// summerSeries loads the long-term dataset restricted to May-September.
func (s *Service) summerSeries(ctx context.Context) ([]domain.AreaSeries, error) {
	lt, err := s.data.LongTerm(ctx)
	if err != nil {
		return nil, datasetErr(err)
	}
	out := make([]domain.AreaSeries, len(lt))
	n := 0
	for i, a := range lt {
		out[i] = domain.AreaSeries{AreaID: a.AreaID, Series: domain.FilterMonths(a.Series, SummerStart, SummerEnd)}
		n += len(a.Series)
	}
	s.metrics.DatasetRows.WithLabelValues("longterm").Set(float64(n))
	return out, nil
}
