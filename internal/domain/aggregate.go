package domain

import (
	"fmt"
	"sort"
)

// YearlyAggregate counts overheating hours of one area in one calendar year.
// EligibleHours is every sample of the year; NightEligibleHours only the
// samples inside the night window.
type YearlyAggregate struct {
	AreaID                AreaID `json:"area_id"`
	Year                  int    `json:"year"`
	OverheatingHours      int    `json:"overheating_hours"`
	EligibleHours         int    `json:"eligible_hours"`
	NightOverheatingHours int    `json:"night_overheating_hours"`
	NightEligibleHours    int    `json:"night_eligible_hours"`
}

// YearlyPercentage is the share of overheating hours of one area in one year.
// A nil percentage means the year had no eligible hours for that flag.
type YearlyPercentage struct {
	AreaID              AreaID   `json:"area_id"`
	Year                int      `json:"year"`
	OverheatingPct      *float64 `json:"overheating_pct"`
	NightOverheatingPct *float64 `json:"night_overheating_pct"`
}

// YearlyRisk marks whether a year exceeded the acceptable percentages.
// A nil flag means the percentage it derives from is missing.
type YearlyRisk struct {
	AreaID           AreaID `json:"area_id"`
	Year             int    `json:"year"`
	Overheating      *bool  `json:"overheating"`
	NightOverheating *bool  `json:"night_overheating"`
}

// RiskSummary is the share of years (in percent) in which an area exceeded
// the acceptable overheating and night overheating percentages.
type RiskSummary struct {
	AreaID               AreaID   `json:"area_id"`
	Years                int      `json:"years"`
	OverheatingRisk      *float64 `json:"overheating_risk"`
	NightOverheatingRisk *float64 `json:"night_overheating_risk"`
}

type areaYear struct {
	area AreaID
	year int
}

// YearlyHours classifies every series and counts overheating hours per
// (area, calendar year). Results are sorted by area then year.
func YearlyHours(series []AreaSeries, th Thresholds) ([]YearlyAggregate, error) {
	if sampleCount(series) == 0 {
		return nil, fmt.Errorf("yearly hours: %w", ErrEmptySeries)
	}

	acc := make(map[areaYear]*YearlyAggregate)
	for _, a := range series {
		for _, c := range Classify(a.Series, th) {
			k := areaYear{area: a.AreaID, year: c.Time.Year()}
			agg, ok := acc[k]
			if !ok {
				agg = &YearlyAggregate{AreaID: k.area, Year: k.year}
				acc[k] = agg
			}

			agg.EligibleHours++
			if c.Overheating {
				agg.OverheatingHours++
			}
			if c.NightOverheating != nil {
				agg.NightEligibleHours++
				if *c.NightOverheating {
					agg.NightOverheatingHours++
				}
			}
		}
	}

	out := make([]YearlyAggregate, 0, len(acc))
	for _, agg := range acc {
		out = append(out, *agg)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].AreaID != out[j].AreaID {
			return out[i].AreaID < out[j].AreaID
		}
		return out[i].Year < out[j].Year
	})
	return out, nil
}

// YearlyPercentages converts hour counts into percentages of eligible hours.
func YearlyPercentages(aggs []YearlyAggregate) ([]YearlyPercentage, error) {
	if len(aggs) == 0 {
		return nil, fmt.Errorf("yearly percentages: %w", ErrEmptySeries)
	}

	out := make([]YearlyPercentage, len(aggs))
	for i, a := range aggs {
		out[i] = YearlyPercentage{
			AreaID:              a.AreaID,
			Year:                a.Year,
			OverheatingPct:      percentage(a.OverheatingHours, a.EligibleHours),
			NightOverheatingPct: percentage(a.NightOverheatingHours, a.NightEligibleHours),
		}
	}
	return out, nil
}

// YearlyRiskFlags marks each year whose percentage is strictly above the
// corresponding threshold.
func YearlyRiskFlags(pcts []YearlyPercentage, th Thresholds) []YearlyRisk {
	out := make([]YearlyRisk, len(pcts))
	for i, p := range pcts {
		out[i] = YearlyRisk{
			AreaID:           p.AreaID,
			Year:             p.Year,
			Overheating:      exceeds(p.OverheatingPct, th.OverheatingPct),
			NightOverheating: exceeds(p.NightOverheatingPct, th.NightOverheatingPct),
		}
	}
	return out
}

// RiskSummaries returns, per area, the percentage of years flagged by
// YearlyRiskFlags. Years with a missing percentage do not count toward that
// flag; an area with no usable year gets a nil risk.
func RiskSummaries(pcts []YearlyPercentage, th Thresholds) ([]RiskSummary, error) {
	if len(pcts) == 0 {
		return nil, fmt.Errorf("risk summaries: %w", ErrEmptySeries)
	}

	type tally struct {
		years                 int
		dayTrue, dayCount     int
		nightTrue, nightCount int
	}
	acc := make(map[AreaID]*tally)
	for _, r := range YearlyRiskFlags(pcts, th) {
		t, ok := acc[r.AreaID]
		if !ok {
			t = &tally{}
			acc[r.AreaID] = t
		}
		t.years++
		if r.Overheating != nil {
			t.dayCount++
			if *r.Overheating {
				t.dayTrue++
			}
		}
		if r.NightOverheating != nil {
			t.nightCount++
			if *r.NightOverheating {
				t.nightTrue++
			}
		}
	}

	ids := make([]AreaID, 0, len(acc))
	for id := range acc {
		ids = append(ids, id)
	}
	sortAreaIDs(ids)

	out := make([]RiskSummary, len(ids))
	for i, id := range ids {
		t := acc[id]
		out[i] = RiskSummary{
			AreaID:               id,
			Years:                t.years,
			OverheatingRisk:      percentage(t.dayTrue, t.dayCount),
			NightOverheatingRisk: percentage(t.nightTrue, t.nightCount),
		}
	}
	return out, nil
}

func percentage(n, total int) *float64 {
	if total == 0 {
		return nil
	}
	v := 100 * float64(n) / float64(total)
	return &v
}

func exceeds(pct *float64, threshold float64) *bool {
	if pct == nil {
		return nil
	}
	v := *pct > threshold
	return &v
}
