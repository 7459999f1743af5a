package domain

import (
	"fmt"
	"sort"
	"time"
)

// Sample is one hourly reading of a single quantity.
type Sample struct {
	Time  time.Time `json:"time"`
	Value float64   `json:"value"`
}

// TimeSeries is an ordered sequence of samples with strictly increasing times.
type TimeSeries []Sample

// Validate checks that timestamps are strictly increasing.
func (s TimeSeries) Validate() error {
	for i := 1; i < len(s); i++ {
		if !s[i].Time.After(s[i-1].Time) {
			return fmt.Errorf("%w: sample %d at %s follows %s", ErrUnordered, i, s[i].Time.Format(time.RFC3339), s[i-1].Time.Format(time.RFC3339))
		}
	}
	return nil
}

// Values returns the sample values in order.
func (s TimeSeries) Values() []float64 {
	out := make([]float64, len(s))
	for i, p := range s {
		out[i] = p.Value
	}
	return out
}

// AreaSeries is the time series of one area.
type AreaSeries struct {
	AreaID AreaID     `json:"area_id"`
	Series TimeSeries `json:"series"`
}

// FilterMonths keeps samples whose month lies in [from, to].
func FilterMonths(s TimeSeries, from, to time.Month) TimeSeries {
	out := make(TimeSeries, 0, len(s))
	for _, p := range s {
		if m := p.Time.Month(); m >= from && m <= to {
			out = append(out, p)
		}
	}
	return out
}

// sampleCount returns the total number of samples across areas.
func sampleCount(series []AreaSeries) int {
	n := 0
	for _, a := range series {
		n += len(a.Series)
	}
	return n
}

func sortAreaIDs(ids []AreaID) {
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
}
