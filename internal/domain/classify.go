package domain

import (
	"fmt"
	"time"
)

// NightWindow bounds the nightly hours, both ends inclusive, 0-23.
type NightWindow struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Contains reports whether hour falls in the window: hour >= Start || hour <= End.
// The OR lets the window wrap past midnight (22-7 covers 22:00 to 07:59).
func (w NightWindow) Contains(hour int) bool {
	return hour >= w.Start || hour <= w.End
}

// Degenerate reports whether the window matches every hour, which happens
// whenever Start <= End.
func (w NightWindow) Degenerate() bool {
	return w.Start <= w.End
}

// Validate checks both bounds are valid hours.
func (w NightWindow) Validate() error {
	if w.Start < 0 || w.Start > 23 {
		return fmt.Errorf("night start hour %d outside 0-23", w.Start)
	}
	if w.End < 0 || w.End > 23 {
		return fmt.Errorf("night end hour %d outside 0-23", w.End)
	}
	return nil
}

// Thresholds configures classification and risk evaluation.
type Thresholds struct {
	// IAT is the overheating cutoff in degrees Celsius.
	IAT float64 `json:"iat"`
	// OverheatingPct is the acceptable yearly share of overheating hours.
	OverheatingPct float64 `json:"overheating_pct"`
	// NightOverheatingPct is the acceptable yearly share of night overheating hours.
	NightOverheatingPct float64     `json:"night_overheating_pct"`
	Night               NightWindow `json:"night"`
}

// ClassifiedSample is a sample with its overheating flags.
// NightOverheating is nil outside the night window.
type ClassifiedSample struct {
	Sample
	Overheating      bool  `json:"overheating"`
	NightOverheating *bool `json:"night_overheating"`
}

// Classify flags every sample of s. The day flag uses a strict comparison
// (value > IAT), the night flag an inclusive one (value >= IAT).
func Classify(s TimeSeries, th Thresholds) []ClassifiedSample {
	out := make([]ClassifiedSample, len(s))
	for i, p := range s {
		c := ClassifiedSample{Sample: p, Overheating: p.Value > th.IAT}
		if th.Night.Contains(p.Time.Hour()) {
			night := p.Value >= th.IAT
			c.NightOverheating = &night
		}
		out[i] = c
	}
	return out
}

// FlagPoint is a timestamped boolean flag.
type FlagPoint struct {
	Time time.Time `json:"time"`
	Flag bool      `json:"flag"`
}

// FlagSeries is the ordered flag sequence of one area.
type FlagSeries struct {
	AreaID AreaID      `json:"area_id"`
	Points []FlagPoint `json:"points"`
}

// ClassifyOverheating flags samples strictly above iat. Used for short-term
// monitoring where only the day flag matters.
func ClassifyOverheating(a AreaSeries, iat float64) FlagSeries {
	points := make([]FlagPoint, len(a.Series))
	for i, p := range a.Series {
		points[i] = FlagPoint{Time: p.Time, Flag: p.Value > iat}
	}
	return FlagSeries{AreaID: a.AreaID, Points: points}
}
