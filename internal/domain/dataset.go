package domain

import (
	"math"
	"time"
)

// SimulationSample is one hour of the validation dataset.
type SimulationSample struct {
	Time         time.Time `json:"time"`
	PredictedIAT float64   `json:"predicted_iat"`
	MeasuredIAT  float64   `json:"measured_iat"`
	OAT          float64   `json:"oat"`
}

// SimulationSeries holds the validation samples of one area.
type SimulationSeries struct {
	AreaID  AreaID             `json:"area_id"`
	Samples []SimulationSample `json:"samples"`
}

// Predicted returns the modelled IAT as a time series.
func (s SimulationSeries) Predicted() TimeSeries {
	out := make(TimeSeries, len(s.Samples))
	for i, p := range s.Samples {
		out[i] = Sample{Time: p.Time, Value: p.PredictedIAT}
	}
	return out
}

// Measured returns the sensor IAT as a time series.
func (s SimulationSeries) Measured() TimeSeries {
	out := make(TimeSeries, len(s.Samples))
	for i, p := range s.Samples {
		out[i] = Sample{Time: p.Time, Value: p.MeasuredIAT}
	}
	return out
}

// ForecastSample is one hour of the short-term forecast with its percentile bands.
type ForecastSample struct {
	Time  time.Time `json:"time"`
	IAT10 float64   `json:"iat_p10"`
	IAT50 float64   `json:"iat_p50"`
	IAT90 float64   `json:"iat_p90"`
	OAT10 float64   `json:"oat_p10"`
	OAT50 float64   `json:"oat_p50"`
	OAT90 float64   `json:"oat_p90"`
}

// ForecastSeries holds the forecast samples of one area.
type ForecastSeries struct {
	AreaID  AreaID           `json:"area_id"`
	Samples []ForecastSample `json:"samples"`
}

// Upper returns the P90 IAT band, the series short-term alerts are computed on.
func (s ForecastSeries) Upper() AreaSeries {
	out := make(TimeSeries, len(s.Samples))
	for i, p := range s.Samples {
		out[i] = Sample{Time: p.Time, Value: p.IAT90}
	}
	return AreaSeries{AreaID: s.AreaID, Series: out}
}

// SimulationAreaIDs returns the sorted distinct areas of the validation dataset.
func SimulationAreaIDs(series []SimulationSeries) []AreaID {
	ids := make([]AreaID, len(series))
	for i, s := range series {
		ids[i] = s.AreaID
	}
	return distinctAreaIDs(ids)
}

// ForecastAreaIDs returns the sorted distinct areas of the forecast dataset.
func ForecastAreaIDs(series []ForecastSeries) []AreaID {
	ids := make([]AreaID, len(series))
	for i, s := range series {
		ids[i] = s.AreaID
	}
	return distinctAreaIDs(ids)
}

// AreaIDs returns the sorted distinct areas of the given series.
func AreaIDs(series []AreaSeries) []AreaID {
	ids := make([]AreaID, len(series))
	for i, s := range series {
		ids[i] = s.AreaID
	}
	return distinctAreaIDs(ids)
}

func distinctAreaIDs(ids []AreaID) []AreaID {
	seen := make(map[AreaID]struct{}, len(ids))
	out := make([]AreaID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sortAreaIDs(out)
	return out
}

// Mean returns the arithmetic mean of xs ignoring NaN values, or NaN if none remain.
func Mean(xs []float64) float64 {
	var sum float64
	n := 0
	for _, x := range xs {
		if math.IsNaN(x) {
			continue
		}
		sum += x
		n++
	}
	if n == 0 {
		return math.NaN()
	}
	return sum / float64(n)
}

// StdDev returns the sample standard deviation of xs ignoring NaN values,
// or NaN with fewer than two values.
func StdDev(xs []float64) float64 {
	mean := Mean(xs)
	var sq float64
	n := 0
	for _, x := range xs {
		if math.IsNaN(x) {
			continue
		}
		sq += (x - mean) * (x - mean)
		n++
	}
	if n < 2 {
		return math.NaN()
	}
	return math.Sqrt(sq / float64(n-1))
}

// SortedAreaIDs returns the distinct ids in ascending order.
func SortedAreaIDs(ids []AreaID) []AreaID {
	return distinctAreaIDs(ids)
}
