package csvfile

import (
	"fmt"
	"io"

	"github.com/couchcryptid/thermal-comfort-service/internal/domain"
)

// ReadSimulation parses the validation dataset: modelled and measured IAT
// plus outdoor temperature, one series per area.
func ReadSimulation(r io.Reader) ([]domain.SimulationSeries, error) {
	rows, err := readTable(r, []string{ColPredictedIAT, ColMeasuredIAT, ColOAT})
	if err != nil {
		return nil, err
	}
	ids, groups := groupByArea(rows)
	out := make([]domain.SimulationSeries, 0, len(ids))
	for _, id := range ids {
		g := groups[id]
		s := domain.SimulationSeries{AreaID: id, Samples: make([]domain.SimulationSample, len(g))}
		for i, rw := range g {
			s.Samples[i] = domain.SimulationSample{
				Time:         rw.time,
				PredictedIAT: rw.values[0],
				MeasuredIAT:  rw.values[1],
				OAT:          rw.values[2],
			}
		}
		if err := s.Predicted().Validate(); err != nil {
			return nil, fmt.Errorf("area %d: %w", id, err)
		}
		out = append(out, s)
	}
	return out, nil
}

// ReadForecast parses the short-term forecast dataset with its P10/P50/P90 bands.
func ReadForecast(r io.Reader) ([]domain.ForecastSeries, error) {
	rows, err := readTable(r, []string{ColIAT10, ColIAT50, ColIAT90, ColOAT10, ColOAT50, ColOAT90})
	if err != nil {
		return nil, err
	}
	ids, groups := groupByArea(rows)
	out := make([]domain.ForecastSeries, 0, len(ids))
	for _, id := range ids {
		g := groups[id]
		s := domain.ForecastSeries{AreaID: id, Samples: make([]domain.ForecastSample, len(g))}
		for i, rw := range g {
			s.Samples[i] = domain.ForecastSample{
				Time:  rw.time,
				IAT10: rw.values[0],
				IAT50: rw.values[1],
				IAT90: rw.values[2],
				OAT10: rw.values[3],
				OAT50: rw.values[4],
				OAT90: rw.values[5],
			}
		}
		if err := s.Upper().Series.Validate(); err != nil {
			return nil, fmt.Errorf("area %d: %w", id, err)
		}
		out = append(out, s)
	}
	return out, nil
}

// ReadLongTerm parses the climate-scenario simulation: predicted IAT per area.
// No month filter is applied here.
func ReadLongTerm(r io.Reader) ([]domain.AreaSeries, error) {
	rows, err := readTable(r, []string{ColPredictedIAT})
	if err != nil {
		return nil, err
	}
	ids, groups := groupByArea(rows)
	out := make([]domain.AreaSeries, 0, len(ids))
	for _, id := range ids {
		g := groups[id]
		s := make(domain.TimeSeries, len(g))
		for i, rw := range g {
			s[i] = domain.Sample{Time: rw.time, Value: rw.values[0]}
		}
		if err := s.Validate(); err != nil {
			return nil, fmt.Errorf("area %d: %w", id, err)
		}
		out = append(out, domain.AreaSeries{AreaID: id, Series: s})
	}
	return out, nil
}
