package csvfile

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/couchcryptid/thermal-comfort-service/internal/domain"
)

// WriteSimulation writes validation series in the format ReadSimulation accepts.
func WriteSimulation(w io.Writer, series []domain.SimulationSeries) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{ColDatetime, ColPredictedIAT, ColMeasuredIAT, ColOAT, ColAreaID}); err != nil {
		return err
	}
	for _, s := range series {
		area := strconv.Itoa(int(s.AreaID))
		for _, p := range s.Samples {
			rec := []string{p.Time.Format(TimeLayout), formatValue(p.PredictedIAT), formatValue(p.MeasuredIAT), formatValue(p.OAT), area}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteForecast writes forecast series in the format ReadForecast accepts.
func WriteForecast(w io.Writer, series []domain.ForecastSeries) error {
	cw := csv.NewWriter(w)
	header := []string{ColDatetime, ColIAT90, ColIAT50, ColIAT10, ColOAT90, ColOAT50, ColOAT10, ColAreaID}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, s := range series {
		area := strconv.Itoa(int(s.AreaID))
		for _, p := range s.Samples {
			rec := []string{
				p.Time.Format(TimeLayout),
				formatValue(p.IAT90), formatValue(p.IAT50), formatValue(p.IAT10),
				formatValue(p.OAT90), formatValue(p.OAT50), formatValue(p.OAT10),
				area,
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteLongTerm writes long-term series in the format ReadLongTerm accepts.
func WriteLongTerm(w io.Writer, series []domain.AreaSeries) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{ColDatetime, ColPredictedIAT, ColAreaID}); err != nil {
		return err
	}
	for _, s := range series {
		area := strconv.Itoa(int(s.AreaID))
		for _, p := range s.Series {
			if err := cw.Write([]string{p.Time.Format(TimeLayout), formatValue(p.Value), area}); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}
