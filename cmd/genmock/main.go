// Command genmock derives multi-area mock datasets from single-area
// simulation exports. Each extra area is a copy of the source shifted by a
// fixed temperature step, and the short-term forecast bands are the
// simulated values plus or minus one standard deviation.
//
// Usage:
//
//	go run ./cmd/genmock \
//	  -simulation data/source/simulation.csv \
//	  -longterm data/source/longterm_simulation.csv \
//	  -out-dir data \
//	  -areas 3
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/couchcryptid/thermal-comfort-service/internal/adapter/csvfile"
	"github.com/couchcryptid/thermal-comfort-service/internal/domain"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	simPath := flag.String("simulation", "", "single-area simulation CSV")
	ltPath := flag.String("longterm", "", "single-area long-term simulation CSV")
	outDir := flag.String("out-dir", "data", "output directory for the generated datasets")
	areas := flag.Int("areas", 3, "number of areas to generate")
	step := flag.Float64("step", 1.0, "temperature shift in degreeC between consecutive areas")
	flag.Parse()

	if *simPath == "" || *ltPath == "" {
		flag.Usage()
		return errors.New("missing required flags: -simulation, -longterm")
	}
	if *areas < 1 {
		return fmt.Errorf("-areas must be at least 1, got %d", *areas)
	}

	sims, err := readFile(*simPath, csvfile.ReadSimulation)
	if err != nil {
		return err
	}
	base, err := firstSimulation(sims)
	if err != nil {
		return fmt.Errorf("%s: %w", *simPath, err)
	}

	lts, err := readFile(*ltPath, csvfile.ReadLongTerm)
	if err != nil {
		return err
	}
	if len(lts) == 0 {
		return fmt.Errorf("%s: %w", *ltPath, domain.ErrEmptySeries)
	}

	simOut := duplicateSimulation(base, *areas, *step)
	fcOut := duplicateForecast(forecastBands(base), *areas, *step)
	ltOut := duplicateLongTerm(lts[0].Series, *areas, *step)

	if err := writeFile(filepath.Join(*outDir, "simulation.csv"), func(w io.Writer) error {
		return csvfile.WriteSimulation(w, simOut)
	}); err != nil {
		return err
	}
	if err := writeFile(filepath.Join(*outDir, "shortterm_forecast.csv"), func(w io.Writer) error {
		return csvfile.WriteForecast(w, fcOut)
	}); err != nil {
		return err
	}
	if err := writeFile(filepath.Join(*outDir, "longterm_simulation.csv"), func(w io.Writer) error {
		return csvfile.WriteLongTerm(w, ltOut)
	}); err != nil {
		return err
	}

	printStats(simOut, fcOut, ltOut)
	return nil
}

func firstSimulation(sims []domain.SimulationSeries) (domain.SimulationSeries, error) {
	if len(sims) == 0 || len(sims[0].Samples) == 0 {
		return domain.SimulationSeries{}, domain.ErrEmptySeries
	}
	return sims[0], nil
}

// duplicateSimulation copies the series to areas 0..n-1, shifting the
// modelled IAT of area i by i*step.
func duplicateSimulation(base domain.SimulationSeries, n int, step float64) []domain.SimulationSeries {
	out := make([]domain.SimulationSeries, n)
	for i := range out {
		shift := float64(i) * step
		samples := make([]domain.SimulationSample, len(base.Samples))
		for j, p := range base.Samples {
			p.PredictedIAT += shift
			samples[j] = p
		}
		out[i] = domain.SimulationSeries{AreaID: domain.AreaID(i), Samples: samples}
	}
	return out
}

// forecastBands builds P10/P50/P90 bands around the simulated values using
// one standard deviation of each quantity.
func forecastBands(base domain.SimulationSeries) domain.ForecastSeries {
	iatStd := domain.StdDev(base.Predicted().Values())
	oat := make([]float64, len(base.Samples))
	for i, p := range base.Samples {
		oat[i] = p.OAT
	}
	oatStd := domain.StdDev(oat)

	samples := make([]domain.ForecastSample, len(base.Samples))
	for i, p := range base.Samples {
		samples[i] = domain.ForecastSample{
			Time:  p.Time,
			IAT10: p.PredictedIAT - iatStd,
			IAT50: p.PredictedIAT,
			IAT90: p.PredictedIAT + iatStd,
			OAT10: p.OAT - oatStd,
			OAT50: p.OAT,
			OAT90: p.OAT + oatStd,
		}
	}
	return domain.ForecastSeries{AreaID: base.AreaID, Samples: samples}
}

// duplicateForecast copies the forecast to areas 0..n-1, shifting the IAT
// bands of area i by i*step.
func duplicateForecast(base domain.ForecastSeries, n int, step float64) []domain.ForecastSeries {
	out := make([]domain.ForecastSeries, n)
	for i := range out {
		shift := float64(i) * step
		samples := make([]domain.ForecastSample, len(base.Samples))
		for j, p := range base.Samples {
			p.IAT10 += shift
			p.IAT50 += shift
			p.IAT90 += shift
			samples[j] = p
		}
		out[i] = domain.ForecastSeries{AreaID: domain.AreaID(i), Samples: samples}
	}
	return out
}

func duplicateLongTerm(base domain.TimeSeries, n int, step float64) []domain.AreaSeries {
	out := make([]domain.AreaSeries, n)
	for i := range out {
		shift := float64(i) * step
		series := make(domain.TimeSeries, len(base))
		for j, p := range base {
			series[j] = domain.Sample{Time: p.Time, Value: p.Value + shift}
		}
		out[i] = domain.AreaSeries{AreaID: domain.AreaID(i), Series: series}
	}
	return out
}

func readFile[T any](path string, read func(io.Reader) ([]T, error)) ([]T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	defer f.Close()

	out, err := read(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return out, nil
}

func writeFile(path string, write func(io.Writer) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	log.Printf("wrote %s", path)
	return nil
}

func printStats(sims []domain.SimulationSeries, fcs []domain.ForecastSeries, lts []domain.AreaSeries) {
	fmt.Println("\n=== Generated datasets ===")
	for _, s := range sims {
		values := s.Predicted().Values()
		fmt.Printf("simulation area %d: %d rows, mean IAT %.2f, std %.2f\n",
			s.AreaID, len(values), domain.Mean(values), domain.StdDev(values))
	}
	for _, f := range fcs {
		upper := f.Upper().Series.Values()
		fmt.Printf("forecast area %d: %d rows, mean P90 IAT %.2f\n", f.AreaID, len(upper), domain.Mean(upper))
	}
	for _, a := range lts {
		summer := domain.FilterMonths(a.Series, 5, 9)
		fmt.Printf("long-term area %d: %d rows (%d in May-Sep), mean IAT %.2f\n",
			a.AreaID, len(a.Series), len(summer), domain.Mean(a.Series.Values()))
	}
}
