// Command validate performs integrity checks on the three datasets the
// service reads: parse errors, hourly cadence, missing values, area coverage
// across datasets, and summer coverage of the long-term scenarios. It exits
// non-zero when any phase fails.
//
// Usage:
//
//	go run ./cmd/validate \
//	  -simulation data/simulation.csv \
//	  -shortterm data/shortterm_forecast.csv \
//	  -longterm data/longterm_simulation.csv
package main

import (
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"slices"
	"time"

	"github.com/couchcryptid/thermal-comfort-service/internal/adapter/csvfile"
	"github.com/couchcryptid/thermal-comfort-service/internal/domain"
	"github.com/couchcryptid/thermal-comfort-service/internal/report"
)

// maxListed bounds how many individual problems a phase prints per area.
const maxListed = 5

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

// datasets holds the parsed inputs.
type datasets struct {
	simulation []domain.SimulationSeries
	forecast   []domain.ForecastSeries
	longTerm   []domain.AreaSeries
}

func main() {
	simPath := flag.String("simulation", "data/simulation.csv", "validation dataset CSV")
	stPath := flag.String("shortterm", "data/shortterm_forecast.csv", "short-term forecast CSV")
	ltPath := flag.String("longterm", "data/longterm_simulation.csv", "long-term simulation CSV")
	flag.Parse()

	if code := run(*simPath, *stPath, *ltPath); code != 0 {
		os.Exit(code)
	}
}

func run(simPath, stPath, ltPath string) int {
	fmt.Println("=== Thermal Comfort Dataset Validation ===")
	fmt.Println()

	var (
		ds  datasets
		err error
	)
	if ds.simulation, err = load(simPath, csvfile.ReadSimulation); err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load simulation: %v\n", err)
		return 1
	}
	if ds.forecast, err = load(stPath, csvfile.ReadForecast); err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load short-term forecast: %v\n", err)
		return 1
	}
	if ds.longTerm, err = load(ltPath, csvfile.ReadLongTerm); err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load long-term simulation: %v\n", err)
		return 1
	}

	phases := []*phase{
		validateCadence(ds),
		validateMissingValues(ds),
		validateAreaCoverage(ds),
		validateSummerCoverage(ds.longTerm),
	}

	fmt.Println()
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-42s %s\n", p.name, status)
	}

	fmt.Println()
	fmt.Printf("Areas: %d simulation, %d short-term, %d long-term\n",
		len(ds.simulation), len(ds.forecast), len(ds.longTerm))
	printModelErrors(ds.simulation)

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Printf("  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Println("\nAll validations passed.")
		return 0
	}
	fmt.Println("\nValidation FAILED.")
	return 1
}

func load[T any](path string, read func(io.Reader) ([]T, error)) ([]T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return read(f)
}

// ── Phases ──

// validateCadence checks every series advances in exact one-hour steps.
func validateCadence(ds datasets) *phase {
	p := &phase{name: "Hourly cadence"}
	for _, s := range ds.simulation {
		checkHourly(p, "simulation", s.AreaID, s.Predicted())
	}
	for _, f := range ds.forecast {
		checkHourly(p, "short-term", f.AreaID, f.Upper().Series)
	}
	for _, a := range ds.longTerm {
		checkHourly(p, "long-term", a.AreaID, a.Series)
	}
	return p
}

func checkHourly(p *phase, dataset string, area domain.AreaID, s domain.TimeSeries) {
	listed := 0
	for i := 1; i < len(s); i++ {
		if gap := s[i].Time.Sub(s[i-1].Time); gap != time.Hour {
			if listed < maxListed {
				p.errorf("%s area %d: %s after %s (expected 1h)", dataset, area, gap, s[i-1].Time.Format(time.RFC3339))
			}
			listed++
		}
	}
	if listed > maxListed {
		p.errorf("%s area %d: %d more gaps not listed", dataset, area, listed-maxListed)
	}
}

// validateMissingValues fails an area whose column is entirely missing; partial
// gaps are reported as counts only.
func validateMissingValues(ds datasets) *phase {
	p := &phase{name: "Missing values"}
	for _, s := range ds.simulation {
		cols := map[string][]float64{
			csvfile.ColPredictedIAT: s.Predicted().Values(),
			csvfile.ColMeasuredIAT:  s.Measured().Values(),
		}
		checkColumns(p, "simulation", s.AreaID, cols)
	}
	for _, f := range ds.forecast {
		checkColumns(p, "short-term", f.AreaID, map[string][]float64{csvfile.ColIAT90: f.Upper().Series.Values()})
	}
	for _, a := range ds.longTerm {
		checkColumns(p, "long-term", a.AreaID, map[string][]float64{csvfile.ColPredictedIAT: a.Series.Values()})
	}
	return p
}

func checkColumns(p *phase, dataset string, area domain.AreaID, cols map[string][]float64) {
	names := make([]string, 0, len(cols))
	for name := range cols {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range names {
		values := cols[name]
		missing := countNaN(values)
		if missing > 0 {
			fmt.Printf("  %s area %d: %d/%d missing in %s\n", dataset, area, missing, len(values), name)
		}
		if len(values) == 0 || missing == len(values) {
			p.errorf("%s area %d: no values in %s", dataset, area, name)
		}
	}
}

func countNaN(values []float64) int {
	n := 0
	for _, v := range values {
		if math.IsNaN(v) {
			n++
		}
	}
	return n
}

// validateAreaCoverage checks the three datasets describe the same areas.
func validateAreaCoverage(ds datasets) *phase {
	p := &phase{name: "Area coverage across datasets"}
	sim := domain.SimulationAreaIDs(ds.simulation)
	fc := domain.ForecastAreaIDs(ds.forecast)
	lt := domain.AreaIDs(ds.longTerm)

	if len(sim) == 0 {
		p.errorf("simulation dataset has no areas")
	}
	if !slices.Equal(sim, fc) {
		p.errorf("short-term areas %v differ from simulation areas %v", fc, sim)
	}
	if !slices.Equal(sim, lt) {
		p.errorf("long-term areas %v differ from simulation areas %v", lt, sim)
	}
	return p
}

// validateSummerCoverage checks every long-term area has May-September data.
func validateSummerCoverage(lt []domain.AreaSeries) *phase {
	p := &phase{name: "Long-term summer coverage"}
	for _, a := range lt {
		summer := domain.FilterMonths(a.Series, report.SummerStart, report.SummerEnd)
		if len(summer) == 0 {
			p.errorf("long-term area %d: no samples between %s and %s", a.AreaID, report.SummerStart, report.SummerEnd)
			continue
		}
		years := map[int]bool{}
		for _, s := range summer {
			years[s.Time.Year()] = true
		}
		fmt.Printf("  long-term area %d: %d summer hours over %d years\n", a.AreaID, len(summer), len(years))
	}
	return p
}

func printModelErrors(sims []domain.SimulationSeries) {
	for _, s := range sims {
		errs, err := domain.Errors(s.Predicted().Values(), s.Measured().Values())
		if err != nil {
			fmt.Printf("Area %d model error: %v\n", s.AreaID, err)
			continue
		}
		fmt.Printf("Area %d model error: RMSE %.2f, MAE %.2f\n", s.AreaID, errs.RMSE, errs.MAE)
	}
}
