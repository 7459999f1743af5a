package report

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"testing"
	"time"

	"github.com/couchcryptid/thermal-comfort-service/internal/config"
	"github.com/couchcryptid/thermal-comfort-service/internal/domain"
	"github.com/couchcryptid/thermal-comfort-service/internal/observability"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var generatedAt = time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)

type fakeDataset struct {
	simulation []domain.SimulationSeries
	shortTerm  []domain.ForecastSeries
	longTerm   []domain.AreaSeries
	err        error
	calls      int
}

func (f *fakeDataset) Simulation(context.Context) ([]domain.SimulationSeries, error) {
	f.calls++
	return f.simulation, f.err
}

func (f *fakeDataset) ShortTerm(context.Context) ([]domain.ForecastSeries, error) {
	f.calls++
	return f.shortTerm, f.err
}

func (f *fakeDataset) LongTerm(context.Context) ([]domain.AreaSeries, error) {
	f.calls++
	return f.longTerm, f.err
}

func testConfig() *config.Config {
	return &config.Config{
		AreaType: "Dwelling",
		Thresholds: domain.Thresholds{
			IAT:                 26,
			OverheatingPct:      3,
			NightOverheatingPct: 1,
			Night:               domain.NightWindow{Start: 22, End: 7},
		},
		RiskBands: domain.RiskBands{Medium: 20, High: 50},
	}
}

func newTestService(t *testing.T, data Dataset) (*Service, *observability.Metrics) {
	t.Helper()
	domain.SetClock(clockwork.NewFakeClockAt(generatedAt))
	t.Cleanup(func() { domain.SetClock(nil) })

	metrics := observability.NewMetricsForTesting()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(data, testConfig(), metrics, logger), metrics
}

func hourlySeries(start time.Time, values ...float64) domain.TimeSeries {
	out := make(domain.TimeSeries, len(values))
	for i, v := range values {
		out[i] = domain.Sample{Time: start.Add(time.Duration(i) * time.Hour), Value: v}
	}
	return out
}

func TestAreas(t *testing.T) {
	start := time.Date(2021, time.June, 1, 0, 0, 0, 0, time.UTC)
	winter := time.Date(2050, time.January, 1, 0, 0, 0, 0, time.UTC)
	data := &fakeDataset{
		simulation: []domain.SimulationSeries{{AreaID: 2}, {AreaID: 0}},
		shortTerm:  []domain.ForecastSeries{{AreaID: 1}},
		longTerm: []domain.AreaSeries{
			{AreaID: 3, Series: hourlySeries(start, 25)},
			{AreaID: 4, Series: hourlySeries(winter, 25)},
		},
	}
	svc, _ := newTestService(t, data)
	ctx := context.Background()

	got, err := svc.Areas(ctx, KindValidation)
	require.NoError(t, err)
	assert.Equal(t, []AreaOption{{AreaID: 0, Label: "Dwelling 0"}, {AreaID: 2, Label: "Dwelling 2"}}, got)

	got, err = svc.Areas(ctx, KindShortTerm)
	require.NoError(t, err)
	assert.Equal(t, []AreaOption{{AreaID: 1, Label: "Dwelling 1"}}, got)

	got, err = svc.Areas(ctx, KindLongTerm)
	require.NoError(t, err)
	assert.Equal(t, []AreaOption{{AreaID: 3, Label: "Dwelling 3"}}, got, "areas without summer data are not listed")

	_, err = svc.Areas(ctx, Kind("history"))
	require.ErrorIs(t, err, ErrUnknownKind)
}

func TestValidation(t *testing.T) {
	start := time.Date(2021, time.June, 1, 0, 0, 0, 0, time.UTC)
	data := &fakeDataset{simulation: []domain.SimulationSeries{{
		AreaID: 1,
		Samples: []domain.SimulationSample{
			{Time: start, PredictedIAT: 22, MeasuredIAT: 21, OAT: 15},
			{Time: start.Add(time.Hour), PredictedIAT: 23, MeasuredIAT: 24, OAT: 14},
			{Time: start.Add(2 * time.Hour), PredictedIAT: 24, MeasuredIAT: math.NaN(), OAT: 14},
		},
	}}}
	svc, metrics := newTestService(t, data)

	got, err := svc.Validation(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, "Dwelling 1", got.Area)
	assert.Equal(t, generatedAt, got.GeneratedAt)
	assert.InDelta(t, 1.0, got.Errors.RMSE, 1e-9)
	assert.InDelta(t, 1.0, got.Errors.MAE, 1e-9)
	assert.Equal(t, "The error between the modelled and the measured data was calculated using RMSE: 1.00 and MAE: 1.00.", got.ErrorText)
	require.Len(t, got.Points, 3)
	assert.Nil(t, got.Points[2].MeasuredIAT, "NaN measurement is reported as missing")
	assert.InDelta(t, 1.0, testutil.ToFloat64(metrics.ReportRequests.WithLabelValues("validation", "success")), 0)
	assert.InDelta(t, 3.0, testutil.ToFloat64(metrics.DatasetRows.WithLabelValues("simulation")), 0)
}

func TestValidation_Errors(t *testing.T) {
	start := time.Date(2021, time.June, 1, 0, 0, 0, 0, time.UTC)
	data := &fakeDataset{simulation: []domain.SimulationSeries{{
		AreaID:  0,
		Samples: []domain.SimulationSample{{Time: start, PredictedIAT: 22, MeasuredIAT: math.NaN()}},
	}}}
	svc, metrics := newTestService(t, data)
	ctx := context.Background()

	_, err := svc.Validation(ctx, 5)
	require.ErrorIs(t, err, ErrAreaNotFound)
	assert.Contains(t, err.Error(), "Dwelling 5")

	_, err = svc.Validation(ctx, 0)
	require.ErrorIs(t, err, domain.ErrShape)
	assert.InDelta(t, 2.0, testutil.ToFloat64(metrics.ReportRequests.WithLabelValues("validation", "error")), 0)

	boom := errors.New("disk gone")
	svc, _ = newTestService(t, &fakeDataset{err: boom})
	_, err = svc.Validation(ctx, 0)
	require.ErrorIs(t, err, boom)
}

func TestShortTermTable(t *testing.T) {
	start := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	var hot, mild []domain.ForecastSample
	for i := 0; i < 48; i++ {
		ts := start.Add(time.Duration(i) * time.Hour)
		hot = append(hot, domain.ForecastSample{Time: ts, IAT50: 25, IAT90: 27})
		mild = append(mild, domain.ForecastSample{Time: ts, IAT50: 27, IAT90: 25})
	}
	data := &fakeDataset{shortTerm: []domain.ForecastSeries{{AreaID: 1, Samples: mild}, {AreaID: 0, Samples: hot}}}
	svc, _ := newTestService(t, data)

	got, err := svc.ShortTermTable(context.Background())
	require.NoError(t, err)
	assert.Equal(t, generatedAt, got.GeneratedAt)
	require.Len(t, got.Rows, 2)

	hotRow := got.Rows[0]
	assert.Equal(t, "Dwelling 0", hotRow.Area)
	require.Len(t, hotRow.Horizons, len(domain.DefaultHorizons))
	assert.Equal(t, "Next 1 day(s)", hotRow.Horizons[0].Label)
	require.NotNil(t, hotRow.Horizons[0].Hours)
	assert.Equal(t, 24, *hotRow.Horizons[0].Hours, "P90 band drives the alert")
	assert.Nil(t, hotRow.Horizons[1].Hours, "7 days is past the forecast")

	mildRow := got.Rows[1]
	require.NotNil(t, mildRow.Horizons[0].Hours)
	assert.Equal(t, 0, *mildRow.Horizons[0].Hours)
}

func TestShortTermArea(t *testing.T) {
	start := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	data := &fakeDataset{shortTerm: []domain.ForecastSeries{{AreaID: 3, Samples: []domain.ForecastSample{
		{Time: start, IAT10: 20, IAT50: 22, IAT90: 27, OAT10: math.NaN(), OAT50: 15, OAT90: 17},
	}}}}
	svc, _ := newTestService(t, data)
	ctx := context.Background()

	got, err := svc.ShortTermArea(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, "Dwelling 3", got.Area)
	assert.InDelta(t, 26.0, got.ThresholdIAT, 0)
	require.Len(t, got.Points, 1)
	assert.Nil(t, got.Points[0].OAT10)
	require.NotNil(t, got.Points[0].IAT90)
	assert.InDelta(t, 27.0, *got.Points[0].IAT90, 0)
	assert.Len(t, got.Horizons, len(domain.DefaultHorizons))

	_, err = svc.ShortTermArea(ctx, 4)
	require.ErrorIs(t, err, ErrAreaNotFound)
}

func TestShortTermTable_Empty(t *testing.T) {
	svc, _ := newTestService(t, &fakeDataset{})
	_, err := svc.ShortTermTable(context.Background())
	require.ErrorIs(t, err, domain.ErrEmptySeries)
}

// summer builds one July day per year: hot days above 26 for the given years.
func summer(area domain.AreaID, years []int, hot map[int]bool) domain.AreaSeries {
	var s domain.TimeSeries
	for _, y := range years {
		v := 20.0
		if hot[y] {
			v = 30
		}
		s = append(s, hourlySeries(time.Date(y, time.July, 1, 0, 0, 0, 0, time.UTC), repeat(v, 24)...)...)
		// Winter samples are excluded from the yearly percentages.
		s = append(s, hourlySeries(time.Date(y, time.December, 1, 0, 0, 0, 0, time.UTC), repeat(40, 24)...)...)
	}
	return domain.AreaSeries{AreaID: area, Series: s}
}

func repeat(v float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func TestLongTermTable(t *testing.T) {
	years := []int{2050, 2051, 2052, 2053, 2054}
	data := &fakeDataset{longTerm: []domain.AreaSeries{
		summer(1, years, map[int]bool{2050: true, 2052: true, 2054: true}),
		summer(0, years, nil),
	}}
	svc, metrics := newTestService(t, data)

	got, err := svc.LongTermTable(context.Background())
	require.NoError(t, err)
	assert.Equal(t, generatedAt, got.GeneratedAt)
	assert.Equal(t, domain.RiskBands{Medium: 20, High: 50}, got.Bands)
	require.Len(t, got.Rows, 2)

	none := got.Rows[0]
	assert.Equal(t, "Dwelling 0", none.Area)
	assert.Equal(t, "None", none.Overheating.Text)
	assert.Equal(t, domain.RiskNone, none.Overheating.Level)

	risky := got.Rows[1]
	assert.Equal(t, 5, risky.Years)
	require.NotNil(t, risky.Overheating.Pct)
	assert.InDelta(t, 60.0, *risky.Overheating.Pct, 1e-9)
	assert.Equal(t, "1 out of 2 summers", risky.Overheating.Text)
	assert.Equal(t, domain.RiskHigh, risky.Overheating.Level)
	assert.InDelta(t, 60.0, *risky.NightOverheating.Pct, 1e-9)

	assert.InDelta(t, float64(2*5*48), testutil.ToFloat64(metrics.DatasetRows.WithLabelValues("longterm")), 0)
}

func TestLongTermArea(t *testing.T) {
	years := []int{2050, 2051}
	data := &fakeDataset{longTerm: []domain.AreaSeries{summer(2, years, map[int]bool{2051: true})}}
	svc, _ := newTestService(t, data)
	ctx := context.Background()

	got, err := svc.LongTermArea(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "Dwelling 2", got.Area)
	assert.InDelta(t, 3.0, got.ThresholdOverheatingPct, 0)
	assert.InDelta(t, 1.0, got.ThresholdNightOverheatingPct, 0)
	require.Len(t, got.Years, 2)

	assert.Equal(t, 2050, got.Years[0].Year)
	require.NotNil(t, got.Years[0].OverheatingPct)
	assert.InDelta(t, 0.0, *got.Years[0].OverheatingPct, 0)
	require.NotNil(t, got.Years[0].Overheating)
	assert.False(t, *got.Years[0].Overheating)

	assert.InDelta(t, 100.0, *got.Years[1].OverheatingPct, 0)
	assert.True(t, *got.Years[1].Overheating)
	assert.Equal(t, "1 out of 2 summers", got.Risk.Overheating.Text)

	_, err = svc.LongTermArea(ctx, 9)
	require.ErrorIs(t, err, ErrAreaNotFound)
}

func TestServiceReloadsEveryCall(t *testing.T) {
	data := &fakeDataset{simulation: []domain.SimulationSeries{{AreaID: 0}}}
	svc, _ := newTestService(t, data)
	ctx := context.Background()

	_, err := svc.Areas(ctx, KindValidation)
	require.NoError(t, err)
	data.simulation = append(data.simulation, domain.SimulationSeries{AreaID: 1})
	got, err := svc.Areas(ctx, KindValidation)
	require.NoError(t, err)

	assert.Len(t, got, 2)
	assert.Equal(t, 2, data.calls)
}

func TestDatasetErrorsAreWrapped(t *testing.T) {
	boom := fmt.Errorf("read dataset: %w", domain.ErrFormat)
	svc, _ := newTestService(t, &fakeDataset{err: boom})
	ctx := context.Background()

	_, err := svc.LongTermTable(ctx)
	require.ErrorIs(t, err, ErrDataset)
	require.ErrorIs(t, err, domain.ErrFormat)

	_, err = svc.ShortTermTable(ctx)
	require.ErrorIs(t, err, ErrDataset)

	_, err = svc.Areas(ctx, KindValidation)
	require.ErrorIs(t, err, ErrDataset)
}
