package report

import (
	"context"
	"fmt"
	"time"

	"github.com/couchcryptid/thermal-comfort-service/internal/domain"
)

// ValidationPoint is one hour of modelled vs. measured temperature.
type ValidationPoint struct {
	Time         time.Time `json:"time"`
	PredictedIAT *float64  `json:"predicted_iat"`
	MeasuredIAT  *float64  `json:"measured_iat"`
	OAT          *float64  `json:"oat"`
}

// Validation compares the thermal model against sensor data for one area.
type Validation struct {
	AreaID      domain.AreaID           `json:"area_id"`
	Area        string                  `json:"area"`
	GeneratedAt time.Time               `json:"generated_at"`
	Errors      domain.ValidationErrors `json:"errors"`
	ErrorText   string                  `json:"error_text"`
	Points      []ValidationPoint       `json:"points"`
}

// Validation computes the model validation report of one area.
func (s *Service) Validation(ctx context.Context, area domain.AreaID) (*Validation, error) {
	var out *Validation
	err := s.observe(string(KindValidation), func() error {
		sims, err := s.data.Simulation(ctx)
		if err != nil {
			return datasetErr(err)
		}
		s.metrics.DatasetRows.WithLabelValues("simulation").Set(float64(simulationRows(sims)))

		sim, ok := findSimulation(sims, area)
		if !ok {
			return fmt.Errorf("%w: %s", ErrAreaNotFound, s.codec.Encode(area))
		}

		errs, err := domain.Errors(sim.Predicted().Values(), sim.Measured().Values())
		if err != nil {
			return fmt.Errorf("validation errors for %s: %w", s.codec.Encode(area), err)
		}

		points := make([]ValidationPoint, len(sim.Samples))
		for i, p := range sim.Samples {
			points[i] = ValidationPoint{
				Time:         p.Time,
				PredictedIAT: opt(p.PredictedIAT),
				MeasuredIAT:  opt(p.MeasuredIAT),
				OAT:          opt(p.OAT),
			}
		}
		out = &Validation{
			AreaID:      area,
			Area:        s.codec.Encode(area),
			GeneratedAt: domain.Now(),
			Errors:      errs,
			ErrorText:   domain.ErrorText(errs),
			Points:      points,
		}
		return nil
	})
	return out, err
}

func findSimulation(sims []domain.SimulationSeries, area domain.AreaID) (domain.SimulationSeries, bool) {
	for _, s := range sims {
		if s.AreaID == area {
			return s, true
		}
	}
	return domain.SimulationSeries{}, false
}

func simulationRows(sims []domain.SimulationSeries) int {
	n := 0
	for _, s := range sims {
		n += len(s.Samples)
	}
	return n
}
