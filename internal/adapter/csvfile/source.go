package csvfile

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/couchcryptid/thermal-comfort-service/internal/config"
	"github.com/couchcryptid/thermal-comfort-service/internal/domain"
	"github.com/hashicorp/go-multierror"
)

// Source loads the datasets from the configured file paths on every call.
type Source struct {
	simulationPath string
	shortTermPath  string
	longTermPath   string
	logger         *slog.Logger
}

// NewSource creates a Source for the dataset paths in cfg.
func NewSource(cfg *config.Config, logger *slog.Logger) *Source {
	return &Source{
		simulationPath: cfg.SimulationDataPath,
		shortTermPath:  cfg.ShortTermDataPath,
		longTermPath:   cfg.LongTermDataPath,
		logger:         logger,
	}
}

// Simulation reads the validation dataset.
func (s *Source) Simulation(ctx context.Context) ([]domain.SimulationSeries, error) {
	return load(ctx, s, s.simulationPath, ReadSimulation)
}

// ShortTerm reads the short-term forecast dataset.
func (s *Source) ShortTerm(ctx context.Context) ([]domain.ForecastSeries, error) {
	return load(ctx, s, s.shortTermPath, ReadForecast)
}

// LongTerm reads the long-term simulation dataset.
func (s *Source) LongTerm(ctx context.Context) ([]domain.AreaSeries, error) {
	return load(ctx, s, s.longTermPath, ReadLongTerm)
}

// CheckReadiness reports whether every dataset file is present and readable.
func (s *Source) CheckReadiness(ctx context.Context) error {
	var result *multierror.Error
	for _, path := range []string{s.simulationPath, s.shortTermPath, s.longTermPath} {
		if err := ctx.Err(); err != nil {
			return err
		}
		info, err := os.Stat(path)
		if err != nil {
			result = multierror.Append(result, fmt.Errorf("dataset %s: %w", path, err))
			continue
		}
		if info.IsDir() {
			result = multierror.Append(result, fmt.Errorf("dataset %s: is a directory", path))
		}
	}
	return result.ErrorOrNil()
}

func load[T any](ctx context.Context, s *Source, path string, read func(io.Reader) ([]T, error)) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	out, err := read(f)
	if err != nil {
		return nil, fmt.Errorf("read dataset %s: %w", path, err)
	}
	s.logger.Debug("dataset loaded", "path", path, "areas", len(out))
	return out, nil
}
