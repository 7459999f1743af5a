// Command export writes the yearly overheating aggregates of the long-term
// dataset (May-September of each scenario year) to a Parquet file. It reads
// the same environment configuration as the dashboard.
//
// Usage:
//
//	go run ./cmd/export -out data/export/longterm_yearly.parquet -compression SNAPPY
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/couchcryptid/thermal-comfort-service/internal/adapter/csvfile"
	"github.com/couchcryptid/thermal-comfort-service/internal/adapter/parquet"
	"github.com/couchcryptid/thermal-comfort-service/internal/config"
	"github.com/couchcryptid/thermal-comfort-service/internal/domain"
	"github.com/couchcryptid/thermal-comfort-service/internal/observability"
	"github.com/couchcryptid/thermal-comfort-service/internal/report"
)

func main() {
	out := flag.String("out", "data/export/longterm_yearly.parquet", "output Parquet file")
	compression := flag.String("compression", "SNAPPY", "compression codec: SNAPPY, GZIP or NONE")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	if err := run(context.Background(), cfg, metrics, logger, *out, *compression); err != nil {
		logger.Error("export failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, metrics *observability.Metrics, logger *slog.Logger, out, compression string) (err error) {
	if _, err := parquet.CompressionCodec(compression); err != nil {
		return err
	}

	source := csvfile.NewSource(cfg, logger)
	reports := report.NewService(source, cfg, metrics, logger)

	aggs, err := reports.YearlyAggregates(ctx)
	if err != nil {
		return err
	}
	pcts, err := domain.YearlyPercentages(aggs)
	if err != nil {
		return err
	}
	records, err := parquet.Records(aggs, pcts, reports.Codec(), domain.Now())
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return err
	}
	f, err := os.Create(out)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()

	if err := parquet.Write(f, records, compression); err != nil {
		return fmt.Errorf("export %s: %w", out, err)
	}
	logger.Info("export written", "path", out, "rows", len(records), "compression", compression)
	return nil
}
