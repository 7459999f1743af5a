package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/thermal-comfort-service/internal/domain"
	"github.com/couchcryptid/thermal-comfort-service/internal/observability"
	"github.com/couchcryptid/thermal-comfort-service/internal/report"
)

// AlertSource computes the tables alerts are derived from.
type AlertSource interface {
	ShortTermTable(ctx context.Context) (*report.ShortTermTable, error)
	LongTermTable(ctx context.Context) (*report.LongTermTable, error)
}

// AlertLoader writes a batch of alerts to the destination.
type AlertLoader interface {
	LoadBatch(ctx context.Context, alerts []domain.Alert) error
}

// Pipeline periodically recomputes the alert tables and publishes one alert
// per area and kind.
type Pipeline struct {
	source   AlertSource
	builder  *AlertBuilder
	loader   AlertLoader
	logger   *slog.Logger
	metrics  *observability.Metrics
	ready    atomic.Bool
	interval time.Duration
}

// New creates a Pipeline that publishes every interval.
func New(source AlertSource, builder *AlertBuilder, loader AlertLoader, logger *slog.Logger, metrics *observability.Metrics, interval time.Duration) *Pipeline {
	return &Pipeline{
		source:   source,
		builder:  builder,
		loader:   loader,
		logger:   logger,
		metrics:  metrics,
		interval: interval,
	}
}

// CheckReadiness returns nil once the pipeline has published at least one
// batch of alerts.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if !p.ready.Load() {
		return errors.New("alert publisher has not published yet")
	}
	return nil
}

// Ready reports whether a publish cycle has succeeded.
func (p *Pipeline) Ready() bool {
	return p.ready.Load()
}

// Run executes the publish loop until the context is cancelled.
func (p *Pipeline) Run(ctx context.Context) error {
	p.logger.Info("alert publisher started", "interval", p.interval)
	p.metrics.PublisherRunning.Set(1)
	defer p.metrics.PublisherRunning.Set(0)

	// Exponential backoff: start at 200ms, double each retry, cap at 5s.
	backoff := 200 * time.Millisecond
	maxBackoff := 5 * time.Second

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("alert publisher stopping", "reason", ctx.Err())
			return nil
		default:
		}

		if err := p.PublishOnce(ctx); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			p.logger.Error("publish cycle failed", "error", err)
			p.metrics.PublishErrors.Inc()
			if !p.backoffOrStop(ctx, &backoff, maxBackoff) {
				return nil
			}
			continue
		}

		backoff = 200 * time.Millisecond
		if !sleepWithContext(ctx, p.interval) {
			return nil
		}
	}
}

// PublishOnce computes both tables and publishes their alerts as one batch.
func (p *Pipeline) PublishOnce(ctx context.Context) error {
	start := time.Now()

	short, err := p.source.ShortTermTable(ctx)
	if err != nil {
		return fmt.Errorf("short-term table: %w", err)
	}
	long, err := p.source.LongTermTable(ctx)
	if err != nil {
		return fmt.Errorf("long-term table: %w", err)
	}

	alerts := p.builder.Build(short, long)
	if err := p.loader.LoadBatch(ctx, alerts); err != nil {
		return fmt.Errorf("load alerts: %w", err)
	}

	p.metrics.AlertsPublished.Add(float64(len(alerts)))
	p.metrics.PublishCycleDuration.Observe(time.Since(start).Seconds())
	p.ready.Store(true)
	p.logger.Info("alerts published", "count", len(alerts), "duration", time.Since(start))
	return nil
}

// backoffOrStop sleeps with the current backoff and advances it. Returns
// false if the pipeline should stop.
func (p *Pipeline) backoffOrStop(ctx context.Context, backoff *time.Duration, maxBackoff time.Duration) bool {
	if ctx.Err() != nil {
		return false
	}
	if !sleepWithContext(ctx, *backoff) {
		return false
	}
	*backoff = nextBackoff(*backoff, maxBackoff)
	return true
}

func nextBackoff(current, maxBackoff time.Duration) time.Duration {
	next := current * 2
	if next > maxBackoff {
		return maxBackoff
	}
	return next
}

func sleepWithContext(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
