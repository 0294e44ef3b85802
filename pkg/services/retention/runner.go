// Package retention prunes old report runs from the history database in the background.
package retention

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Pruner deletes history entries created before a cutoff.
type Pruner interface {
	Prune(ctx context.Context, before time.Time) (int64, error)
}

type RunnerConfig struct {
	MaxAge   time.Duration
	Interval time.Duration
}

type RunnerProgress struct {
	Deleted  int64
	Cutoff   time.Time
	PrunedAt time.Time
}

type Runner struct {
	pruner   Pruner
	config   RunnerConfig
	now      func() time.Time
	done     chan struct{}
	progress chan RunnerProgress
}

func NewRunner(pruner Pruner, config RunnerConfig) *Runner {
	if config.Interval <= 0 {
		config.Interval = time.Hour
	}
	return &Runner{
		pruner:   pruner,
		config:   config,
		now:      time.Now,
		done:     make(chan struct{}),
		progress: make(chan RunnerProgress, 16),
	}
}

func (r *Runner) Done() <-chan struct{} {
	return r.done
}

// Progress reports every completed pass. Passes are dropped when nobody reads them.
func (r *Runner) Progress() <-chan RunnerProgress {
	return r.progress
}

// Run prunes once immediately and then on every interval until ctx is done.
func (r *Runner) Run(ctx context.Context) {
	logger := zerolog.Ctx(ctx).With().Str("component", "retention").Logger()
	defer close(r.done)
	defer close(r.progress)

	if r.config.MaxAge <= 0 {
		logger.Info().Msg("report history retention disabled")
		return
	}

	ticker := time.NewTicker(r.config.Interval)
	defer ticker.Stop()

	for {
		r.pass(ctx, &logger)

		select {
		case <-ctx.Done():
			logger.Info().Msg("retention runner stopped")
			return
		case <-ticker.C:
		}
	}
}

func (r *Runner) pass(ctx context.Context, logger *zerolog.Logger) {
	now := r.now()
	cutoff := now.Add(-r.config.MaxAge)
	deleted, err := r.pruner.Prune(ctx, cutoff)
	if err != nil {
		logger.Error().Err(err).Msg("failed to prune report history")
		return
	}
	if deleted > 0 {
		logger.Info().Int64("deleted", deleted).Time("cutoff", cutoff).Msg("pruned report history")
	}

	select {
	case r.progress <- RunnerProgress{Deleted: deleted, Cutoff: cutoff, PrunedAt: now}:
	default:
	}
}
