// Package app owns the tracker's run lifecycle: it wires the collaborators
// from configuration and executes the single fetch → enrich → rank → emit →
// snapshot pass.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/warwatch/polymarket-tracker/internal/config"
	"github.com/warwatch/polymarket-tracker/internal/domain"
)

// App is the root application object for one scheduled invocation.
type App struct {
	cfg     *config.Config
	logger  *slog.Logger
	closers []func()
}

// New creates an App from the given configuration and logger.
func New(cfg *config.Config, logger *slog.Logger) *App {
	return &App{
		cfg:    cfg,
		logger: logger.With(slog.String("component", "app")),
	}
}

// Run wires the dependencies and executes one tracker pass. It returns nil
// both on a successful report and on the empty-market short circuit; the
// previous report and snapshot are left untouched in the latter case.
func (a *App) Run(ctx context.Context) error {
	runID := uuid.NewString()
	logger := a.logger.With(slog.String("run_id", runID))

	deps, cleanup, err := Wire(ctx, a.cfg, a.logger)
	if err != nil {
		return fmt.Errorf("app: wire dependencies: %w", err)
	}
	a.closers = append(a.closers, cleanup)

	logger.InfoContext(ctx, "run starting",
		slog.String("source", a.cfg.Tracker.Source),
		slog.String("tag", a.cfg.Tracker.TagID),
	)

	result, err := deps.Source.Fetch(ctx)
	if err != nil {
		return fmt.Errorf("app: fetch markets: %w", err)
	}
	if result.Partial() {
		logger.WarnContext(ctx, "market fetch truncated, proceeding with partial data",
			slog.Int("markets", len(result.Markets)),
			slog.String("error", result.Err.Error()),
		)
	}
	if len(result.Markets) == 0 {
		if result.Err != nil {
			return fmt.Errorf("app: %w: %w", domain.ErrNoMarkets, result.Err)
		}
		logger.WarnContext(ctx, "no open markets found, skipping report")
		return nil
	}
	logger.InfoContext(ctx, "markets fetched", slog.Int("count", len(result.Markets)))

	prev := deps.Snapshots.Load(ctx)
	if prev.Timestamp == domain.NoSnapshot {
		logger.InfoContext(ctx, "no previous snapshot, spike metrics will be empty")
	} else {
		logger.InfoContext(ctx, "previous snapshot loaded",
			slog.String("timestamp", prev.Timestamp),
			slog.Int("markets", len(prev.Markets)),
		)
	}

	moves := deps.Enricher.PriceMoves(ctx, result.Markets)

	var tag string
	if strings.ToLower(a.cfg.Tracker.Source) != "keyword" {
		tag = a.cfg.Tracker.TagID
	}

	now := time.Now().UTC()
	rep := deps.Engine.Build(now, runID, tag, result.Markets, moves, prev)

	if err := deps.Sink.Emit(ctx, rep); err != nil {
		return fmt.Errorf("app: emit report: %w", err)
	}

	if _, err := deps.Snapshots.Save(ctx, result.Markets, now); err != nil {
		return fmt.Errorf("app: save snapshot: %w", err)
	}

	logger.InfoContext(ctx, "run complete",
		slog.Int("total_markets", rep.TotalMarkets),
		slog.Int("movers_1h", len(rep.TopMovers1h)),
		slog.Int("movers_24h", len(rep.TopMovers24h)),
		slog.Int("spikes", len(rep.VolumeSpikes)),
	)
	return nil
}

// Close tears down all resources in reverse registration order. It is safe
// to call multiple times; subsequent calls are no-ops.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}
