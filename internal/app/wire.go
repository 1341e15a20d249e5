package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/warwatch/polymarket-tracker/internal/config"
	"github.com/warwatch/polymarket-tracker/internal/domain"
	"github.com/warwatch/polymarket-tracker/internal/metrics"
	"github.com/warwatch/polymarket-tracker/internal/platform/polymarket"
	"github.com/warwatch/polymarket-tracker/internal/report"
	"github.com/warwatch/polymarket-tracker/internal/snapshot"
	"github.com/warwatch/polymarket-tracker/internal/source"
)

// Dependencies holds the wired collaborators for one run.
type Dependencies struct {
	Source    domain.MarketSource
	Snapshots domain.SnapshotStore
	Enricher  *source.Enricher
	Engine    *metrics.Engine
	Sink      domain.ReportSink
}

// Wire builds every dependency from the configuration. The returned cleanup
// function closes any connections that were opened. On error, Wire has
// already cleaned up after itself and returns a no-op cleanup.
func Wire(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Dependencies, func(), error) {
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	gamma := polymarket.NewGammaClient(cfg.Polymarket.GammaHost)

	deps := &Dependencies{
		Engine: metrics.New(metrics.Config{
			TopVolume:     cfg.Tracker.TopVolume,
			TopMovers:     cfg.Tracker.TopMovers,
			HeatMinVolume: cfg.Tracker.HeatMinVolume,
			SpikeMinDelta: cfg.Tracker.SpikeMinDelta,
		}),
	}

	switch strings.ToLower(cfg.Tracker.Source) {
	case "keyword":
		deps.Source = source.NewKeywordSource(gamma, cfg.Tracker.Keywords, cfg.Tracker.PageSize, cfg.Tracker.MaxPages, logger)
	default:
		deps.Source = source.NewTagSource(gamma, cfg.Tracker.TagID, cfg.Tracker.RelatedTags, cfg.Tracker.PageSize, logger)
	}

	var history source.HistoryProvider
	if cfg.Tracker.History {
		history = polymarket.NewClobClient(cfg.Polymarket.ClobHost)
	}
	deps.Enricher = source.NewEnricher(history, source.EnrichConfig{
		UseHistory:   cfg.Tracker.History,
		Interval:     cfg.Tracker.HistoryInterval,
		Fidelity:     cfg.Tracker.HistoryFidelity,
		RequestDelay: time.Duration(cfg.Tracker.RequestDelayMs) * time.Millisecond,
	}, logger)

	switch strings.ToLower(cfg.Output.SnapshotBackend) {
	case "redis":
		store, err := snapshot.NewRedisStore(ctx, snapshot.RedisConfig{
			Addr:       cfg.Redis.Addr,
			Password:   cfg.Redis.Password,
			DB:         cfg.Redis.DB,
			PoolSize:   cfg.Redis.PoolSize,
			MaxRetries: cfg.Redis.MaxRetries,
			TLSEnabled: cfg.Redis.TLSEnabled,
			Key:        cfg.Redis.Key,
		}, logger)
		if err != nil {
			cleanup()
			return nil, func() {}, fmt.Errorf("app: wire redis snapshot store: %w", err)
		}
		closers = append(closers, func() { _ = store.Close() })
		deps.Snapshots = store
	default:
		deps.Snapshots = snapshot.NewFileStore(cfg.Output.SnapshotPath, logger)
	}

	var archiver report.Archiver
	if cfg.S3.Enabled {
		s3arch, err := report.NewS3Archiver(ctx, report.S3Config{
			Endpoint:       cfg.S3.Endpoint,
			Region:         cfg.S3.Region,
			Bucket:         cfg.S3.Bucket,
			AccessKey:      cfg.S3.AccessKey,
			SecretKey:      cfg.S3.SecretKey,
			Prefix:         cfg.S3.Prefix,
			ForcePathStyle: cfg.S3.ForcePathStyle,
		})
		if err != nil {
			cleanup()
			return nil, func() {}, fmt.Errorf("app: wire s3 archiver: %w", err)
		}
		archiver = s3arch
	}
	deps.Sink = report.NewEmitter(cfg.Output.ReportPath, os.Stdout, archiver, logger)

	return deps, cleanup, nil
}
