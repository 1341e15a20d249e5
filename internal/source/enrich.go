package source

import (
	"context"
	"log/slog"
	"math"
	"time"

	"github.com/warwatch/polymarket-tracker/internal/domain"
)

// Horizon ages, in seconds, matched against the price-history series.
const (
	ageOneHour    = 3600
	ageSixHours   = 6 * 3600
	ageTwentyFour = 24 * 3600
)

// HistoryProvider fetches the price series for a CLOB token. The CLOB client
// satisfies this; tests substitute a fake.
type HistoryProvider interface {
	PriceHistory(ctx context.Context, tokenID, interval string, fidelity int) ([]domain.PricePoint, error)
}

// EnrichConfig controls the price-history fallback.
type EnrichConfig struct {
	// UseHistory enables the per-market history fetch for markets the
	// listing did not supply change fields for. When false those markets
	// are simply absent from the mover rankings.
	UseHistory bool
	Interval   string
	Fidelity   int
	// RequestDelay is the fixed pause between consecutive history requests,
	// keeping the sequential loop under the upstream rate limit.
	RequestDelay time.Duration
}

// Enricher derives one PriceMove per market. Upstream-provided change fields
// take precedence; the CLOB history walk-back is the fallback for markets
// missing them. Markets with neither are skipped, which excludes them from
// the mover rankings only.
type Enricher struct {
	history HistoryProvider
	cfg     EnrichConfig
	logger  *slog.Logger
}

// NewEnricher creates an Enricher. history may be nil when cfg.UseHistory is
// false.
func NewEnricher(history HistoryProvider, cfg EnrichConfig, logger *slog.Logger) *Enricher {
	return &Enricher{
		history: history,
		cfg:     cfg,
		logger:  logger.With(slog.String("component", "enricher")),
	}
}

// PriceMoves computes price movements for every market it can resolve.
// History fetch failures skip the affected market; cancellation returns the
// moves gathered so far.
func (e *Enricher) PriceMoves(ctx context.Context, markets []domain.Market) []domain.PriceMove {
	moves := make([]domain.PriceMove, 0, len(markets))
	fetched := 0

	for i, m := range markets {
		if ctx.Err() != nil {
			e.logger.WarnContext(ctx, "enrichment cancelled",
				slog.Int("processed", i),
				slog.Int("total", len(markets)),
			)
			return moves
		}

		if m.OneHourChange != nil || m.OneDayChange != nil {
			moves = append(moves, moveFromUpstream(m))
			continue
		}

		if !e.cfg.UseHistory || e.history == nil || len(m.TokenIDs) == 0 {
			continue
		}

		if fetched > 0 {
			select {
			case <-ctx.Done():
				return moves
			case <-time.After(e.cfg.RequestDelay):
			}
		}
		fetched++

		// Yes token is first.
		series, err := e.history.PriceHistory(ctx, m.TokenIDs[0], e.cfg.Interval, e.cfg.Fidelity)
		if err != nil {
			e.logger.DebugContext(ctx, "price history fetch failed, skipping market",
				slog.String("slug", m.Slug),
				slog.String("error", err.Error()),
			)
			continue
		}
		if len(series) < 2 {
			continue
		}

		moves = append(moves, moveFromHistory(m.Slug, series))
	}

	e.logger.InfoContext(ctx, "price enrichment complete",
		slog.Int("markets", len(markets)),
		slog.Int("moves", len(moves)),
		slog.Int("history_fetches", fetched),
	)
	return moves
}

// moveFromUpstream builds a PriceMove from the listing's own change fields.
// The past price is reconstructed by subtracting the delta from the current
// price.
func moveFromUpstream(m domain.Market) domain.PriceMove {
	move := domain.PriceMove{
		Slug:         m.Slug,
		CurrentPrice: m.LastTradePrice,
	}
	if m.OneHourChange != nil {
		old := m.LastTradePrice - *m.OneHourChange
		move.Price1hAgo = &old
		move.Points1h, move.Pct1h = changes(old, m.LastTradePrice)
	}
	if m.OneDayChange != nil {
		old := m.LastTradePrice - *m.OneDayChange
		move.Price24hAgo = &old
		move.Points24h, move.Pct24h = changes(old, m.LastTradePrice)
	}
	return move
}

// moveFromHistory builds a PriceMove by walking the series backward from its
// newest sample, taking the first sample at least as old as each horizon.
func moveFromHistory(slug string, series []domain.PricePoint) domain.PriceMove {
	latest := series[len(series)-1]
	move := domain.PriceMove{
		Slug:         slug,
		CurrentPrice: latest.P,
	}

	for i := len(series) - 1; i >= 0; i-- {
		pt := series[i]
		age := latest.T - pt.T

		if move.Price1hAgo == nil && age >= ageOneHour {
			p := pt.P
			move.Price1hAgo = &p
		}
		if move.Price6hAgo == nil && age >= ageSixHours {
			p := pt.P
			move.Price6hAgo = &p
		}
		if move.Price24hAgo == nil && age >= ageTwentyFour {
			p := pt.P
			move.Price24hAgo = &p
			break
		}
	}

	if move.Price1hAgo != nil {
		move.Points1h, move.Pct1h = changes(*move.Price1hAgo, latest.P)
	}
	if move.Price6hAgo != nil {
		move.Points6h, move.Pct6h = changes(*move.Price6hAgo, latest.P)
	}
	if move.Price24hAgo != nil {
		move.Points24h, move.Pct24h = changes(*move.Price24hAgo, latest.P)
	}
	return move
}

// changes returns the point change on the 0-100 scale (1 decimal) and the
// percent change relative to old (2 decimals, nil when old is zero).
func changes(old, current float64) (points, pct *float64) {
	p := round((current-old)*100, 1)
	points = &p
	if old != 0 {
		c := round((current-old)/old*100, 2)
		pct = &c
	}
	return points, pct
}

func round(v float64, decimals int) float64 {
	scale := math.Pow10(decimals)
	return math.Round(v*scale) / scale
}
