// Package metrics builds the activity report. The engine is a pure function
// of the current market set, the computed price moves, and the previous
// snapshot: no I/O, no mutation of inputs, deterministic for a fixed now.
package metrics

import (
	"math"
	"sort"
	"time"

	"github.com/warwatch/polymarket-tracker/internal/domain"
)

// Config holds the ranking thresholds and list sizes.
type Config struct {
	// TopVolume is the list size for the volume and heat rankings.
	TopVolume int
	// TopMovers is the list size for the mover and spike rankings.
	TopMovers int
	// HeatMinVolume is the strict lower bound on total volume for heat
	// scoring; a market at exactly this volume is excluded.
	HeatMinVolume float64
	// SpikeMinDelta is the strict lower bound on the inter-run volume delta
	// for the spikes ranking.
	SpikeMinDelta float64
}

// Engine computes ranked activity metrics.
type Engine struct {
	cfg Config
}

// New creates an Engine with the given thresholds.
func New(cfg Config) *Engine {
	return &Engine{cfg: cfg}
}

// Build assembles the full report. Moves may cover only a subset of markets;
// markets without a move are excluded from the mover rankings only. Prev may
// be the empty snapshot, in which case the spikes ranking is empty and the
// report references the "none" sentinel.
func (e *Engine) Build(now time.Time, runID, tag string, markets []domain.Market, moves []domain.PriceMove, prev domain.Snapshot) domain.Report {
	report := domain.Report{
		RunID:            runID,
		Tag:              tag,
		GeneratedAt:      now.UTC().Format(time.RFC3339),
		PreviousSnapshot: prev.Timestamp,
		TotalMarkets:     len(markets),
	}
	if report.PreviousSnapshot == "" {
		report.PreviousSnapshot = domain.NoSnapshot
	}

	bySlug := make(map[string]domain.Market, len(markets))
	for _, m := range markets {
		if m.Slug != "" {
			bySlug[m.Slug] = m
		}
	}

	report.TopVolume24h = e.topVolume(markets, func(m domain.Market) float64 { return m.Volume24hr })
	report.TopVolumeTotal = e.topVolume(markets, func(m domain.Market) float64 { return m.VolumeNum })
	report.HottestMarkets = e.hottest(markets)
	report.TopMovers1h = e.topMovers(moves, bySlug, func(mv domain.PriceMove) (*float64, *float64, *float64) {
		return mv.Points1h, mv.Pct1h, mv.Price1hAgo
	})
	report.TopMovers24h = e.topMovers(moves, bySlug, func(mv domain.PriceMove) (*float64, *float64, *float64) {
		return mv.Points24h, mv.Pct24h, mv.Price24hAgo
	})
	report.VolumeSpikes = e.volumeSpikes(markets, prev)

	return report
}

// topVolume ranks markets by the given volume field, descending. Markets
// where the field is zero or negative are excluded from this ranking only.
func (e *Engine) topVolume(markets []domain.Market, volume func(domain.Market) float64) []domain.VolumeEntry {
	kept := make([]domain.Market, 0, len(markets))
	for _, m := range markets {
		if volume(m) > 0 {
			kept = append(kept, m)
		}
	}
	sort.SliceStable(kept, func(i, j int) bool {
		return volume(kept[i]) > volume(kept[j])
	})
	kept = top(kept, e.cfg.TopVolume)

	entries := make([]domain.VolumeEntry, 0, len(kept))
	for i, m := range kept {
		entries = append(entries, domain.VolumeEntry{
			MarketSummary: summarize(m),
			Rank:          i + 1,
		})
	}
	return entries
}

// hottest ranks markets by heat score, the trailing-24h share of total
// volume. Only markets whose total volume strictly exceeds the threshold
// participate.
func (e *Engine) hottest(markets []domain.Market) []domain.HeatEntry {
	type scored struct {
		market domain.Market
		heat   float64
	}
	kept := make([]scored, 0, len(markets))
	for _, m := range markets {
		if m.VolumeNum <= e.cfg.HeatMinVolume {
			continue
		}
		kept = append(kept, scored{
			market: m,
			heat:   round2(m.Volume24hr / m.VolumeNum * 100),
		})
	}
	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].heat > kept[j].heat
	})
	kept = top(kept, e.cfg.TopVolume)

	entries := make([]domain.HeatEntry, 0, len(kept))
	for i, s := range kept {
		entries = append(entries, domain.HeatEntry{
			MarketSummary: summarize(s.market),
			HeatScore:     s.heat,
			Rank:          i + 1,
		})
	}
	return entries
}

// topMovers ranks price moves by the magnitude of their point change over
// one horizon. Moves without a resolved change for that horizon are
// excluded.
func (e *Engine) topMovers(moves []domain.PriceMove, bySlug map[string]domain.Market, horizon func(domain.PriceMove) (points, pct, priceAgo *float64)) []domain.MoverEntry {
	kept := make([]domain.PriceMove, 0, len(moves))
	for _, mv := range moves {
		if points, _, _ := horizon(mv); points != nil {
			kept = append(kept, mv)
		}
	}
	sort.SliceStable(kept, func(i, j int) bool {
		pi, _, _ := horizon(kept[i])
		pj, _, _ := horizon(kept[j])
		return math.Abs(*pi) > math.Abs(*pj)
	})
	kept = top(kept, e.cfg.TopMovers)

	entries := make([]domain.MoverEntry, 0, len(kept))
	for i, mv := range kept {
		points, pct, priceAgo := horizon(mv)
		entry := domain.MoverEntry{
			MarketSummary: summarize(bySlug[mv.Slug]),
			CurrentPrice:  round1(mv.CurrentPrice * 100),
			PointsChange:  *points,
			PctChange:     pct,
			Rank:          i + 1,
		}
		if priceAgo != nil {
			p := round1(*priceAgo * 100)
			entry.PreviousPrice = &p
		}
		entries = append(entries, entry)
	}
	return entries
}

// volumeSpikes ranks markets by volume gained since the previous snapshot.
// Only markets present in both runs participate, and only deltas strictly
// above the threshold count.
func (e *Engine) volumeSpikes(markets []domain.Market, prev domain.Snapshot) []domain.SpikeEntry {
	type spike struct {
		market  domain.Market
		delta   float64
		pct     float64
		prevVol float64
	}
	kept := make([]spike, 0, len(markets))
	for _, m := range markets {
		prevEntry, ok := prev.Markets[m.Slug]
		if m.Slug == "" || !ok {
			continue
		}
		delta := m.VolumeNum - prevEntry.VolumeNum
		if delta <= e.cfg.SpikeMinDelta {
			continue
		}
		var pct float64
		switch {
		case prevEntry.VolumeNum > 0:
			pct = round2(delta / prevEntry.VolumeNum * 100)
		case delta != 0:
			pct = 100
		}
		kept = append(kept, spike{
			market:  m,
			delta:   round2(delta),
			pct:     pct,
			prevVol: prevEntry.VolumeNum,
		})
	}
	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].delta > kept[j].delta
	})
	kept = top(kept, e.cfg.TopMovers)

	entries := make([]domain.SpikeEntry, 0, len(kept))
	for i, s := range kept {
		entries = append(entries, domain.SpikeEntry{
			MarketSummary:  summarize(s.market),
			VolumeDelta:    s.delta,
			VolumeSpikePct: s.pct,
			CurrentVolume:  s.market.VolumeNum,
			PreviousVolume: s.prevVol,
			Rank:           i + 1,
		})
	}
	return entries
}

// summarize extracts the simplified market projection shared by all ranked
// entries.
func summarize(m domain.Market) domain.MarketSummary {
	return domain.MarketSummary{
		Slug:           m.Slug,
		Question:       m.Question,
		Volume24hr:     round2(m.Volume24hr),
		VolumeNum:      round2(m.VolumeNum),
		LastTradePrice: m.LastTradePrice,
		EndDate:        m.EndDate,
		EventSlug:      m.EventSlug,
		Category:       Classify(m.Question),
	}
}

func top[T any](s []T, n int) []T {
	if len(s) > n {
		return s[:n]
	}
	return s
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }

func round2(v float64) float64 { return math.Round(v*100) / 100 }
