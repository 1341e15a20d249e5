package source

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/warwatch/polymarket-tracker/internal/domain"
	"github.com/warwatch/polymarket-tracker/internal/platform/polymarket"
)

// KeywordSource pages through the volume-ordered markets listing and keeps
// markets whose question matches any of the configured keywords. Unlike the
// tag source it scans an unbounded listing, so pagination is capped at
// maxPages.
type KeywordSource struct {
	lister   MarketLister
	keywords []string
	pageSize int
	maxPages int
	logger   *slog.Logger
}

// NewKeywordSource creates a KeywordSource. Keywords are matched
// case-insensitively as substrings of the market question.
func NewKeywordSource(lister MarketLister, keywords []string, pageSize, maxPages int, logger *slog.Logger) *KeywordSource {
	lowered := make([]string, 0, len(keywords))
	for _, k := range keywords {
		k = strings.ToLower(strings.TrimSpace(k))
		if k != "" {
			lowered = append(lowered, k)
		}
	}
	return &KeywordSource{
		lister:   lister,
		keywords: lowered,
		pageSize: pageSize,
		maxPages: maxPages,
		logger:   logger.With(slog.String("component", "keyword_source")),
	}
}

// Fetch scans up to maxPages of the volume-ordered listing, filtering by
// keyword. Page failures truncate the scan with partial data.
func (s *KeywordSource) Fetch(ctx context.Context) (domain.FetchResult, error) {
	var result domain.FetchResult
	seen := make(map[string]struct{})

	for page := 0; page < s.maxPages; page++ {
		if err := ctx.Err(); err != nil {
			return result, fmt.Errorf("source: fetch cancelled: %w", err)
		}

		offset := page * s.pageSize
		batch, err := s.lister.ListMarkets(ctx, polymarket.MarketQuery{
			Order:  "volumeNum",
			Limit:  s.pageSize,
			Offset: offset,
		})
		if err != nil {
			s.logger.WarnContext(ctx, "page fetch failed, continuing with partial data",
				slog.Int("offset", offset),
				slog.String("error", err.Error()),
			)
			result.Err = err
			return result, nil
		}

		matched := 0
		for _, m := range batch {
			if !s.matches(m.Question) {
				continue
			}
			before := len(result.Markets)
			result.Markets = appendDeduped(result.Markets, []domain.Market{m}, seen)
			matched += len(result.Markets) - before
		}

		s.logger.InfoContext(ctx, "scanned market page",
			slog.Int("page_size", len(batch)),
			slog.Int("matched", matched),
			slog.Int("total", len(result.Markets)),
			slog.Int("offset", offset),
		)

		if len(batch) < s.pageSize {
			return result, nil
		}
	}

	return result, nil
}

func (s *KeywordSource) matches(question string) bool {
	q := strings.ToLower(question)
	for _, k := range s.keywords {
		if strings.Contains(q, k) {
			return true
		}
	}
	return false
}
