// Package source implements the market source strategies that feed the
// metrics engine: tag-filtered and keyword-filtered pagination over the
// Gamma API, plus the price-move enrichment step.
package source

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/warwatch/polymarket-tracker/internal/domain"
	"github.com/warwatch/polymarket-tracker/internal/platform/polymarket"
)

// MarketLister retrieves one page of markets from the upstream API. The
// Gamma client satisfies this; tests substitute a fake.
type MarketLister interface {
	ListMarkets(ctx context.Context, q polymarket.MarketQuery) ([]domain.Market, error)
}

// TagSource fetches all open markets carrying a topic tag. A failed page
// terminates pagination and is reported through FetchResult.Err together
// with whatever was gathered before it.
type TagSource struct {
	lister      MarketLister
	tagID       string
	relatedTags bool
	pageSize    int
	logger      *slog.Logger
}

// NewTagSource creates a TagSource for the given tag id.
func NewTagSource(lister MarketLister, tagID string, relatedTags bool, pageSize int, logger *slog.Logger) *TagSource {
	return &TagSource{
		lister:      lister,
		tagID:       tagID,
		relatedTags: relatedTags,
		pageSize:    pageSize,
		logger:      logger.With(slog.String("component", "tag_source")),
	}
}

// Fetch pages through the tag listing until an empty or short page.
func (s *TagSource) Fetch(ctx context.Context) (domain.FetchResult, error) {
	var result domain.FetchResult
	seen := make(map[string]struct{})
	offset := 0

	for {
		if err := ctx.Err(); err != nil {
			return result, fmt.Errorf("source: fetch cancelled: %w", err)
		}

		page, err := s.lister.ListMarkets(ctx, polymarket.MarketQuery{
			TagID:       s.tagID,
			RelatedTags: s.relatedTags,
			Limit:       s.pageSize,
			Offset:      offset,
		})
		if err != nil {
			s.logger.WarnContext(ctx, "page fetch failed, continuing with partial data",
				slog.Int("offset", offset),
				slog.String("error", err.Error()),
			)
			result.Err = err
			return result, nil
		}

		result.Markets = appendDeduped(result.Markets, page, seen)
		s.logger.InfoContext(ctx, "fetched market page",
			slog.Int("page_size", len(page)),
			slog.Int("total", len(result.Markets)),
			slog.Int("offset", offset),
		)

		if len(page) < s.pageSize {
			return result, nil
		}
		offset += s.pageSize
	}
}

// appendDeduped appends markets whose slug has not been seen yet. Markets
// without a slug are kept as-is; they cannot collide.
func appendDeduped(dst, page []domain.Market, seen map[string]struct{}) []domain.Market {
	for _, m := range page {
		if m.Slug != "" {
			if _, dup := seen[m.Slug]; dup {
				continue
			}
			seen[m.Slug] = struct{}{}
		}
		dst = append(dst, m)
	}
	return dst
}
