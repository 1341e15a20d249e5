package source

import (
	"context"
	"testing"

	"github.com/warwatch/polymarket-tracker/internal/domain"
)

func q(slug, question string) domain.Market {
	return domain.Market{Slug: slug, Question: question}
}

func TestKeywordSource_FiltersByQuestion(t *testing.T) {
	lister := &fakeLister{
		pages: map[int][]domain.Market{
			0: {
				q("kyiv", "Will Kyiv hold through winter?"),
				q("rates", "Will the Fed cut rates in June?"),
				q("ceasefire", "CEASEFIRE between Russia and Ukraine in 2026?"),
			},
		},
	}
	src := NewKeywordSource(lister, []string{"ukraine", "kyiv", "ceasefire"}, 10, 3, discardLogger())

	result, err := src.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	want := []string{"kyiv", "ceasefire"}
	if len(result.Markets) != len(want) {
		t.Fatalf("expected %d markets, got %d: %+v", len(want), len(result.Markets), result.Markets)
	}
	for i, w := range want {
		if result.Markets[i].Slug != w {
			t.Errorf("market %d = %q, want %q", i, result.Markets[i].Slug, w)
		}
	}
}

func TestKeywordSource_StopsAtMaxPages(t *testing.T) {
	full := make([]domain.Market, 2)
	for i := range full {
		full[i] = q("ukraine-"+string(rune('a'+i)), "Ukraine market")
	}
	lister := &fakeLister{
		pages: map[int][]domain.Market{
			0: full, 2: full, 4: full, 6: full,
		},
	}
	src := NewKeywordSource(lister, []string{"ukraine"}, 2, 2, discardLogger())

	if _, err := src.Fetch(context.Background()); err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(lister.requests) != 2 {
		t.Errorf("expected pagination capped at 2 pages, got %d requests", len(lister.requests))
	}
	for _, req := range lister.requests {
		if req.Order != "volumeNum" {
			t.Errorf("keyword source must scan the volume-ordered listing, got order %q", req.Order)
		}
	}
}
