package polymarket

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/warwatch/polymarket-tracker/internal/domain"
)

func TestGammaClient_ListMarkets(t *testing.T) {
	var gotQuery map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{}
		for k := range r.URL.Query() {
			gotQuery[k] = r.URL.Query().Get(k)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]map[string]any{
			{"slug": "a", "question": "a?", "volumeNum": 100},
			{"slug": "b", "question": "b?", "volumeNum": 50},
		})
	}))
	defer server.Close()

	client := NewGammaClient(server.URL)
	markets, err := client.ListMarkets(context.Background(), MarketQuery{
		TagID:       "ukraine-map",
		RelatedTags: true,
		Limit:       100,
		Offset:      200,
	})
	if err != nil {
		t.Fatalf("ListMarkets: %v", err)
	}

	if len(markets) != 2 || markets[0].Slug != "a" {
		t.Errorf("markets = %+v", markets)
	}
	want := map[string]string{
		"tag_id":       "ukraine-map",
		"related_tags": "true",
		"closed":       "false",
		"limit":        "100",
		"offset":       "200",
	}
	for k, v := range want {
		if gotQuery[k] != v {
			t.Errorf("query %s = %q, want %q", k, gotQuery[k], v)
		}
	}
}

func TestGammaClient_StatusMapping(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{http.StatusNotFound, domain.ErrNotFound},
		{http.StatusTooManyRequests, domain.ErrRateLimited},
		{http.StatusUnauthorized, domain.ErrUnauthorized},
	}

	for _, tt := range tests {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tt.status)
		}))
		client := NewGammaClient(server.URL)
		_, err := client.ListMarkets(context.Background(), MarketQuery{Limit: 10})
		server.Close()

		if !errors.Is(err, tt.want) {
			t.Errorf("status %d: error = %v, want %v", tt.status, err, tt.want)
		}
	}
}

func TestClobClient_PriceHistory(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("market"); got != "tok-1" {
			t.Errorf("market param = %q, want tok-1", got)
		}
		if got := r.URL.Query().Get("fidelity"); got != "5" {
			t.Errorf("fidelity param = %q, want 5", got)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"history": []map[string]any{
				{"t": 1000, "p": 0.4},
				{"t": 2000, "p": 0.5},
			},
		})
	}))
	defer server.Close()

	client := NewClobClient(server.URL)
	series, err := client.PriceHistory(context.Background(), "tok-1", "1d", 5)
	if err != nil {
		t.Fatalf("PriceHistory: %v", err)
	}
	if len(series) != 2 || series[1].P != 0.5 || series[1].T != 2000 {
		t.Errorf("series = %+v", series)
	}
}
