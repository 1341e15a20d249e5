package polymarket

import (
	"encoding/json"
	"testing"
)

func TestAPIMarket_ToDomainMarket(t *testing.T) {
	// Gamma mixes numeric and string encodings between endpoints and API
	// versions; both must decode.
	raw := `{
		"slug": "russia-ceasefire-2026",
		"question": "Will there be a ceasefire in 2026?",
		"volumeNum": "123456.78",
		"volume24hr": 910.5,
		"lastTradePrice": 0.37,
		"endDate": "2026-12-31T00:00:00Z",
		"closed": "false",
		"oneHourPriceChange": 0.02,
		"clobTokenIds": "[\"111\",\"222\"]",
		"events": [{"slug": "russia-ukraine-war"}]
	}`

	var api APIMarket
	if err := json.Unmarshal([]byte(raw), &api); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	m := api.ToDomainMarket()

	if m.Slug != "russia-ceasefire-2026" {
		t.Errorf("slug = %q", m.Slug)
	}
	if m.VolumeNum != 123456.78 {
		t.Errorf("volumeNum = %v, want 123456.78", m.VolumeNum)
	}
	if m.Volume24hr != 910.5 {
		t.Errorf("volume24hr = %v, want 910.5", m.Volume24hr)
	}
	if m.LastTradePrice != 0.37 {
		t.Errorf("lastTradePrice = %v, want 0.37", m.LastTradePrice)
	}
	if len(m.TokenIDs) != 2 || m.TokenIDs[0] != "111" {
		t.Errorf("tokenIDs = %v, want [111 222]", m.TokenIDs)
	}
	if m.EventSlug != "russia-ukraine-war" {
		t.Errorf("eventSlug = %q", m.EventSlug)
	}
	if m.OneHourChange == nil || *m.OneHourChange != 0.02 {
		t.Errorf("oneHourChange = %v, want 0.02", m.OneHourChange)
	}
	if m.OneDayChange != nil {
		t.Errorf("oneDayChange should be nil when absent, got %v", *m.OneDayChange)
	}
}

func TestAPIMarket_NullAndMissingNumerics(t *testing.T) {
	raw := `{"slug": "s", "question": "q", "volumeNum": null, "volume24hr": ""}`

	var api APIMarket
	if err := json.Unmarshal([]byte(raw), &api); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	m := api.ToDomainMarket()
	if m.VolumeNum != 0 || m.Volume24hr != 0 {
		t.Errorf("null/empty volumes should decode to 0, got %v / %v", m.VolumeNum, m.Volume24hr)
	}
	if len(m.TokenIDs) != 0 {
		t.Errorf("tokenIDs = %v, want empty", m.TokenIDs)
	}
}

func TestAPIMarket_MalformedTokenIDsIgnored(t *testing.T) {
	raw := `{"slug": "s", "clobTokenIds": "not json"}`

	var api APIMarket
	if err := json.Unmarshal([]byte(raw), &api); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if ids := api.ToDomainMarket().TokenIDs; len(ids) != 0 {
		t.Errorf("malformed clobTokenIds should yield no token ids, got %v", ids)
	}
}
