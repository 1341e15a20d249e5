package polymarket

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/warwatch/polymarket-tracker/internal/domain"
)

// flexFloat unmarshals from a JSON number or a numeric string so Gamma API
// responses work whether "volumeNum" is sent as 12345.6 or "12345.6".
// null and "" decode to zero.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*f = 0
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err == nil {
		*f = flexFloat(v)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		*f = 0
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return err
	}
	*f = flexFloat(v)
	return nil
}

// flexBool unmarshals from JSON bool or string ("true"/"false") so Gamma API
// responses work whether "closed" is sent as bool or string.
type flexBool bool

func (f *flexBool) UnmarshalJSON(data []byte) error {
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*f = flexBool(b)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*f = flexBool(strings.EqualFold(s, "true") || s == "1")
	return nil
}

// APIMarket represents a market as returned by the Polymarket Gamma API.
type APIMarket struct {
	Slug           string    `json:"slug"`
	Question       string    `json:"question"`
	VolumeNum      flexFloat `json:"volumeNum"`
	Volume24hr     flexFloat `json:"volume24hr"`
	LastTradePrice flexFloat `json:"lastTradePrice"`
	EndDate        string    `json:"endDate"`
	Closed         flexBool  `json:"closed"`

	// Change fields are pointers: absence means "recompute from history",
	// not "no movement".
	OneHourPriceChange *flexFloat `json:"oneHourPriceChange"`
	OneDayPriceChange  *flexFloat `json:"oneDayPriceChange"`

	// ClobTokenIDs is JSON-encoded inside the JSON: e.g. "[\"123\",\"456\"]".
	ClobTokenIDs string        `json:"clobTokenIds"`
	Events       []APIEventRef `json:"events"`
}

// APIEventRef is the slice of event metadata embedded in a market response.
// Only the slug is used, to build event URLs in reports.
type APIEventRef struct {
	Slug string `json:"slug"`
}

// ToDomainMarket converts the API representation into a domain.Market.
func (m *APIMarket) ToDomainMarket() domain.Market {
	out := domain.Market{
		Slug:           m.Slug,
		Question:       m.Question,
		VolumeNum:      float64(m.VolumeNum),
		Volume24hr:     float64(m.Volume24hr),
		LastTradePrice: float64(m.LastTradePrice),
		EndDate:        m.EndDate,
	}

	if len(m.Events) > 0 {
		out.EventSlug = m.Events[0].Slug
	}

	if m.ClobTokenIDs != "" {
		var ids []string
		if err := json.Unmarshal([]byte(m.ClobTokenIDs), &ids); err == nil {
			out.TokenIDs = ids
		}
	}

	if m.OneHourPriceChange != nil {
		v := float64(*m.OneHourPriceChange)
		out.OneHourChange = &v
	}
	if m.OneDayPriceChange != nil {
		v := float64(*m.OneDayPriceChange)
		out.OneDayChange = &v
	}

	return out
}

// historyResponse is the envelope of the CLOB /prices-history endpoint.
type historyResponse struct {
	History []domain.PricePoint `json:"history"`
}
