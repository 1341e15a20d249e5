package domain

// Market represents a single Polymarket prediction market as observed during
// one tracker run. Records are immutable once fetched; the slug is the only
// identity that survives across runs.
type Market struct {
	Slug           string
	Question       string
	VolumeNum      float64 // cumulative traded volume in USD
	Volume24hr     float64 // volume traded in the trailing 24 hours
	LastTradePrice float64 // implied probability in [0,1]
	EndDate        string  // RFC3339 end date as reported upstream, may be empty

	// EventSlug is the URL slug of the event grouping this market, when the
	// upstream response carries one.
	EventSlug string

	// TokenIDs are the CLOB token ids for the market's outcomes. The Yes
	// token is first. Needed only for price-history lookups.
	TokenIDs []string

	// OneHourChange and OneDayChange are upstream-provided price deltas
	// (fractions, e.g. 0.02 for +2 points). Nil when the API did not supply
	// them; callers fall back to recomputing from price history.
	OneHourChange *float64
	OneDayChange  *float64
}

// PricePoint is a single sample in a CLOB price-history series.
type PricePoint struct {
	T int64   `json:"t"` // unix seconds
	P float64 `json:"p"` // price in [0,1]
}

// PriceMove holds the computed price movement of one market across the
// tracked horizons. Pointer fields are nil when the corresponding horizon
// could not be resolved (no old enough sample, or zero base price for the
// percent variant).
type PriceMove struct {
	Slug         string
	CurrentPrice float64 // fraction in [0,1]

	// Past prices are fractions, like CurrentPrice. Report entries convert
	// to the 0-100 scale.
	Price1hAgo  *float64
	Price6hAgo  *float64
	Price24hAgo *float64

	// Point changes on the 0-100 probability scale, rounded to 1 decimal.
	Points1h  *float64
	Points6h  *float64
	Points24h *float64

	// Percent changes relative to the old price, rounded to 2 decimals.
	Pct1h  *float64
	Pct6h  *float64
	Pct24h *float64
}
