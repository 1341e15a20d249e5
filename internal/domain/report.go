package domain

// MarketSummary is the simplified market projection embedded in every ranked
// report entry.
type MarketSummary struct {
	Slug           string  `json:"slug"`
	Question       string  `json:"question"`
	Volume24hr     float64 `json:"volume24hr"`
	VolumeNum      float64 `json:"volumeNum"`
	LastTradePrice float64 `json:"lastTradePrice"`
	EndDate        string  `json:"endDate,omitempty"`
	EventSlug      string  `json:"eventSlug,omitempty"`
	Category       string  `json:"category,omitempty"`
}

// VolumeEntry ranks a market by one of its volume fields.
type VolumeEntry struct {
	MarketSummary
	Rank int `json:"rank"`
}

// HeatEntry ranks a market by its heat score, the trailing-24h share of
// total volume.
type HeatEntry struct {
	MarketSummary
	HeatScore float64 `json:"heat_score"`
	Rank      int     `json:"rank"`
}

// MoverEntry ranks a market by the magnitude of its price change over one
// horizon. Prices are on the 0-100 probability scale.
type MoverEntry struct {
	MarketSummary
	CurrentPrice  float64  `json:"current_price"`
	PreviousPrice *float64 `json:"previous_price"`
	PointsChange  float64  `json:"points_change"`
	PctChange     *float64 `json:"pct_change"`
	Rank          int      `json:"rank"`
}

// SpikeEntry ranks a market by the raw volume gained since the previous
// snapshot.
type SpikeEntry struct {
	MarketSummary
	VolumeDelta    float64 `json:"volume_delta"`
	VolumeSpikePct float64 `json:"volume_spike_pct"`
	CurrentVolume  float64 `json:"current_volume"`
	PreviousVolume float64 `json:"previous_volume"`
	Rank           int     `json:"rank"`
}

// Report is the full output of one tracker run. Every category slice is
// ordered by its metric with dense 1-based ranks.
type Report struct {
	RunID            string `json:"run_id"`
	Tag              string `json:"tag,omitempty"`
	GeneratedAt      string `json:"generated_at"`
	PreviousSnapshot string `json:"previous_snapshot"`
	TotalMarkets     int    `json:"total_markets"`

	TopVolume24h   []VolumeEntry `json:"top_volume_24h"`
	TopVolumeTotal []VolumeEntry `json:"top_volume_total"`
	HottestMarkets []HeatEntry   `json:"hottest_markets"`
	TopMovers1h    []MoverEntry  `json:"top_movers_1h"`
	TopMovers24h   []MoverEntry  `json:"top_movers_24h"`
	VolumeSpikes   []SpikeEntry  `json:"volume_spikes"`
}
