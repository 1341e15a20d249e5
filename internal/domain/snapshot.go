package domain

import "time"

// NoSnapshot is the sentinel timestamp reported when no previous snapshot
// exists (first run, or an unreadable snapshot file).
const NoSnapshot = "none"

// SnapshotEntry is the per-market summary kept between runs, just enough to
// compute volume deltas on the next invocation.
type SnapshotEntry struct {
	VolumeNum      float64 `json:"volumeNum"`
	Volume24hr     float64 `json:"volume24hr"`
	LastTradePrice float64 `json:"lastTradePrice"`
}

// Snapshot is a point-in-time capture of every tracked market's summary
// fields. Exactly one snapshot is persisted; each run's save fully replaces
// the previous one.
type Snapshot struct {
	Timestamp string                   `json:"timestamp"`
	Markets   map[string]SnapshotEntry `json:"markets"`
}

// EmptySnapshot returns the "no prior state" snapshot.
func EmptySnapshot() Snapshot {
	return Snapshot{Timestamp: NoSnapshot, Markets: map[string]SnapshotEntry{}}
}

// NewSnapshot derives a snapshot from the current market set. Markets without
// a slug are skipped since they cannot be matched on the next run.
func NewSnapshot(markets []Market, now time.Time) Snapshot {
	snap := Snapshot{
		Timestamp: now.UTC().Format(time.RFC3339),
		Markets:   make(map[string]SnapshotEntry, len(markets)),
	}
	for _, m := range markets {
		if m.Slug == "" {
			continue
		}
		snap.Markets[m.Slug] = SnapshotEntry{
			VolumeNum:      m.VolumeNum,
			Volume24hr:     m.Volume24hr,
			LastTradePrice: m.LastTradePrice,
		}
	}
	return snap
}
