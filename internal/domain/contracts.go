package domain

import (
	"context"
	"time"
)

// FetchResult distinguishes "no markets because the topic has none" from
// "no markets because the fetch broke". Markets holds everything gathered
// before the failure; Err, when non-nil, is the error that stopped
// pagination early.
type FetchResult struct {
	Markets []Market
	Err     error
}

// Partial reports whether the fetch was truncated before completion.
func (r FetchResult) Partial() bool { return r.Err != nil }

// MarketSource yields the current set of open markets for the tracked topic.
// Implementations paginate the upstream API and deduplicate by slug; the
// returned error is reserved for context cancellation, recoverable page
// failures are reported through FetchResult.Err instead.
type MarketSource interface {
	Fetch(ctx context.Context) (FetchResult, error)
}

// SnapshotStore persists the single inter-run snapshot. Load never fails:
// a missing or unreadable snapshot is reported as EmptySnapshot. Save fully
// replaces any previous snapshot and returns what it wrote.
type SnapshotStore interface {
	Load(ctx context.Context) Snapshot
	Save(ctx context.Context, markets []Market, now time.Time) (Snapshot, error)
}

// ReportSink consumes the finished report. Side effect only.
type ReportSink interface {
	Emit(ctx context.Context, report Report) error
}
