// Package snapshot persists the single inter-run snapshot. Two backends
// exist: a JSON file next to the report (default) and a Redis key for
// runners without a writable working tree.
package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/warwatch/polymarket-tracker/internal/domain"
)

// FileStore keeps the snapshot in a single JSON file, fully rewritten on
// every save.
type FileStore struct {
	path   string
	logger *slog.Logger
}

// NewFileStore creates a FileStore at the given path.
func NewFileStore(path string, logger *slog.Logger) *FileStore {
	return &FileStore{
		path:   path,
		logger: logger.With(slog.String("component", "snapshot_file")),
	}
}

// Load reads the previous snapshot. A missing or unparseable file is treated
// as "no prior state", never as an error.
func (s *FileStore) Load(ctx context.Context) domain.Snapshot {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.WarnContext(ctx, "snapshot unreadable, starting fresh",
				slog.String("path", s.path),
				slog.String("error", err.Error()),
			)
		}
		return domain.EmptySnapshot()
	}

	var snap domain.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		s.logger.WarnContext(ctx, "snapshot corrupt, starting fresh",
			slog.String("path", s.path),
			slog.String("error", err.Error()),
		)
		return domain.EmptySnapshot()
	}
	if snap.Markets == nil {
		snap.Markets = map[string]domain.SnapshotEntry{}
	}
	if snap.Timestamp == "" {
		snap.Timestamp = domain.NoSnapshot
	}
	return snap
}

// Save derives a snapshot from the current markets and atomically replaces
// the snapshot file with it.
func (s *FileStore) Save(ctx context.Context, markets []domain.Market, now time.Time) (domain.Snapshot, error) {
	snap := domain.NewSnapshot(markets, now)

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("snapshot: marshal: %w", err)
	}

	// Write-then-rename so a crash mid-write never leaves a half snapshot
	// for the next run to reject.
	tmp := s.path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return domain.Snapshot{}, fmt.Errorf("snapshot: mkdir: %w", err)
	}
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return domain.Snapshot{}, fmt.Errorf("snapshot: write: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return domain.Snapshot{}, fmt.Errorf("snapshot: rename: %w", err)
	}

	s.logger.InfoContext(ctx, "snapshot saved",
		slog.String("path", s.path),
		slog.Int("markets", len(snap.Markets)),
	)
	return snap, nil
}
