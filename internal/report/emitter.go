// Package report serializes the finished activity report: a JSON document on
// disk, a human-readable console summary, and optionally an archived copy in
// S3-compatible object storage.
package report

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/warwatch/polymarket-tracker/internal/domain"
)

// Archiver uploads an emitted report to long-term storage. Optional.
type Archiver interface {
	Archive(ctx context.Context, report domain.Report, raw []byte) error
}

// Emitter writes the report JSON and renders the console summary.
type Emitter struct {
	path     string
	console  io.Writer
	archiver Archiver
	logger   *slog.Logger
}

// NewEmitter creates an Emitter writing the report to path and the summary
// to console. archiver may be nil.
func NewEmitter(path string, console io.Writer, archiver Archiver, logger *slog.Logger) *Emitter {
	return &Emitter{
		path:     path,
		console:  console,
		archiver: archiver,
		logger:   logger.With(slog.String("component", "emitter")),
	}
}

// Emit writes the report atomically, renders the summary, and archives the
// raw document when an archiver is configured. Archive failures are logged,
// not fatal: the local report is already durable at that point.
func (e *Emitter) Emit(ctx context.Context, report domain.Report) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("report: marshal: %w", err)
	}

	tmp := e.path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(e.path), 0o755); err != nil {
		return fmt.Errorf("report: mkdir: %w", err)
	}
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("report: write: %w", err)
	}
	if err := os.Rename(tmp, e.path); err != nil {
		return fmt.Errorf("report: rename: %w", err)
	}

	e.logger.InfoContext(ctx, "report written",
		slog.String("path", e.path),
		slog.Int("total_markets", report.TotalMarkets),
		slog.Int("bytes", len(data)),
	)

	WriteSummary(e.console, report)

	if e.archiver != nil {
		if err := e.archiver.Archive(ctx, report, data); err != nil {
			e.logger.WarnContext(ctx, "report archive failed",
				slog.String("error", err.Error()),
			)
		}
	}

	return nil
}
