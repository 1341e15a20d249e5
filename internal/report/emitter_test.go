package report

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/warwatch/polymarket-tracker/internal/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func sampleReport() domain.Report {
	pct := 4.0
	prev := 50.0
	return domain.Report{
		RunID:            "run-1",
		Tag:              "ukraine-map",
		GeneratedAt:      "2026-03-14T12:00:00Z",
		PreviousSnapshot: "2026-03-14T11:00:00Z",
		TotalMarkets:     2,
		TopVolume24h: []domain.VolumeEntry{
			{MarketSummary: domain.MarketSummary{Slug: "a", Question: "Will a ceasefire hold?", Volume24hr: 1234}, Rank: 1},
		},
		HottestMarkets: []domain.HeatEntry{
			{MarketSummary: domain.MarketSummary{Slug: "a", Question: "Will a ceasefire hold?"}, HeatScore: 12.5, Rank: 1},
		},
		TopMovers1h: []domain.MoverEntry{
			{MarketSummary: domain.MarketSummary{Slug: "a", Question: "Will a ceasefire hold?"}, CurrentPrice: 52, PreviousPrice: &prev, PointsChange: 2, PctChange: &pct, Rank: 1},
		},
		VolumeSpikes: []domain.SpikeEntry{
			{MarketSummary: domain.MarketSummary{Slug: "a", Question: "Will a ceasefire hold?"}, VolumeDelta: 250, VolumeSpikePct: 20, Rank: 1},
		},
	}
}

func TestEmitter_WritesReportJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")
	var console bytes.Buffer
	e := NewEmitter(path, &console, nil, discardLogger())

	if err := e.Emit(context.Background(), sampleReport()); err != nil {
		t.Fatalf("Emit: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	var decoded domain.Report
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("report is not valid JSON: %v", err)
	}
	if decoded.GeneratedAt != "2026-03-14T12:00:00Z" {
		t.Errorf("generated_at = %q", decoded.GeneratedAt)
	}
	if decoded.PreviousSnapshot != "2026-03-14T11:00:00Z" {
		t.Errorf("previous_snapshot = %q", decoded.PreviousSnapshot)
	}
	if decoded.TotalMarkets != 2 {
		t.Errorf("total_markets = %d", decoded.TotalMarkets)
	}
	if len(decoded.TopVolume24h) != 1 || decoded.TopVolume24h[0].Rank != 1 {
		t.Errorf("top_volume_24h = %+v", decoded.TopVolume24h)
	}

	// Raw field-name check: the document is consumed by dashboards keyed on
	// these exact names.
	for _, field := range []string{
		`"generated_at"`, `"previous_snapshot"`, `"total_markets"`,
		`"top_volume_24h"`, `"top_volume_total"`, `"hottest_markets"`,
		`"top_movers_1h"`, `"top_movers_24h"`, `"volume_spikes"`,
	} {
		if !bytes.Contains(data, []byte(field)) {
			t.Errorf("report JSON missing field %s", field)
		}
	}
}

func TestEmitter_ConsoleSummary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")
	var console bytes.Buffer
	e := NewEmitter(path, &console, nil, discardLogger())

	if err := e.Emit(context.Background(), sampleReport()); err != nil {
		t.Fatalf("Emit: %v", err)
	}

	out := console.String()
	for _, want := range []string{
		"Markets tracked: 2",
		"Top 5 by 24h volume",
		"$1234 - Will a ceasefire hold?",
		"Top 5 hottest",
		"Top 5 movers (1h)",
		"up 2.0pp (now 52%)",
		"Top 5 volume spikes",
		"+$250",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("console summary missing %q in:\n%s", want, out)
		}
	}
	// Empty categories are omitted rather than printed as headers.
	if strings.Contains(out, "movers (24h)") {
		t.Errorf("summary must skip empty categories:\n%s", out)
	}
}

type failingArchiver struct{ called bool }

func (f *failingArchiver) Archive(ctx context.Context, r domain.Report, raw []byte) error {
	f.called = true
	return errors.New("bucket gone")
}

func TestEmitter_ArchiveFailureIsNotFatal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")
	arch := &failingArchiver{}
	e := NewEmitter(path, io.Discard, arch, discardLogger())

	if err := e.Emit(context.Background(), sampleReport()); err != nil {
		t.Fatalf("archive failure must not fail the emit: %v", err)
	}
	if !arch.called {
		t.Error("archiver was not invoked")
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("local report missing: %v", err)
	}
}
