package report

import (
	"fmt"
	"io"

	"github.com/warwatch/polymarket-tracker/internal/domain"
)

// summaryTop is how many entries per category the console summary shows.
const summaryTop = 5

// WriteSummary renders a truncated human-readable view of the report. It is
// the operator-facing output of a scheduled run; the JSON file is the
// machine-facing one.
func WriteSummary(w io.Writer, r domain.Report) {
	if w == nil {
		return
	}

	fmt.Fprintln(w, "============================================================")
	fmt.Fprintf(w, "Polymarket activity report  (generated %s)\n", r.GeneratedAt)
	fmt.Fprintf(w, "Markets tracked: %d   previous snapshot: %s\n", r.TotalMarkets, r.PreviousSnapshot)
	fmt.Fprintln(w, "============================================================")

	if len(r.TopVolume24h) > 0 {
		fmt.Fprintf(w, "\nTop %d by 24h volume:\n", summaryTop)
		for _, m := range trunc(r.TopVolume24h) {
			fmt.Fprintf(w, "  $%.0f - %s\n", m.Volume24hr, clip(m.Question, 60))
		}
	}

	if len(r.HottestMarkets) > 0 {
		fmt.Fprintf(w, "\nTop %d hottest (24h vol / total vol):\n", summaryTop)
		for _, m := range trunc(r.HottestMarkets) {
			fmt.Fprintf(w, "  %.1f%% - %s\n", m.HeatScore, clip(m.Question, 60))
		}
	}

	writeMovers(w, "1h", r.TopMovers1h)
	writeMovers(w, "24h", r.TopMovers24h)

	if len(r.VolumeSpikes) > 0 {
		fmt.Fprintf(w, "\nTop %d volume spikes since last run:\n", summaryTop)
		for _, m := range trunc(r.VolumeSpikes) {
			fmt.Fprintf(w, "  +$%.0f - %s\n", m.VolumeDelta, clip(m.Question, 55))
		}
	}
}

func writeMovers(w io.Writer, horizon string, movers []domain.MoverEntry) {
	if len(movers) == 0 {
		return
	}
	fmt.Fprintf(w, "\nTop %d movers (%s):\n", summaryTop, horizon)
	for _, m := range trunc(movers) {
		direction := "up"
		if m.PointsChange < 0 {
			direction = "down"
		}
		fmt.Fprintf(w, "  %s %.1fpp (now %.0f%%) - %s\n",
			direction, abs(m.PointsChange), m.CurrentPrice, clip(m.Question, 50))
	}
}

func clip(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func trunc[T any](s []T) []T {
	if len(s) > summaryTop {
		return s[:summaryTop]
	}
	return s
}
