package metrics

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		question string
		want     string
	}{
		{"Will there be a ceasefire in Ukraine by June?", "peace"},
		// Matches both peace and political keyword sets; rule order makes
		// peace win.
		{"Zelensky peace talks to resume this month?", "peace"},
		{"Will Russia control Bakhmut by March 31?", "territory"},
		{"Will Putin remain president through 2026?", "political"},
		{"Will Ukraine receive F-16 jets this quarter?", "weapons"},
		{"Will a nuclear weapon be used in 2026?", "nuclear"},
		{"Will Ukraine join NATO before 2030?", "nato"},
		{"Will the war end in 2026?", "general"},
		{"", "general"},
		// Matching is case-insensitive.
		{"CEASEFIRE declared?", "peace"},
	}

	for _, tt := range tests {
		if got := Classify(tt.question); got != tt.want {
			t.Errorf("Classify(%q) = %q, want %q", tt.question, got, tt.want)
		}
	}
}
