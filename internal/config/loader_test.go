package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_DefaultsWhenFileMissing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Polymarket.GammaHost != "https://gamma-api.polymarket.com" {
		t.Errorf("gamma_host = %q", cfg.Polymarket.GammaHost)
	}
	if cfg.Tracker.HeatMinVolume != 1000 || cfg.Tracker.SpikeMinDelta != 100 {
		t.Errorf("thresholds = %v / %v, want 1000 / 100", cfg.Tracker.HeatMinVolume, cfg.Tracker.SpikeMinDelta)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults must validate: %v", err)
	}
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tracker.toml")
	content := `
log_level = "debug"

[tracker]
tag_id = "middle-east"
top_volume = 100

[output]
report_path = "out/report.json"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Tracker.TagID != "middle-east" {
		t.Errorf("tag_id = %q", cfg.Tracker.TagID)
	}
	if cfg.Tracker.TopVolume != 100 {
		t.Errorf("top_volume = %d", cfg.Tracker.TopVolume)
	}
	// Untouched fields keep their defaults.
	if cfg.Tracker.PageSize != 100 {
		t.Errorf("page_size = %d, want default 100", cfg.Tracker.PageSize)
	}
	if cfg.Output.ReportPath != "out/report.json" {
		t.Errorf("report_path = %q", cfg.Output.ReportPath)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tracker.toml")
	if err := os.WriteFile(path, []byte("[tracker]\ntag_id = \"from-file\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("TRACKER_TAG_ID", "from-env")
	t.Setenv("TRACKER_KEYWORDS", "ukraine, kyiv ,ceasefire")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Tracker.TagID != "from-env" {
		t.Errorf("tag_id = %q, want env override", cfg.Tracker.TagID)
	}
	want := []string{"ukraine", "kyiv", "ceasefire"}
	if len(cfg.Tracker.Keywords) != len(want) {
		t.Fatalf("keywords = %v", cfg.Tracker.Keywords)
	}
	for i, w := range want {
		if cfg.Tracker.Keywords[i] != w {
			t.Errorf("keyword %d = %q, want %q", i, cfg.Tracker.Keywords[i], w)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"keyword source without keywords", func(c *Config) {
			c.Tracker.Source = "keyword"
		}, true},
		{"keyword source with keywords", func(c *Config) {
			c.Tracker.Source = "keyword"
			c.Tracker.Keywords = []string{"ukraine"}
		}, false},
		{"unknown source", func(c *Config) { c.Tracker.Source = "rss" }, true},
		{"missing report path", func(c *Config) { c.Output.ReportPath = "" }, true},
		{"redis backend without key", func(c *Config) {
			c.Output.SnapshotBackend = "redis"
			c.Redis.Key = ""
		}, true},
		{"s3 enabled without bucket", func(c *Config) { c.S3.Enabled = true }, true},
		{"bad log level", func(c *Config) { c.LogLevel = "verbose" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestRedactedConfig(t *testing.T) {
	cfg := Defaults()
	cfg.Redis.Password = "hunter2"
	cfg.S3.SecretKey = "secret"

	red := RedactedConfig(&cfg)
	if red.Redis.Password != "***" || red.S3.SecretKey != "***" {
		t.Errorf("secrets not redacted: %+v", red)
	}
	if cfg.Redis.Password != "hunter2" {
		t.Error("RedactedConfig must not mutate the original")
	}
}
