// Package config defines the top-level configuration for the tracker and
// provides loading and validation helpers.
package config

import (
	"fmt"
	"strings"
)

// Config is the root configuration structure. Fields are populated from a
// TOML file and then optionally overridden by TRACKER_* environment
// variables.
type Config struct {
	Polymarket PolymarketConfig `toml:"polymarket"`
	Tracker    TrackerConfig    `toml:"tracker"`
	Output     OutputConfig     `toml:"output"`
	Redis      RedisConfig      `toml:"redis"`
	S3         S3Config         `toml:"s3"`
	LogLevel   string           `toml:"log_level"`
}

// PolymarketConfig holds the Polymarket API endpoints.
type PolymarketConfig struct {
	GammaHost string `toml:"gamma_host"`
	ClobHost  string `toml:"clob_host"`
}

// TrackerConfig holds the topic filter and the ranking thresholds.
type TrackerConfig struct {
	// Source selects the market source strategy: "tag" queries the Gamma
	// API by tag id, "keyword" pages through volume-ordered markets and
	// keeps those whose question matches any keyword.
	Source string `toml:"source"`

	TagID       string   `toml:"tag_id"`
	RelatedTags bool     `toml:"related_tags"`
	Keywords    []string `toml:"keywords"`

	PageSize int `toml:"page_size"`
	// MaxPages bounds pagination for the keyword source, which scans the
	// whole volume-ordered listing rather than a tag subset.
	MaxPages int `toml:"max_pages"`

	TopVolume int `toml:"top_volume"` // list size for volume and heat rankings
	TopMovers int `toml:"top_movers"` // list size for mover and spike rankings

	HeatMinVolume float64 `toml:"heat_min_volume"` // minimum total volume for heat scoring
	SpikeMinDelta float64 `toml:"spike_min_delta"` // minimum volume delta to count as a spike

	// History controls the price-history fallback for markets the API does
	// not supply change fields for.
	History         bool   `toml:"history"`
	HistoryInterval string `toml:"history_interval"`
	HistoryFidelity int    `toml:"history_fidelity"` // minutes between samples
	RequestDelayMs  int    `toml:"request_delay_ms"` // pause between history requests
}

// OutputConfig holds the report and snapshot destinations.
type OutputConfig struct {
	ReportPath   string `toml:"report_path"`
	SnapshotPath string `toml:"snapshot_path"`

	// SnapshotBackend selects where the inter-run snapshot lives: "file"
	// (default) or "redis".
	SnapshotBackend string `toml:"snapshot_backend"`
}

// RedisConfig holds Redis connection parameters for the redis snapshot
// backend.
type RedisConfig struct {
	Addr       string `toml:"addr"`
	Password   string `toml:"password"`
	DB         int    `toml:"db"`
	PoolSize   int    `toml:"pool_size"`
	MaxRetries int    `toml:"max_retries"`
	TLSEnabled bool   `toml:"tls_enabled"`
	Key        string `toml:"key"`
}

// S3Config holds S3-compatible object storage parameters for report
// archiving.
type S3Config struct {
	Enabled        bool   `toml:"enabled"`
	Endpoint       string `toml:"endpoint"`
	Region         string `toml:"region"`
	Bucket         string `toml:"bucket"`
	AccessKey      string `toml:"access_key"`
	SecretKey      string `toml:"secret_key"`
	Prefix         string `toml:"prefix"`
	ForcePathStyle bool   `toml:"force_path_style"`
}

// Defaults returns the built-in configuration. Thresholds match the hosted
// tracker this job replaces: $1000 minimum volume for heat scoring and $100
// minimum delta for spikes.
func Defaults() Config {
	return Config{
		Polymarket: PolymarketConfig{
			GammaHost: "https://gamma-api.polymarket.com",
			ClobHost:  "https://clob.polymarket.com",
		},
		Tracker: TrackerConfig{
			Source:          "tag",
			TagID:           "ukraine-map",
			RelatedTags:     true,
			PageSize:        100,
			MaxPages:        10,
			TopVolume:       20,
			TopMovers:       15,
			HeatMinVolume:   1000,
			SpikeMinDelta:   100,
			History:         true,
			HistoryInterval: "1d",
			HistoryFidelity: 5,
			RequestDelayMs:  100,
		},
		Output: OutputConfig{
			ReportPath:      "polymarket-activity.json",
			SnapshotPath:    "price-history.json",
			SnapshotBackend: "file",
		},
		Redis: RedisConfig{
			Addr:     "localhost:6379",
			PoolSize: 4,
			Key:      "tracker:snapshot",
		},
		LogLevel: "info",
	}
}

// Validate checks the configuration for structural errors. It is called
// after Load, before any dependency is wired.
func (c *Config) Validate() error {
	if c.Polymarket.GammaHost == "" {
		return fmt.Errorf("polymarket.gamma_host is required")
	}
	switch strings.ToLower(c.Tracker.Source) {
	case "tag":
		if c.Tracker.TagID == "" {
			return fmt.Errorf("tracker.tag_id is required for the tag source")
		}
	case "keyword":
		if len(c.Tracker.Keywords) == 0 {
			return fmt.Errorf("tracker.keywords is required for the keyword source")
		}
	default:
		return fmt.Errorf("tracker.source must be %q or %q, got %q", "tag", "keyword", c.Tracker.Source)
	}
	if c.Tracker.PageSize <= 0 {
		return fmt.Errorf("tracker.page_size must be greater than 0")
	}
	if c.Tracker.TopVolume <= 0 || c.Tracker.TopMovers <= 0 {
		return fmt.Errorf("tracker.top_volume and tracker.top_movers must be greater than 0")
	}
	if c.Tracker.History {
		if c.Polymarket.ClobHost == "" {
			return fmt.Errorf("polymarket.clob_host is required when tracker.history is enabled")
		}
		if c.Tracker.HistoryFidelity <= 0 {
			return fmt.Errorf("tracker.history_fidelity must be greater than 0")
		}
	}
	if c.Output.ReportPath == "" {
		return fmt.Errorf("output.report_path is required")
	}
	switch strings.ToLower(c.Output.SnapshotBackend) {
	case "file":
		if c.Output.SnapshotPath == "" {
			return fmt.Errorf("output.snapshot_path is required for the file backend")
		}
	case "redis":
		if c.Redis.Addr == "" {
			return fmt.Errorf("redis.addr is required for the redis backend")
		}
		if c.Redis.Key == "" {
			return fmt.Errorf("redis.key is required for the redis backend")
		}
	default:
		return fmt.Errorf("output.snapshot_backend must be %q or %q, got %q", "file", "redis", c.Output.SnapshotBackend)
	}
	if c.S3.Enabled {
		if c.S3.Bucket == "" {
			return fmt.Errorf("s3.bucket is required when s3 archiving is enabled")
		}
		if c.S3.Region == "" {
			return fmt.Errorf("s3.region is required when s3 archiving is enabled")
		}
	}
	switch c.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level must be one of debug, info, warn, error; got %q", c.LogLevel)
	}
	return nil
}
