package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Load reads a TOML configuration file at path, merges it on top of the
// built-in defaults, applies TRACKER_* environment variable overrides, and
// returns the final Config. The returned Config has NOT been validated; the
// caller should invoke Config.Validate() after Load.
//
// A missing file is not an error: the defaults plus environment overrides
// are enough to run against the public API.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return nil, err
		}
	}

	// Load .env file if present (silently ignore if missing).
	_ = godotenv.Load()

	applyEnvOverrides(&cfg)

	return &cfg, nil
}

// applyEnvOverrides reads well-known TRACKER_* environment variables and
// overwrites the corresponding Config fields when a variable is set. This
// lets the scheduled job inject endpoints and credentials without touching
// the TOML file.
func applyEnvOverrides(cfg *Config) {
	setStr(&cfg.Polymarket.GammaHost, "TRACKER_GAMMA_HOST")
	setStr(&cfg.Polymarket.ClobHost, "TRACKER_CLOB_HOST")

	setStr(&cfg.Tracker.Source, "TRACKER_SOURCE")
	setStr(&cfg.Tracker.TagID, "TRACKER_TAG_ID")
	setBool(&cfg.Tracker.RelatedTags, "TRACKER_RELATED_TAGS")
	setStringSlice(&cfg.Tracker.Keywords, "TRACKER_KEYWORDS")
	setInt(&cfg.Tracker.PageSize, "TRACKER_PAGE_SIZE")
	setInt(&cfg.Tracker.MaxPages, "TRACKER_MAX_PAGES")
	setInt(&cfg.Tracker.TopVolume, "TRACKER_TOP_VOLUME")
	setInt(&cfg.Tracker.TopMovers, "TRACKER_TOP_MOVERS")
	setFloat64(&cfg.Tracker.HeatMinVolume, "TRACKER_HEAT_MIN_VOLUME")
	setFloat64(&cfg.Tracker.SpikeMinDelta, "TRACKER_SPIKE_MIN_DELTA")
	setBool(&cfg.Tracker.History, "TRACKER_HISTORY")
	setInt(&cfg.Tracker.RequestDelayMs, "TRACKER_REQUEST_DELAY_MS")

	setStr(&cfg.Output.ReportPath, "TRACKER_REPORT_PATH")
	setStr(&cfg.Output.SnapshotPath, "TRACKER_SNAPSHOT_PATH")
	setStr(&cfg.Output.SnapshotBackend, "TRACKER_SNAPSHOT_BACKEND")

	setStr(&cfg.Redis.Addr, "TRACKER_REDIS_ADDR")
	setStr(&cfg.Redis.Password, "TRACKER_REDIS_PASSWORD")
	setInt(&cfg.Redis.DB, "TRACKER_REDIS_DB")
	setStr(&cfg.Redis.Key, "TRACKER_REDIS_KEY")
	setBool(&cfg.Redis.TLSEnabled, "TRACKER_REDIS_TLS_ENABLED")

	setBool(&cfg.S3.Enabled, "TRACKER_S3_ENABLED")
	setStr(&cfg.S3.Endpoint, "TRACKER_S3_ENDPOINT")
	setStr(&cfg.S3.Region, "TRACKER_S3_REGION")
	setStr(&cfg.S3.Bucket, "TRACKER_S3_BUCKET")
	setStr(&cfg.S3.AccessKey, "TRACKER_S3_ACCESS_KEY")
	setStr(&cfg.S3.SecretKey, "TRACKER_S3_SECRET_KEY")
	setStr(&cfg.S3.Prefix, "TRACKER_S3_PREFIX")
	setBool(&cfg.S3.ForcePathStyle, "TRACKER_S3_FORCE_PATH_STYLE")

	setStr(&cfg.LogLevel, "TRACKER_LOG_LEVEL")
}

func setStr(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setFloat64(dst *float64, key string) {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			*dst = f
		}
	}
}

func setBool(dst *bool, key string) {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}

func setStringSlice(dst *[]string, key string) {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		cleaned := make([]string, 0, len(parts))
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if p != "" {
				cleaned = append(cleaned, p)
			}
		}
		if len(cleaned) > 0 {
			*dst = cleaned
		}
	}
}
