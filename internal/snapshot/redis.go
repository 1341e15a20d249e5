package snapshot

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/warwatch/polymarket-tracker/internal/domain"
)

// RedisConfig holds connection parameters for the Redis snapshot backend.
type RedisConfig struct {
	Addr       string
	Password   string
	DB         int
	PoolSize   int
	MaxRetries int
	TLSEnabled bool
	// Key is the Redis key holding the snapshot JSON blob.
	Key string
}

// RedisStore keeps the snapshot as a JSON blob under a single key.
type RedisStore struct {
	rdb    *redis.Client
	key    string
	logger *slog.Logger
}

// NewRedisStore dials Redis, pings it to verify connectivity, and returns
// the store.
func NewRedisStore(ctx context.Context, cfg RedisConfig, logger *slog.Logger) (*RedisStore, error) {
	opts := &redis.Options{
		Addr:       cfg.Addr,
		Password:   cfg.Password,
		DB:         cfg.DB,
		PoolSize:   cfg.PoolSize,
		MaxRetries: cfg.MaxRetries,
	}
	if cfg.TLSEnabled {
		opts.TLSConfig = &tls.Config{
			MinVersion: tls.VersionTLS12,
		}
	}

	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("snapshot: redis ping: %w", err)
	}

	return &RedisStore{
		rdb:    rdb,
		key:    cfg.Key,
		logger: logger.With(slog.String("component", "snapshot_redis")),
	}, nil
}

// Close closes the Redis connection.
func (s *RedisStore) Close() error {
	return s.rdb.Close()
}

// Load reads the previous snapshot. A missing key or an unparseable blob is
// treated as "no prior state", never as an error.
func (s *RedisStore) Load(ctx context.Context) domain.Snapshot {
	data, err := s.rdb.Get(ctx, s.key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger.WarnContext(ctx, "snapshot unreadable, starting fresh",
				slog.String("key", s.key),
				slog.String("error", err.Error()),
			)
		}
		return domain.EmptySnapshot()
	}

	var snap domain.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		s.logger.WarnContext(ctx, "snapshot corrupt, starting fresh",
			slog.String("key", s.key),
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

// Save derives a snapshot from the current markets and replaces the stored
// blob with it.
func (s *RedisStore) Save(ctx context.Context, markets []domain.Market, now time.Time) (domain.Snapshot, error) {
	snap := domain.NewSnapshot(markets, now)

	data, err := json.Marshal(snap)
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("snapshot: marshal: %w", err)
	}
	if err := s.rdb.Set(ctx, s.key, data, 0).Err(); err != nil {
		return domain.Snapshot{}, fmt.Errorf("snapshot: redis set %s: %w", s.key, err)
	}

	s.logger.InfoContext(ctx, "snapshot saved",
		slog.String("key", s.key),
		slog.Int("markets", len(snap.Markets)),
	)
	return snap, nil
}
