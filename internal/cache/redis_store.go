package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/yourusername/scoreline/internal/config"
	"github.com/yourusername/scoreline/internal/models"
)

// DefaultCatalogKey is where the football-data catalog snapshot is stored
const DefaultCatalogKey = "scoreline:catalog:football_data"

// NewRedisClient creates a Redis client and verifies connectivity
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis: ping: %w", err)
	}
	return rdb, nil
}

// RedisSnapshotStore keeps a catalog snapshot as one JSON string with a TTL
type RedisSnapshotStore struct {
	rdb *redis.Client
	key string
}

// NewRedisSnapshotStore creates a store under key, DefaultCatalogKey when empty
func NewRedisSnapshotStore(rdb *redis.Client, key string) *RedisSnapshotStore {
	if key == "" {
		key = DefaultCatalogKey
	}
	return &RedisSnapshotStore{rdb: rdb, key: key}
}

// Load returns the stored snapshot, or nil when the key does not exist
func (s *RedisSnapshotStore) Load(ctx context.Context) (*models.CatalogSnapshot, error) {
	data, err := s.rdb.Get(ctx, s.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("redis: get %s: %w", s.key, err)
	}

	var snap models.CatalogSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("redis: unmarshal %s: %w", s.key, err)
	}
	return &snap, nil
}

// Save stores the snapshot, expiring it after ttl
func (s *RedisSnapshotStore) Save(ctx context.Context, snapshot models.CatalogSnapshot, ttl time.Duration) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("redis: marshal catalog: %w", err)
	}
	if err := s.rdb.Set(ctx, s.key, data, ttl).Err(); err != nil {
		return fmt.Errorf("redis: set %s: %w", s.key, err)
	}
	return nil
}
