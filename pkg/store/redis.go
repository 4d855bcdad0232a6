package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// DefaultRedisKey is the key the snapshot is stored under.
const DefaultRedisKey = "mockario:snapshot"

// RedisBackend stores the snapshot as JSON under a single key.
type RedisBackend struct {
	client *redis.Client
	key    string
}

// NewRedisBackend connects to the redis URL (redis://[:password@]host:port/db)
// and pings it.
func NewRedisBackend(ctx context.Context, url string) (*RedisBackend, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return NewRedisBackendFromClient(client, DefaultRedisKey), nil
}

// NewRedisBackendFromClient wraps an existing client.
func NewRedisBackendFromClient(client *redis.Client, key string) *RedisBackend {
	if key == "" {
		key = DefaultRedisKey
	}
	return &RedisBackend{client: client, key: key}
}

// Load reads the snapshot key. A missing key yields a nil snapshot.
func (b *RedisBackend) Load(ctx context.Context) (*Snapshot, error) {
	data, err := b.client.Get(ctx, b.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("redis get %s: %w", b.key, err)
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot: %w", err)
	}
	if err := checkVersion(&snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

// Save overwrites the snapshot key.
func (b *RedisBackend) Save(ctx context.Context, snap *Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	if err := b.client.Set(ctx, b.key, data, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", b.key, err)
	}
	return nil
}

// Close closes the client.
func (b *RedisBackend) Close() error {
	return b.client.Close()
}
