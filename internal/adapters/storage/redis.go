package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	pkgstorage "github.com/goliatone/go-sitecms/pkg/storage"
)

// RedisBackend keeps each record as a plain redis string with no expiry.
type RedisBackend struct {
	client *redis.Client
}

var _ pkgstorage.Backend = (*RedisBackend)(nil)

// NewRedisBackend connects to redisURL and checks the connection.
func NewRedisBackend(ctx context.Context, redisURL string) (*RedisBackend, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	return &RedisBackend{client: client}, nil
}

// NewRedisBackendWithClient wraps an existing client.
func NewRedisBackendWithClient(client *redis.Client) *RedisBackend {
	return &RedisBackend{client: client}
}

func (r *RedisBackend) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, pkgstorage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %q: %w: %w", key, pkgstorage.ErrUnavailable, err)
	}
	return value, nil
}

func (r *RedisBackend) Set(ctx context.Context, key string, value []byte) error {
	if err := r.client.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("redis set %q: %w: %w", key, pkgstorage.ErrUnavailable, err)
	}
	return nil
}

func (r *RedisBackend) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis del %q: %w: %w", key, pkgstorage.ErrUnavailable, err)
	}
	return nil
}

func (r *RedisBackend) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisBackend) Close() error {
	return r.client.Close()
}

func (r *RedisBackend) Capabilities() pkgstorage.Capabilities {
	return pkgstorage.Capabilities{Persistent: true, Shared: true}
}
