package kvdocs

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// RedisBackend implements Backend using Redis string values.
// This is the canonical production backend: GET/SET/DEL map directly onto the
// Backend contract and key enumeration uses SCAN with a MATCH pattern, so it
// never blocks the server the way KEYS would.
type RedisBackend struct {
	client     *redis.Client
	ownsClient bool // If true, Close() will close the Redis client
}

// NewRedisBackend creates a backend on top of an existing Redis client.
// The caller remains responsible for closing the client.
func NewRedisBackend(client *redis.Client) *RedisBackend {
	return &RedisBackend{client: client}
}

// NewRedisBackendWithOwnedClient creates a backend that owns the client.
// The client will be closed when Close() is called.
func NewRedisBackendWithOwnedClient(client *redis.Client) *RedisBackend {
	return &RedisBackend{client: client, ownsClient: true}
}

func (b *RedisBackend) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := b.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return data, nil
}

func (b *RedisBackend) Put(ctx context.Context, key string, data []byte) error {
	return b.client.Set(ctx, key, data, 0).Err()
}

func (b *RedisBackend) Delete(ctx context.Context, key string) (int64, error) {
	return b.client.Del(ctx, key).Result()
}

func (b *RedisBackend) Keys(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	iter := b.client.Scan(ctx, 0, escapeMatchPattern(prefix)+"*", 0).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	return keys, nil
}

func (b *RedisBackend) Ping(ctx context.Context) error {
	if err := b.client.Ping(ctx).Err(); err != nil {
		return WithContext(ErrBackendUnavailable, map[string]interface{}{
			"backend": "redis",
			"cause":   err.Error(),
		})
	}
	return nil
}

func (b *RedisBackend) Close() error {
	if b.ownsClient {
		return b.client.Close()
	}
	return nil
}

// escapeMatchPattern escapes glob metacharacters so a literal prefix cannot
// accidentally act as a SCAN pattern
func escapeMatchPattern(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '*', '?', '[', ']', '\\':
			out = append(out, '\\')
		}
		out = append(out, s[i])
	}
	return string(out)
}
