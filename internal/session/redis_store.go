package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisStore creates a Redis-backed marker store. A zero ttl keeps
// markers until they are deleted.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{
		client: client,
		prefix: "marker:",
		ttl:    ttl,
	}
}

func (r *RedisStore) key(clientKey string) string {
	return r.prefix + clientKey
}

func (r *RedisStore) Load(ctx context.Context, clientKey string) (*Marker, error) {
	val, err := r.client.Get(ctx, r.key(clientKey)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil // not found
	}
	if err != nil {
		return nil, err
	}

	return decode(val)
}

func (r *RedisStore) Save(ctx context.Context, clientKey string, m Marker) error {
	if clientKey == "" {
		return fmt.Errorf("session: missing client key")
	}

	data, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("session: failed to marshal: %w", err)
	}

	return r.client.Set(ctx, r.key(clientKey), data, r.ttl).Err()
}

func (r *RedisStore) Delete(ctx context.Context, clientKey string) error {
	return r.client.Del(ctx, r.key(clientKey)).Err()
}
