package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/furnifind/backend/internal/domain"
)

// DefaultKeyPrefix namespaces session keys in Redis
const DefaultKeyPrefix = "furnifind:session:"

// RedisStore keeps session state in Redis as JSON, so several replicas can
// serve the same visitor
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore wraps an existing client
func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return &RedisStore{client: client, prefix: prefix}
}

// Connect parses a redis:// URL, pings the server and returns a store
func Connect(ctx context.Context, redisURL string) (*RedisStore, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}

	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}

	return NewRedisStore(client, ""), nil
}

// Get retrieves a session
func (r *RedisStore) Get(ctx context.Context, id string) (*domain.SessionState, error) {
	data, err := r.client.Get(ctx, r.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrCacheMiss
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}

	var state domain.SessionState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("decoding session %s: %w", id, err)
	}
	return &state, nil
}

// Save stores a session with TTL
func (r *RedisStore) Save(ctx context.Context, state *domain.SessionState, ttl time.Duration) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encoding session %s: %w", state.ID, err)
	}

	if err := r.client.Set(ctx, r.key(state.ID), data, ttl).Err(); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	return nil
}

// Delete removes a session
func (r *RedisStore) Delete(ctx context.Context, id string) error {
	if err := r.client.Del(ctx, r.key(id)).Err(); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	return nil
}

// Exists checks if a session key is present
func (r *RedisStore) Exists(ctx context.Context, id string) (bool, error) {
	n, err := r.client.Exists(ctx, r.key(id)).Result()
	if err != nil {
		return false, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	return n > 0, nil
}

// Close releases the client
func (r *RedisStore) Close() error {
	return r.client.Close()
}

func (r *RedisStore) key(id string) string {
	return r.prefix + id
}
