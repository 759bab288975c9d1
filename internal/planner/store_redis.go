package planner

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// DefaultRedisUsageKey is the key holding the usage document in Redis
const DefaultRedisUsageKey = "datenight:usage"

// RedisStore keeps the usage document as a single JSON value in Redis
type RedisStore struct {
	client *redis.Client
	key    string
}

// NewRedisStore creates a Redis-backed usage store
func NewRedisStore(client *redis.Client, key string) *RedisStore {
	if key == "" {
		key = DefaultRedisUsageKey
	}
	return &RedisStore{client: client, key: key}
}

// Load reads the usage document. A missing key yields empty usage.
func (s *RedisStore) Load(ctx context.Context) (Usage, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return Usage{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read usage from redis: %w", err)
	}

	usage := Usage{}
	if err := json.Unmarshal(data, &usage); err != nil {
		return nil, fmt.Errorf("failed to parse usage from redis: %w", err)
	}
	return usage, nil
}

// Save overwrites the usage document
func (s *RedisStore) Save(ctx context.Context, usage Usage) error {
	data, err := json.Marshal(usage)
	if err != nil {
		return fmt.Errorf("failed to serialize usage: %w", err)
	}
	if err := s.client.Set(ctx, s.key, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to write usage to redis: %w", err)
	}
	return nil
}
