package planner

import (
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Usage store backends
const (
	StoreFile  = "file"
	StoreRedis = "redis"
)

// OpenStore builds the usage store named by kind. The file backend uses
// path; the redis backend needs a client and uses key.
func OpenStore(kind, path string, client *redis.Client, key string) (UsageStore, error) {
	switch kind {
	case "", StoreFile:
		return NewFileStore(path), nil
	case StoreRedis:
		if client == nil {
			return nil, fmt.Errorf("redis usage store requires a redis client")
		}
		return NewRedisStore(client, key), nil
	default:
		return nil, fmt.Errorf("unknown usage store %q", kind)
	}
}
