package scheduler

import (
	"context"
	"encoding/json"
	"fmt"

	goredis "github.com/redis/go-redis/v9"
)

const (
	seenKeyPrefix = "jobs:seen:"
	metaKeyPrefix = "jobs:meta:"
)

// RedisTracker keeps discovered job IDs in a set per source and the last
// response metadata as a JSON string.
type RedisTracker struct {
	client goredis.Cmdable
}

// NewRedisTracker wraps a redis client
func NewRedisTracker(client goredis.Cmdable) *RedisTracker {
	return &RedisTracker{client: client}
}

func (t *RedisTracker) MarkSeen(ctx context.Context, source string, ids []string) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	members := make([]any, 0, len(ids))
	for _, id := range ids {
		members = append(members, id)
	}

	added, err := t.client.SAdd(ctx, seenKeyPrefix+source, members...).Result()
	if err != nil {
		return 0, fmt.Errorf("redis tracker: sadd: %w", err)
	}
	return int(added), nil
}

func (t *RedisTracker) SaveMetadata(ctx context.Context, source string, meta map[string]any) error {
	b, err := json.Marshal(meta)
	if err != nil {
		return fmt.Errorf("redis tracker: encode metadata: %w", err)
	}
	if err := t.client.Set(ctx, metaKeyPrefix+source, b, 0).Err(); err != nil {
		return fmt.Errorf("redis tracker: set metadata: %w", err)
	}
	return nil
}

var _ Tracker = (*RedisTracker)(nil)
