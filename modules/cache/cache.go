// Package cache provides the Redis-backed board list cache. The board
// UI refetches the full task list after every mutation; this layer
// turns that pattern into cache-aside reads with a single scoped
// invalidation entry point instead of unconditional re-queries.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/FunAdventureBooks/task-manager/domain/task"
)

// Well-known list keys.
const (
	KeyActive   = "tasks:active"
	KeyAll      = "tasks:all"
	KeyArchived = "tasks:archived"
)

// Cache stores rendered task lists in Redis.
type Cache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
	stats  *Stats
}

// Stats tracks cache statistics.
type Stats struct {
	Hits        uint64 `json:"hits"`
	Misses      uint64 `json:"misses"`
	Sets        uint64 `json:"sets"`
	Invalidates uint64 `json:"invalidates"`
	Errors      uint64 `json:"errors"`
}

// New creates a new board list cache.
func New(client *redis.Client, prefix string, ttl time.Duration) *Cache {
	return &Cache{
		client: client,
		prefix: prefix,
		ttl:    ttl,
		stats:  &Stats{},
	}
}

// GetTasks retrieves a cached task list. The second return value
// reports whether the key was present (cache hit).
func (c *Cache) GetTasks(ctx context.Context, key string) ([]task.Task, bool, error) {
	data, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if err != nil {
		if err == redis.Nil {
			atomic.AddUint64(&c.stats.Misses, 1)
			return nil, false, nil
		}
		atomic.AddUint64(&c.stats.Errors, 1)
		return nil, false, fmt.Errorf("cache get error: %w", err)
	}

	var tasks []task.Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		atomic.AddUint64(&c.stats.Errors, 1)
		return nil, false, fmt.Errorf("cache unmarshal error: %w", err)
	}

	atomic.AddUint64(&c.stats.Hits, 1)
	return tasks, true, nil
}

// SetTasks stores a task list under the given key with the cache TTL.
func (c *Cache) SetTasks(ctx context.Context, key string, tasks []task.Task) error {
	data, err := json.Marshal(tasks)
	if err != nil {
		atomic.AddUint64(&c.stats.Errors, 1)
		return fmt.Errorf("cache marshal error: %w", err)
	}

	if err := c.client.Set(ctx, c.prefix+key, data, c.ttl).Err(); err != nil {
		atomic.AddUint64(&c.stats.Errors, 1)
		return fmt.Errorf("cache set error: %w", err)
	}

	atomic.AddUint64(&c.stats.Sets, 1)
	return nil
}

// Invalidate drops every cached task list. Called after each mutation;
// the next list read reloads from the store.
func (c *Cache) Invalidate(ctx context.Context) error {
	keys := []string{
		c.prefix + KeyActive,
		c.prefix + KeyAll,
		c.prefix + KeyArchived,
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		atomic.AddUint64(&c.stats.Errors, 1)
		return fmt.Errorf("cache invalidate error: %w", err)
	}
	atomic.AddUint64(&c.stats.Invalidates, 1)
	return nil
}

// Snapshot returns a copy of the current statistics.
func (c *Cache) Snapshot() Stats {
	return Stats{
		Hits:        atomic.LoadUint64(&c.stats.Hits),
		Misses:      atomic.LoadUint64(&c.stats.Misses),
		Sets:        atomic.LoadUint64(&c.stats.Sets),
		Invalidates: atomic.LoadUint64(&c.stats.Invalidates),
		Errors:      atomic.LoadUint64(&c.stats.Errors),
	}
}
