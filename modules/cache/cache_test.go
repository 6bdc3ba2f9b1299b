package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/FunAdventureBooks/task-manager/domain/task"
)

const testRedisAddr = "localhost:6379"

func setupCache(t *testing.T) (*Cache, *redis.Client) {
	t.Helper()

	client := redis.NewClient(&redis.Options{Addr: testRedisAddr})
	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("Redis not available at %s: %v", testRedisAddr, err)
	}

	prefix := "test:" + t.Name() + ":"
	c := New(client, prefix, time.Minute)

	t.Cleanup(func() {
		client.Del(ctx, prefix+KeyActive, prefix+KeyAll, prefix+KeyArchived)
		client.Close()
	})

	return c, client
}

func TestCache_GetSetTasks(t *testing.T) {
	c, _ := setupCache(t)
	ctx := context.Background()

	// miss before set
	_, found, err := c.GetTasks(ctx, KeyActive)
	if err != nil {
		t.Fatalf("GetTasks() error = %v", err)
	}
	if found {
		t.Error("expected cache miss before set")
	}

	tasks := []task.Task{
		{ID: "t1", Title: "Cached task", Status: task.StatusTodo, History: []string{"Created on Mon Mar 03 2025"}},
	}
	if err := c.SetTasks(ctx, KeyActive, tasks); err != nil {
		t.Fatalf("SetTasks() error = %v", err)
	}

	got, found, err := c.GetTasks(ctx, KeyActive)
	if err != nil {
		t.Fatalf("GetTasks() error = %v", err)
	}
	if !found {
		t.Fatal("expected cache hit after set")
	}
	if len(got) != 1 || got[0].ID != "t1" || got[0].History[0] != tasks[0].History[0] {
		t.Errorf("got %+v, want round-tripped list", got)
	}

	stats := c.Snapshot()
	if stats.Hits != 1 || stats.Misses != 1 || stats.Sets != 1 {
		t.Errorf("stats = %+v, want 1 hit, 1 miss, 1 set", stats)
	}
}

func TestCache_Invalidate(t *testing.T) {
	c, _ := setupCache(t)
	ctx := context.Background()

	for _, key := range []string{KeyActive, KeyAll, KeyArchived} {
		if err := c.SetTasks(ctx, key, []task.Task{{ID: "x", Title: "x"}}); err != nil {
			t.Fatalf("SetTasks(%s) error = %v", key, err)
		}
	}

	if err := c.Invalidate(ctx); err != nil {
		t.Fatalf("Invalidate() error = %v", err)
	}

	for _, key := range []string{KeyActive, KeyAll, KeyArchived} {
		if _, found, err := c.GetTasks(ctx, key); err != nil || found {
			t.Errorf("key %s: found=%v err=%v, want dropped", key, found, err)
		}
	}
}
