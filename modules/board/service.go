package board

import (
	"context"
	"log"
	"time"

	"github.com/FunAdventureBooks/task-manager/domain/task"
	"github.com/FunAdventureBooks/task-manager/modules/cache"
)

// ListCache is the board's view of the list cache. Nil is a valid
// cache: reads fall through to the store and invalidation is a no-op.
type ListCache interface {
	GetTasks(ctx context.Context, key string) ([]task.Task, bool, error)
	SetTasks(ctx context.Context, key string, tasks []task.Task) error
	Invalidate(ctx context.Context) error
}

// Service orchestrates the lifecycle engine, the repository and the
// list cache. Every mutation is a read-modify-write against the
// current snapshot with no cross-request locking; concurrent writers
// to the same task can lose an update, which is accepted.
type Service struct {
	repo  *task.Repository
	cache ListCache
	now   func() time.Time
}

// NewService creates a new board service.
func NewService(repo *task.Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

// SetCache attaches the list cache. Safe to leave unset.
func (s *Service) SetCache(c ListCache) {
	s.cache = c
}

// Create resolves a create intent and persists the new task.
func (s *Service) Create(ctx context.Context, fields task.Fields, actor string) (*task.Task, error) {
	res, err := task.Resolve(nil, task.CreateTask{Fields: fields, Actor: actor}, s.now())
	if err != nil {
		return nil, err
	}

	created := res.Task
	if err := s.repo.Create(ctx, &created); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return &created, nil
}

// Get returns a single task by id.
func (s *Service) Get(ctx context.Context, id string) (*task.Task, error) {
	return s.repo.FindByID(ctx, id)
}

// List returns tasks newest-created first, cache-aside. When
// includeArchived is false only active tasks are returned.
func (s *Service) List(ctx context.Context, includeArchived bool) ([]task.Task, error) {
	key := cache.KeyActive
	if includeArchived {
		key = cache.KeyAll
	}
	if tasks, ok := s.cachedList(ctx, key); ok {
		return tasks, nil
	}

	tasks, err := s.repo.List(ctx, includeArchived)
	if err != nil {
		return nil, err
	}
	s.storeList(ctx, key, tasks)
	return tasks, nil
}

// ListArchived returns archived tasks most recently updated first.
func (s *Service) ListArchived(ctx context.Context) ([]task.Task, error) {
	if tasks, ok := s.cachedList(ctx, cache.KeyArchived); ok {
		return tasks, nil
	}

	tasks, err := s.repo.ListArchived(ctx)
	if err != nil {
		return nil, err
	}
	s.storeList(ctx, cache.KeyArchived, tasks)
	return tasks, nil
}

// Update applies a full edit-form save to an existing task.
func (s *Service) Update(ctx context.Context, id string, fields task.Fields, actor string) (*task.Task, error) {
	return s.mutate(ctx, id, task.EditTask{Fields: fields, Actor: actor})
}

// Patch merges a partial field set into an existing task.
func (s *Service) Patch(ctx context.Context, id string, patch task.Patch, actor string) (*task.Task, error) {
	return s.mutate(ctx, id, task.PatchTask{Patch: patch, Actor: actor})
}

// Move changes only the status of a task. Moving a task onto its
// current column returns the stored snapshot without touching the
// store, so updated_at is left alone.
func (s *Service) Move(ctx context.Context, id string, status task.Status, actor string) (*task.Task, error) {
	return s.mutate(ctx, id, task.MoveTask{Status: status, Actor: actor})
}

// Restore brings an archived task back to the todo column.
func (s *Service) Restore(ctx context.Context, id string, actor string) (*task.Task, error) {
	return s.mutate(ctx, id, task.RestoreTask{Actor: actor})
}

// mutate is the shared read-modify-write path for snapshot-dependent
// intents: fetch the current row, resolve, persist only when the
// resolution changed anything.
func (s *Service) mutate(ctx context.Context, id string, intent task.Intent) (*task.Task, error) {
	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	res, err := task.Resolve(current, intent, s.now())
	if err != nil {
		return nil, err
	}
	if !res.Changed {
		return current, nil
	}

	updated, err := s.repo.Update(ctx, &res.Task)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return updated, nil
}

// ArchiveCompleted bulk-archives every completed, unarchived task.
func (s *Service) ArchiveCompleted(ctx context.Context) error {
	if err := s.repo.ArchiveCompleted(ctx); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

// Delete removes a task and its history permanently.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

// Cache access is best-effort: a cache failure never fails the request.

func (s *Service) cachedList(ctx context.Context, key string) ([]task.Task, bool) {
	if s.cache == nil {
		return nil, false
	}
	tasks, found, err := s.cache.GetTasks(ctx, key)
	if err != nil {
		log.Printf("[board] cache read failed for %s: %v", key, err)
		return nil, false
	}
	return tasks, found
}

func (s *Service) storeList(ctx context.Context, key string, tasks []task.Task) {
	if s.cache == nil {
		return
	}
	if err := s.cache.SetTasks(ctx, key, tasks); err != nil {
		log.Printf("[board] cache write failed for %s: %v", key, err)
	}
}

func (s *Service) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		log.Printf("[board] cache invalidation failed: %v", err)
	}
}

// withNow overrides the clock, for tests.
func (s *Service) withNow(now func() time.Time) *Service {
	s.now = now
	return s
}
