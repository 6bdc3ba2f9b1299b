package task

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB creates an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(&Task{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

func seedTask(t *testing.T, db *gorm.DB, mutate func(*Task)) *Task {
	t.Helper()

	task := &Task{
		ID:       uuid.New().String(),
		Title:    "Seed task",
		Priority: PriorityMedium,
		Labels:   []string{},
		Owner:    OwnerDev,
		Status:   StatusTodo,
		History:  []string{"Created on Sat Mar 01 2025"},
	}
	if mutate != nil {
		mutate(task)
	}
	if err := db.Create(task).Error; err != nil {
		t.Fatalf("failed to seed task: %v", err)
	}
	return task
}

func TestRepository_CreateAndFind(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	task := &Task{
		Title:    "Ship the board",
		Priority: PriorityHigh,
		Labels:   []string{"infra", "infra"},
		Owner:    OwnerLead,
		Status:   StatusTodo,
		History:  []string{"Created on Mon Mar 03 2025"},
	}

	if err := repo.Create(ctx, task); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if task.ID == "" {
		t.Fatal("Create() should assign an id")
	}
	if task.CreatedAt.IsZero() || task.UpdatedAt.IsZero() {
		t.Error("Create() should stamp created_at and updated_at")
	}

	found, err := repo.FindByID(ctx, task.ID)
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	if found.Title != task.Title {
		t.Errorf("title = %q, want %q", found.Title, task.Title)
	}
	// duplicate labels survive round-tripping, no dedup
	if len(found.Labels) != 2 || found.Labels[0] != "infra" || found.Labels[1] != "infra" {
		t.Errorf("labels = %v, want duplicates preserved", found.Labels)
	}
	if len(found.History) != 1 {
		t.Errorf("history = %v, want one entry", found.History)
	}
}

func TestRepository_FindByID_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)

	_, err := repo.FindByID(context.Background(), "missing-id")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestRepository_List(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	older := seedTask(t, db, func(task *Task) {
		task.Title = "Older active"
		task.CreatedAt = time.Now().Add(-2 * time.Hour)
	})
	newer := seedTask(t, db, func(task *Task) {
		task.Title = "Newer active"
		task.CreatedAt = time.Now().Add(-1 * time.Hour)
	})
	archived := seedTask(t, db, func(task *Task) {
		task.Title = "Archived"
		task.Archived = true
		task.CreatedAt = time.Now()
	})

	t.Run("active only", func(t *testing.T) {
		tasks, err := repo.List(ctx, false)
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		if len(tasks) != 2 {
			t.Fatalf("got %d tasks, want 2", len(tasks))
		}
		if tasks[0].ID != newer.ID || tasks[1].ID != older.ID {
			t.Errorf("order = [%s %s], want newest first", tasks[0].Title, tasks[1].Title)
		}
	})

	t.Run("include archived", func(t *testing.T) {
		tasks, err := repo.List(ctx, true)
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		if len(tasks) != 3 {
			t.Fatalf("got %d tasks, want 3", len(tasks))
		}
		if tasks[0].ID != archived.ID {
			t.Errorf("first = %s, want newest created", tasks[0].Title)
		}
	})

	t.Run("empty database returns empty slice", func(t *testing.T) {
		empty := setupTestDB(t)
		tasks, err := NewRepository(empty).List(ctx, false)
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		if tasks == nil || len(tasks) != 0 {
			t.Errorf("tasks = %v, want non-nil empty slice", tasks)
		}
	})
}

func TestRepository_ListArchived(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	seedTask(t, db, func(task *Task) { task.Title = "Active" })
	staler := seedTask(t, db, func(task *Task) {
		task.Title = "Archived earlier"
		task.Archived = true
		task.UpdatedAt = time.Now().Add(-2 * time.Hour)
	})
	fresher := seedTask(t, db, func(task *Task) {
		task.Title = "Archived later"
		task.Archived = true
		task.UpdatedAt = time.Now().Add(-1 * time.Hour)
	})

	tasks, err := repo.ListArchived(ctx)
	if err != nil {
		t.Fatalf("ListArchived() error = %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("got %d tasks, want 2", len(tasks))
	}
	if tasks[0].ID != fresher.ID || tasks[1].ID != staler.ID {
		t.Errorf("order = [%s %s], want most recently updated first", tasks[0].Title, tasks[1].Title)
	}
}

func TestRepository_Update(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	t.Run("persists cleared completed_at", func(t *testing.T) {
		stamp := time.Now().Add(-time.Hour)
		task := seedTask(t, db, func(task *Task) {
			task.Status = StatusCompleted
			task.CompletedAt = &stamp
		})

		task.Status = StatusWorking
		task.CompletedAt = nil
		task.History = append(task.History, "Moved to working on Mon Mar 03 2025")

		updated, err := repo.Update(ctx, task)
		if err != nil {
			t.Fatalf("Update() error = %v", err)
		}
		if updated.CompletedAt != nil {
			t.Errorf("completed_at = %v, want cleared", updated.CompletedAt)
		}
		if updated.Status != StatusWorking {
			t.Errorf("status = %q, want working", updated.Status)
		}
		if len(updated.History) != 2 {
			t.Errorf("history = %v, want appended entry persisted", updated.History)
		}
	})

	t.Run("refreshes updated_at", func(t *testing.T) {
		task := seedTask(t, db, func(task *Task) {
			task.UpdatedAt = time.Now().Add(-time.Hour)
		})
		before := task.UpdatedAt

		task.Description = "touched"
		updated, err := repo.Update(ctx, task)
		if err != nil {
			t.Fatalf("Update() error = %v", err)
		}
		if !updated.UpdatedAt.After(before) {
			t.Errorf("updated_at = %v, want refreshed past %v", updated.UpdatedAt, before)
		}
	})

	t.Run("missing id", func(t *testing.T) {
		_, err := repo.Update(ctx, &Task{ID: "missing-id", Title: "ghost"})
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("error = %v, want ErrNotFound", err)
		}
	})
}

func TestRepository_Delete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	task := seedTask(t, db, nil)

	if err := repo.Delete(ctx, task.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := repo.FindByID(ctx, task.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("error after delete = %v, want ErrNotFound", err)
	}

	// hard delete, no row left behind
	var count int64
	if err := db.Model(&Task{}).Where("id = ?", task.ID).Count(&count).Error; err != nil {
		t.Fatalf("count error = %v", err)
	}
	if count != 0 {
		t.Errorf("row count = %d, want 0", count)
	}

	// deleting a missing id succeeds, no existence check
	if err := repo.Delete(ctx, "missing-id"); err != nil {
		t.Errorf("Delete(missing) error = %v, want nil", err)
	}
}

func TestRepository_ArchiveCompleted(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	stamp := time.Now()
	a := seedTask(t, db, func(task *Task) {
		task.Title = "A"
		task.Status = StatusCompleted
		task.CompletedAt = &stamp
	})
	b := seedTask(t, db, func(task *Task) {
		task.Title = "B"
		task.Status = StatusCompleted
		task.CompletedAt = &stamp
		task.Archived = true
	})
	c := seedTask(t, db, func(task *Task) {
		task.Title = "C"
		task.Status = StatusTodo
	})

	if err := repo.ArchiveCompleted(ctx); err != nil {
		t.Fatalf("ArchiveCompleted() error = %v", err)
	}

	checks := []struct {
		id           string
		wantArchived bool
		wantStatus   Status
	}{
		{a.ID, true, StatusCompleted},
		{b.ID, true, StatusCompleted},
		{c.ID, false, StatusTodo},
	}
	for _, check := range checks {
		got, err := repo.FindByID(ctx, check.id)
		if err != nil {
			t.Fatalf("FindByID(%s) error = %v", check.id, err)
		}
		if got.Archived != check.wantArchived {
			t.Errorf("%s archived = %v, want %v", got.Title, got.Archived, check.wantArchived)
		}
		if got.Status != check.wantStatus {
			t.Errorf("%s status = %q, want %q", got.Title, got.Status, check.wantStatus)
		}
		if len(got.History) != 1 {
			t.Errorf("%s history = %v, want untouched", got.Title, got.History)
		}
	}
}
