package task

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrNotFound is returned when no task matches the given id.
var ErrNotFound = errors.New("task not found")

// Repository is the store adapter: every operation targets exactly one
// row, or one predicate in the case of ArchiveCompleted. It owns no
// lifecycle logic.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new task repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Migrate creates or updates the tasks table.
func (r *Repository) Migrate() error {
	return r.db.AutoMigrate(&Task{})
}

// Create inserts a new task, assigning its id when empty. GORM stamps
// created_at and updated_at on insert.
func (r *Repository) Create(ctx context.Context, t *Task) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	if err := r.db.WithContext(ctx).Create(t).Error; err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}
	return nil
}

// FindByID retrieves a task by its id.
func (r *Repository) FindByID(ctx context.Context, id string) (*Task, error) {
	var t Task
	if err := r.db.WithContext(ctx).First(&t, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return &t, nil
}

// List retrieves tasks ordered by creation time descending. When
// includeArchived is false only active rows are returned.
func (r *Repository) List(ctx context.Context, includeArchived bool) ([]Task, error) {
	tasks := make([]Task, 0)
	q := r.db.WithContext(ctx).Order("created_at DESC")
	if !includeArchived {
		q = q.Where("archived = ?", false)
	}
	if err := q.Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// ListArchived retrieves archived tasks ordered by last update
// descending, the order the archive view shows them in.
func (r *Repository) ListArchived(ctx context.Context) ([]Task, error) {
	tasks := make([]Task, 0)
	err := r.db.WithContext(ctx).
		Where("archived = ?", true).
		Order("updated_at DESC").
		Find(&tasks).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list archived tasks: %w", err)
	}
	return tasks, nil
}

// Update persists the resolved field set for an existing task and
// returns the stored row. Select("*") makes GORM write every column,
// including cleared nullable ones like completed_at; id and created_at
// stay immutable and updated_at is stamped by GORM.
func (r *Repository) Update(ctx context.Context, t *Task) (*Task, error) {
	result := r.db.WithContext(ctx).
		Model(&Task{}).
		Where("id = ?", t.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(t)
	if err := result.Error; err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return r.FindByID(ctx, t.ID)
}

// Delete removes a task permanently, history included. There is no
// existence check: deleting a missing id succeeds as a storage no-op.
func (r *Repository) Delete(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).Delete(&Task{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}

// ArchiveCompleted bulk-archives every completed, unarchived task.
// Status and history are left untouched; GORM refreshes updated_at on
// the affected rows.
func (r *Repository) ArchiveCompleted(ctx context.Context) error {
	err := r.db.WithContext(ctx).
		Model(&Task{}).
		Where("status = ? AND archived = ?", StatusCompleted, false).
		Update("archived", true).Error
	if err != nil {
		return fmt.Errorf("failed to archive completed tasks: %w", err)
	}
	return nil
}
