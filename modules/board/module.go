// Package board is the core domain module: it owns the database
// connection, the task repository and the board service, and exposes
// the board operations as typed request-reply services.
package board

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/FunAdventureBooks/task-manager/domain/task"
)

// Module provides board services as a mono module.
type Module struct {
	db      *gorm.DB
	repo    *task.Repository
	service *Service
	dbPath  string
}

// Compile-time interface checks.
var (
	_ mono.Module                = (*Module)(nil)
	_ mono.ServiceProviderModule = (*Module)(nil)
	_ mono.HealthCheckableModule = (*Module)(nil)
)

// NewModule creates a new board module.
func NewModule(dbPath string) *Module {
	return &Module{
		dbPath: dbPath,
	}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "board"
}

// Start opens the database, runs migrations and builds the service.
func (m *Module) Start(_ context.Context) error {
	// Skip database initialization if the service is already injected (for testing)
	if m.service != nil {
		log.Println("[board] Module started with injected service")
		return nil
	}

	logLevel := logger.Silent
	if os.Getenv("DB_DEBUG") == "true" {
		logLevel = logger.Info
	}

	db, err := gorm.Open(sqlite.Open(m.dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	m.db = db
	m.repo = task.NewRepository(db)

	if err := m.repo.Migrate(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	m.service = NewService(m.repo)

	log.Printf("[board] Module started, database at %s", m.dbPath)
	return nil
}

// SetCache attaches the list cache to the board service. Called by
// main after the cache module connected; the board runs uncached when
// it never is.
func (m *Module) SetCache(c ListCache) {
	if m.service != nil {
		m.service.SetCache(c)
	}
}

// RegisterServices registers the board operations as typed
// request-reply services; the framework prefixes the names with
// "services.board.".
func (m *Module) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container, "create", json.Unmarshal, json.Marshal, m.handleCreate,
	); err != nil {
		return fmt.Errorf("failed to register create service: %w", err)
	}
	if err := helper.RegisterTypedRequestReplyService(
		container, "get", json.Unmarshal, json.Marshal, m.handleGet,
	); err != nil {
		return fmt.Errorf("failed to register get service: %w", err)
	}
	if err := helper.RegisterTypedRequestReplyService(
		container, "list", json.Unmarshal, json.Marshal, m.handleList,
	); err != nil {
		return fmt.Errorf("failed to register list service: %w", err)
	}
	if err := helper.RegisterTypedRequestReplyService(
		container, "list-archived", json.Unmarshal, json.Marshal, m.handleListArchived,
	); err != nil {
		return fmt.Errorf("failed to register list-archived service: %w", err)
	}
	if err := helper.RegisterTypedRequestReplyService(
		container, "update", json.Unmarshal, json.Marshal, m.handleUpdate,
	); err != nil {
		return fmt.Errorf("failed to register update service: %w", err)
	}
	if err := helper.RegisterTypedRequestReplyService(
		container, "patch", json.Unmarshal, json.Marshal, m.handlePatch,
	); err != nil {
		return fmt.Errorf("failed to register patch service: %w", err)
	}
	if err := helper.RegisterTypedRequestReplyService(
		container, "move", json.Unmarshal, json.Marshal, m.handleMove,
	); err != nil {
		return fmt.Errorf("failed to register move service: %w", err)
	}
	if err := helper.RegisterTypedRequestReplyService(
		container, "archive-completed", json.Unmarshal, json.Marshal, m.handleArchiveCompleted,
	); err != nil {
		return fmt.Errorf("failed to register archive-completed service: %w", err)
	}
	if err := helper.RegisterTypedRequestReplyService(
		container, "restore", json.Unmarshal, json.Marshal, m.handleRestore,
	); err != nil {
		return fmt.Errorf("failed to register restore service: %w", err)
	}
	if err := helper.RegisterTypedRequestReplyService(
		container, "delete", json.Unmarshal, json.Marshal, m.handleDelete,
	); err != nil {
		return fmt.Errorf("failed to register delete service: %w", err)
	}

	log.Printf("[board] Registered services: services.board.{create,get,list,list-archived,update,patch,move,archive-completed,restore,delete}")
	return nil
}

// Stop closes the database connection.
func (m *Module) Stop(_ context.Context) error {
	if m.db != nil {
		sqlDB, err := m.db.DB()
		if err == nil {
			sqlDB.Close()
		}
	}
	log.Println("[board] Module stopped")
	return nil
}

// Health reports database connectivity.
func (m *Module) Health(ctx context.Context) mono.HealthStatus {
	if m.db == nil {
		return mono.HealthStatus{Healthy: false, Message: "database not initialized"}
	}
	sqlDB, err := m.db.DB()
	if err != nil {
		return mono.HealthStatus{Healthy: false, Message: fmt.Sprintf("failed to get sql.DB: %v", err)}
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return mono.HealthStatus{Healthy: false, Message: fmt.Sprintf("database ping failed: %v", err)}
	}
	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"driver": "sqlite",
			"path":   m.dbPath,
		},
	}
}

// GetService returns the board service.
func (m *Module) GetService() *Service {
	return m.service
}

// Typed request-reply handlers delegating to the service.

func (m *Module) handleCreate(ctx context.Context, req CreateTaskRequest, _ *mono.Msg) (task.Task, error) {
	created, err := m.service.Create(ctx, req.Fields, req.Actor)
	if err != nil {
		return task.Task{}, err
	}
	return *created, nil
}

func (m *Module) handleGet(ctx context.Context, req GetTaskRequest, _ *mono.Msg) (task.Task, error) {
	found, err := m.service.Get(ctx, req.ID)
	if err != nil {
		return task.Task{}, err
	}
	return *found, nil
}

func (m *Module) handleList(ctx context.Context, req ListTasksRequest, _ *mono.Msg) (ListTasksResponse, error) {
	tasks, err := m.service.List(ctx, req.IncludeArchived)
	if err != nil {
		return ListTasksResponse{}, err
	}
	return ListTasksResponse{Tasks: tasks, Total: len(tasks)}, nil
}

func (m *Module) handleListArchived(ctx context.Context, _ ListArchivedRequest, _ *mono.Msg) (ListTasksResponse, error) {
	tasks, err := m.service.ListArchived(ctx)
	if err != nil {
		return ListTasksResponse{}, err
	}
	return ListTasksResponse{Tasks: tasks, Total: len(tasks)}, nil
}

func (m *Module) handleUpdate(ctx context.Context, req UpdateTaskRequest, _ *mono.Msg) (task.Task, error) {
	updated, err := m.service.Update(ctx, req.ID, req.Fields, req.Actor)
	if err != nil {
		return task.Task{}, err
	}
	return *updated, nil
}

func (m *Module) handlePatch(ctx context.Context, req PatchTaskRequest, _ *mono.Msg) (task.Task, error) {
	updated, err := m.service.Patch(ctx, req.ID, req.Patch, req.Actor)
	if err != nil {
		return task.Task{}, err
	}
	return *updated, nil
}

func (m *Module) handleMove(ctx context.Context, req MoveTaskRequest, _ *mono.Msg) (task.Task, error) {
	moved, err := m.service.Move(ctx, req.ID, req.Status, req.Actor)
	if err != nil {
		return task.Task{}, err
	}
	return *moved, nil
}

func (m *Module) handleArchiveCompleted(ctx context.Context, _ ArchiveCompletedRequest, _ *mono.Msg) (ArchiveCompletedResponse, error) {
	if err := m.service.ArchiveCompleted(ctx); err != nil {
		return ArchiveCompletedResponse{}, err
	}
	return ArchiveCompletedResponse{OK: true}, nil
}

func (m *Module) handleRestore(ctx context.Context, req RestoreTaskRequest, _ *mono.Msg) (task.Task, error) {
	restored, err := m.service.Restore(ctx, req.ID, req.Actor)
	if err != nil {
		return task.Task{}, err
	}
	return *restored, nil
}

func (m *Module) handleDelete(ctx context.Context, req DeleteTaskRequest, _ *mono.Msg) (DeleteTaskResponse, error) {
	if err := m.service.Delete(ctx, req.ID); err != nil {
		return DeleteTaskResponse{Deleted: false, ID: req.ID}, err
	}
	return DeleteTaskResponse{Deleted: true, ID: req.ID}, nil
}
