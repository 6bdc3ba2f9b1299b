package board

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"

	"github.com/FunAdventureBooks/task-manager/domain/task"
)

// BoardPort is the driving-side interface consumed by the HTTP module.
// Both HTTP surfaces go through the same port, so the form, the
// drag-and-drop path and the token API share one lifecycle code path.
type BoardPort interface {
	Create(ctx context.Context, req *CreateTaskRequest) (*task.Task, error)
	Get(ctx context.Context, id string) (*task.Task, error)
	List(ctx context.Context, includeArchived bool) (*ListTasksResponse, error)
	ListArchived(ctx context.Context) (*ListTasksResponse, error)
	Update(ctx context.Context, req *UpdateTaskRequest) (*task.Task, error)
	Patch(ctx context.Context, req *PatchTaskRequest) (*task.Task, error)
	Move(ctx context.Context, req *MoveTaskRequest) (*task.Task, error)
	ArchiveCompleted(ctx context.Context) error
	Restore(ctx context.Context, req *RestoreTaskRequest) (*task.Task, error)
	Delete(ctx context.Context, id string) (*DeleteTaskResponse, error)
}

// boardAdapter wraps the board module's ServiceContainer for type-safe
// cross-module communication.
type boardAdapter struct {
	container mono.ServiceContainer
}

// NewBoardAdapter creates an adapter over the board services.
// container is the ServiceContainer received via SetDependencyServiceContainer.
func NewBoardAdapter(container mono.ServiceContainer) BoardPort {
	if container == nil {
		panic("board adapter requires non-nil ServiceContainer")
	}
	return &boardAdapter{container: container}
}

func call[T any](a *boardAdapter, ctx context.Context, service string, req any, resp *T) error {
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		service,
		json.Marshal,
		json.Unmarshal,
		req,
		resp,
	); err != nil {
		return fmt.Errorf("%s service call failed: %w", service, err)
	}
	return nil
}

func (a *boardAdapter) Create(ctx context.Context, req *CreateTaskRequest) (*task.Task, error) {
	var resp task.Task
	if err := call(a, ctx, "create", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (a *boardAdapter) Get(ctx context.Context, id string) (*task.Task, error) {
	var resp task.Task
	if err := call(a, ctx, "get", &GetTaskRequest{ID: id}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (a *boardAdapter) List(ctx context.Context, includeArchived bool) (*ListTasksResponse, error) {
	var resp ListTasksResponse
	req := ListTasksRequest{IncludeArchived: includeArchived}
	if err := call(a, ctx, "list", &req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (a *boardAdapter) ListArchived(ctx context.Context) (*ListTasksResponse, error) {
	var resp ListTasksResponse
	if err := call(a, ctx, "list-archived", &ListArchivedRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (a *boardAdapter) Update(ctx context.Context, req *UpdateTaskRequest) (*task.Task, error) {
	var resp task.Task
	if err := call(a, ctx, "update", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (a *boardAdapter) Patch(ctx context.Context, req *PatchTaskRequest) (*task.Task, error) {
	var resp task.Task
	if err := call(a, ctx, "patch", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (a *boardAdapter) Move(ctx context.Context, req *MoveTaskRequest) (*task.Task, error) {
	var resp task.Task
	if err := call(a, ctx, "move", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (a *boardAdapter) ArchiveCompleted(ctx context.Context) error {
	var resp ArchiveCompletedResponse
	return call(a, ctx, "archive-completed", &ArchiveCompletedRequest{}, &resp)
}

func (a *boardAdapter) Restore(ctx context.Context, req *RestoreTaskRequest) (*task.Task, error) {
	var resp task.Task
	if err := call(a, ctx, "restore", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (a *boardAdapter) Delete(ctx context.Context, id string) (*DeleteTaskResponse, error) {
	var resp DeleteTaskResponse
	if err := call(a, ctx, "delete", &DeleteTaskRequest{ID: id}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
