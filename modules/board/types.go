package board

import (
	"github.com/FunAdventureBooks/task-manager/domain/task"
)

// Request/response payloads for the board's typed request-reply
// services. The Task entity itself is the response shape everywhere:
// its JSON form is the wire format both HTTP surfaces return.

// CreateTaskRequest is the request for creating a task.
type CreateTaskRequest struct {
	task.Fields
	Actor string `json:"actor,omitempty"`
}

// GetTaskRequest is the request for fetching a task by id.
type GetTaskRequest struct {
	ID string `json:"id"`
}

// ListTasksRequest is the request for listing board tasks.
type ListTasksRequest struct {
	IncludeArchived bool `json:"include_archived"`
}

// ListArchivedRequest is the request for listing the archive view.
type ListArchivedRequest struct{}

// ListTasksResponse is the response containing a list of tasks.
type ListTasksResponse struct {
	Tasks []task.Task `json:"tasks"`
	Total int         `json:"total"`
}

// UpdateTaskRequest is a full edit-form save of an existing task.
type UpdateTaskRequest struct {
	ID string `json:"id"`
	task.Fields
	Actor string `json:"actor,omitempty"`
}

// PatchTaskRequest merges a partial field set into an existing task.
type PatchTaskRequest struct {
	ID    string     `json:"id"`
	Patch task.Patch `json:"patch"`
	Actor string     `json:"actor,omitempty"`
}

// MoveTaskRequest is a status-only move.
type MoveTaskRequest struct {
	ID     string      `json:"id"`
	Status task.Status `json:"status"`
	Actor  string      `json:"actor,omitempty"`
}

// ArchiveCompletedRequest triggers the bulk archive action.
type ArchiveCompletedRequest struct{}

// ArchiveCompletedResponse acknowledges the bulk archive action.
type ArchiveCompletedResponse struct {
	OK bool `json:"ok"`
}

// RestoreTaskRequest brings an archived task back to the board.
type RestoreTaskRequest struct {
	ID    string `json:"id"`
	Actor string `json:"actor,omitempty"`
}

// DeleteTaskRequest is the request for deleting a task.
type DeleteTaskRequest struct {
	ID string `json:"id"`
}

// DeleteTaskResponse is the response after deleting a task.
type DeleteTaskResponse struct {
	Deleted bool   `json:"deleted"`
	ID      string `json:"id"`
}
