// Package task holds the task entity, the lifecycle engine and the
// GORM repository backing the board.
package task

import (
	"time"
)

// Status is the board column a task sits in.
type Status string

const (
	StatusTodo      Status = "todo"
	StatusWorking   Status = "working"
	StatusBlocked   Status = "blocked"
	StatusCompleted Status = "completed"
)

// Statuses lists all valid statuses in board column order.
var Statuses = []Status{StatusTodo, StatusWorking, StatusBlocked, StatusCompleted}

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusTodo, StatusWorking, StatusBlocked, StatusCompleted:
		return true
	}
	return false
}

// Priority is the task priority level.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Valid reports whether p is a known priority.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Owner is one of the two fixed identities tasks are assigned to.
type Owner string

const (
	OwnerLead Owner = "lead"
	OwnerDev  Owner = "dev"
)

// Valid reports whether o is a known owner.
func (o Owner) Valid() bool {
	return o == OwnerLead || o == OwnerDev
}

// Task is the sole persisted entity. Labels and History are embedded
// value sequences stored as JSON columns; History is append-only and
// maintained exclusively by the lifecycle engine.
//
// CompletedAt is engine-owned: non-nil iff Status == completed.
// There is no soft delete; Delete removes the row and its history.
type Task struct {
	ID                 string     `gorm:"primarykey;size:36" json:"id"`
	Title              string     `gorm:"size:200;not null" json:"title"`
	Description        string     `gorm:"size:2000" json:"description"`
	Priority           Priority   `gorm:"size:16;not null;default:medium" json:"priority"`
	Labels             []string   `gorm:"serializer:json" json:"labels"`
	Owner              Owner      `gorm:"size:16;not null;default:dev" json:"owner"`
	Status             Status     `gorm:"size:16;not null;default:todo;index" json:"status"`
	StartDate          *string    `gorm:"size:10" json:"start_date"`
	ExpectedCompletion *string    `gorm:"size:10" json:"expected_completion"`
	CompletedAt        *time.Time `json:"completed_at"`
	Archived           bool       `gorm:"not null;default:false;index" json:"archived"`
	History            []string   `gorm:"serializer:json" json:"history"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// TableName returns the table name for the Task model.
func (Task) TableName() string {
	return "tasks"
}
