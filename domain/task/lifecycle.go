package task

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Validation errors returned by Resolve.
var (
	ErrTitleRequired  = errors.New("title is required")
	ErrNoSnapshot     = errors.New("task snapshot is required")
	ErrUnknownStatus  = errors.New("unknown status")
	ErrUnknownOwner   = errors.New("unknown owner")
	ErrUnknownLevel   = errors.New("unknown priority")
	ErrUnexpectedSnap = errors.New("create intent takes no snapshot")
)

// Fields is the full field set carried by the create/edit form.
type Fields struct {
	Title              string   `json:"title"`
	Description        string   `json:"description"`
	Priority           Priority `json:"priority"`
	Labels             []string `json:"labels"`
	Owner              Owner    `json:"owner"`
	Status             Status   `json:"status"`
	StartDate          *string  `json:"start_date"`
	ExpectedCompletion *string  `json:"expected_completion"`
}

// Patch is a partial field set; nil pointers mean "leave unchanged".
// CompletedAt, Archived and History are engine-owned and deliberately
// absent: callers can never write them directly.
type Patch struct {
	Title              *string   `json:"title"`
	Description        *string   `json:"description"`
	Priority           *Priority `json:"priority"`
	Labels             []string  `json:"labels"`
	Owner              *Owner    `json:"owner"`
	Status             *Status   `json:"status"`
	StartDate          *string   `json:"start_date"`
	ExpectedCompletion *string   `json:"expected_completion"`
}

// Intent is a tagged mutation request consumed by Resolve. Using a
// closed set of intent types keeps every entry point (edit form, board
// drag-and-drop, programmatic API, restore) on the same resolution
// logic with exhaustive handling.
type Intent interface {
	intent()
}

// CreateTask creates a new task from form or API input.
type CreateTask struct {
	Fields Fields
	Actor  string
}

// EditTask is a full edit-form save of an existing task.
type EditTask struct {
	Fields Fields
	Actor  string
}

// MoveTask is a status-only move (board drag-and-drop).
type MoveTask struct {
	Status Status
	Actor  string
}

// PatchTask merges a partial field set (programmatic API update).
type PatchTask struct {
	Patch Patch
	Actor string
}

// RestoreTask brings an archived task back to the board.
type RestoreTask struct {
	Actor string
}

func (CreateTask) intent()  {}
func (EditTask) intent()    {}
func (MoveTask) intent()    {}
func (PatchTask) intent()   {}
func (RestoreTask) intent() {}

// Resolution is the outcome of resolving an intent against a snapshot.
// When Changed is false the caller must not persist anything: the
// no-op move guard short-circuits before any store call, so updated_at
// stays untouched.
type Resolution struct {
	Changed bool
	Task    Task
}

// Resolve computes the field set to persist for the given intent.
// It is a pure function of (snapshot, intent, now): every entry point
// invokes it identically, which is what keeps status, completed_at and
// the append-only history consistent across the edit form, the board
// and the programmatic API.
func Resolve(current *Task, intent Intent, now time.Time) (Resolution, error) {
	switch in := intent.(type) {
	case CreateTask:
		if current != nil {
			return Resolution{}, ErrUnexpectedSnap
		}
		return resolveCreate(in, now)
	case EditTask:
		if current == nil {
			return Resolution{}, ErrNoSnapshot
		}
		return resolveEdit(*current, in, now)
	case MoveTask:
		if current == nil {
			return Resolution{}, ErrNoSnapshot
		}
		return resolveMove(*current, in, now)
	case PatchTask:
		if current == nil {
			return Resolution{}, ErrNoSnapshot
		}
		return resolvePatch(*current, in, now)
	case RestoreTask:
		if current == nil {
			return Resolution{}, ErrNoSnapshot
		}
		return resolveRestore(*current, in, now)
	default:
		return Resolution{}, fmt.Errorf("unsupported intent %T", intent)
	}
}

func resolveCreate(in CreateTask, now time.Time) (Resolution, error) {
	f := in.Fields
	title := strings.TrimSpace(f.Title)
	if title == "" {
		return Resolution{}, ErrTitleRequired
	}

	// Defaults for omitted enum fields.
	if f.Priority == "" {
		f.Priority = PriorityMedium
	}
	if f.Owner == "" {
		f.Owner = OwnerDev
	}
	if f.Status == "" {
		f.Status = StatusTodo
	}
	if err := validateEnums(f.Priority, f.Owner, f.Status); err != nil {
		return Resolution{}, err
	}

	labels := f.Labels
	if labels == nil {
		labels = []string{}
	}

	t := Task{
		Title:              title,
		Description:        f.Description,
		Priority:           f.Priority,
		Labels:             labels,
		Owner:              f.Owner,
		Status:             f.Status,
		StartDate:          f.StartDate,
		ExpectedCompletion: f.ExpectedCompletion,
		Archived:           false,
		History:            appendEvent(nil, Event{Kind: EventCreated, Actor: in.Actor, At: now}),
	}
	if f.Status == StatusCompleted {
		completedAt := now
		t.CompletedAt = &completedAt
	}
	return Resolution{Changed: true, Task: t}, nil
}

func resolveEdit(current Task, in EditTask, now time.Time) (Resolution, error) {
	f := in.Fields
	title := strings.TrimSpace(f.Title)
	if title == "" {
		return Resolution{}, ErrTitleRequired
	}
	if f.Priority == "" {
		f.Priority = current.Priority
	}
	if f.Owner == "" {
		f.Owner = current.Owner
	}
	if f.Status == "" {
		f.Status = current.Status
	}
	if err := validateEnums(f.Priority, f.Owner, f.Status); err != nil {
		return Resolution{}, err
	}

	next := current
	next.Title = title
	next.Description = f.Description
	next.Priority = f.Priority
	next.Owner = f.Owner
	next.StartDate = f.StartDate
	next.ExpectedCompletion = f.ExpectedCompletion
	if f.Labels != nil {
		next.Labels = f.Labels
	}
	next.Status = f.Status

	// Edit saves preserve an already-set completion stamp when the
	// task stays completed; a fresh transition into completed stamps
	// now and leaving completed always clears.
	next.CompletedAt = editCompletedAt(current.Status, f.Status, current.CompletedAt, now)

	// Deterministic append order: the status entry (when the status
	// actually changed) comes first, then the edit entry. A full edit
	// save always appends the edit entry, even when nothing changed.
	history := current.History
	if f.Status != current.Status {
		history = appendEvent(history, Event{Kind: EventMoved, Status: f.Status, Actor: in.Actor, At: now})
	}
	next.History = appendEvent(history, Event{Kind: EventEdited, Actor: in.Actor, At: now})

	return Resolution{Changed: true, Task: next}, nil
}

func resolveMove(current Task, in MoveTask, now time.Time) (Resolution, error) {
	if !in.Status.Valid() {
		return Resolution{}, fmt.Errorf("%w: %q", ErrUnknownStatus, in.Status)
	}

	// No-op guard: moving a task onto its current column appends no
	// history and skips persistence entirely.
	if in.Status == current.Status {
		return Resolution{Changed: false, Task: current}, nil
	}

	next := current
	next.Status = in.Status
	next.CompletedAt = moveCompletedAt(in.Status, now)
	next.History = appendEvent(current.History, Event{Kind: EventMoved, Status: in.Status, Actor: in.Actor, At: now})
	return Resolution{Changed: true, Task: next}, nil
}

func resolvePatch(current Task, in PatchTask, now time.Time) (Resolution, error) {
	p := in.Patch
	next := current

	if p.Title != nil {
		title := strings.TrimSpace(*p.Title)
		if title == "" {
			return Resolution{}, ErrTitleRequired
		}
		next.Title = title
	}
	if p.Description != nil {
		next.Description = *p.Description
	}
	if p.Priority != nil {
		if !p.Priority.Valid() {
			return Resolution{}, fmt.Errorf("%w: %q", ErrUnknownLevel, *p.Priority)
		}
		next.Priority = *p.Priority
	}
	if p.Labels != nil {
		next.Labels = p.Labels
	}
	if p.Owner != nil {
		if !p.Owner.Valid() {
			return Resolution{}, fmt.Errorf("%w: %q", ErrUnknownOwner, *p.Owner)
		}
		next.Owner = *p.Owner
	}
	if p.StartDate != nil {
		next.StartDate = p.StartDate
	}
	if p.ExpectedCompletion != nil {
		next.ExpectedCompletion = p.ExpectedCompletion
	}

	if p.Status != nil {
		if !p.Status.Valid() {
			return Resolution{}, fmt.Errorf("%w: %q", ErrUnknownStatus, *p.Status)
		}
		if *p.Status != current.Status {
			next.Status = *p.Status
			next.CompletedAt = moveCompletedAt(*p.Status, now)
			next.History = appendEvent(current.History, Event{Kind: EventMoved, Status: *p.Status, Actor: in.Actor, At: now})
		}
	}

	// A patch always persists (updated_at refreshed), even when the
	// supplied status equals the stored one.
	return Resolution{Changed: true, Task: next}, nil
}

func resolveRestore(current Task, in RestoreTask, now time.Time) (Resolution, error) {
	next := current
	next.Archived = false
	next.Status = StatusTodo
	next.CompletedAt = nil
	next.History = appendEvent(current.History, Event{Kind: EventRestored, Actor: in.Actor, At: now})
	return Resolution{Changed: true, Task: next}, nil
}

// moveCompletedAt derives the completion stamp for a status-only
// transition: into completed always stamps fresh, anything else clears.
// Caller input is never trusted for this value.
func moveCompletedAt(next Status, now time.Time) *time.Time {
	if next == StatusCompleted {
		completedAt := now
		return &completedAt
	}
	return nil
}

// editCompletedAt derives the completion stamp for a full edit save:
// an already-completed task keeps its existing stamp.
func editCompletedAt(prev, next Status, prevCompletedAt *time.Time, now time.Time) *time.Time {
	if next != StatusCompleted {
		return nil
	}
	if prev == StatusCompleted && prevCompletedAt != nil {
		return prevCompletedAt
	}
	completedAt := now
	return &completedAt
}

func validateEnums(p Priority, o Owner, s Status) error {
	if !p.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownLevel, p)
	}
	if !o.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownOwner, o)
	}
	if !s.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownStatus, s)
	}
	return nil
}
