package task

import (
	"fmt"
	"time"
)

// EventKind identifies the kind of audit event appended to a task's history.
type EventKind string

const (
	EventCreated  EventKind = "created"
	EventEdited   EventKind = "edited"
	EventMoved    EventKind = "moved"
	EventRestored EventKind = "restored"
)

// eventDateLayout renders date-only granularity using the actor's
// local calendar date, e.g. "Mon Jan 02 2006".
const eventDateLayout = "Mon Jan 02 2006"

// Event is a structured history entry. The audit data is kept
// structured here and rendered to the stored display string in exactly
// one place, so wording and date formatting never diverge between the
// board, the edit form and the programmatic API.
type Event struct {
	Kind   EventKind
	Status Status // destination status, set for EventMoved only
	Actor  string // empty for interactive-client mutations
	At     time.Time
}

// String renders the event to the display form stored in Task.History.
func (e Event) String() string {
	date := e.At.Format(eventDateLayout)
	var action string
	switch e.Kind {
	case EventCreated:
		action = "Created"
	case EventEdited:
		action = "Edited"
	case EventMoved:
		action = fmt.Sprintf("Moved to %s", e.Status)
	case EventRestored:
		action = "Restored"
	default:
		action = string(e.Kind)
	}
	if e.Actor != "" {
		return fmt.Sprintf("%s by %s on %s", action, e.Actor, date)
	}
	return fmt.Sprintf("%s on %s", action, date)
}

// appendEvent returns a fresh slice with the rendered event appended.
// History slices are never mutated in place so a resolution cannot
// alter the snapshot it was derived from.
func appendEvent(history []string, e Event) []string {
	out := make([]string, 0, len(history)+1)
	out = append(out, history...)
	return append(out, e.String())
}
