package task

import (
	"fmt"
	"strings"
	"time"
)

// DefaultReminderDays is the lookahead window for flagging a task as due
// soon when no explicit window is configured.
const DefaultReminderDays = 3

// farFuture stands in for a missing date so that unscheduled tasks never
// classify as overdue or due soon.
var farFuture = time.Date(9999, time.December, 31, 23, 59, 59, 0, time.UTC)

// ValidationError reports a rejected field on task construction.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Notifier receives a callback whenever a recomputation flips a task's
// overdue or due-soon flag. The HTTP layer does not use it; it exists so a
// display layer can subscribe to due-state changes without the entity
// knowing anything about rendering.
type Notifier interface {
	DueStateChanged(t *Task)
}

// Task is a unit of work with an optional schedule. Overdue and DueSoon are
// derived from Done, Date, Time and the clock; they are recomputed before
// display and never persisted.
type Task struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Date      *Date     `json:"date,omitempty"`
	Time      *Clock    `json:"time,omitempty"`
	Venue     string    `json:"venue,omitempty"`
	Done      bool      `json:"done"`
	Overdue   bool      `json:"overdue"`
	DueSoon   bool      `json:"due_soon"`
	CreatedAt time.Time `json:"created_at"`

	notify Notifier
}

// New creates a task. Name must be non-blank; date, clock and venue are
// optional and absent when nil or empty. Due-state flags are computed
// against the current clock with the default reminder window.
func New(name string, date *Date, clock *Clock, venue string) (*Task, error) {
	if strings.TrimSpace(name) == "" {
		return nil, &ValidationError{Field: "name", Message: "name is required"}
	}
	t := &Task{
		Name:  name,
		Date:  date,
		Time:  clock,
		Venue: venue,
	}
	t.RecomputeDueState(time.Now(), DefaultReminderDays)
	return t, nil
}

// NewPlaceholder creates an unscheduled task carrying only a name. It has
// no date, time or venue and never classifies as overdue or due soon.
func NewPlaceholder(name string) (*Task, error) {
	return New(name, nil, nil, "")
}

// MarkDone marks the task completed. Callers recompute due state afterwards.
func (t *Task) MarkDone() { t.Done = true }

// MarkNotDone reopens the task. Callers recompute due state afterwards.
func (t *Task) MarkNotDone() { t.Done = false }

// SetNotifier registers n to be told about due-state flips. A nil n
// unregisters.
func (t *Task) SetNotifier(n Notifier) { t.notify = n }

// RecomputeDueState reclassifies the task against now. A done task is
// neither overdue nor due soon. Otherwise the due instant is the task's
// date combined with its time (midnight when absent); an absent date pushes
// the due instant into the far future. Before now means overdue; within
// reminderDays days of now means due soon.
func (t *Task) RecomputeDueState(now time.Time, reminderDays int) {
	wasOverdue, wasDueSoon := t.Overdue, t.DueSoon

	if t.Done {
		t.Overdue = false
		t.DueSoon = false
	} else {
		due := t.dueInstant(now)
		switch {
		case due.Before(now):
			t.Overdue = true
			t.DueSoon = false
		case due.Before(now.AddDate(0, 0, reminderDays)):
			t.Overdue = false
			t.DueSoon = true
		default:
			t.Overdue = false
			t.DueSoon = false
		}
	}

	if t.notify != nil && (t.Overdue != wasOverdue || t.DueSoon != wasDueSoon) {
		t.notify.DueStateChanged(t)
	}
}

func (t *Task) dueInstant(now time.Time) time.Time {
	if t.Date == nil {
		return farFuture
	}
	hour, minute := 0, 0
	if t.Time != nil {
		hour, minute = t.Time.Hour, t.Time.Minute
	}
	return time.Date(t.Date.Year, t.Date.Month, t.Date.Day, hour, minute, 0, 0, now.Location())
}

// Clone returns a copy of the task without the notifier registration.
// Repositories hand out clones so callers can mutate freely.
func (t *Task) Clone() *Task {
	c := *t
	c.notify = nil
	if t.Date != nil {
		d := *t.Date
		c.Date = &d
	}
	if t.Time != nil {
		ct := *t.Time
		c.Time = &ct
	}
	return &c
}

func (t *Task) String() string {
	var b strings.Builder
	b.WriteString(t.Name)
	b.WriteString("; Date: ")
	if t.Date != nil {
		b.WriteString(t.Date.String())
	}
	b.WriteString("; Time: ")
	if t.Time != nil {
		b.WriteString(t.Time.String())
	}
	b.WriteString("; Venue: ")
	b.WriteString(t.Venue)
	return b.String()
}
