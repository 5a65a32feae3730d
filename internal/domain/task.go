package domain

import (
	"errors"
	"time"
)

var (
	// ErrTaskCompleted is returned when a timer is started on a completed task.
	ErrTaskCompleted = errors.New("task is completed")
	// ErrTimerNotRunning is returned when pausing a task whose timer is stopped.
	ErrTimerNotRunning = errors.New("timer is not running")
)

// Task represents a task in the domain model.
// This is a pure domain model without database-specific concerns.
//
// StartTime is non-nil exactly while the timer runs, and never on a completed task.
type Task struct {
	ID          string
	Title       string
	Description string
	AssignedTo  UserID
	Completed   bool
	CompletedBy *UserID
	CompletedAt *time.Time
	StartTime   *time.Time
	TimeSpent   time.Duration
	Priority    Priority
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TaskDraft holds the caller-supplied fields of a task that does not exist yet.
type TaskDraft struct {
	Title       string
	Description string
	AssignedTo  UserID
	Priority    Priority
}

// TaskUpdate is a partial edit. Nil fields are left unchanged.
type TaskUpdate struct {
	Title       *string
	Description *string
	Priority    *Priority
}

// IsEmpty reports whether the update changes nothing.
func (u TaskUpdate) IsEmpty() bool {
	return u.Title == nil && u.Description == nil && u.Priority == nil
}

// NewTask creates an idle, incomplete task from a draft.
func NewTask(id string, draft TaskDraft, now time.Time) Task {
	return Task{
		ID:          id,
		Title:       draft.Title,
		Description: draft.Description,
		AssignedTo:  draft.AssignedTo,
		Priority:    draft.Priority,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// IsRunning returns true if the timer is currently running.
func (t Task) IsRunning() bool {
	return t.StartTime != nil
}

// IsOwnedBy reports whether the task is assigned to user.
func (t Task) IsOwnedBy(user UserID) bool {
	return t.AssignedTo == user
}

// Elapsed returns the accumulated time plus the running interval up to now.
func (t Task) Elapsed(now time.Time) time.Duration {
	return t.TimeSpent + t.running(now)
}

func (t Task) running(now time.Time) time.Duration {
	if t.StartTime == nil {
		return 0
	}
	d := now.Sub(*t.StartTime)
	if d < 0 {
		return 0
	}
	return d
}

// Fold adds the running interval to TimeSpent and stops the timer.
func (t *Task) Fold(now time.Time) {
	t.TimeSpent += t.running(now)
	t.StartTime = nil
}

// Start begins timing at now. A timer that is already running is folded first.
func (t *Task) Start(now time.Time) error {
	if t.Completed {
		return ErrTaskCompleted
	}
	t.Fold(now)
	start := now
	t.StartTime = &start
	return nil
}

// Pause stops the timer and keeps the elapsed time.
func (t *Task) Pause(now time.Time) error {
	if !t.IsRunning() {
		return ErrTimerNotRunning
	}
	t.Fold(now)
	return nil
}

// Complete marks the task done by user. Completing again refreshes who and when.
func (t *Task) Complete(by UserID, now time.Time) {
	t.Fold(now)
	completedBy := by
	completedAt := now
	t.Completed = true
	t.CompletedBy = &completedBy
	t.CompletedAt = &completedAt
}

// Undo reopens a completed task. The timer stays stopped.
func (t *Task) Undo(now time.Time) {
	t.Fold(now)
	t.Completed = false
	t.CompletedBy = nil
	t.CompletedAt = nil
}

// TransferTo reassigns the task and stops its timer.
func (t *Task) TransferTo(to UserID, now time.Time) {
	t.Fold(now)
	t.AssignedTo = to
}

// Apply copies the set fields of u onto the task. Timer and completion state are untouched.
func (t *Task) Apply(u TaskUpdate) {
	if u.Title != nil {
		t.Title = *u.Title
	}
	if u.Description != nil {
		t.Description = *u.Description
	}
	if u.Priority != nil {
		t.Priority = *u.Priority
	}
}

// ResetTimer discards all tracked time.
func (t *Task) ResetTimer() {
	t.TimeSpent = 0
	t.StartTime = nil
}

// String returns the task title for display purposes.
func (t Task) String() string {
	return t.Title
}
