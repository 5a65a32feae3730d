package domain

import "time"

// TaskRecord is the portable form of a task used by export. It carries no id
// or timer state and is accepted back by import.
type TaskRecord struct {
	Title       string     `json:"title" yaml:"title"`
	Description string     `json:"description" yaml:"description"`
	AssignedTo  UserID     `json:"assignedTo" yaml:"assignedTo"`
	Completed   bool       `json:"completed" yaml:"completed"`
	CompletedBy *UserID    `json:"completedBy,omitempty" yaml:"completedBy,omitempty"`
	CompletedAt *time.Time `json:"completedAt,omitempty" yaml:"completedAt,omitempty"`
	Priority    Priority   `json:"priority" yaml:"priority"`
}

// Record converts the task to its portable form.
func (t Task) Record() TaskRecord {
	return TaskRecord{
		Title:       t.Title,
		Description: t.Description,
		AssignedTo:  t.AssignedTo,
		Completed:   t.Completed,
		CompletedBy: t.CompletedBy,
		CompletedAt: t.CompletedAt,
		Priority:    t.Priority,
	}
}
