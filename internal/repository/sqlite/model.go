package sqlite

import "time"

// Task is a row of the tasks table.
type Task struct {
	ID          string
	Title       string
	Description string
	AssignedTo  string
	Completed   bool
	CompletedBy *string
	CompletedAt *time.Time
	StartTime   *time.Time // NULL while the timer is stopped
	TimeSpentMS int64
	Priority    int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// User is a row of the users table.
type User struct {
	ID   string
	Name string
}
