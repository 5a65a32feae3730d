package sqlite

import (
	"database/sql"
	"fmt"
)

// Scanner interface defines the common scanning behavior for both sql.Row and sql.Rows
type Scanner interface {
	Scan(dest ...any) error
}

// Rows interface defines the common behavior for sql.Rows
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

const taskColumns = `id, title, description, assigned_to, completed, completed_by, completed_at,
	start_time, time_spent_ms, priority, created_at, updated_at`

// ScanTask scans a single task from a database row selected with taskColumns
func ScanTask(scanner Scanner) (*Task, error) {
	task := &Task{}
	var (
		completed   int
		completedBy sql.NullString
		completedAt sql.NullString
		startTime   sql.NullString
		createdAt   string
		updatedAt   string
	)

	err := scanner.Scan(
		&task.ID,
		&task.Title,
		&task.Description,
		&task.AssignedTo,
		&completed,
		&completedBy,
		&completedAt,
		&startTime,
		&task.TimeSpentMS,
		&task.Priority,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	task.Completed = completed != 0
	if completedBy.Valid {
		by := completedBy.String
		task.CompletedBy = &by
	}
	if task.CompletedAt, err = ParseNullTimeFromDB(completedAt); err != nil {
		return nil, fmt.Errorf("parse completed_at: %w", err)
	}
	if task.StartTime, err = ParseNullTimeFromDB(startTime); err != nil {
		return nil, fmt.Errorf("parse start_time: %w", err)
	}
	if task.CreatedAt, err = ParseTimeFromDB(createdAt); err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	if task.UpdatedAt, err = ParseTimeFromDB(updatedAt); err != nil {
		return nil, fmt.Errorf("parse updated_at: %w", err)
	}

	return task, nil
}

// ScanTasks scans multiple tasks from database rows
func ScanTasks(rows Rows) ([]*Task, error) {
	tasks := []*Task{}
	for rows.Next() {
		task, err := ScanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return tasks, nil
}

// ScanUser scans a single user from a database row
func ScanUser(scanner Scanner) (*User, error) {
	user := &User{}
	if err := scanner.Scan(&user.ID, &user.Name); err != nil {
		return nil, err
	}
	return user, nil
}

// ScanUsers scans multiple users from database rows
func ScanUsers(rows Rows) ([]*User, error) {
	users := []*User{}
	for rows.Next() {
		user, err := ScanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return users, nil
}
