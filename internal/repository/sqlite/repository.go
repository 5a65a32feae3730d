package sqlite

import (
	"context"
	"database/sql"

	"duo-tasks/internal/errors"
	"duo-tasks/internal/repository/sqlite/migrations"

	_ "modernc.org/sqlite"
)

// Repository defines the interface for database operations
type Repository interface {
	// Task operations
	CreateTask(ctx context.Context, task *Task) error
	CreateTasks(ctx context.Context, tasks []*Task) error
	GetTask(ctx context.Context, id string) (*Task, error)
	GetTaskForOwner(ctx context.Context, id string, owner string) (*Task, error)
	ListTasks(ctx context.Context) ([]*Task, error)
	UpdateTask(ctx context.Context, task *Task) error
	DeleteTask(ctx context.Context, id string, owner string) error

	// User operations
	GetUser(ctx context.Context, id string) (*User, error)
	ListUsers(ctx context.Context) ([]*User, error)
	UpdateUser(ctx context.Context, user *User) error
	EnsureUsers(ctx context.Context, users []*User) error

	// Utility
	Close() error
}

// SQLiteRepository implements the Repository interface
type SQLiteRepository struct {
	db *sql.DB
}

// New opens the database at dbPath (":memory:" is allowed) and applies migrations.
func New(ctx context.Context, dbPath string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.NewDatabaseError("open database", err)
	}
	// SQLite has one writer, and every :memory: connection is a separate database.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, errors.NewDatabaseError("configure database", err)
	}

	if err := migrations.RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, errors.NewDatabaseError("run migrations", err)
	}

	return &SQLiteRepository{db: db}, nil
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

const insertTaskQuery = `
	INSERT INTO tasks (id, title, description, assigned_to, completed, completed_by, completed_at,
		start_time, time_spent_ms, priority, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

func insertTaskArgs(task *Task) []any {
	return []any{
		task.ID,
		task.Title,
		task.Description,
		task.AssignedTo,
		boolToInt(task.Completed),
		nullString(task.CompletedBy),
		FormatTimePtrForDB(task.CompletedAt),
		FormatTimePtrForDB(task.StartTime),
		task.TimeSpentMS,
		task.Priority,
		FormatTimeForDB(task.CreatedAt),
		FormatTimeForDB(task.UpdatedAt),
	}
}

// CreateTask creates a new task
func (r *SQLiteRepository) CreateTask(ctx context.Context, task *Task) error {
	return Execute(ctx, r.db, "create task", insertTaskQuery, insertTaskArgs(task)...)
}

// CreateTasks inserts all tasks in one transaction. Either every task is
// stored or none are.
func (r *SQLiteRepository) CreateTasks(ctx context.Context, tasks []*Task) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return HandleDatabaseError("begin import", err)
	}

	for _, task := range tasks {
		if err := Execute(ctx, tx, "import task", insertTaskQuery, insertTaskArgs(task)...); err != nil {
			tx.Rollback()
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return HandleDatabaseError("commit import", err)
	}
	return nil
}

// GetTask retrieves a task by ID
func (r *SQLiteRepository) GetTask(ctx context.Context, id string) (*Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = ?`
	return QuerySingle(ctx, r.db, query, ScanTask, "task", id, id)
}

// GetTaskForOwner retrieves a task only if it is assigned to owner.
func (r *SQLiteRepository) GetTaskForOwner(ctx context.Context, id string, owner string) (*Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = ? AND assigned_to = ?`
	return QuerySingle(ctx, r.db, query, ScanTask, "task", id, id, owner)
}

// ListTasks retrieves all tasks, open work first, then by priority and age.
func (r *SQLiteRepository) ListTasks(ctx context.Context) ([]*Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks
	ORDER BY completed ASC, priority DESC, created_at ASC, id ASC`
	return QueryMultiple(ctx, r.db, query, ScanTasks, "tasks")
}

// UpdateTask replaces every mutable column of an existing task
func (r *SQLiteRepository) UpdateTask(ctx context.Context, task *Task) error {
	query := `
	UPDATE tasks
	SET title = ?, description = ?, assigned_to = ?, completed = ?, completed_by = ?,
		completed_at = ?, start_time = ?, time_spent_ms = ?, priority = ?, updated_at = ?
	WHERE id = ?`

	return ExecuteWithRowsAffected(ctx, r.db, query, "task", task.ID,
		task.Title,
		task.Description,
		task.AssignedTo,
		boolToInt(task.Completed),
		nullString(task.CompletedBy),
		FormatTimePtrForDB(task.CompletedAt),
		FormatTimePtrForDB(task.StartTime),
		task.TimeSpentMS,
		task.Priority,
		FormatTimeForDB(task.UpdatedAt),
		task.ID,
	)
}

// DeleteTask deletes a task by ID if it is assigned to owner
func (r *SQLiteRepository) DeleteTask(ctx context.Context, id string, owner string) error {
	query := `DELETE FROM tasks WHERE id = ? AND assigned_to = ?`
	return ExecuteWithRowsAffected(ctx, r.db, query, "task", id, id, owner)
}

// GetUser retrieves a user by ID
func (r *SQLiteRepository) GetUser(ctx context.Context, id string) (*User, error) {
	query := `SELECT id, name FROM users WHERE id = ?`
	return QuerySingle(ctx, r.db, query, ScanUser, "user", id, id)
}

// ListUsers retrieves both users ordered by id
func (r *SQLiteRepository) ListUsers(ctx context.Context) ([]*User, error) {
	query := `SELECT id, name FROM users ORDER BY id ASC`
	return QueryMultiple(ctx, r.db, query, ScanUsers, "users")
}

// UpdateUser renames an existing user
func (r *SQLiteRepository) UpdateUser(ctx context.Context, user *User) error {
	query := `UPDATE users SET name = ? WHERE id = ?`
	return ExecuteWithRowsAffected(ctx, r.db, query, "user", user.ID, user.Name, user.ID)
}

// EnsureUsers inserts users that do not exist yet. Existing names are kept.
func (r *SQLiteRepository) EnsureUsers(ctx context.Context, users []*User) error {
	query := `INSERT OR IGNORE INTO users (id, name) VALUES (?, ?)`
	for _, u := range users {
		if err := Execute(ctx, r.db, "seed user", query, u.ID, u.Name); err != nil {
			return err
		}
	}
	return nil
}
