package services

import (
	"context"
	"time"

	"duo-tasks/internal/domain"
)

// Clock returns the current time. Services read time only through it.
type Clock func() time.Time

// UserProgress summarizes one user's tasks.
type UserProgress struct {
	User      domain.User   `json:"user"`
	Total     int           `json:"total"`
	Completed int           `json:"completed"`
	Percent   int           `json:"percent"`
	TimeSpent time.Duration `json:"time_spent"`
}

// TaskService handles the task lifecycle and timer accounting
type TaskService interface {
	// Task CRUD operations
	CreateTask(ctx context.Context, title, description, ownerID string) (*domain.Task, error)
	GetTask(ctx context.Context, id string) (*domain.Task, error)
	ListTasks(ctx context.Context) ([]domain.Task, error)
	UpdateTask(ctx context.Context, id, userID string, title, description *string, priority *int) (*domain.Task, error)
	UpdatePriority(ctx context.Context, id, userID string, priority int) (*domain.Task, error)
	DeleteTask(ctx context.Context, id, userID string) error

	// Timer and completion workflow
	StartTask(ctx context.Context, id, userID string) (*domain.Task, error)
	PauseTask(ctx context.Context, id, userID string) (*domain.Task, error)
	CompleteTask(ctx context.Context, id, userID string) (*domain.Task, error)
	UndoComplete(ctx context.Context, id, userID string) (*domain.Task, error)
	ResetTimer(ctx context.Context, id, userID string) (*domain.Task, error)
	TransferTask(ctx context.Context, id, fromUserID, toUserID string) (*domain.Task, error)
}

// ImportService moves batches of tasks in and out of the store
type ImportService interface {
	ImportTasks(ctx context.Context, raw string) ([]domain.Task, error)
	ExportTasks(ctx context.Context) ([]domain.TaskRecord, error)
}

// UserService manages the two users' display names
type UserService interface {
	ListUsers(ctx context.Context) ([]domain.User, error)
	GetUser(ctx context.Context, id string) (*domain.User, error)
	RenameUser(ctx context.Context, id, name string) (*domain.User, error)
}

// ReportingService handles progress and duration reporting
type ReportingService interface {
	GetProgress(ctx context.Context) ([]UserProgress, error)
	CalculateProgress(users []domain.User, tasks []domain.Task) []UserProgress
	FormatDuration(d time.Duration) string
	Now() time.Time
}

// ServiceContainer manages all services and their dependencies
type ServiceContainer struct {
	TaskService      TaskService
	ImportService    ImportService
	UserService      UserService
	ReportingService ReportingService
}
