package api

import (
	"context"
	"fmt"

	"duo-tasks/internal/domain"
	"duo-tasks/internal/errors"
	"duo-tasks/internal/services"
)

// Actions accepted by PatchTask.
const (
	ActionUpdate         = "update"
	ActionComplete       = "complete"
	ActionUndo           = "undo"
	ActionStart          = "start"
	ActionPause          = "pause"
	ActionUpdatePriority = "updatePriority"
	ActionReset          = "reset"
)

// CreateTaskRequest is the body of POST /api/tasks. OwnerID is accepted as an alias of UserID.
type CreateTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	UserID      string `json:"userId"`
	OwnerID     string `json:"ownerId,omitempty"`
}

// Owner returns UserID, falling back to OwnerID.
func (r CreateTaskRequest) Owner() string {
	if r.UserID != "" {
		return r.UserID
	}
	return r.OwnerID
}

// TaskUpdates carries the optional fields of the update and updatePriority actions.
type TaskUpdates struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Priority    *int    `json:"priority,omitempty"`
}

// PatchTaskRequest is the body of PATCH /api/tasks/{id}.
type PatchTaskRequest struct {
	UserID  string      `json:"userId"`
	Action  string      `json:"action"`
	Updates TaskUpdates `json:"updates"`
}

// TransferRequest is the body of POST /api/tasks/{id}/transfer.
type TransferRequest struct {
	FromUserID string `json:"fromUserId"`
	ToUserID   string `json:"toUserId"`
}

// API is the single entry point shared by the HTTP surface and the CLI.
type API interface {
	// Task operations
	Board(ctx context.Context) (*BoardView, error)
	ListTasks(ctx context.Context) ([]TaskView, error)
	GetTask(ctx context.Context, id string) (*TaskView, error)
	CreateTask(ctx context.Context, req CreateTaskRequest) (*TaskView, error)
	PatchTask(ctx context.Context, id string, req PatchTaskRequest) (*TaskView, error)
	TransferTask(ctx context.Context, id string, req TransferRequest) (*TaskView, error)
	DeleteTask(ctx context.Context, id, userID string) error

	// Import and export
	ImportTasks(ctx context.Context, raw string) ([]TaskView, error)
	ExportTasks(ctx context.Context) ([]domain.TaskRecord, error)

	// Users and reporting
	ListUsers(ctx context.Context) ([]UserView, error)
	RenameUser(ctx context.Context, id, name string) (*UserView, error)
	Progress(ctx context.Context) ([]ProgressView, error)
}

type apiImpl struct {
	services *services.ServiceContainer
}

// New creates a new API instance.
func New(container *services.ServiceContainer) API {
	return &apiImpl{services: container}
}

func (a *apiImpl) Board(ctx context.Context) (*BoardView, error) {
	tasks, err := a.ListTasks(ctx)
	if err != nil {
		return nil, err
	}
	users, err := a.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	return &BoardView{Tasks: tasks, Users: users}, nil
}

func (a *apiImpl) ListTasks(ctx context.Context) ([]TaskView, error) {
	tasks, err := a.services.TaskService.ListTasks(ctx)
	if err != nil {
		return nil, err
	}
	return NewTaskViews(tasks), nil
}

func (a *apiImpl) GetTask(ctx context.Context, id string) (*TaskView, error) {
	return taskResult(a.services.TaskService.GetTask(ctx, id))
}

func (a *apiImpl) CreateTask(ctx context.Context, req CreateTaskRequest) (*TaskView, error) {
	return taskResult(a.services.TaskService.CreateTask(ctx, req.Title, req.Description, req.Owner()))
}

// PatchTask dispatches req.Action to the matching lifecycle operation.
func (a *apiImpl) PatchTask(ctx context.Context, id string, req PatchTaskRequest) (*TaskView, error) {
	tasks := a.services.TaskService

	switch req.Action {
	case ActionUpdate:
		u := req.Updates
		return taskResult(tasks.UpdateTask(ctx, id, req.UserID, u.Title, u.Description, u.Priority))
	case ActionComplete:
		return taskResult(tasks.CompleteTask(ctx, id, req.UserID))
	case ActionUndo:
		return taskResult(tasks.UndoComplete(ctx, id, req.UserID))
	case ActionStart:
		return taskResult(tasks.StartTask(ctx, id, req.UserID))
	case ActionPause:
		return taskResult(tasks.PauseTask(ctx, id, req.UserID))
	case ActionUpdatePriority:
		if req.Updates.Priority == nil {
			return nil, errors.NewInvalidInputError("updates.priority", nil, "priority is required")
		}
		return taskResult(tasks.UpdatePriority(ctx, id, req.UserID, *req.Updates.Priority))
	case ActionReset:
		return taskResult(tasks.ResetTimer(ctx, id, req.UserID))
	default:
		return nil, errors.NewInvalidInputError("action", req.Action, fmt.Sprintf("Invalid action %q", req.Action))
	}
}

func (a *apiImpl) TransferTask(ctx context.Context, id string, req TransferRequest) (*TaskView, error) {
	return taskResult(a.services.TaskService.TransferTask(ctx, id, req.FromUserID, req.ToUserID))
}

func (a *apiImpl) DeleteTask(ctx context.Context, id, userID string) error {
	return a.services.TaskService.DeleteTask(ctx, id, userID)
}

func (a *apiImpl) ImportTasks(ctx context.Context, raw string) ([]TaskView, error) {
	tasks, err := a.services.ImportService.ImportTasks(ctx, raw)
	if err != nil {
		return nil, err
	}
	return NewTaskViews(tasks), nil
}

func (a *apiImpl) ExportTasks(ctx context.Context) ([]domain.TaskRecord, error) {
	return a.services.ImportService.ExportTasks(ctx)
}

func (a *apiImpl) ListUsers(ctx context.Context) ([]UserView, error) {
	users, err := a.services.UserService.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	return NewUserViews(users), nil
}

func (a *apiImpl) RenameUser(ctx context.Context, id, name string) (*UserView, error) {
	user, err := a.services.UserService.RenameUser(ctx, id, name)
	if err != nil {
		return nil, err
	}
	view := NewUserView(*user)
	return &view, nil
}

func (a *apiImpl) Progress(ctx context.Context) ([]ProgressView, error) {
	progress, err := a.services.ReportingService.GetProgress(ctx)
	if err != nil {
		return nil, err
	}
	views := make([]ProgressView, len(progress))
	for i, p := range progress {
		views[i] = NewProgressView(p)
	}
	return views, nil
}

func taskResult(task *domain.Task, err error) (*TaskView, error) {
	if err != nil {
		return nil, err
	}
	view := NewTaskView(*task)
	return &view, nil
}
