package services

import (
	"context"
	"log/slog"
	"time"

	"duo-tasks/internal/domain"
	"duo-tasks/internal/errors"
	"duo-tasks/internal/repository/sqlite"
	"duo-tasks/internal/validation"

	"github.com/google/uuid"
)

// taskServiceImpl implements the TaskService interface
type taskServiceImpl struct {
	repo          sqlite.Repository
	clock         Clock
	mapper        *domain.Mapper
	taskValidator *validation.TaskValidator
}

// NewTaskService creates a new TaskService instance
func NewTaskService(repo sqlite.Repository, taskValidator *validation.TaskValidator, clock Clock) TaskService {
	if taskValidator == nil {
		taskValidator = validation.NewTaskValidator()
	}
	if clock == nil {
		clock = time.Now
	}
	return &taskServiceImpl{
		repo:          repo,
		clock:         clock,
		mapper:        domain.NewMapper(),
		taskValidator: taskValidator,
	}
}

// invalid converts a validation failure into an AppError carrying its message.
func invalid(err error) error {
	if ve, ok := validation.AsValidationError(err); ok {
		return errors.NewValidationError(ve.GetUserFriendlyMessage(), ve)
	}
	return err
}

func always(domain.Task) bool { return true }

// withOwnedTask loads the task owned by owner, checks allowed, applies mutate
// and stores the result. A missing task, a foreign task and a rejected state
// all surface as the same unavailable error.
func (t *taskServiceImpl) withOwnedTask(ctx context.Context, id string, owner domain.UserID, allowed func(domain.Task) bool, mutate func(*domain.Task, time.Time) error) (*domain.Task, error) {
	row, err := t.repo.GetTaskForOwner(ctx, id, string(owner))
	if err != nil {
		if errors.IsErrorType(err, errors.ErrorTypeNotFound) {
			return nil, errors.NewTaskUnavailableError(id)
		}
		return nil, err
	}

	task := t.mapper.Task.FromDatabase(*row)
	if !allowed(task) {
		return nil, errors.NewTaskUnavailableError(id)
	}

	now := t.clock().UTC()
	if err := mutate(&task, now); err != nil {
		return nil, errors.NewTaskUnavailableError(id)
	}
	task.UpdatedAt = now

	updated := t.mapper.Task.ToDatabase(task)
	if err := t.repo.UpdateTask(ctx, &updated); err != nil {
		if errors.IsErrorType(err, errors.ErrorTypeNotFound) {
			return nil, errors.NewTaskUnavailableError(id)
		}
		return nil, err
	}
	return &task, nil
}

func (t *taskServiceImpl) parseTarget(id, userID string) (domain.UserID, error) {
	if err := t.taskValidator.ValidateTaskID(id); err != nil {
		return "", invalid(err)
	}
	owner, err := t.taskValidator.ValidateUserID("userId", userID)
	if err != nil {
		return "", invalid(err)
	}
	return owner, nil
}

// CreateTask creates an idle task for ownerID
func (t *taskServiceImpl) CreateTask(ctx context.Context, title, description, ownerID string) (*domain.Task, error) {
	draft, err := t.taskValidator.ValidateDraft(title, description, ownerID)
	if err != nil {
		return nil, invalid(err)
	}

	task := domain.NewTask(uuid.NewString(), draft, t.clock().UTC())
	row := t.mapper.Task.ToDatabase(task)
	if err := t.repo.CreateTask(ctx, &row); err != nil {
		return nil, err
	}

	slog.Debug("task created", "id", task.ID, "assigned_to", task.AssignedTo)
	return &task, nil
}

// GetTask retrieves a task by its ID
func (t *taskServiceImpl) GetTask(ctx context.Context, id string) (*domain.Task, error) {
	if err := t.taskValidator.ValidateTaskID(id); err != nil {
		return nil, invalid(err)
	}

	row, err := t.repo.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}

	task := t.mapper.Task.FromDatabase(*row)
	return &task, nil
}

// ListTasks returns every task in board order
func (t *taskServiceImpl) ListTasks(ctx context.Context) ([]domain.Task, error) {
	rows, err := t.repo.ListTasks(ctx)
	if err != nil {
		return nil, err
	}
	return t.mapper.Task.FromDatabaseSlice(rows), nil
}

// UpdateTask applies a partial edit of title, description and priority
func (t *taskServiceImpl) UpdateTask(ctx context.Context, id, userID string, title, description *string, priority *int) (*domain.Task, error) {
	owner, err := t.parseTarget(id, userID)
	if err != nil {
		return nil, err
	}
	update, err := t.taskValidator.ValidateUpdate(title, description, priority)
	if err != nil {
		return nil, invalid(err)
	}

	return t.withOwnedTask(ctx, id, owner, always, func(task *domain.Task, _ time.Time) error {
		task.Apply(update)
		return nil
	})
}

// UpdatePriority changes only the priority
func (t *taskServiceImpl) UpdatePriority(ctx context.Context, id, userID string, priority int) (*domain.Task, error) {
	owner, err := t.parseTarget(id, userID)
	if err != nil {
		return nil, err
	}
	p, err := t.taskValidator.ValidatePriority("priority", priority)
	if err != nil {
		return nil, invalid(err)
	}

	return t.withOwnedTask(ctx, id, owner, always, func(task *domain.Task, _ time.Time) error {
		task.Apply(domain.TaskUpdate{Priority: &p})
		return nil
	})
}

// DeleteTask removes a task owned by userID
func (t *taskServiceImpl) DeleteTask(ctx context.Context, id, userID string) error {
	owner, err := t.parseTarget(id, userID)
	if err != nil {
		return err
	}

	if err := t.repo.DeleteTask(ctx, id, string(owner)); err != nil {
		if errors.IsErrorType(err, errors.ErrorTypeNotFound) {
			return errors.NewTaskUnavailableError(id)
		}
		return err
	}

	slog.Debug("task deleted", "id", id, "user", owner)
	return nil
}

// StartTask starts the timer on an open task
func (t *taskServiceImpl) StartTask(ctx context.Context, id, userID string) (*domain.Task, error) {
	owner, err := t.parseTarget(id, userID)
	if err != nil {
		return nil, err
	}

	task, err := t.withOwnedTask(ctx, id, owner,
		func(task domain.Task) bool { return !task.Completed },
		func(task *domain.Task, now time.Time) error { return task.Start(now) },
	)
	if err != nil {
		return nil, err
	}

	slog.Debug("timer started", "id", id, "user", owner)
	return task, nil
}

// PauseTask stops a running timer and banks the elapsed time
func (t *taskServiceImpl) PauseTask(ctx context.Context, id, userID string) (*domain.Task, error) {
	owner, err := t.parseTarget(id, userID)
	if err != nil {
		return nil, err
	}

	task, err := t.withOwnedTask(ctx, id, owner, domain.Task.IsRunning,
		func(task *domain.Task, now time.Time) error { return task.Pause(now) },
	)
	if err != nil {
		return nil, err
	}

	slog.Debug("timer paused", "id", id, "user", owner, "time_spent", task.TimeSpent)
	return task, nil
}

// CompleteTask marks the task done by userID
func (t *taskServiceImpl) CompleteTask(ctx context.Context, id, userID string) (*domain.Task, error) {
	owner, err := t.parseTarget(id, userID)
	if err != nil {
		return nil, err
	}

	task, err := t.withOwnedTask(ctx, id, owner, always, func(task *domain.Task, now time.Time) error {
		task.Complete(owner, now)
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Debug("task completed", "id", id, "user", owner)
	return task, nil
}

// UndoComplete reopens a task without resuming its timer
func (t *taskServiceImpl) UndoComplete(ctx context.Context, id, userID string) (*domain.Task, error) {
	owner, err := t.parseTarget(id, userID)
	if err != nil {
		return nil, err
	}

	return t.withOwnedTask(ctx, id, owner, always, func(task *domain.Task, now time.Time) error {
		task.Undo(now)
		return nil
	})
}

// ResetTimer discards the tracked time of a task
func (t *taskServiceImpl) ResetTimer(ctx context.Context, id, userID string) (*domain.Task, error) {
	owner, err := t.parseTarget(id, userID)
	if err != nil {
		return nil, err
	}

	return t.withOwnedTask(ctx, id, owner, always, func(task *domain.Task, _ time.Time) error {
		task.ResetTimer()
		return nil
	})
}

// TransferTask hands a task from one user to the other
func (t *taskServiceImpl) TransferTask(ctx context.Context, id, fromUserID, toUserID string) (*domain.Task, error) {
	if err := t.taskValidator.ValidateTaskID(id); err != nil {
		return nil, invalid(err)
	}
	from, to, err := t.taskValidator.ValidateTransfer(fromUserID, toUserID)
	if err != nil {
		return nil, invalid(err)
	}

	task, err := t.withOwnedTask(ctx, id, from, always, func(task *domain.Task, now time.Time) error {
		task.TransferTo(to, now)
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Debug("task transferred", "id", id, "from", from, "to", to)
	return task, nil
}
