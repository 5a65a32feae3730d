package cli

import (
	"context"

	"duo-tasks/internal/api"
	"duo-tasks/internal/errors"
)

var actionVerbs = map[string]string{
	api.ActionStart:    "Started",
	api.ActionPause:    "Paused",
	api.ActionComplete: "Completed",
	api.ActionUndo:     "Reopened",
	api.ActionReset:    "Reset timer of",
}

// AddCommand creates a task
type AddCommand struct {
	app          *App
	errorHandler *ErrorHandler
	User         string
	Title        string
	Description  string
}

// NewAddCommand creates a new add command handler
func NewAddCommand(app *App) *AddCommand {
	return &AddCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute runs the add command
func (c *AddCommand) Execute(ctx context.Context, args []string) error {
	task, err := c.app.api.CreateTask(ctx, api.CreateTaskRequest{
		Title:       c.Title,
		Description: c.Description,
		UserID:      c.User,
	})
	if err != nil {
		return c.errorHandler.Handle("add task", err)
	}
	c.app.printf("Created task %s: %s\n", task.ID, task.Title)
	return nil
}

// ActionCommand runs one of the timer or completion actions on a task
type ActionCommand struct {
	app          *App
	errorHandler *ErrorHandler
	action       string
	User         string
}

// NewActionCommand creates a handler for action (start, pause, complete, undo or reset)
func NewActionCommand(app *App, action string) *ActionCommand {
	return &ActionCommand{app: app, errorHandler: NewErrorHandler(), action: action}
}

// Execute runs the action against the task id in args[0]
func (c *ActionCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("command", c.action, "usage: duo "+c.action+" <id> --user <user1|user2>")
	}

	task, err := c.app.api.PatchTask(ctx, args[0], api.PatchTaskRequest{UserID: c.User, Action: c.action})
	if err != nil {
		return c.errorHandler.Handle(c.action+" task", err)
	}
	c.app.printf("%s %s (%s)\n", actionVerbs[c.action], task.Title, formatMillis(task.TimeSpent))
	return nil
}

// UpdateCommand edits title, description or priority
type UpdateCommand struct {
	app          *App
	errorHandler *ErrorHandler
	User         string
	Title        *string
	Description  *string
	Priority     *int
}

// NewUpdateCommand creates a new update command handler
func NewUpdateCommand(app *App) *UpdateCommand {
	return &UpdateCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute runs the update command
func (c *UpdateCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("command", "update", "usage: duo update <id> --user <user> [--title] [--description] [--priority]")
	}

	task, err := c.app.api.PatchTask(ctx, args[0], api.PatchTaskRequest{
		UserID: c.User,
		Action: api.ActionUpdate,
		Updates: api.TaskUpdates{
			Title:       c.Title,
			Description: c.Description,
			Priority:    c.Priority,
		},
	})
	if err != nil {
		return c.errorHandler.Handle("update task", err)
	}
	c.app.printf("Updated %s: %s [%s]\n", task.ID, task.Title, priorityName(task.Priority))
	return nil
}

// TransferCommand hands a task to the other user
type TransferCommand struct {
	app          *App
	errorHandler *ErrorHandler
	From         string
	To           string
}

// NewTransferCommand creates a new transfer command handler
func NewTransferCommand(app *App) *TransferCommand {
	return &TransferCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute runs the transfer command
func (c *TransferCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("command", "transfer", "usage: duo transfer <id> --from <user> --to <user>")
	}

	task, err := c.app.api.TransferTask(ctx, args[0], api.TransferRequest{FromUserID: c.From, ToUserID: c.To})
	if err != nil {
		return c.errorHandler.Handle("transfer task", err)
	}
	c.app.printf("Transferred %s to %s\n", task.Title, task.AssignedTo)
	return nil
}
