package cli

import (
	"context"

	"duo-tasks/internal/errors"
)

// DeleteCommand handles the delete command
type DeleteCommand struct {
	app          *App
	errorHandler *ErrorHandler
	User         string
}

// NewDeleteCommand creates a new delete command handler
func NewDeleteCommand(app *App) *DeleteCommand {
	return &DeleteCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute deletes the task in args[0] when it belongs to User
func (c *DeleteCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("command", "delete", "usage: duo delete <id> --user <user1|user2>")
	}

	if err := c.app.api.DeleteTask(ctx, args[0], c.User); err != nil {
		return c.errorHandler.Handle("delete task", err)
	}
	c.app.printf("Deleted task %s\n", args[0])
	return nil
}
