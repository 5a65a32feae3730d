package cli

import (
	"context"
	"strings"

	"duo-tasks/internal/errors"
)

// RenameUserCommand changes a user's display name
type RenameUserCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewRenameUserCommand creates a new rename-user command handler
func NewRenameUserCommand(app *App) *RenameUserCommand {
	return &RenameUserCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute renames args[0] to the remaining arguments joined by spaces
func (c *RenameUserCommand) Execute(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return errors.NewInvalidInputError("command", "rename-user", "usage: duo rename-user <user1|user2> <name>")
	}

	user, err := c.app.api.RenameUser(ctx, args[0], strings.Join(args[1:], " "))
	if err != nil {
		return c.errorHandler.Handle("rename user", err)
	}
	c.app.printf("%s is now %s\n", user.ID, user.Name)
	return nil
}
