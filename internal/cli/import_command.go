package cli

import (
	"context"

	"duo-tasks/internal/errors"
)

// ImportCommand creates tasks from a JSON array, as produced by export
type ImportCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewImportCommand creates a new import command handler
func NewImportCommand(app *App) *ImportCommand {
	return &ImportCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute imports the file named by args[0], or standard input for "-"
func (c *ImportCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("command", "import", "usage: duo import <file|->")
	}

	raw, err := c.app.readSource(args[0])
	if err != nil {
		return err
	}

	tasks, err := c.app.api.ImportTasks(ctx, raw)
	if err != nil {
		return c.errorHandler.Handle("import tasks", err)
	}

	noun := "tasks"
	if len(tasks) == 1 {
		noun = "task"
	}
	c.app.printf("Imported %d %s\n", len(tasks), noun)
	return nil
}
