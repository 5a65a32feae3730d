package cli

import (
	"context"
	"encoding/json"

	"gopkg.in/yaml.v3"

	"duo-tasks/internal/errors"
)

// ExportCommand writes every task in the portable import format
type ExportCommand struct {
	app          *App
	errorHandler *ErrorHandler
	Format       string
}

// NewExportCommand creates a new export command handler
func NewExportCommand(app *App) *ExportCommand {
	return &ExportCommand{
		app:          app,
		errorHandler: NewErrorHandler(),
		Format:       app.config.Commands.ExportDefaultFormat,
	}
}

// Execute runs the export command
func (c *ExportCommand) Execute(ctx context.Context, args []string) error {
	if c.Format != formatJSON && c.Format != formatYAML {
		return errors.NewInvalidInputError("format", c.Format, "must be json or yaml")
	}

	records, err := c.app.api.ExportTasks(ctx)
	if err != nil {
		return c.errorHandler.Handle("export tasks", err)
	}

	var data []byte
	if c.Format == formatYAML {
		data, err = yaml.Marshal(records)
	} else {
		data, err = json.MarshalIndent(records, "", "  ")
		data = append(data, '\n')
	}
	if err != nil {
		return c.errorHandler.Handle("encode tasks", err)
	}

	_, err = c.app.out.Write(data)
	return err
}
