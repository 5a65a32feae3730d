package cli

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"duo-tasks/internal/api"
	"duo-tasks/internal/domain"
	"duo-tasks/internal/errors"
)

const (
	formatTable = "table"
	formatJSON  = "json"
	formatYAML  = "yaml"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	doneStyle   = cellStyle.Foreground(lipgloss.Color("8"))
)

// ListCommand prints the task list in board order
type ListCommand struct {
	app          *App
	errorHandler *ErrorHandler
	User         string
	Format       string
}

// NewListCommand creates a new list command handler
func NewListCommand(app *App) *ListCommand {
	return &ListCommand{
		app:          app,
		errorHandler: NewErrorHandler(),
		Format:       app.config.Commands.ListDefaultFormat,
	}
}

// Execute runs the list command
func (c *ListCommand) Execute(ctx context.Context, args []string) error {
	if c.User != "" {
		if _, err := domain.ParseUserID(c.User); err != nil {
			return errors.NewInvalidInputError("user", c.User, "must be user1 or user2")
		}
	}

	tasks, err := c.app.api.ListTasks(ctx)
	if err != nil {
		return c.errorHandler.Handle("list tasks", err)
	}
	tasks = filterByOwner(tasks, strings.TrimSpace(c.User))

	switch c.Format {
	case formatJSON:
		return c.printJSON(tasks)
	case formatTable, "":
		c.printTable(tasks)
		return nil
	default:
		return errors.NewInvalidInputError("format", c.Format, "must be table or json")
	}
}

func filterByOwner(tasks []api.TaskView, user string) []api.TaskView {
	if user == "" {
		return tasks
	}
	filtered := make([]api.TaskView, 0, len(tasks))
	for _, task := range tasks {
		if task.AssignedTo == user {
			filtered = append(filtered, task)
		}
	}
	return filtered
}

func (c *ListCommand) printJSON(tasks []api.TaskView) error {
	data, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return err
	}
	c.app.printf("%s\n", data)
	return nil
}

func (c *ListCommand) printTable(tasks []api.TaskView) {
	if len(tasks) == 0 {
		c.app.printf("No tasks found\n")
		return
	}

	now := timeNow()
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "TITLE", "OWNER", "PRIORITY", "STATUS", "TIME")
	for _, task := range tasks {
		t.Row(
			task.ID,
			task.Title,
			task.AssignedTo,
			priorityName(task.Priority),
			status(task),
			formatMillis(elapsedMillis(task, now)),
		)
	}
	t.StyleFunc(func(row, col int) lipgloss.Style {
		if row == table.HeaderRow {
			return headerStyle
		}
		if row >= 0 && row < len(tasks) && tasks[row].Completed {
			return doneStyle
		}
		return cellStyle
	})

	c.app.printf("%s\n", t.String())
}

func status(task api.TaskView) string {
	switch {
	case task.Completed:
		return "done (" + orDash(task.CompletedBy) + ")"
	case task.StartTime != nil:
		return "running"
	default:
		return "open"
	}
}
