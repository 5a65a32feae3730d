package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"duo-tasks/internal/api"
	"duo-tasks/internal/domain"
	"duo-tasks/internal/errors"
)

const columnWidth = 44

var (
	columnStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1).
			Width(columnWidth)
	columnTitleStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	mutedStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	runningStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

// BoardCommand prints both users' columns side by side with their progress
type BoardCommand struct {
	app          *App
	errorHandler *ErrorHandler
	User         string
}

// NewBoardCommand creates a new board command handler
func NewBoardCommand(app *App) *BoardCommand {
	return &BoardCommand{app: app, errorHandler: NewErrorHandler(), User: string(domain.User1)}
}

// Execute runs the board command
func (c *BoardCommand) Execute(ctx context.Context, args []string) error {
	me, err := domain.ParseUserID(c.User)
	if err != nil {
		return errors.NewInvalidInputError("user", c.User, "must be user1 or user2")
	}

	board, err := c.app.api.Board(ctx)
	if err != nil {
		return c.errorHandler.Handle("load board", err)
	}
	progress, err := c.app.api.Progress(ctx)
	if err != nil {
		return c.errorHandler.Handle("load progress", err)
	}

	names := make(map[string]string, len(board.Users))
	for _, u := range board.Users {
		names[u.ID] = u.Name
	}
	byUser := make(map[string]api.ProgressView, len(progress))
	for _, p := range progress {
		byUser[p.User.ID] = p
	}

	now := timeNow()
	mine := renderColumn("My tasks ("+names[string(me)]+")", string(me), board.Tasks, byUser[string(me)], now)
	theirs := renderColumn("Their tasks ("+names[string(me.Other())]+")", string(me.Other()), board.Tasks, byUser[string(me.Other())], now)

	c.app.printf("%s\n", lipgloss.JoinHorizontal(lipgloss.Top, mine, " ", theirs))
	return nil
}

func renderColumn(title, owner string, tasks []api.TaskView, progress api.ProgressView, now time.Time) string {
	lines := []string{
		columnTitleStyle.Render(title),
		fmt.Sprintf("%s %d%% (%d/%d) %s",
			progressBar(progress.Percent, 20), progress.Percent, progress.Completed, progress.Total, progress.Formatted),
		"",
	}

	count := 0
	for _, task := range tasks {
		if task.AssignedTo != owner {
			continue
		}
		count++
		lines = append(lines, cardLine(task, now))
	}
	if count == 0 {
		lines = append(lines, mutedStyle.Render("No tasks"))
	}

	return columnStyle.Render(strings.Join(lines, "\n"))
}

func cardLine(task api.TaskView, now time.Time) string {
	mark := "[ ]"
	if task.Completed {
		mark = "[x]"
	}
	line := fmt.Sprintf("%s %s (%s) %s", mark, task.Title, priorityName(task.Priority), formatMillis(elapsedMillis(task, now)))
	switch {
	case task.Completed:
		return mutedStyle.Render(line)
	case task.StartTime != nil:
		return runningStyle.Render(line + " >")
	default:
		return line
	}
}

func progressBar(percent, width int) string {
	filled := percent * width / 100
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}
