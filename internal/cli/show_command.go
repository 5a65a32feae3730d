package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"

	"duo-tasks/internal/api"
	"duo-tasks/internal/errors"
)

const showWrapWidth = 80

// ShowCommand renders one task as markdown
type ShowCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewShowCommand creates a new show command handler
func NewShowCommand(app *App) *ShowCommand {
	return &ShowCommand{app: app, errorHandler: NewErrorHandler()}
}

// Execute runs the show command
func (c *ShowCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("command", "show", "usage: duo show <id>")
	}

	task, err := c.app.api.GetTask(ctx, args[0])
	if err != nil {
		return c.errorHandler.Handle("show task", err)
	}

	md := taskMarkdown(*task, timeNow())
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(c.markdownStyle()),
		glamour.WithWordWrap(showWrapWidth),
	)
	if err != nil {
		c.app.printf("%s", md)
		return nil
	}
	out, err := r.Render(md)
	if err != nil {
		c.app.printf("%s", md)
		return nil
	}
	c.app.printf("%s\n", strings.TrimRight(out, "\n"))
	return nil
}

// markdownStyle picks a fixed style so rendering never queries the terminal.
func (c *ShowCommand) markdownStyle() string {
	if f, ok := c.app.out.(*os.File); ok && f == os.Stdout {
		return styles.DarkStyle
	}
	return styles.NoTTYStyle
}

func taskMarkdown(task api.TaskView, now time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", task.Title)
	if desc := strings.TrimSpace(task.Description); desc != "" {
		fmt.Fprintf(&b, "%s\n\n", desc)
	}
	fmt.Fprintf(&b, "- **ID:** `%s`\n", task.ID)
	fmt.Fprintf(&b, "- **Owner:** %s\n", task.AssignedTo)
	fmt.Fprintf(&b, "- **Priority:** %s\n", priorityName(task.Priority))
	fmt.Fprintf(&b, "- **Status:** %s\n", status(task))
	fmt.Fprintf(&b, "- **Time spent:** %s\n", formatMillis(elapsedMillis(task, now)))
	if task.CompletedAt != nil {
		fmt.Fprintf(&b, "- **Completed at:** %s\n", task.CompletedAt.Local().Format(time.DateTime))
	}
	fmt.Fprintf(&b, "- **Created:** %s\n", task.CreatedAt.Local().Format(time.DateTime))
	return b.String()
}
