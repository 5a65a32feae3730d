package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"duo-tasks/internal/api"
	"duo-tasks/internal/config"
)

// timeNow is a variable that can be replaced in tests
var timeNow = time.Now

// App carries what every command handler needs
type App struct {
	api    api.API
	config *config.Config
	out    io.Writer
	in     io.Reader
}

// NewApp creates a new CLI application instance with dependency injection
func NewApp(apiInstance api.API, cfg *config.Config, out io.Writer) *App {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	if out == nil {
		out = os.Stdout
	}
	return &App{
		api:    apiInstance,
		config: cfg,
		out:    out,
		in:     os.Stdin,
	}
}

// WithInput replaces the reader used for "-" arguments.
func (a *App) WithInput(in io.Reader) *App {
	a.in = in
	return a
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

// readSource returns the contents of path, or of standard input when path is "-".
func (a *App) readSource(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(a.in)
		if err != nil {
			return "", fmt.Errorf("failed to read standard input: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}

// Command represents a CLI command
type Command interface {
	Execute(ctx context.Context, args []string) error
}
