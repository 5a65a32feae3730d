package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"duo-tasks/internal/api"
	"duo-tasks/internal/config"
	"duo-tasks/internal/logging"
	"duo-tasks/internal/repository/sqlite"
	"duo-tasks/internal/services"
)

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd    *cobra.Command
	loader *config.Loader
	api    api.API
	config *config.Config
	repo   sqlite.Repository
}

// NewRootCommand creates the root cobra command. Configuration is loaded and
// the database opened once flags are parsed, before any subcommand runs.
func NewRootCommand(loader *config.Loader) *RootCommand {
	root := &RootCommand{loader: loader}
	root.build()
	return root
}

// NewRootCommandWithAPI creates a root command bound to an existing API, skipping
// configuration loading and database setup.
func NewRootCommandWithAPI(apiInstance api.API, cfg *config.Config) *RootCommand {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	root := &RootCommand{api: apiInstance, config: cfg}
	root.build()
	return root
}

func (r *RootCommand) build() {
	r.cmd = &cobra.Command{
		Use:   "duo",
		Short: "A shared task board for two people",
		Long: `duo is a task board shared by exactly two users, user1 and user2.

Each task belongs to one user, who alone may edit, time, complete or delete it.
Tasks can be handed to the other user, imported from and exported to JSON, and
viewed in the browser board started by "duo serve".

EXAMPLES:
  duo serve                                       # Start the web board on 127.0.0.1:3000
  duo add --user user1 --title "Buy milk" --description "Two litres"
  duo list --user user1                           # List user1's tasks
  duo start <id> --user user1                     # Start the task timer
  duo complete <id> --user user1                  # Mark the task done
  duo transfer <id> --from user1 --to user2       # Hand the task over
  duo export --format yaml > tasks.yaml

CONFIGURATION:
  Priority order: command-line flags > environment variables > DUO_CONFIG_FILE (YAML) > defaults

    DUO_DB_DIR                 Database directory (default: ~/.duo)
    DUO_DB_FILENAME            Database filename, ":memory:" for a throwaway board (default: duo.db)
    DUO_DB_QUERY_TIMEOUT       Per-request timeout (default: 10s)
    DUO_SERVER_ADDR            Listen address (default: 127.0.0.1:3000)
    DUO_SERVER_COMPRESSION     Compress JSON responses (default: true)
    DUO_UI_POLL_INTERVAL       Browser board refresh interval (default: 3s)
    DUO_USER1_NAME             Initial name of user1 (default: User One)
    DUO_USER2_NAME             Initial name of user2 (default: User Two)
    DUO_LOG_LEVEL              debug, info, warn or error (default: info)
    DUO_LOG_FORMAT             text or json (default: text)
    DUO_APP_TIMEOUT            Timeout for one CLI command (default: 60s)
    DUO_DEBUG                  Force debug logging when set`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return r.setup(cmd)
		},
	}

	r.addGlobalFlags()
	r.addSubcommands()
}

// Execute runs the root command and releases the database afterwards
func (r *RootCommand) Execute() error {
	return r.ExecuteContext(context.Background())
}

// ExecuteContext runs the root command with ctx as the parent of every command context
func (r *RootCommand) ExecuteContext(ctx context.Context) error {
	defer r.close()
	return r.cmd.ExecuteContext(ctx)
}

// Command exposes the underlying cobra command, mainly for tests.
func (r *RootCommand) Command() *cobra.Command {
	return r.cmd
}

func (r *RootCommand) close() {
	if r.repo != nil {
		r.repo.Close()
		r.repo = nil
	}
}

// addGlobalFlags adds global configuration flags
func (r *RootCommand) addGlobalFlags() {
	flags := r.cmd.PersistentFlags()

	// Database configuration
	flags.String("db-dir", "", "Database directory (overrides DUO_DB_DIR)")
	flags.String("db-filename", "", "Database filename (overrides DUO_DB_FILENAME)")
	flags.Duration("db-query-timeout", 0, "Per-request timeout (overrides DUO_DB_QUERY_TIMEOUT)")

	// Server configuration
	flags.String("addr", "", "Listen address for serve (overrides DUO_SERVER_ADDR)")
	flags.Bool("compression", true, "Compress JSON responses (overrides DUO_SERVER_COMPRESSION)")
	flags.Duration("poll-interval", 0, "Browser board refresh interval (overrides DUO_UI_POLL_INTERVAL)")

	// Logging configuration
	flags.String("log-level", "", "Log level (overrides DUO_LOG_LEVEL)")
	flags.String("log-format", "", "Log format, text or json (overrides DUO_LOG_FORMAT)")

	// Application configuration
	flags.Duration("app-timeout", 0, "Timeout for one command (overrides DUO_APP_TIMEOUT)")
}

// overridesFromFlags collects the global flags the user actually set
func overridesFromFlags(cmd *cobra.Command) *config.ConfigOverrides {
	flags := cmd.Flags()
	o := &config.ConfigOverrides{}

	if flags.Changed("db-dir") {
		v, _ := flags.GetString("db-dir")
		o.DBDir = &v
	}
	if flags.Changed("db-filename") {
		v, _ := flags.GetString("db-filename")
		o.DBFilename = &v
	}
	if flags.Changed("db-query-timeout") {
		v, _ := flags.GetDuration("db-query-timeout")
		o.DBQueryTimeout = &v
	}
	if flags.Changed("addr") {
		v, _ := flags.GetString("addr")
		o.Addr = &v
	}
	if flags.Changed("compression") {
		v, _ := flags.GetBool("compression")
		o.Compression = &v
	}
	if flags.Changed("poll-interval") {
		v, _ := flags.GetDuration("poll-interval")
		o.PollInterval = &v
	}
	if flags.Changed("log-level") {
		v, _ := flags.GetString("log-level")
		o.LogLevel = &v
	}
	if flags.Changed("log-format") {
		v, _ := flags.GetString("log-format")
		o.LogFormat = &v
	}
	if flags.Changed("app-timeout") {
		v, _ := flags.GetDuration("app-timeout")
		o.Timeout = &v
	}

	return o
}

// setup loads configuration and wires the repository, services and API.
func (r *RootCommand) setup(cmd *cobra.Command) error {
	if r.api != nil || !needsStorage(cmd) {
		return nil
	}
	if r.loader == nil {
		return fmt.Errorf("configuration loader not initialized")
	}

	cfg, err := r.loader.LoadWithOverrides(overridesFromFlags(cmd))
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	logging.Init(cfg.Log, os.Stderr)

	repo, err := config.CreateRepository(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	r.config = cfg
	r.repo = repo
	r.api = api.New(services.NewServiceContainer(repo, cfg))
	return nil
}

// needsStorage is false for help and shell completion, which never touch the board.
func needsStorage(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Name() == "help" || c.Name() == "completion" {
			return false
		}
	}
	return true
}

func (r *RootCommand) newApp(cmd *cobra.Command) *App {
	return NewApp(r.api, r.config, cmd.OutOrStdout()).WithInput(cmd.InOrStdin())
}

// run executes handler under the configured application timeout
func (r *RootCommand) run(cmd *cobra.Command, handler Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), r.config.Application.Timeout)
	defer cancel()
	return handler.Execute(ctx, args)
}

// addSubcommands adds all CLI subcommands to the root command
func (r *RootCommand) addSubcommands() {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API and browser board",
		Long: `Start the JSON API under /api and the live browser board at /.

The server stops gracefully on SIGINT or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return NewServeCommand(r.newApp(cmd)).Execute(ctx, args)
		},
	}

	r.cmd.AddCommand(
		serveCmd,
		r.boardCommand(),
		r.listCommand(),
		r.showCommand(),
		r.addCommand(),
		r.updateCommand(),
		r.transferCommand(),
		r.deleteCommand(),
		r.importCommand(),
		r.exportCommand(),
		r.renameUserCommand(),
	)

	for _, action := range []struct {
		name  string
		short string
	}{
		{api.ActionStart, "Start the task timer, folding a running one first"},
		{api.ActionPause, "Pause the running task timer"},
		{api.ActionComplete, "Mark the task as completed"},
		{api.ActionUndo, "Reopen a completed task"},
		{api.ActionReset, "Discard all time tracked on the task"},
	} {
		r.cmd.AddCommand(r.actionCommand(action.name, action.short))
	}
}

func (r *RootCommand) boardCommand() *cobra.Command {
	var user string
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Show both users' tasks side by side",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			handler := NewBoardCommand(r.newApp(cmd))
			handler.User = user
			return r.run(cmd, handler, args)
		},
	}
	cmd.Flags().StringVarP(&user, "user", "u", "user1", "User whose tasks appear in the first column")
	return cmd
}

func (r *RootCommand) listCommand() *cobra.Command {
	var user, format string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks in board order",
		Long: `List tasks: open before completed, higher priority first, then oldest first.

Formats: table (default) or json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			handler := NewListCommand(r.newApp(cmd))
			handler.User = user
			if format != "" {
				handler.Format = format
			}
			return r.run(cmd, handler, args)
		},
	}
	cmd.Flags().StringVarP(&user, "user", "u", "", "Only show tasks assigned to this user")
	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format: table or json (overrides DUO_CMD_LIST_DEFAULT_FORMAT)")
	return cmd
}

func (r *RootCommand) showCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one task in detail",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.run(cmd, NewShowCommand(r.newApp(cmd)), args)
		},
	}
}

func (r *RootCommand) addCommand() *cobra.Command {
	var user, title, description string
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a task",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			handler := NewAddCommand(r.newApp(cmd))
			handler.User = user
			handler.Title = title
			handler.Description = description
			return r.run(cmd, handler, args)
		},
	}
	cmd.Flags().StringVarP(&user, "user", "u", "", "Owner of the new task (user1 or user2)")
	cmd.Flags().StringVarP(&title, "title", "t", "", "Task title")
	cmd.Flags().StringVarP(&description, "description", "d", "", "Task description")
	return cmd
}

func (r *RootCommand) actionCommand(action, short string) *cobra.Command {
	var user string
	cmd := &cobra.Command{
		Use:   action + " <id>",
		Short: short,
		Long:  short + ". Only the task's owner may do this.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			handler := NewActionCommand(r.newApp(cmd), action)
			handler.User = user
			return r.run(cmd, handler, args)
		},
	}
	cmd.Flags().StringVarP(&user, "user", "u", "", "Acting user (user1 or user2)")
	return cmd
}

func (r *RootCommand) updateCommand() *cobra.Command {
	var (
		user, title, description string
		priority                 int
	)
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Edit a task's title, description or priority",
		Long: `Edit a task's title, description or priority. Only the flags given are changed.

Priority: 0 (low), 1 (medium) or 2 (high)`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			handler := NewUpdateCommand(r.newApp(cmd))
			handler.User = user
			if cmd.Flags().Changed("title") {
				handler.Title = &title
			}
			if cmd.Flags().Changed("description") {
				handler.Description = &description
			}
			if cmd.Flags().Changed("priority") {
				handler.Priority = &priority
			}
			return r.run(cmd, handler, args)
		},
	}
	cmd.Flags().StringVarP(&user, "user", "u", "", "Acting user (user1 or user2)")
	cmd.Flags().StringVarP(&title, "title", "t", "", "New title")
	cmd.Flags().StringVarP(&description, "description", "d", "", "New description")
	cmd.Flags().IntVarP(&priority, "priority", "p", 0, "New priority")
	return cmd
}

func (r *RootCommand) transferCommand() *cobra.Command {
	var from, to string
	cmd := &cobra.Command{
		Use:   "transfer <id>",
		Short: "Hand a task to the other user",
		Long:  "Reassign a task. Its timer is stopped and the time so far is kept.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			handler := NewTransferCommand(r.newApp(cmd))
			handler.From = from
			handler.To = to
			return r.run(cmd, handler, args)
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "Current owner")
	cmd.Flags().StringVar(&to, "to", "", "New owner")
	return cmd
}

func (r *RootCommand) deleteCommand() *cobra.Command {
	var user string
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a task",
		Long:  "Delete a task permanently. This operation cannot be undone.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			handler := NewDeleteCommand(r.newApp(cmd))
			handler.User = user
			return r.run(cmd, handler, args)
		},
	}
	cmd.Flags().StringVarP(&user, "user", "u", "", "Acting user (user1 or user2)")
	return cmd
}

func (r *RootCommand) importCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file|->",
		Short: "Create tasks from a JSON array",
		Long: `Create tasks from a JSON array of {title, description, assignedTo, priority}
objects. Either every task is created or none is. Use "-" to read standard input.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.run(cmd, NewImportCommand(r.newApp(cmd)), args)
		},
	}
}

func (r *RootCommand) exportCommand() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write all tasks to standard output",
		Long: `Write all tasks in the form accepted by import.

Formats: json (default) or yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			handler := NewExportCommand(r.newApp(cmd))
			if format != "" {
				handler.Format = format
			}
			return r.run(cmd, handler, args)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format: json or yaml (overrides DUO_CMD_EXPORT_DEFAULT_FORMAT)")
	return cmd
}

func (r *RootCommand) renameUserCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rename-user <user1|user2> <name>",
		Short: "Change a user's display name",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.run(cmd, NewRenameUserCommand(r.newApp(cmd)), args)
		},
	}
}
