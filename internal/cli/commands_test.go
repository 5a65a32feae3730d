package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"duo-tasks/internal/api"
	"duo-tasks/internal/config"
	"duo-tasks/internal/domain"
	"duo-tasks/internal/services"
)

var epoch = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time { return c.now }

func (c *testClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

type harness struct {
	api   api.API
	cfg   *config.Config
	clock *testClock
	stdin string
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	repo, err := config.CreateTestRepository(context.Background())
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	clock := &testClock{now: epoch}
	cfg := config.NewConfig()

	original := timeNow
	timeNow = clock.Now
	t.Cleanup(func() { timeNow = original })

	return &harness{
		api:   api.New(services.NewServiceContainer(repo, cfg, services.WithClock(clock.Now))),
		cfg:   cfg,
		clock: clock,
	}
}

// run executes the CLI with args and returns what it printed.
func (h *harness) run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	root := NewRootCommandWithAPI(h.api, h.cfg)
	var out bytes.Buffer
	root.Command().SetOut(&out)
	root.Command().SetErr(&out)
	root.Command().SetIn(strings.NewReader(h.stdin))
	root.Command().SetArgs(args)

	err := root.Execute()
	return out.String(), err
}

func (h *harness) mustRun(t *testing.T, args ...string) string {
	t.Helper()

	out, err := h.run(t, args...)
	require.NoError(t, err)
	return out
}

func (h *harness) createTask(t *testing.T, title string, owner domain.UserID) api.TaskView {
	t.Helper()

	task, err := h.api.CreateTask(context.Background(), api.CreateTaskRequest{
		Title:       title,
		Description: title + " details",
		UserID:      string(owner),
	})
	require.NoError(t, err)
	return *task
}

func (h *harness) getTask(t *testing.T, id string) api.TaskView {
	t.Helper()

	task, err := h.api.GetTask(context.Background(), id)
	require.NoError(t, err)
	return *task
}

func TestAddCommand(t *testing.T) {
	h := newHarness(t)

	out := h.mustRun(t, "add", "--user", "user2", "--title", "Buy milk", "--description", "Two litres")
	assert.Contains(t, out, "Created task")
	assert.Contains(t, out, "Buy milk")

	tasks, err := h.api.ListTasks(context.Background())
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "user2", tasks[0].AssignedTo)
	assert.Equal(t, "Two litres", tasks[0].Description)
}

func TestAddCommand_Validation(t *testing.T) {
	h := newHarness(t)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"missing title", []string{"add", "--user", "user1", "--description", "d"}, "title is required"},
		{"missing description", []string{"add", "--user", "user1", "--title", "t"}, "description is required"},
		{"bad user", []string{"add", "--user", "user3", "--title", "t", "--description", "d"}, "must be user1 or user2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := h.run(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "failed to add task")
			assert.Contains(t, err.Error(), tt.want)
		})
	}

	tasks, err := h.api.ListTasks(context.Background())
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestActionCommands_TimerLifecycle(t *testing.T) {
	h := newHarness(t)
	task := h.createTask(t, "Write report", domain.User1)

	out := h.mustRun(t, "start", task.ID, "--user", "user1")
	assert.Contains(t, out, "Started Write report")

	h.clock.Advance(65 * time.Second)
	out = h.mustRun(t, "pause", task.ID, "--user", "user1")
	assert.Contains(t, out, "Paused Write report (1m 5s)")
	assert.Equal(t, int64(65000), h.getTask(t, task.ID).TimeSpent)

	out = h.mustRun(t, "complete", task.ID, "--user", "user1")
	assert.Contains(t, out, "Completed Write report")
	done := h.getTask(t, task.ID)
	assert.True(t, done.Completed)
	require.NotNil(t, done.CompletedBy)
	assert.Equal(t, "user1", *done.CompletedBy)

	h.mustRun(t, "undo", task.ID, "--user", "user1")
	assert.False(t, h.getTask(t, task.ID).Completed)

	out = h.mustRun(t, "reset", task.ID, "--user", "user1")
	assert.Contains(t, out, "Reset timer of Write report (0s)")
	assert.Zero(t, h.getTask(t, task.ID).TimeSpent)
}

func TestActionCommands_OtherUserRejected(t *testing.T) {
	h := newHarness(t)
	task := h.createTask(t, "Write report", domain.User1)

	for _, action := range []string{"start", "pause", "complete", "undo", "reset", "delete"} {
		t.Run(action, func(t *testing.T) {
			_, err := h.run(t, action, task.ID, "--user", "user2")
			require.Error(t, err)
			assert.Contains(t, err.Error(), "task not found or unauthorized")
		})
	}

	after := h.getTask(t, task.ID)
	assert.False(t, after.Completed)
	assert.Nil(t, after.StartTime)
}

func TestActionCommands_RequiresID(t *testing.T) {
	h := newHarness(t)

	_, err := h.run(t, "start", "--user", "user1")
	assert.Error(t, err)
}

func TestUpdateCommand(t *testing.T) {
	h := newHarness(t)
	task := h.createTask(t, "Write report", domain.User1)

	out := h.mustRun(t, "update", task.ID, "--user", "user1", "--title", "Write summary", "--priority", "2")
	assert.Contains(t, out, "Write summary [high]")

	updated := h.getTask(t, task.ID)
	assert.Equal(t, "Write summary", updated.Title)
	assert.Equal(t, "Write report details", updated.Description)
	assert.Equal(t, 2, updated.Priority)
}

func TestUpdateCommand_NothingToChange(t *testing.T) {
	h := newHarness(t)
	task := h.createTask(t, "Write report", domain.User1)

	_, err := h.run(t, "update", task.ID, "--user", "user1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "updates must include title, description or priority")
}

func TestTransferCommand(t *testing.T) {
	h := newHarness(t)
	task := h.createTask(t, "Write report", domain.User1)
	h.mustRun(t, "start", task.ID, "--user", "user1")
	h.clock.Advance(10 * time.Second)

	out := h.mustRun(t, "transfer", task.ID, "--from", "user1", "--to", "user2")
	assert.Contains(t, out, "Transferred Write report to user2")

	moved := h.getTask(t, task.ID)
	assert.Equal(t, "user2", moved.AssignedTo)
	assert.Nil(t, moved.StartTime)
	assert.Equal(t, int64(10000), moved.TimeSpent)

	_, err := h.run(t, "transfer", task.ID, "--from", "user2", "--to", "user2")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must differ from fromUserId")
}

func TestDeleteCommand(t *testing.T) {
	h := newHarness(t)
	task := h.createTask(t, "Write report", domain.User1)

	out := h.mustRun(t, "delete", task.ID, "--user", "user1")
	assert.Contains(t, out, "Deleted task "+task.ID)

	_, err := h.api.GetTask(context.Background(), task.ID)
	assert.Error(t, err)
}

func TestListCommand(t *testing.T) {
	h := newHarness(t)
	h.createTask(t, "Write report", domain.User1)
	h.createTask(t, "Book flights", domain.User2)

	out := h.mustRun(t, "list")
	assert.Contains(t, out, "TITLE")
	assert.Contains(t, out, "Write report")
	assert.Contains(t, out, "Book flights")

	out = h.mustRun(t, "list", "--user", "user2")
	assert.Contains(t, out, "Book flights")
	assert.NotContains(t, out, "Write report")
}

func TestListCommand_JSON(t *testing.T) {
	h := newHarness(t)
	task := h.createTask(t, "Write report", domain.User1)

	out := h.mustRun(t, "list", "--format", "json")

	var tasks []api.TaskView
	require.NoError(t, json.Unmarshal([]byte(out), &tasks))
	require.Len(t, tasks, 1)
	assert.Equal(t, task.ID, tasks[0].ID)
}

func TestListCommand_Empty(t *testing.T) {
	h := newHarness(t)

	out := h.mustRun(t, "list")
	assert.Contains(t, out, "No tasks found")
}

func TestListCommand_InvalidOptions(t *testing.T) {
	h := newHarness(t)

	_, err := h.run(t, "list", "--format", "csv")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be table or json")

	_, err = h.run(t, "list", "--user", "nobody")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be user1 or user2")
}

func TestShowCommand(t *testing.T) {
	h := newHarness(t)
	task := h.createTask(t, "Write report", domain.User1)

	out := h.mustRun(t, "show", task.ID)
	assert.Contains(t, out, "report")
	assert.Contains(t, out, "user1")

	_, err := h.run(t, "show", "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to show task")
}

func TestTaskMarkdown(t *testing.T) {
	start := epoch
	task := api.TaskView{
		ID:          "abc",
		Title:       "Write report",
		Description: "Quarterly numbers",
		AssignedTo:  "user2",
		StartTime:   &start,
		TimeSpent:   5000,
		Priority:    1,
		CreatedAt:   epoch,
	}

	md := taskMarkdown(task, epoch.Add(time.Minute))

	assert.True(t, strings.HasPrefix(md, "# Write report\n"))
	assert.Contains(t, md, "Quarterly numbers")
	assert.Contains(t, md, "**Owner:** user2")
	assert.Contains(t, md, "**Priority:** medium")
	assert.Contains(t, md, "**Status:** running")
	assert.Contains(t, md, "**Time spent:** 1m 5s")
}

func TestImportCommand_Stdin(t *testing.T) {
	h := newHarness(t)
	h.stdin = `[
		{"title": "A", "description": "first", "assignedTo": "user1", "priority": 2},
		{"title": "B", "description": "second", "assignedTo": "user2"}
	]`

	out := h.mustRun(t, "import", "-")
	assert.Contains(t, out, "Imported 2 tasks")

	tasks, err := h.api.ListTasks(context.Background())
	require.NoError(t, err)
	assert.Len(t, tasks, 2)
}

func TestImportCommand_Invalid(t *testing.T) {
	h := newHarness(t)
	h.stdin = `[{"title": "A", "description": "first", "assignedTo": "user1"}, {"title": "", "description": "x", "assignedTo": "user2"}]`

	_, err := h.run(t, "import", "-")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to import tasks")

	tasks, err := h.api.ListTasks(context.Background())
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestImportCommand_MissingFile(t *testing.T) {
	h := newHarness(t)

	_, err := h.run(t, "import", t.TempDir()+"/missing.json")
	assert.Error(t, err)
}

func TestExportCommand(t *testing.T) {
	h := newHarness(t)
	h.createTask(t, "Write report", domain.User1)

	out := h.mustRun(t, "export")
	var records []domain.TaskRecord
	require.NoError(t, json.Unmarshal([]byte(out), &records))
	require.Len(t, records, 1)
	assert.Equal(t, "Write report", records[0].Title)
	assert.Equal(t, domain.User1, records[0].AssignedTo)

	out = h.mustRun(t, "export", "--format", "yaml")
	assert.Contains(t, out, "title: Write report")
	assert.Contains(t, out, "assignedTo: user1")

	_, err := h.run(t, "export", "--format", "csv")
	assert.Error(t, err)
}

func TestExportThenImport(t *testing.T) {
	h := newHarness(t)
	h.createTask(t, "Write report", domain.User1)
	h.createTask(t, "Book flights", domain.User2)

	h.stdin = h.mustRun(t, "export")
	out := h.mustRun(t, "import", "-")
	assert.Contains(t, out, "Imported 2 tasks")

	tasks, err := h.api.ListTasks(context.Background())
	require.NoError(t, err)
	assert.Len(t, tasks, 4)
}

func TestRenameUserCommand(t *testing.T) {
	h := newHarness(t)

	out := h.mustRun(t, "rename-user", "user2", "Bob", "Smith")
	assert.Contains(t, out, "user2 is now Bob Smith")

	users, err := h.api.ListUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "Bob Smith", users[1].Name)

	_, err = h.run(t, "rename-user", "user3", "Carol")
	assert.Error(t, err)
}

func TestBoardCommand(t *testing.T) {
	h := newHarness(t)
	h.createTask(t, "Write report", domain.User1)
	other := h.createTask(t, "Book flights", domain.User2)
	h.mustRun(t, "complete", other.ID, "--user", "user2")

	out := h.mustRun(t, "board")
	assert.Contains(t, out, "My tasks (User One)")
	assert.Contains(t, out, "Their tasks (User Two)")
	assert.Contains(t, out, "Write report")
	assert.Contains(t, out, "100% (1/1)")

	out = h.mustRun(t, "board", "--user", "user2")
	assert.Contains(t, out, "My tasks (User Two)")
}

func TestProgressBar(t *testing.T) {
	assert.Equal(t, "[----------]", progressBar(0, 10))
	assert.Equal(t, "[#####-----]", progressBar(50, 10))
	assert.Equal(t, "[##########]", progressBar(100, 10))
	assert.Equal(t, "[##########]", progressBar(150, 10))
}

func TestRootCommand_LoadsConfiguration(t *testing.T) {
	root := NewRootCommand(config.NewLoaderWithEnv(map[string]string{
		"DUO_DB_FILENAME": config.MemoryDatabase,
		"DUO_LOG_LEVEL":   "error",
	}))
	var out bytes.Buffer
	root.Command().SetOut(&out)
	root.Command().SetArgs([]string{"list", "--app-timeout", "5s"})

	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "No tasks found")
	assert.Equal(t, 5*time.Second, root.config.Application.Timeout)
	assert.Nil(t, root.repo, "repository should be closed after execution")
}

func TestRootCommand_InvalidOverride(t *testing.T) {
	root := NewRootCommand(config.NewLoaderWithEnv(map[string]string{
		"DUO_DB_FILENAME": config.MemoryDatabase,
	}))
	root.Command().SetOut(&bytes.Buffer{})
	root.Command().SetArgs([]string{"list", "--log-level", "loud"})

	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load configuration")
}

func TestNeedsStorage(t *testing.T) {
	root := NewRootCommandWithAPI(nil, nil)

	list, _, err := root.Command().Find([]string{"list"})
	require.NoError(t, err)
	assert.True(t, needsStorage(list))

	completion := &cobra.Command{Use: "completion"}
	bash := &cobra.Command{Use: "bash"}
	completion.AddCommand(bash)
	root.Command().AddCommand(completion)
	assert.False(t, needsStorage(bash))
	assert.False(t, needsStorage(&cobra.Command{Use: "help"}))
}
