package services

import (
	"context"
	"testing"
	"time"

	"duo-tasks/internal/config"
	"duo-tasks/internal/domain"
	"duo-tasks/internal/errors"
	"duo-tasks/internal/repository/sqlite"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

// fakeClock is a manually advanced Clock.
type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: epoch}
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func setupServices(t *testing.T) (*ServiceContainer, *fakeClock, sqlite.Repository) {
	t.Helper()

	repo, err := config.CreateTestRepository(context.Background())
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	clock := newFakeClock()
	container := NewServiceContainer(repo, config.NewConfig(), WithClock(clock.Now))
	return container, clock, repo
}

func createTask(t *testing.T, svc TaskService, title string, owner domain.UserID) *domain.Task {
	t.Helper()

	task, err := svc.CreateTask(context.Background(), title, title+" details", string(owner))
	require.NoError(t, err)
	return task
}

func assertUnavailable(t *testing.T, err error) {
	t.Helper()

	require.Error(t, err)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))
	assert.Equal(t, errors.CodeTaskUnavailable, errors.GetErrorCode(err))
	assert.Equal(t, "task not found or unauthorized", errors.GetUserMessage(err))
}

func assertValidation(t *testing.T, err error, contains string) {
	t.Helper()

	require.Error(t, err)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeValidation), "expected validation error, got %v", err)
	assert.Contains(t, errors.GetUserMessage(err), contains)
}
