package services

import (
	"context"
	"testing"
	"time"

	"duo-tasks/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportingService_GetProgress(t *testing.T) {
	services, clock, _ := setupServices(t)
	ctx := context.Background()

	a := createTask(t, services.TaskService, "A", domain.User1)
	createTask(t, services.TaskService, "B", domain.User1)
	c := createTask(t, services.TaskService, "C", domain.User1)

	_, err := services.TaskService.CompleteTask(ctx, a.ID, "user1")
	require.NoError(t, err)
	_, err = services.TaskService.StartTask(ctx, c.ID, "user1")
	require.NoError(t, err)
	clock.Advance(2 * time.Minute)

	progress, err := services.ReportingService.GetProgress(ctx)
	require.NoError(t, err)
	require.Len(t, progress, 2)

	assert.Equal(t, domain.User1, progress[0].User.ID)
	assert.Equal(t, 3, progress[0].Total)
	assert.Equal(t, 1, progress[0].Completed)
	assert.Equal(t, 33, progress[0].Percent)
	assert.Equal(t, 2*time.Minute, progress[0].TimeSpent)

	assert.Equal(t, domain.User2, progress[1].User.ID)
	assert.Zero(t, progress[1].Total)
	assert.Zero(t, progress[1].Percent)
}

func TestReportingService_CalculateProgressRounds(t *testing.T) {
	svc := NewReportingService(nil, newFakeClock().Now)
	users := []domain.User{{ID: domain.User2, Name: "Two"}}
	tasks := []domain.Task{
		{AssignedTo: domain.User2, Completed: true},
		{AssignedTo: domain.User2, Completed: true},
		{AssignedTo: domain.User2},
		{AssignedTo: domain.User1, Completed: true},
	}

	progress := svc.CalculateProgress(users, tasks)

	require.Len(t, progress, 1)
	assert.Equal(t, 3, progress[0].Total)
	assert.Equal(t, 67, progress[0].Percent)
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		duration time.Duration
		expected string
	}{
		{0, "0s"},
		{-time.Second, "0s"},
		{42 * time.Second, "42s"},
		{5*time.Minute + 3*time.Second, "5m 3s"},
		{time.Hour + 5*time.Minute + 59*time.Second, "1h 5m"},
		{26 * time.Hour, "26h 0m"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatDuration(tt.duration))
		})
	}
}
