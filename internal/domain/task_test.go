package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

func runningTask(start time.Time, spent time.Duration) Task {
	s := start
	return Task{ID: "t1", Title: "Write report", AssignedTo: User1, StartTime: &s, TimeSpent: spent}
}

func TestNewTask(t *testing.T) {
	task := NewTask("abc", TaskDraft{Title: "A", Description: "B", AssignedTo: User2, Priority: PriorityHigh}, t0)

	assert.Equal(t, "abc", task.ID)
	assert.Equal(t, User2, task.AssignedTo)
	assert.Equal(t, PriorityHigh, task.Priority)
	assert.False(t, task.Completed)
	assert.Nil(t, task.StartTime)
	assert.Zero(t, task.TimeSpent)
	assert.Equal(t, t0, task.CreatedAt)
	assert.Equal(t, t0, task.UpdatedAt)
}

func TestTask_StartPause(t *testing.T) {
	task := NewTask("t1", TaskDraft{Title: "A", Description: "B", AssignedTo: User1}, t0)

	require.NoError(t, task.Start(t0))
	assert.True(t, task.IsRunning())

	require.NoError(t, task.Pause(t0.Add(1000*time.Millisecond)))
	assert.False(t, task.IsRunning())
	assert.Equal(t, 1000*time.Millisecond, task.TimeSpent)
}

func TestTask_StartWhileRunningFolds(t *testing.T) {
	task := runningTask(t0, 5*time.Second)

	require.NoError(t, task.Start(t0.Add(2*time.Second)))

	assert.Equal(t, 7*time.Second, task.TimeSpent)
	require.NotNil(t, task.StartTime)
	assert.Equal(t, t0.Add(2*time.Second), *task.StartTime)
}

func TestTask_StartCompleted(t *testing.T) {
	task := Task{Completed: true}
	assert.ErrorIs(t, task.Start(t0), ErrTaskCompleted)
	assert.Nil(t, task.StartTime)
}

func TestTask_PauseNotRunning(t *testing.T) {
	task := Task{TimeSpent: time.Minute}
	assert.ErrorIs(t, task.Pause(t0), ErrTimerNotRunning)
	assert.Equal(t, time.Minute, task.TimeSpent)
}

func TestTask_CompleteFoldsRunningTimer(t *testing.T) {
	task := runningTask(t0, time.Second)

	task.Complete(User2, t0.Add(3*time.Second))

	assert.True(t, task.Completed)
	assert.Nil(t, task.StartTime)
	assert.Equal(t, 4*time.Second, task.TimeSpent)
	require.NotNil(t, task.CompletedBy)
	assert.Equal(t, User2, *task.CompletedBy)
	require.NotNil(t, task.CompletedAt)
	assert.Equal(t, t0.Add(3*time.Second), *task.CompletedAt)
}

func TestTask_CompleteTwiceRefreshes(t *testing.T) {
	task := Task{AssignedTo: User1}
	task.Complete(User1, t0)
	task.Complete(User2, t0.Add(time.Hour))

	assert.Equal(t, User2, *task.CompletedBy)
	assert.Equal(t, t0.Add(time.Hour), *task.CompletedAt)
}

func TestTask_Undo(t *testing.T) {
	task := Task{AssignedTo: User1, TimeSpent: time.Minute}
	task.Complete(User1, t0)

	task.Undo(t0.Add(time.Minute))

	assert.False(t, task.Completed)
	assert.Nil(t, task.CompletedBy)
	assert.Nil(t, task.CompletedAt)
	assert.Nil(t, task.StartTime)
	assert.Equal(t, time.Minute, task.TimeSpent)
}

func TestTask_TransferToFolds(t *testing.T) {
	task := runningTask(t0, 0)

	task.TransferTo(User2, t0.Add(90*time.Second))

	assert.Equal(t, User2, task.AssignedTo)
	assert.Nil(t, task.StartTime)
	assert.Equal(t, 90*time.Second, task.TimeSpent)
}

func TestTask_ResetTimer(t *testing.T) {
	task := runningTask(t0, time.Hour)
	task.ResetTimer()
	assert.Zero(t, task.TimeSpent)
	assert.Nil(t, task.StartTime)
}

func TestTask_Elapsed(t *testing.T) {
	tests := []struct {
		name     string
		task     Task
		now      time.Time
		expected time.Duration
	}{
		{"stopped", Task{TimeSpent: 3 * time.Second}, t0, 3 * time.Second},
		{"running", runningTask(t0, 3*time.Second), t0.Add(2 * time.Second), 5 * time.Second},
		{"clock behind start", runningTask(t0, 3*time.Second), t0.Add(-time.Second), 3 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.task.Elapsed(tt.now))
		})
	}
}

func TestTask_Record(t *testing.T) {
	task := runningTask(t0, time.Minute)
	task.Description = "details"
	task.Priority = PriorityMedium

	rec := task.Record()

	assert.Equal(t, TaskRecord{
		Title:       "Write report",
		Description: "details",
		AssignedTo:  User1,
		Priority:    PriorityMedium,
	}, rec)
}

func TestParseUserID(t *testing.T) {
	tests := []struct {
		input   string
		want    UserID
		wantErr bool
	}{
		{"user1", User1, false},
		{" user2 ", User2, false},
		{"user3", "", true},
		{"", "", true},
		{"USER1", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseUserID(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestUserID_Other(t *testing.T) {
	assert.Equal(t, User2, User1.Other())
	assert.Equal(t, User1, User2.Other())
}

func TestUser_DisplayName(t *testing.T) {
	assert.Equal(t, "Ana", User{ID: User1, Name: "Ana"}.DisplayName())
	assert.Equal(t, "user2", User{ID: User2, Name: "  "}.DisplayName())
}

func TestPriority(t *testing.T) {
	assert.True(t, PriorityLow.IsValid())
	assert.True(t, PriorityHigh.IsValid())
	assert.False(t, Priority(3).IsValid())
	assert.False(t, Priority(-1).IsValid())
	assert.Equal(t, "medium", PriorityMedium.String())
}

func TestTask_Apply(t *testing.T) {
	task := runningTask(t0, time.Minute)
	title := "New title"
	prio := PriorityHigh

	update := TaskUpdate{Title: &title, Priority: &prio}
	assert.False(t, update.IsEmpty())
	task.Apply(update)

	assert.Equal(t, "New title", task.Title)
	assert.Equal(t, PriorityHigh, task.Priority)
	assert.Equal(t, "", task.Description)
	assert.True(t, task.IsRunning())
	assert.Equal(t, time.Minute, task.TimeSpent)
	assert.True(t, TaskUpdate{}.IsEmpty())
}
