package api

import (
	"time"

	"duo-tasks/internal/domain"
	"duo-tasks/internal/services"
)

// TaskView is the JSON shape of a task. Unset optional fields are null.
type TaskView struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	AssignedTo  string     `json:"assignedTo"`
	Completed   bool       `json:"completed"`
	CompletedBy *string    `json:"completedBy"`
	CompletedAt *time.Time `json:"completedAt"`
	StartTime   *time.Time `json:"startTime"`
	TimeSpent   int64      `json:"timeSpent"`
	Priority    int        `json:"priority"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// UserView is the JSON shape of a user.
type UserView struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ProgressView is one user's entry in the progress report.
type ProgressView struct {
	User      UserView `json:"user"`
	Total     int      `json:"total"`
	Completed int      `json:"completed"`
	Percent   int      `json:"percent"`
	TimeSpent int64    `json:"timeSpent"`
	Formatted string   `json:"formatted"`
}

// BoardView is the response of GET /api/tasks.
type BoardView struct {
	Tasks []TaskView `json:"tasks"`
	Users []UserView `json:"users"`
}

// NewTaskView converts a domain task.
func NewTaskView(task domain.Task) TaskView {
	view := TaskView{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		AssignedTo:  string(task.AssignedTo),
		Completed:   task.Completed,
		CompletedAt: task.CompletedAt,
		StartTime:   task.StartTime,
		TimeSpent:   task.TimeSpent.Milliseconds(),
		Priority:    int(task.Priority),
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
	if task.CompletedBy != nil {
		by := string(*task.CompletedBy)
		view.CompletedBy = &by
	}
	return view
}

// NewTaskViews converts a slice, never returning nil.
func NewTaskViews(tasks []domain.Task) []TaskView {
	views := make([]TaskView, len(tasks))
	for i, task := range tasks {
		views[i] = NewTaskView(task)
	}
	return views
}

// NewUserView converts a domain user.
func NewUserView(user domain.User) UserView {
	return UserView{ID: string(user.ID), Name: user.DisplayName()}
}

// NewUserViews converts a slice, never returning nil.
func NewUserViews(users []domain.User) []UserView {
	views := make([]UserView, len(users))
	for i, user := range users {
		views[i] = NewUserView(user)
	}
	return views
}

// NewProgressView converts a progress entry.
func NewProgressView(p services.UserProgress) ProgressView {
	return ProgressView{
		User:      NewUserView(p.User),
		Total:     p.Total,
		Completed: p.Completed,
		Percent:   p.Percent,
		TimeSpent: p.TimeSpent.Milliseconds(),
		Formatted: services.FormatDuration(p.TimeSpent),
	}
}
