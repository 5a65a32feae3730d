package domain

import (
	"time"

	"duo-tasks/internal/repository/sqlite"
)

// TaskMapper handles conversion between domain and database Task models.
type TaskMapper struct{}

// NewTaskMapper creates a new TaskMapper instance.
func NewTaskMapper() *TaskMapper {
	return &TaskMapper{}
}

// ToDatabase converts a domain Task to a database Task.
func (m *TaskMapper) ToDatabase(task Task) sqlite.Task {
	var completedBy *string
	if task.CompletedBy != nil {
		s := string(*task.CompletedBy)
		completedBy = &s
	}
	return sqlite.Task{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		AssignedTo:  string(task.AssignedTo),
		Completed:   task.Completed,
		CompletedBy: completedBy,
		CompletedAt: task.CompletedAt,
		StartTime:   task.StartTime,
		TimeSpentMS: task.TimeSpent.Milliseconds(),
		Priority:    int(task.Priority),
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}

// FromDatabase converts a database Task to a domain Task.
func (m *TaskMapper) FromDatabase(row sqlite.Task) Task {
	var completedBy *UserID
	if row.CompletedBy != nil {
		u := UserID(*row.CompletedBy)
		completedBy = &u
	}
	return Task{
		ID:          row.ID,
		Title:       row.Title,
		Description: row.Description,
		AssignedTo:  UserID(row.AssignedTo),
		Completed:   row.Completed,
		CompletedBy: completedBy,
		CompletedAt: row.CompletedAt,
		StartTime:   row.StartTime,
		TimeSpent:   time.Duration(row.TimeSpentMS) * time.Millisecond,
		Priority:    Priority(row.Priority),
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
}

// ToDatabaseSlice converts domain Tasks to rows ready for a batch insert.
func (m *TaskMapper) ToDatabaseSlice(tasks []Task) []*sqlite.Task {
	rows := make([]*sqlite.Task, len(tasks))
	for i, task := range tasks {
		row := m.ToDatabase(task)
		rows[i] = &row
	}
	return rows
}

// FromDatabaseSlice converts database Tasks to domain Tasks.
func (m *TaskMapper) FromDatabaseSlice(rows []*sqlite.Task) []Task {
	tasks := make([]Task, len(rows))
	for i, row := range rows {
		tasks[i] = m.FromDatabase(*row)
	}
	return tasks
}

// UserMapper handles conversion between domain and database User models.
type UserMapper struct{}

// NewUserMapper creates a new UserMapper instance.
func NewUserMapper() *UserMapper {
	return &UserMapper{}
}

// ToDatabase converts a domain User to a database User.
func (m *UserMapper) ToDatabase(user User) sqlite.User {
	return sqlite.User{ID: string(user.ID), Name: user.Name}
}

// FromDatabase converts a database User to a domain User.
func (m *UserMapper) FromDatabase(row sqlite.User) User {
	return User{ID: UserID(row.ID), Name: row.Name}
}

// FromDatabaseSlice converts database Users to domain Users.
func (m *UserMapper) FromDatabaseSlice(rows []*sqlite.User) []User {
	users := make([]User, len(rows))
	for i, row := range rows {
		users[i] = m.FromDatabase(*row)
	}
	return users
}

// Mapper provides a unified interface for all mapping operations.
type Mapper struct {
	Task *TaskMapper
	User *UserMapper
}

// NewMapper creates a new Mapper instance with all sub-mappers.
func NewMapper() *Mapper {
	return &Mapper{
		Task: NewTaskMapper(),
		User: NewUserMapper(),
	}
}
