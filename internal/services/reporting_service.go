package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"duo-tasks/internal/domain"
	"duo-tasks/internal/repository/sqlite"
)

// reportingServiceImpl implements the ReportingService interface
type reportingServiceImpl struct {
	repo   sqlite.Repository
	clock  Clock
	mapper *domain.Mapper
}

// NewReportingService creates a new ReportingService instance
func NewReportingService(repo sqlite.Repository, clock Clock) ReportingService {
	if clock == nil {
		clock = time.Now
	}
	return &reportingServiceImpl{
		repo:   repo,
		clock:  clock,
		mapper: domain.NewMapper(),
	}
}

// Now returns the service clock's current time in UTC
func (r *reportingServiceImpl) Now() time.Time {
	return r.clock().UTC()
}

// GetProgress loads users and tasks and summarizes them per user
func (r *reportingServiceImpl) GetProgress(ctx context.Context) ([]UserProgress, error) {
	userRows, err := r.repo.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	taskRows, err := r.repo.ListTasks(ctx)
	if err != nil {
		return nil, err
	}

	users := r.mapper.User.FromDatabaseSlice(userRows)
	tasks := r.mapper.Task.FromDatabaseSlice(taskRows)
	return r.CalculateProgress(users, tasks), nil
}

// CalculateProgress summarizes tasks per user. Running timers count up to now.
func (r *reportingServiceImpl) CalculateProgress(users []domain.User, tasks []domain.Task) []UserProgress {
	now := r.Now()
	progress := make([]UserProgress, 0, len(users))

	for _, user := range users {
		p := UserProgress{User: user}
		for _, task := range tasks {
			if !task.IsOwnedBy(user.ID) {
				continue
			}
			p.Total++
			if task.Completed {
				p.Completed++
			}
			p.TimeSpent += task.Elapsed(now)
		}
		if p.Total > 0 {
			p.Percent = int(math.Round(float64(p.Completed) / float64(p.Total) * 100))
		}
		progress = append(progress, p)
	}

	return progress
}

// FormatDuration formats a duration into a human-readable string
func (r *reportingServiceImpl) FormatDuration(duration time.Duration) string {
	return FormatDuration(duration)
}

// FormatDuration renders d as "1h 5m", "5m 3s" or "3s".
func FormatDuration(duration time.Duration) string {
	if duration < 0 {
		return "0s"
	}

	hours := int(duration.Hours())
	minutes := int(duration.Minutes()) % 60
	seconds := int(duration.Seconds()) % 60

	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	if minutes > 0 {
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	}
	return fmt.Sprintf("%ds", seconds)
}
