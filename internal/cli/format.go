package cli

import (
	"time"

	"duo-tasks/internal/api"
	"duo-tasks/internal/domain"
	"duo-tasks/internal/services"
)

func formatMillis(ms int64) string {
	return services.FormatDuration(time.Duration(ms) * time.Millisecond)
}

func priorityName(p int) string {
	return domain.Priority(p).String()
}

func orDash(s *string) string {
	if s == nil || *s == "" {
		return "-"
	}
	return *s
}

// elapsedMillis adds the running interval of a started timer to the stored total.
func elapsedMillis(task api.TaskView, now time.Time) int64 {
	ms := task.TimeSpent
	if task.StartTime != nil {
		if d := now.Sub(*task.StartTime); d > 0 {
			ms += d.Milliseconds()
		}
	}
	return ms
}
