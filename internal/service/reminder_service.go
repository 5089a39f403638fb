package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rutushah/To-do-application/internal/model"
)

// Summary order for the status groups.
var summaryOrder = []string{
	model.StatusInProgress,
	model.StatusReadyToPick,
	model.StatusBlocked,
	model.StatusCompleted,
}

// ReminderService builds human-readable task summaries for the daily
// notifications.
type ReminderService struct {
	tasks *TaskService
}

func NewReminderService(tasks *TaskService) *ReminderService {
	return &ReminderService{tasks: tasks}
}

// DailySummary lists the user's active tasks grouped by status and calls out
// how many are startable.
func (s *ReminderService) DailySummary(ctx context.Context, user *model.User, now time.Time) (string, error) {
	active, err := s.tasks.GetActiveTasks(ctx, user.ID)
	if err != nil {
		return "", err
	}

	byStatus := make(map[string][]model.TaskView)
	for _, t := range active {
		byStatus[t.StatusName] = append(byStatus[t.StatusName], t)
	}

	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("📋 Task summary for %s\n", user.Name))
	builder.WriteString(fmt.Sprintf("🗓 %s\n", now.Format("02.01.2006")))

	if len(active) == 0 {
		builder.WriteString("\nNo active tasks. Add one with /add.\n")
		return strings.TrimSpace(builder.String()), nil
	}

	startable := 0
	for _, status := range summaryOrder {
		tasks := byStatus[status]
		if len(tasks) == 0 {
			continue
		}
		builder.WriteString(fmt.Sprintf("\n%s:\n", status))
		for _, t := range tasks {
			builder.WriteString(fmt.Sprintf(" - [%d] %s (%s)\n", t.ID, t.TaskName, t.CategoryName))
			if status == model.StatusReadyToPick || status == model.StatusBlocked {
				startable++
			}
		}
	}

	if startable > 0 {
		builder.WriteString(fmt.Sprintf("\n%d task(s) ready to start - use /begin <id>.\n", startable))
	}

	return strings.TrimSpace(builder.String()), nil
}
