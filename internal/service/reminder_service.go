package service

import (
	"context"
	"fmt"
	"html"
	"strings"
	"time"

	"tasky/internal/analytics"
	"tasky/internal/model"
)

// maxDigestTasks caps how many open tasks a digest lists.
const maxDigestTasks = 15

// ReminderService builds human-readable summaries for daily notifications.
type ReminderService struct {
	tasks *TaskService
	stats *StatsService
}

func NewReminderService(tasks *TaskService, stats *StatsService) *ReminderService {
	return &ReminderService{tasks: tasks, stats: stats}
}

// DailySummary renders today's rollup, the streak and the visible open tasks
// as Telegram HTML.
func (s *ReminderService) DailySummary(ctx context.Context, now time.Time) (string, error) {
	dash, err := s.stats.Dashboard(ctx, now)
	if err != nil {
		return "", err
	}
	visible, err := s.tasks.List(ctx, false)
	if err != nil {
		return "", err
	}
	hidden, err := s.tasks.HiddenCount(ctx)
	if err != nil {
		return "", err
	}

	var builder strings.Builder
	builder.WriteString("📋 <b>Daily report</b>\n")
	builder.WriteString(fmt.Sprintf("🗓 %s\n\n", now.Format("Monday, 02 Jan 2006")))

	builder.WriteString(fmt.Sprintf("✅ Completed today: <b>%d</b>\n", dash.Today.Completed))
	builder.WriteString(fmt.Sprintf("🆕 Created today: <b>%d</b>\n", dash.Today.Created))
	if dash.Today.TotalMinutes > 0 {
		builder.WriteString(fmt.Sprintf("⏱ Time to done: %s\n", analytics.FormatDuration(dash.Today.TotalMinutes)))
	}
	builder.WriteString(fmt.Sprintf("🔥 Streak: <b>%d</b> day(s)\n", dash.Streak))
	builder.WriteString(fmt.Sprintf("📈 Overall: %d/%d done (%.0f%%)\n", dash.Overall.Completed, dash.Overall.Total, dash.Overall.CompletionRate))

	builder.WriteString("\n🔥 <b>Open tasks</b>\n")
	if len(visible) == 0 {
		builder.WriteString("— nothing on the main list\n")
	} else {
		for i, task := range visible {
			if i == maxDigestTasks {
				builder.WriteString(fmt.Sprintf("… and %d more\n", len(visible)-maxDigestTasks))
				break
			}
			builder.WriteString(formatTask(task))
		}
	}
	if hidden > 0 {
		builder.WriteString(fmt.Sprintf("\n🙈 %d hidden task(s) still open\n", hidden))
	}

	return strings.TrimSpace(builder.String()), nil
}

func formatTask(task model.Task) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%s #%d %s", priorityIcon(task.Priority), task.ID, html.EscapeString(strings.TrimSpace(task.Title))))
	if cat := strings.TrimSpace(task.Category); cat != "" && cat != model.DefaultCategory {
		sb.WriteString(fmt.Sprintf(" <i>(%s)</i>", html.EscapeString(cat)))
	}
	if task.StartedAt != nil {
		sb.WriteString(" ▶️")
	}
	if task.Description != "" {
		sb.WriteString(fmt.Sprintf("\n   📝 %s", html.EscapeString(strings.TrimSpace(task.Description))))
	}

	sb.WriteByte('\n')
	return sb.String()
}

func priorityIcon(priority string) string {
	switch priority {
	case model.PriorityHigh:
		return "🔴"
	case model.PriorityLow:
		return "🟢"
	default:
		return "🟡"
	}
}
