package agent

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"apollo/types"
)

// maxFormattedTasks caps the task section of the prompt; the snapshot may
// hold more, the remainder is summarized on one line.
const maxFormattedTasks = 10

func formatDate(t *time.Time, empty string) string {
	if t == nil {
		return empty
	}
	return t.Format("2006-01-02")
}

// FormatSnapshot renders the context snapshot into the plain-text block the
// system prompt carries. Section order mirrors how a coach would scan it:
// today, progress, deadlines by urgency, then the standing plan.
func FormatSnapshot(snapshot types.ContextSnapshot) string {
	var parts []string

	if len(snapshot.UserProfile) > 0 {
		parts = append(parts, "=== USER PROFILE ===")
		keys := make([]string, 0, len(snapshot.UserProfile))
		for key := range snapshot.UserProfile {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			parts = append(parts, fmt.Sprintf("%s: %s", key, snapshot.UserProfile[key]))
		}
		parts = append(parts, "")
	}

	parts = append(parts, "=== TODAY'S CONTEXT ===")
	parts = append(parts, fmt.Sprintf("Date: %s (%s)", snapshot.Today.Date, snapshot.Today.DayOfWeek))
	parts = append(parts, "")

	parts = append(parts, "=== WEEKLY PROGRESS ===")
	parts = append(parts, fmt.Sprintf("Week starting: %s", snapshot.WeeklyProgress.WeekStart))
	parts = append(parts, fmt.Sprintf("Tasks completed: %d", snapshot.WeeklyProgress.TasksCompleted))
	parts = append(parts, fmt.Sprintf("Time spent: %d minutes", snapshot.WeeklyProgress.TotalMinutes))
	parts = append(parts, "")

	if len(snapshot.UrgentDeadlines) > 0 {
		parts = append(parts, fmt.Sprintf("=== URGENT DEADLINES (0-3 days) === (%d items)", len(snapshot.UrgentDeadlines)))
		for _, task := range snapshot.UrgentDeadlines {
			parts = append(parts, fmt.Sprintf("  ⚠️  %s (Due: %s)", task.Title, formatDate(task.DueDate, "No date")))
			if task.MilestoneID != nil && *task.MilestoneID != "" {
				parts = append(parts, fmt.Sprintf("      → Milestone: %s", *task.MilestoneID))
			}
		}
		parts = append(parts, "")
	}

	if len(snapshot.UpcomingDeadlines) > 0 {
		parts = append(parts, fmt.Sprintf("=== UPCOMING DEADLINES (4-10 days) === (%d items)", len(snapshot.UpcomingDeadlines)))
		for _, task := range snapshot.UpcomingDeadlines {
			parts = append(parts, fmt.Sprintf("  📅 %s (Due: %s)", task.Title, formatDate(task.DueDate, "No date")))
		}
		parts = append(parts, "")
	}

	if len(snapshot.ActiveGoals) > 0 {
		parts = append(parts, fmt.Sprintf("=== GOALS === (%d active)", len(snapshot.ActiveGoals)))
		for _, goal := range snapshot.ActiveGoals {
			parts = append(parts, fmt.Sprintf("  - %s (Target: %s)", goal.Title, formatDate(goal.TargetDate, "No deadline")))
			parts = append(parts, fmt.Sprintf("    ID: %s", goal.ID))
		}
		parts = append(parts, "")
	}

	if len(snapshot.ActiveMilestones) > 0 {
		parts = append(parts, fmt.Sprintf("=== MILESTONES === (%d active)", len(snapshot.ActiveMilestones)))
		for _, milestone := range snapshot.ActiveMilestones {
			parts = append(parts, fmt.Sprintf("  - [%s] %s (%d%% complete)", milestone.Status, milestone.Title, milestone.Progress))
			parts = append(parts, fmt.Sprintf("    ID: %s", milestone.ID))
			if milestone.GoalID != "" {
				parts = append(parts, fmt.Sprintf("    → Goal: %s", milestone.GoalID))
			}
		}
		parts = append(parts, "")
	}

	if len(snapshot.ActiveTasks) > 0 {
		parts = append(parts, fmt.Sprintf("=== CURRENT TASKS === (%d total)", len(snapshot.ActiveTasks)))
		shown := snapshot.ActiveTasks
		if len(shown) > maxFormattedTasks {
			shown = shown[:maxFormattedTasks]
		}
		for _, task := range shown {
			line := "  - "
			if task.Priority == "high" {
				line += "[HIGH] "
			}
			line += fmt.Sprintf("%s (%s)", task.Title, task.Status)
			if task.Project != "" {
				line += fmt.Sprintf(" [Project: %s]", task.Project)
			}
			if task.MilestoneID != nil && *task.MilestoneID != "" {
				line += fmt.Sprintf(" → Milestone: %s", *task.MilestoneID)
			}
			parts = append(parts, line)
			parts = append(parts, fmt.Sprintf("    ID: %s", task.ID))
		}
		if len(snapshot.ActiveTasks) > maxFormattedTasks {
			parts = append(parts, fmt.Sprintf("  ... and %d more tasks", len(snapshot.ActiveTasks)-maxFormattedTasks))
		}
		parts = append(parts, "")
	} else {
		parts = append(parts, "=== CURRENT TASKS === None")
		parts = append(parts, "")
	}

	return strings.TrimRight(strings.Join(parts, "\n"), "\n")
}
