package agent

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"apollo/types"
)

func snapshotFixture() types.ContextSnapshot {
	due := time.Date(2026, 9, 3, 0, 0, 0, 0, time.UTC)
	milestoneID := "m1"
	return types.ContextSnapshot{
		UserID: "user-1",
		Today:  types.TodayContext{Date: "2026-09-02", DayOfWeek: "Wednesday"},
		WeeklyProgress: types.WeeklyProgress{
			WeekStart:      "2026-08-31",
			TasksCompleted: 2,
			TotalMinutes:   90,
		},
		ActiveTasks: []types.Task{
			{ID: "t1", Title: "Write report", Status: "in_progress", Priority: "high", Project: "Thesis", MilestoneID: &milestoneID},
			{ID: "t2", Title: "Buy groceries", Status: "pending", Priority: "medium"},
		},
		ActiveGoals: []types.Goal{
			{ID: "g1", Title: "Finish thesis", TargetDate: &due},
		},
		ActiveMilestones: []types.Milestone{
			{ID: "m1", GoalID: "g1", Title: "Draft chapters", Status: "in_progress", Progress: 40},
		},
		UrgentDeadlines: []types.Task{
			{ID: "t1", Title: "Write report", DueDate: &due, MilestoneID: &milestoneID},
		},
		UpcomingDeadlines: []types.Task{
			{ID: "t3", Title: "Prepare slides", DueDate: &due},
		},
	}
}

func TestFormatSnapshot(t *testing.T) {
	out := FormatSnapshot(snapshotFixture())

	t.Run("section order", func(t *testing.T) {
		sections := []string{
			"=== TODAY'S CONTEXT ===",
			"=== WEEKLY PROGRESS ===",
			"=== URGENT DEADLINES (0-3 days) ===",
			"=== UPCOMING DEADLINES (4-10 days) ===",
			"=== GOALS ===",
			"=== MILESTONES ===",
			"=== CURRENT TASKS ===",
		}
		last := -1
		for _, section := range sections {
			idx := strings.Index(out, section)
			assert.Greater(t, idx, last, "section %q out of order", section)
			last = idx
		}
	})

	t.Run("ids appear verbatim", func(t *testing.T) {
		assert.Contains(t, out, "ID: t1")
		assert.Contains(t, out, "ID: g1")
		assert.Contains(t, out, "ID: m1")
	})

	t.Run("deadline markers", func(t *testing.T) {
		assert.Contains(t, out, "⚠️  Write report (Due: 2026-09-03)")
		assert.Contains(t, out, "📅 Prepare slides (Due: 2026-09-03)")
	})

	t.Run("high priority flag", func(t *testing.T) {
		assert.Contains(t, out, "[HIGH] Write report (in_progress) [Project: Thesis] → Milestone: m1")
	})

	t.Run("milestone line", func(t *testing.T) {
		assert.Contains(t, out, "[in_progress] Draft chapters (40% complete)")
		assert.Contains(t, out, "→ Goal: g1")
	})
}

func TestFormatSnapshotTaskCap(t *testing.T) {
	snapshot := snapshotFixture()
	snapshot.ActiveTasks = nil
	for i := 0; i < 14; i++ {
		snapshot.ActiveTasks = append(snapshot.ActiveTasks, types.Task{
			ID:     fmt.Sprintf("t%d", i),
			Title:  fmt.Sprintf("Task %d", i),
			Status: "pending",
		})
	}

	out := FormatSnapshot(snapshot)

	assert.Contains(t, out, "=== CURRENT TASKS === (14 total)")
	assert.Contains(t, out, "Task 9")
	assert.NotContains(t, out, "Task 10")
	assert.Contains(t, out, "... and 4 more tasks")
}

func TestFormatSnapshotEmpty(t *testing.T) {
	out := FormatSnapshot(types.ContextSnapshot{
		Today:          types.TodayContext{Date: "2026-09-02", DayOfWeek: "Wednesday"},
		WeeklyProgress: types.WeeklyProgress{WeekStart: "2026-08-31"},
	})

	assert.Contains(t, out, "=== CURRENT TASKS === None")
	assert.NotContains(t, out, "URGENT DEADLINES")
	assert.NotContains(t, out, "=== GOALS ===")
}

func TestFormatSnapshotProfile(t *testing.T) {
	snapshot := snapshotFixture()
	snapshot.UserProfile = map[string]string{
		"Timezone": "Europe/Berlin",
		"Focus":    "deep work mornings",
	}

	out := FormatSnapshot(snapshot)

	// Profile leads, with keys in sorted order.
	assert.True(t, strings.HasPrefix(out, "=== USER PROFILE ==="))
	assert.Less(t, strings.Index(out, "Focus:"), strings.Index(out, "Timezone:"))
}
