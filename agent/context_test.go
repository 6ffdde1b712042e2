package agent

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"apollo/types"
)

type fakeTaskSource struct {
	active   []types.Task
	urgent   []types.Task
	upcoming []types.Task
	done     int
	minutes  int
	fail     bool

	urgentUntil   time.Time
	upcomingAfter time.Time
	upcomingUntil time.Time
}

func (f *fakeTaskSource) ListActive(ctx context.Context, userID string, limit int) ([]types.Task, error) {
	if f.fail {
		return nil, errors.New("db down")
	}
	return f.active, nil
}

func (f *fakeTaskSource) ListDueWithin(ctx context.Context, userID string, until time.Time, limit int) ([]types.Task, error) {
	if f.fail {
		return nil, errors.New("db down")
	}
	f.urgentUntil = until
	return f.urgent, nil
}

func (f *fakeTaskSource) ListDueBetween(ctx context.Context, userID string, after, until time.Time, limit int) ([]types.Task, error) {
	if f.fail {
		return nil, errors.New("db down")
	}
	f.upcomingAfter = after
	f.upcomingUntil = until
	return f.upcoming, nil
}

func (f *fakeTaskSource) CountCompletedSince(ctx context.Context, userID string, since time.Time) (int, int, error) {
	if f.fail {
		return 0, 0, errors.New("db down")
	}
	return f.done, f.minutes, nil
}

type fakeGoalSource struct{ goals []types.Goal }

func (f *fakeGoalSource) ListActive(ctx context.Context, userID string, limit int) ([]types.Goal, error) {
	return f.goals, nil
}

type fakeMilestoneSource struct{ milestones []types.Milestone }

func (f *fakeMilestoneSource) ListActive(ctx context.Context, userID string, limit int) ([]types.Milestone, error) {
	return f.milestones, nil
}

func TestWeekStart(t *testing.T) {
	cases := []struct {
		name string
		now  string
		want string
	}{
		{"monday maps to itself", "2026-08-31", "2026-08-31"},
		{"wednesday maps back to monday", "2026-09-02", "2026-08-31"},
		{"sunday maps back six days", "2026-09-06", "2026-08-31"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			now, _ := time.Parse("2006-01-02", tc.now)
			assert.Equal(t, tc.want, weekStart(now).Format("2006-01-02"))
		})
	}
}

func TestAssemble(t *testing.T) {
	now, _ := time.Parse(time.RFC3339, "2026-09-02T10:00:00Z")

	t.Run("fills all sections", func(t *testing.T) {
		tasks := &fakeTaskSource{
			active:  []types.Task{{ID: "t1", Title: "Write report"}},
			urgent:  []types.Task{{ID: "t2", Title: "File taxes"}},
			done:    3,
			minutes: 120,
		}
		a := NewAssembler(tasks,
			&fakeGoalSource{goals: []types.Goal{{ID: "g1", Title: "Ship the app"}}},
			&fakeMilestoneSource{milestones: []types.Milestone{{ID: "m1", Title: "Beta", GoalID: "g1"}}},
			nil)
		a.now = func() time.Time { return now }

		snapshot := a.Assemble(context.Background(), "user-1")

		assert.Equal(t, "user-1", snapshot.UserID)
		assert.Equal(t, "2026-09-02", snapshot.Today.Date)
		assert.Equal(t, "Wednesday", snapshot.Today.DayOfWeek)
		assert.Equal(t, "2026-08-31", snapshot.WeeklyProgress.WeekStart)
		assert.Equal(t, 3, snapshot.WeeklyProgress.TasksCompleted)
		assert.Equal(t, 120, snapshot.WeeklyProgress.TotalMinutes)
		assert.Len(t, snapshot.ActiveTasks, 1)
		assert.Len(t, snapshot.ActiveGoals, 1)
		assert.Len(t, snapshot.ActiveMilestones, 1)
		assert.Len(t, snapshot.UrgentDeadlines, 1)
		assert.Empty(t, snapshot.UpcomingDeadlines)
	})

	t.Run("deadline windows are disjoint", func(t *testing.T) {
		tasks := &fakeTaskSource{}
		a := NewAssembler(tasks, &fakeGoalSource{}, &fakeMilestoneSource{}, nil)
		a.now = func() time.Time { return now }

		a.Assemble(context.Background(), "user-1")

		assert.Equal(t, now.AddDate(0, 0, 3), tasks.urgentUntil)
		assert.Equal(t, now.AddDate(0, 0, 3), tasks.upcomingAfter)
		assert.Equal(t, now.AddDate(0, 0, 10), tasks.upcomingUntil)
	})

	t.Run("query failures leave sections empty", func(t *testing.T) {
		a := NewAssembler(&fakeTaskSource{fail: true}, &fakeGoalSource{}, &fakeMilestoneSource{}, nil)
		a.now = func() time.Time { return now }

		snapshot := a.Assemble(context.Background(), "user-1")

		assert.Empty(t, snapshot.ActiveTasks)
		assert.Empty(t, snapshot.UrgentDeadlines)
		assert.Zero(t, snapshot.WeeklyProgress.TasksCompleted)
		// Temporal fields never depend on queries.
		assert.Equal(t, "2026-09-02", snapshot.Today.Date)
	})
}
