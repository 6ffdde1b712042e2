// Package agent holds the coordinator that drives conversations: it gathers
// the user's current state, formats it into the system prompt, offers the
// model a closed set of tools, and executes whatever the model calls.
package agent

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"apollo/config"
	"apollo/types"
)

// TaskSource is the slice of task persistence the assembler needs.
type TaskSource interface {
	ListActive(ctx context.Context, userID string, limit int) ([]types.Task, error)
	ListDueWithin(ctx context.Context, userID string, until time.Time, limit int) ([]types.Task, error)
	ListDueBetween(ctx context.Context, userID string, after, until time.Time, limit int) ([]types.Task, error)
	CountCompletedSince(ctx context.Context, userID string, since time.Time) (int, int, error)
}

type GoalSource interface {
	ListActive(ctx context.Context, userID string, limit int) ([]types.Goal, error)
}

type MilestoneSource interface {
	ListActive(ctx context.Context, userID string, limit int) ([]types.Milestone, error)
}

// ProfileSource is optional; a nil source means no profile section.
type ProfileSource interface {
	Fetch(ctx context.Context, userID string) (map[string]string, error)
}

// Assembler builds the context snapshot behind every model call.
type Assembler struct {
	tasks      TaskSource
	goals      GoalSource
	milestones MilestoneSource
	profile    ProfileSource
	now        func() time.Time
}

func NewAssembler(tasks TaskSource, goals GoalSource, milestones MilestoneSource, profile ProfileSource) *Assembler {
	return &Assembler{
		tasks:      tasks,
		goals:      goals,
		milestones: milestones,
		profile:    profile,
		now:        time.Now,
	}
}

// weekStart returns midnight of the most recent Monday, in now's location.
func weekStart(now time.Time) time.Time {
	daysBack := (int(now.Weekday()) + 6) % 7
	monday := now.AddDate(0, 0, -daysBack)
	return time.Date(monday.Year(), monday.Month(), monday.Day(), 0, 0, 0, 0, now.Location())
}

// Assemble gathers all context sections concurrently. Each section fails
// soft: a query error logs a warning and leaves that section empty, so one
// slow or broken table never blocks the conversation.
func (a *Assembler) Assemble(ctx context.Context, userID string) types.ContextSnapshot {
	now := a.now()
	urgentUntil := now.AddDate(0, 0, config.UrgentWindowDays)
	upcomingUntil := now.AddDate(0, 0, config.UpcomingWindowDays)

	snapshot := types.ContextSnapshot{
		UserID: userID,
		Today: types.TodayContext{
			Date:      now.Format("2006-01-02"),
			DayOfWeek: now.Weekday().String(),
		},
		WeeklyProgress: types.WeeklyProgress{
			WeekStart: weekStart(now).Format("2006-01-02"),
		},
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		tasks, err := a.tasks.ListActive(gctx, userID, config.MaxContextTasks)
		if err != nil {
			config.Logger.Warnf("Context: failed to load active tasks: %v", err)
			return nil
		}
		snapshot.ActiveTasks = tasks
		return nil
	})

	g.Go(func() error {
		goals, err := a.goals.ListActive(gctx, userID, config.MaxContextGoals)
		if err != nil {
			config.Logger.Warnf("Context: failed to load active goals: %v", err)
			return nil
		}
		snapshot.ActiveGoals = goals
		return nil
	})

	g.Go(func() error {
		milestones, err := a.milestones.ListActive(gctx, userID, config.MaxContextMilestones)
		if err != nil {
			config.Logger.Warnf("Context: failed to load active milestones: %v", err)
			return nil
		}
		snapshot.ActiveMilestones = milestones
		return nil
	})

	g.Go(func() error {
		urgent, err := a.tasks.ListDueWithin(gctx, userID, urgentUntil, config.MaxUrgentDeadlines)
		if err != nil {
			config.Logger.Warnf("Context: failed to load urgent deadlines: %v", err)
			return nil
		}
		snapshot.UrgentDeadlines = urgent

		upcoming, err := a.tasks.ListDueBetween(gctx, userID, urgentUntil, upcomingUntil, config.MaxUpcomingDeadlines)
		if err != nil {
			config.Logger.Warnf("Context: failed to load upcoming deadlines: %v", err)
			return nil
		}
		snapshot.UpcomingDeadlines = upcoming
		return nil
	})

	g.Go(func() error {
		completed, minutes, err := a.tasks.CountCompletedSince(gctx, userID, weekStart(now))
		if err != nil {
			config.Logger.Warnf("Context: failed to load weekly progress: %v", err)
			return nil
		}
		snapshot.WeeklyProgress.TasksCompleted = completed
		snapshot.WeeklyProgress.TotalMinutes = minutes
		return nil
	})

	if a.profile != nil {
		g.Go(func() error {
			fields, err := a.profile.Fetch(gctx, userID)
			if err != nil {
				config.Logger.Warnf("Context: failed to load user profile: %v", err)
				return nil
			}
			snapshot.UserProfile = fields
			return nil
		})
	}

	g.Wait()
	return snapshot
}
