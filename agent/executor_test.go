package agent

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"apollo/types"
)

type fakeTaskActions struct {
	created    []types.Task
	updated    map[string]map[string]any
	deleted    []string
	lastUserID string
	err        error
	deleteErr  error
}

func (f *fakeTaskActions) CreateTask(ctx context.Context, userID string, task types.Task) (types.Task, error) {
	if f.err != nil {
		return types.Task{}, f.err
	}
	f.lastUserID = userID
	task.ID = "task-new"
	f.created = append(f.created, task)
	return task, nil
}

func (f *fakeTaskActions) UpdateTask(ctx context.Context, userID, taskID string, updates map[string]any) (types.Task, error) {
	if f.err != nil {
		return types.Task{}, f.err
	}
	if f.updated == nil {
		f.updated = map[string]map[string]any{}
	}
	f.updated[taskID] = updates
	return types.Task{ID: taskID}, nil
}

func (f *fakeTaskActions) DeleteTask(ctx context.Context, userID, taskID string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	if f.err != nil {
		return f.err
	}
	f.deleted = append(f.deleted, taskID)
	return nil
}

type fakeGoalActions struct{ goals []types.Goal }

func (f *fakeGoalActions) CreateGoal(ctx context.Context, userID string, goal types.Goal) (types.Goal, error) {
	goal.ID = "goal-new"
	return goal, nil
}

func (f *fakeGoalActions) UpdateGoal(ctx context.Context, userID, goalID string, updates map[string]any) (types.Goal, error) {
	return types.Goal{ID: goalID}, nil
}

func (f *fakeGoalActions) ListGoals(ctx context.Context, userID, status string, limit int) ([]types.Goal, error) {
	return f.goals, nil
}

type fakeMilestoneActions struct{}

func (f *fakeMilestoneActions) CreateMilestone(ctx context.Context, userID string, milestone types.Milestone) (types.Milestone, error) {
	milestone.ID = "milestone-new"
	return milestone, nil
}

func (f *fakeMilestoneActions) UpdateMilestoneProgress(ctx context.Context, userID, milestoneID string, progress int) (types.Milestone, error) {
	status := "in_progress"
	if progress == 100 {
		status = "completed"
	}
	return types.Milestone{ID: milestoneID, Progress: progress, Status: status}, nil
}

func (f *fakeMilestoneActions) ListMilestones(ctx context.Context, userID, goalID string, limit int) ([]types.Milestone, error) {
	return nil, nil
}

func TestExecute(t *testing.T) {
	t.Run("dispatches and injects the authenticated user", func(t *testing.T) {
		tasks := &fakeTaskActions{}
		e := NewExecutor(tasks, &fakeGoalActions{}, &fakeMilestoneActions{})

		results := e.Execute(context.Background(), "user-1", []types.ToolCallRequest{{
			ID:   "call_1",
			Name: "create_task",
			Arguments: map[string]any{
				"title": "Buy milk",
				// A user_id planted by the model must be ignored.
				"user_id": "attacker",
			},
		}})

		require.Len(t, results, 1)
		assert.Equal(t, types.ToolStatusSuccess, results[0].Status)
		assert.Equal(t, "user-1", tasks.lastUserID)
	})

	t.Run("results keep call order", func(t *testing.T) {
		tasks := &fakeTaskActions{}
		e := NewExecutor(tasks, &fakeGoalActions{}, &fakeMilestoneActions{})

		results := e.Execute(context.Background(), "user-1", []types.ToolCallRequest{
			{Name: "create_task", Arguments: map[string]any{"title": "First"}},
			{Name: "delete_task", Arguments: map[string]any{"task_id": "t9"}},
			{Name: "list_goals", Arguments: map[string]any{}},
		})

		require.Len(t, results, 3)
		assert.Equal(t, "create_task", results[0].Tool)
		assert.Equal(t, "delete_task", results[1].Tool)
		assert.Equal(t, "list_goals", results[2].Tool)
		assert.Equal(t, []string{"t9"}, tasks.deleted)
	})

	t.Run("unknown tool becomes an error result", func(t *testing.T) {
		e := NewExecutor(&fakeTaskActions{}, &fakeGoalActions{}, &fakeMilestoneActions{})

		results := e.Execute(context.Background(), "user-1", []types.ToolCallRequest{{
			Name: "drop_database",
		}})

		require.Len(t, results, 1)
		assert.Equal(t, types.ToolStatusError, results[0].Status)
		assert.Contains(t, results[0].Error, "unknown tool")
	})

	t.Run("failure of one call does not stop the rest", func(t *testing.T) {
		tasks := &fakeTaskActions{err: errors.New("db exploded")}
		e := NewExecutor(tasks, &fakeGoalActions{}, &fakeMilestoneActions{})

		results := e.Execute(context.Background(), "user-1", []types.ToolCallRequest{
			{Name: "create_task", Arguments: map[string]any{"title": "Will fail"}},
			{Name: "list_goals", Arguments: map[string]any{}},
		})

		require.Len(t, results, 2)
		assert.Equal(t, types.ToolStatusError, results[0].Status)
		assert.Equal(t, types.ToolStatusSuccess, results[1].Status)
	})

	t.Run("internal errors are not leaked verbatim", func(t *testing.T) {
		tasks := &fakeTaskActions{err: errors.New("pq: connection refused host=10.0.0.5")}
		e := NewExecutor(tasks, &fakeGoalActions{}, &fakeMilestoneActions{})

		results := e.Execute(context.Background(), "user-1", []types.ToolCallRequest{{
			Name: "create_task", Arguments: map[string]any{"title": "Buy milk"},
		}})

		assert.NotContains(t, results[0].Error, "10.0.0.5")
		assert.Equal(t, "the operation failed, please try again", results[0].Error)
	})

	t.Run("validation errors pass through", func(t *testing.T) {
		tasks := &fakeTaskActions{err: types.Invalidf("title must be at least 3 characters")}
		e := NewExecutor(tasks, &fakeGoalActions{}, &fakeMilestoneActions{})

		results := e.Execute(context.Background(), "user-1", []types.ToolCallRequest{{
			Name: "create_task", Arguments: map[string]any{"title": "ab"},
		}})

		assert.Equal(t, "title must be at least 3 characters", results[0].Error)
	})

	t.Run("ownership errors pass through", func(t *testing.T) {
		tasks := &fakeTaskActions{err: types.ErrNotOwned}
		e := NewExecutor(tasks, &fakeGoalActions{}, &fakeMilestoneActions{})

		results := e.Execute(context.Background(), "user-1", []types.ToolCallRequest{{
			Name: "delete_task", Arguments: map[string]any{"task_id": "t1"},
		}})

		assert.Equal(t, types.ToolStatusError, results[0].Status)
		assert.Contains(t, results[0].Error, "not found or access denied")
	})

	t.Run("nil action set answers with not configured", func(t *testing.T) {
		e := NewExecutor(nil, &fakeGoalActions{}, &fakeMilestoneActions{})

		results := e.Execute(context.Background(), "user-1", []types.ToolCallRequest{{
			Name: "create_task", Arguments: map[string]any{"title": "Buy milk"},
		}})

		assert.Equal(t, types.ToolStatusError, results[0].Status)
		assert.Contains(t, results[0].Error, "not configured")
	})

	t.Run("date arguments are parsed", func(t *testing.T) {
		tasks := &fakeTaskActions{}
		e := NewExecutor(tasks, &fakeGoalActions{}, &fakeMilestoneActions{})

		results := e.Execute(context.Background(), "user-1", []types.ToolCallRequest{{
			Name: "create_task",
			Arguments: map[string]any{
				"title":    "File taxes",
				"due_date": "2026-09-15",
			},
		}})

		assert.Equal(t, types.ToolStatusSuccess, results[0].Status)
		require.Len(t, tasks.created, 1)
		require.NotNil(t, tasks.created[0].DueDate)
		assert.Equal(t, "2026-09-15", tasks.created[0].DueDate.Format("2006-01-02"))
	})

	t.Run("bad date argument is a validation error", func(t *testing.T) {
		e := NewExecutor(&fakeTaskActions{}, &fakeGoalActions{}, &fakeMilestoneActions{})

		results := e.Execute(context.Background(), "user-1", []types.ToolCallRequest{{
			Name: "create_task",
			Arguments: map[string]any{
				"title":    "File taxes",
				"due_date": "next tuesday",
			},
		}})

		assert.Equal(t, types.ToolStatusError, results[0].Status)
		assert.Contains(t, results[0].Error, "ISO date")
	})

	t.Run("milestone progress from JSON number", func(t *testing.T) {
		e := NewExecutor(&fakeTaskActions{}, &fakeGoalActions{}, &fakeMilestoneActions{})

		results := e.Execute(context.Background(), "user-1", []types.ToolCallRequest{{
			Name: "update_milestone_progress",
			Arguments: map[string]any{
				"milestone_id": "m1",
				"progress":     float64(100),
			},
		}})

		require.Equal(t, types.ToolStatusSuccess, results[0].Status)
		milestone := results[0].Result.(types.Milestone)
		assert.Equal(t, 100, milestone.Progress)
		assert.Equal(t, "completed", milestone.Status)
	})
}
