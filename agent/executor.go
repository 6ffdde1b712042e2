package agent

import (
	"context"
	"fmt"
	"time"

	"apollo/config"
	"apollo/types"
)

// TaskActions is the mutation surface the executor needs for task tools.
type TaskActions interface {
	CreateTask(ctx context.Context, userID string, task types.Task) (types.Task, error)
	UpdateTask(ctx context.Context, userID, taskID string, updates map[string]any) (types.Task, error)
	DeleteTask(ctx context.Context, userID, taskID string) error
}

type GoalActions interface {
	CreateGoal(ctx context.Context, userID string, goal types.Goal) (types.Goal, error)
	UpdateGoal(ctx context.Context, userID, goalID string, updates map[string]any) (types.Goal, error)
	ListGoals(ctx context.Context, userID, status string, limit int) ([]types.Goal, error)
}

type MilestoneActions interface {
	CreateMilestone(ctx context.Context, userID string, milestone types.Milestone) (types.Milestone, error)
	UpdateMilestoneProgress(ctx context.Context, userID, milestoneID string, progress int) (types.Milestone, error)
	ListMilestones(ctx context.Context, userID, goalID string, limit int) ([]types.Milestone, error)
}

type toolFunc func(ctx context.Context, userID string, args map[string]any) (any, error)

// Executor dispatches model tool calls against a closed name-to-operation
// map built at construction. Unknown names never reach a store.
type Executor struct {
	operations map[string]toolFunc
	hasActions bool
}

// NewExecutor wires the operation map. A nil action set leaves its tools
// registered but answering with an error result, so the model gets a clear
// "not configured" signal instead of a silent no-op.
func NewExecutor(tasks TaskActions, goals GoalActions, milestones MilestoneActions) *Executor {
	e := &Executor{
		operations: map[string]toolFunc{},
		hasActions: tasks != nil || goals != nil || milestones != nil,
	}

	register := func(name string, configured bool, fn toolFunc) {
		if !configured {
			e.operations[name] = func(ctx context.Context, userID string, args map[string]any) (any, error) {
				return nil, types.Invalidf("%s is not configured", name)
			}
			return
		}
		e.operations[name] = fn
	}

	register("create_task", tasks != nil, func(ctx context.Context, userID string, args map[string]any) (any, error) {
		task := types.Task{
			Title:       stringArg(args, "title"),
			Description: stringArg(args, "description"),
			Status:      stringArg(args, "status"),
			Project:     stringArg(args, "project"),
			Priority:    stringArg(args, "priority"),
		}
		if id := stringArg(args, "milestone_id"); id != "" {
			task.MilestoneID = &id
		}
		if due, err := dateArg(args, "due_date"); err != nil {
			return nil, err
		} else if due != nil {
			task.DueDate = due
		}
		return tasks.CreateTask(ctx, userID, task)
	})

	register("update_task", tasks != nil, func(ctx context.Context, userID string, args map[string]any) (any, error) {
		taskID := stringArg(args, "task_id")
		if taskID == "" {
			return nil, types.Invalidf("task_id is required")
		}
		updates, _ := args["updates"].(map[string]any)
		return tasks.UpdateTask(ctx, userID, taskID, updates)
	})

	register("delete_task", tasks != nil, func(ctx context.Context, userID string, args map[string]any) (any, error) {
		taskID := stringArg(args, "task_id")
		if taskID == "" {
			return nil, types.Invalidf("task_id is required")
		}
		if err := tasks.DeleteTask(ctx, userID, taskID); err != nil {
			return nil, err
		}
		return map[string]any{"deleted": true, "task_id": taskID}, nil
	})

	register("create_goal", goals != nil, func(ctx context.Context, userID string, args map[string]any) (any, error) {
		goal := types.Goal{
			Title:       stringArg(args, "title"),
			Description: stringArg(args, "description"),
			Status:      stringArg(args, "status"),
		}
		if target, err := dateArg(args, "target_date"); err != nil {
			return nil, err
		} else if target != nil {
			goal.TargetDate = target
		}
		return goals.CreateGoal(ctx, userID, goal)
	})

	register("update_goal", goals != nil, func(ctx context.Context, userID string, args map[string]any) (any, error) {
		goalID := stringArg(args, "goal_id")
		if goalID == "" {
			return nil, types.Invalidf("goal_id is required")
		}
		updates, _ := args["updates"].(map[string]any)
		return goals.UpdateGoal(ctx, userID, goalID, updates)
	})

	register("list_goals", goals != nil, func(ctx context.Context, userID string, args map[string]any) (any, error) {
		return goals.ListGoals(ctx, userID, stringArg(args, "status"), config.MaxContextGoals)
	})

	register("create_milestone", milestones != nil, func(ctx context.Context, userID string, args map[string]any) (any, error) {
		milestone := types.Milestone{
			GoalID:      stringArg(args, "goal_id"),
			Title:       stringArg(args, "title"),
			Description: stringArg(args, "description"),
		}
		if target, err := dateArg(args, "target_date"); err != nil {
			return nil, err
		} else if target != nil {
			milestone.TargetDate = target
		}
		return milestones.CreateMilestone(ctx, userID, milestone)
	})

	register("update_milestone_progress", milestones != nil, func(ctx context.Context, userID string, args map[string]any) (any, error) {
		milestoneID := stringArg(args, "milestone_id")
		if milestoneID == "" {
			return nil, types.Invalidf("milestone_id is required")
		}
		progress, ok := intArg(args, "progress")
		if !ok {
			return nil, types.Invalidf("progress is required")
		}
		return milestones.UpdateMilestoneProgress(ctx, userID, milestoneID, progress)
	})

	register("list_milestones", milestones != nil, func(ctx context.Context, userID string, args map[string]any) (any, error) {
		return milestones.ListMilestones(ctx, userID, stringArg(args, "goal_id"), config.MaxContextMilestones)
	})

	return e
}

// HasActions reports whether at least one backing action set is configured.
// An executor without any only produces "not configured" results, so callers
// use this to decide whether offering tools to the model makes sense at all.
func (e *Executor) HasActions() bool {
	return e != nil && e.hasActions
}

// Execute runs the requested tool calls in order and returns one result per
// call. The caller's authenticated userID is injected here; any user_id the
// model put in the arguments is discarded first.
func (e *Executor) Execute(ctx context.Context, userID string, calls []types.ToolCallRequest) []types.ToolCallResult {
	results := make([]types.ToolCallResult, 0, len(calls))
	for _, call := range calls {
		results = append(results, e.executeOne(ctx, userID, call))
	}
	return results
}

func (e *Executor) executeOne(ctx context.Context, userID string, call types.ToolCallRequest) types.ToolCallResult {
	op, ok := e.operations[call.Name]
	if !ok {
		config.Logger.Warnf("Agent requested unknown tool: %s", call.Name)
		return types.ToolCallResult{
			Tool:   call.Name,
			Status: types.ToolStatusError,
			Error:  fmt.Sprintf("unknown tool: %s", call.Name),
		}
	}

	args := call.Arguments
	if args == nil {
		args = map[string]any{}
	}
	// The model sometimes echoes a user_id into arguments. Never trust it.
	delete(args, "user_id")

	result, err := op(ctx, userID, args)
	if err != nil {
		config.Logger.WithField("tool", call.Name).Warnf("Tool call failed: %v", err)
		return types.ToolCallResult{
			Tool:   call.Name,
			Status: types.ToolStatusError,
			Error:  toolErrorMessage(err),
		}
	}

	return types.ToolCallResult{
		Tool:   call.Name,
		Status: types.ToolStatusSuccess,
		Result: result,
	}
}

// toolErrorMessage decides what the model (and so the user) gets to see.
// Validation and ownership errors pass through verbatim; anything else is
// flattened to a generic message so internals never leak into the chat.
func toolErrorMessage(err error) string {
	if types.IsUserFacing(err) {
		return err.Error()
	}
	return "the operation failed, please try again"
}

func stringArg(args map[string]any, key string) string {
	value, _ := args[key].(string)
	return value
}

func intArg(args map[string]any, key string) (int, bool) {
	switch value := args[key].(type) {
	case float64:
		return int(value), true
	case int:
		return value, true
	}
	return 0, false
}

// dateArg parses an ISO date (or full timestamp) argument. Absence is not an
// error; a present but unparseable value is.
func dateArg(args map[string]any, key string) (*time.Time, error) {
	raw := stringArg(args, key)
	if raw == "" {
		return nil, nil
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return &parsed, nil
		}
	}
	return nil, types.Invalidf("%s must be an ISO date (YYYY-MM-DD)", key)
}
