package supabase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/supabase-community/postgrest-go"
	"github.com/supabase-community/supabase-go"

	"apollo/types"
)

// activeStatuses are the task states that count as "open" for context and
// deadline queries.
var activeStatuses = []string{"pending", "in_progress"}

var validTaskStatuses = []string{"pending", "in_progress", "completed"}
var validPriorities = []string{"high", "medium", "low"}

// TaskStore wraps task persistence for one request's Supabase client.
// The postgrest client is not context-aware, so ctx parameters are accepted
// for interface symmetry and honored only by the HTTP client's own timeout.
type TaskStore struct {
	client *supabase.Client
}

func NewTaskStore(client *supabase.Client) *TaskStore {
	return &TaskStore{client: client}
}

// ListActive returns the user's pending/in-progress tasks, most recently
// created first.
func (s *TaskStore) ListActive(ctx context.Context, userID string, limit int) ([]types.Task, error) {
	resp, _, err := s.client.From("tasks").
		Select("*", "", false).
		Eq("user_id", userID).
		In("status", activeStatuses).
		Order("created_at", &postgrest.OrderOpts{Ascending: false}).
		Limit(limit, "").
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to list active tasks: %w", err)
	}

	return decodeTasks(resp)
}

// ListDueWithin returns open tasks with a due date at or before until,
// soonest first. Tasks without a due date never match.
func (s *TaskStore) ListDueWithin(ctx context.Context, userID string, until time.Time, limit int) ([]types.Task, error) {
	resp, _, err := s.client.From("tasks").
		Select("*", "", false).
		Eq("user_id", userID).
		In("status", activeStatuses).
		Not("due_date", "is", "null").
		Lte("due_date", until.Format(time.RFC3339)).
		Order("due_date", &postgrest.OrderOpts{Ascending: true}).
		Limit(limit, "").
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to list due tasks: %w", err)
	}

	return decodeTasks(resp)
}

// ListDueBetween returns open tasks due strictly after `after` and at or
// before `until`. The strict lower bound keeps this window disjoint from
// ListDueWithin(after).
func (s *TaskStore) ListDueBetween(ctx context.Context, userID string, after, until time.Time, limit int) ([]types.Task, error) {
	resp, _, err := s.client.From("tasks").
		Select("*", "", false).
		Eq("user_id", userID).
		In("status", activeStatuses).
		Not("due_date", "is", "null").
		Gt("due_date", after.Format(time.RFC3339)).
		Lte("due_date", until.Format(time.RFC3339)).
		Order("due_date", &postgrest.OrderOpts{Ascending: true}).
		Limit(limit, "").
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to list upcoming tasks: %w", err)
	}

	return decodeTasks(resp)
}

// CountCompletedSince returns the number of tasks the user completed since
// the given time and the minutes tracked on them.
func (s *TaskStore) CountCompletedSince(ctx context.Context, userID string, since time.Time) (int, int, error) {
	resp, _, err := s.client.From("tasks").
		Select("id,time_spent_minutes", "", false).
		Eq("user_id", userID).
		Eq("status", "completed").
		Gte("updated_at", since.Format(time.RFC3339)).
		Execute()
	if err != nil {
		return 0, 0, fmt.Errorf("failed to count completed tasks: %w", err)
	}

	var rows []struct {
		TimeSpentMinutes int `json:"time_spent_minutes"`
	}
	if err := json.Unmarshal(resp, &rows); err != nil {
		return 0, 0, fmt.Errorf("failed to decode completed tasks: %w", err)
	}

	minutes := 0
	for _, row := range rows {
		minutes += row.TimeSpentMinutes
	}
	return len(rows), minutes, nil
}

// List is the general query behind the GET /tasks endpoint.
func (s *TaskStore) List(ctx context.Context, userID, status string, limit int) ([]types.Task, error) {
	query := s.client.From("tasks").
		Select("*", "", false).
		Eq("user_id", userID)

	if status != "" {
		query = query.Eq("status", status)
	}

	resp, _, err := query.
		Order("created_at", &postgrest.OrderOpts{Ascending: false}).
		Limit(limit, "").
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	return decodeTasks(resp)
}

// CreateTask validates and inserts a new task owned by userID.
func (s *TaskStore) CreateTask(ctx context.Context, userID string, task types.Task) (types.Task, error) {
	title, err := validTitle(task.Title)
	if err != nil {
		return types.Task{}, err
	}

	status := task.Status
	if status == "" {
		status = "pending"
	}
	if !contains(validTaskStatuses, status) {
		return types.Task{}, types.Invalidf("status must be one of: pending, in_progress, completed")
	}

	priority := task.Priority
	if priority == "" {
		priority = "medium"
	}
	if !contains(validPriorities, priority) {
		return types.Task{}, types.Invalidf("priority must be one of: high, medium, low")
	}

	row := map[string]interface{}{
		"user_id":  userID,
		"title":    title,
		"status":   status,
		"priority": priority,
	}
	if task.Description != "" {
		row["description"] = task.Description
	}
	if task.Project != "" {
		row["project"] = task.Project
	}
	if task.MilestoneID != nil && *task.MilestoneID != "" {
		row["milestone_id"] = *task.MilestoneID
	}
	if task.DueDate != nil {
		row["due_date"] = task.DueDate
	}

	resp, _, err := s.client.From("tasks").
		Insert(row, false, "", "representation", "").
		Execute()
	if err != nil {
		return types.Task{}, fmt.Errorf("database error creating task: %w", err)
	}

	return decodeOneTask(resp)
}

// taskUpdateFields is the whitelist of columns the caller (or the agent) may
// touch. Anything else, user_id included, is skipped silently.
var taskUpdateFields = []string{"title", "description", "status", "milestone_id", "project", "priority", "due_date", "time_spent_minutes"}

// UpdateTask verifies ownership, validates the whitelisted updates, and
// applies them.
func (s *TaskStore) UpdateTask(ctx context.Context, userID, taskID string, updates map[string]any) (types.Task, error) {
	if err := s.checkOwnership(ctx, "tasks", taskID, userID, "task"); err != nil {
		return types.Task{}, err
	}

	validated := map[string]interface{}{}
	for key, value := range updates {
		if !contains(taskUpdateFields, key) {
			continue
		}
		switch key {
		case "title":
			str, _ := value.(string)
			title, err := validTitle(str)
			if err != nil {
				return types.Task{}, err
			}
			validated[key] = title
		case "status":
			str, _ := value.(string)
			if !contains(validTaskStatuses, str) {
				return types.Task{}, types.Invalidf("status must be one of: pending, in_progress, completed")
			}
			validated[key] = str
		case "priority":
			str, _ := value.(string)
			if !contains(validPriorities, str) {
				return types.Task{}, types.Invalidf("priority must be one of: high, medium, low")
			}
			validated[key] = str
		default:
			validated[key] = value
		}
	}

	if len(validated) == 0 {
		return types.Task{}, types.Invalidf("no valid fields to update")
	}

	resp, _, err := s.client.From("tasks").
		Update(validated, "", "").
		Eq("id", taskID).
		Eq("user_id", userID).
		Execute()
	if err != nil {
		return types.Task{}, fmt.Errorf("database error updating task: %w", err)
	}

	return decodeOneTask(resp)
}

// DeleteTask verifies ownership and removes the task.
func (s *TaskStore) DeleteTask(ctx context.Context, userID, taskID string) error {
	if err := s.checkOwnership(ctx, "tasks", taskID, userID, "task"); err != nil {
		return err
	}

	_, _, err := s.client.From("tasks").
		Delete("", "").
		Eq("id", taskID).
		Eq("user_id", userID).
		Execute()
	if err != nil {
		return fmt.Errorf("database error deleting task: %w", err)
	}

	return nil
}

// checkOwnership resolves to ErrNotOwned whether the row is missing or owned
// by someone else; the caller-facing message never distinguishes the two.
func (s *TaskStore) checkOwnership(ctx context.Context, table, id, userID, label string) error {
	resp, _, err := s.client.From(table).
		Select("id", "", false).
		Eq("id", id).
		Eq("user_id", userID).
		Execute()
	if err != nil {
		return fmt.Errorf("%s %w", label, types.ErrNotOwned)
	}

	var rows []struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(resp, &rows); err != nil || len(rows) == 0 {
		return fmt.Errorf("%s %w", label, types.ErrNotOwned)
	}
	return nil
}

func decodeTasks(resp []byte) ([]types.Task, error) {
	var tasks []types.Task
	if err := json.Unmarshal(resp, &tasks); err != nil {
		return nil, fmt.Errorf("failed to decode task data: %w", err)
	}
	return tasks, nil
}

func decodeOneTask(resp []byte) (types.Task, error) {
	tasks, err := decodeTasks(resp)
	if err != nil {
		return types.Task{}, err
	}
	if len(tasks) == 0 {
		return types.Task{}, fmt.Errorf("no task row returned")
	}
	return tasks[0], nil
}
