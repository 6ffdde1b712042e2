package supabase

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/supabase-community/postgrest-go"
	"github.com/supabase-community/supabase-go"

	"apollo/types"
)

var validGoalStatuses = []string{"active", "completed", "archived"}

// GoalStore wraps goal persistence for one request's Supabase client.
type GoalStore struct {
	client *supabase.Client
}

func NewGoalStore(client *supabase.Client) *GoalStore {
	return &GoalStore{client: client}
}

// ListActive returns the user's active goals, soonest target date first.
func (s *GoalStore) ListActive(ctx context.Context, userID string, limit int) ([]types.Goal, error) {
	resp, _, err := s.client.From("goals").
		Select("*", "", false).
		Eq("user_id", userID).
		Eq("status", "active").
		Order("target_date", &postgrest.OrderOpts{Ascending: true}).
		Limit(limit, "").
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to list active goals: %w", err)
	}

	return decodeGoals(resp)
}

// ListGoals is the general query behind GET /goals and the list_goals tool.
func (s *GoalStore) ListGoals(ctx context.Context, userID, status string, limit int) ([]types.Goal, error) {
	query := s.client.From("goals").
		Select("*", "", false).
		Eq("user_id", userID)

	if status != "" {
		if !contains(validGoalStatuses, status) {
			return nil, types.Invalidf("status must be one of: active, completed, archived")
		}
		query = query.Eq("status", status)
	}

	resp, _, err := query.
		Order("created_at", &postgrest.OrderOpts{Ascending: false}).
		Limit(limit, "").
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}

	return decodeGoals(resp)
}

// CreateGoal validates and inserts a new goal owned by userID.
func (s *GoalStore) CreateGoal(ctx context.Context, userID string, goal types.Goal) (types.Goal, error) {
	title, err := validTitle(goal.Title)
	if err != nil {
		return types.Goal{}, err
	}

	status := goal.Status
	if status == "" {
		status = "active"
	}
	if !contains(validGoalStatuses, status) {
		return types.Goal{}, types.Invalidf("status must be one of: active, completed, archived")
	}

	row := map[string]interface{}{
		"user_id": userID,
		"title":   title,
		"status":  status,
	}
	if goal.Description != "" {
		row["description"] = goal.Description
	}
	if goal.TargetDate != nil {
		row["target_date"] = goal.TargetDate
	}

	resp, _, err := s.client.From("goals").
		Insert(row, false, "", "representation", "").
		Execute()
	if err != nil {
		return types.Goal{}, fmt.Errorf("database error creating goal: %w", err)
	}

	return decodeOneGoal(resp)
}

var goalUpdateFields = []string{"title", "description", "status", "target_date"}

// UpdateGoal verifies ownership, validates the whitelisted updates, and
// applies them.
func (s *GoalStore) UpdateGoal(ctx context.Context, userID, goalID string, updates map[string]any) (types.Goal, error) {
	if err := s.checkOwnership(ctx, goalID, userID); err != nil {
		return types.Goal{}, err
	}

	validated := map[string]interface{}{}
	for key, value := range updates {
		if !contains(goalUpdateFields, key) {
			continue
		}
		switch key {
		case "title":
			str, _ := value.(string)
			title, err := validTitle(str)
			if err != nil {
				return types.Goal{}, err
			}
			validated[key] = title
		case "status":
			str, _ := value.(string)
			if !contains(validGoalStatuses, str) {
				return types.Goal{}, types.Invalidf("status must be one of: active, completed, archived")
			}
			validated[key] = str
		default:
			validated[key] = value
		}
	}

	if len(validated) == 0 {
		return types.Goal{}, types.Invalidf("no valid fields to update")
	}

	resp, _, err := s.client.From("goals").
		Update(validated, "", "").
		Eq("id", goalID).
		Eq("user_id", userID).
		Execute()
	if err != nil {
		return types.Goal{}, fmt.Errorf("database error updating goal: %w", err)
	}

	return decodeOneGoal(resp)
}

func (s *GoalStore) checkOwnership(ctx context.Context, goalID, userID string) error {
	resp, _, err := s.client.From("goals").
		Select("id", "", false).
		Eq("id", goalID).
		Eq("user_id", userID).
		Execute()
	if err != nil {
		return fmt.Errorf("goal %w", types.ErrNotOwned)
	}

	var rows []struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(resp, &rows); err != nil || len(rows) == 0 {
		return fmt.Errorf("goal %w", types.ErrNotOwned)
	}
	return nil
}

func decodeGoals(resp []byte) ([]types.Goal, error) {
	var goals []types.Goal
	if err := json.Unmarshal(resp, &goals); err != nil {
		return nil, fmt.Errorf("failed to decode goal data: %w", err)
	}
	return goals, nil
}

func decodeOneGoal(resp []byte) (types.Goal, error) {
	goals, err := decodeGoals(resp)
	if err != nil {
		return types.Goal{}, err
	}
	if len(goals) == 0 {
		return types.Goal{}, fmt.Errorf("no goal row returned")
	}
	return goals[0], nil
}
