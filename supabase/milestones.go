package supabase

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/supabase-community/postgrest-go"
	"github.com/supabase-community/supabase-go"

	"apollo/types"
)

var validMilestoneStatuses = []string{"not_started", "in_progress", "completed"}

// MilestoneStore wraps milestone persistence for one request's Supabase
// client. Milestones hang off goals, so creation verifies the parent goal
// belongs to the caller.
type MilestoneStore struct {
	client *supabase.Client
	goals  *GoalStore
}

func NewMilestoneStore(client *supabase.Client) *MilestoneStore {
	return &MilestoneStore{client: client, goals: NewGoalStore(client)}
}

// ListActive returns the user's not-yet-completed milestones, soonest target
// date first.
func (s *MilestoneStore) ListActive(ctx context.Context, userID string, limit int) ([]types.Milestone, error) {
	resp, _, err := s.client.From("milestones").
		Select("*", "", false).
		Eq("user_id", userID).
		In("status", []string{"not_started", "in_progress"}).
		Order("target_date", &postgrest.OrderOpts{Ascending: true}).
		Limit(limit, "").
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to list active milestones: %w", err)
	}

	return decodeMilestones(resp)
}

// ListMilestones is the general query behind GET /milestones and the
// list_milestones tool. An empty goalID lists across all goals.
func (s *MilestoneStore) ListMilestones(ctx context.Context, userID, goalID string, limit int) ([]types.Milestone, error) {
	query := s.client.From("milestones").
		Select("*", "", false).
		Eq("user_id", userID)

	if goalID != "" {
		query = query.Eq("goal_id", goalID)
	}

	resp, _, err := query.
		Order("created_at", &postgrest.OrderOpts{Ascending: false}).
		Limit(limit, "").
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to list milestones: %w", err)
	}

	return decodeMilestones(resp)
}

// CreateMilestone validates the milestone and its parent goal's ownership,
// then inserts it.
func (s *MilestoneStore) CreateMilestone(ctx context.Context, userID string, milestone types.Milestone) (types.Milestone, error) {
	title, err := validTitle(milestone.Title)
	if err != nil {
		return types.Milestone{}, err
	}

	if milestone.GoalID == "" {
		return types.Milestone{}, types.Invalidf("goal_id is required")
	}
	if err := s.goals.checkOwnership(ctx, milestone.GoalID, userID); err != nil {
		return types.Milestone{}, err
	}

	row := map[string]interface{}{
		"user_id":  userID,
		"goal_id":  milestone.GoalID,
		"title":    title,
		"status":   "not_started",
		"progress": 0,
	}
	if milestone.Description != "" {
		row["description"] = milestone.Description
	}
	if milestone.TargetDate != nil {
		row["target_date"] = milestone.TargetDate
	}

	resp, _, err := s.client.From("milestones").
		Insert(row, false, "", "representation", "").
		Execute()
	if err != nil {
		return types.Milestone{}, fmt.Errorf("database error creating milestone: %w", err)
	}

	return decodeOneMilestone(resp)
}

// UpdateMilestoneProgress sets the progress percentage and derives status
// from it: 0 resets to not_started, 100 completes, anything between is
// in_progress.
func (s *MilestoneStore) UpdateMilestoneProgress(ctx context.Context, userID, milestoneID string, progress int) (types.Milestone, error) {
	if progress < 0 || progress > 100 {
		return types.Milestone{}, types.Invalidf("progress must be between 0 and 100")
	}

	if err := s.checkOwnership(ctx, milestoneID, userID); err != nil {
		return types.Milestone{}, err
	}

	status := "in_progress"
	switch {
	case progress == 0:
		status = "not_started"
	case progress == 100:
		status = "completed"
	}

	resp, _, err := s.client.From("milestones").
		Update(map[string]interface{}{
			"progress": progress,
			"status":   status,
		}, "", "").
		Eq("id", milestoneID).
		Eq("user_id", userID).
		Execute()
	if err != nil {
		return types.Milestone{}, fmt.Errorf("database error updating milestone: %w", err)
	}

	return decodeOneMilestone(resp)
}

func (s *MilestoneStore) checkOwnership(ctx context.Context, milestoneID, userID string) error {
	resp, _, err := s.client.From("milestones").
		Select("id", "", false).
		Eq("id", milestoneID).
		Eq("user_id", userID).
		Execute()
	if err != nil {
		return fmt.Errorf("milestone %w", types.ErrNotOwned)
	}

	var rows []struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(resp, &rows); err != nil || len(rows) == 0 {
		return fmt.Errorf("milestone %w", types.ErrNotOwned)
	}
	return nil
}

func decodeMilestones(resp []byte) ([]types.Milestone, error) {
	var milestones []types.Milestone
	if err := json.Unmarshal(resp, &milestones); err != nil {
		return nil, fmt.Errorf("failed to decode milestone data: %w", err)
	}
	return milestones, nil
}

func decodeOneMilestone(resp []byte) (types.Milestone, error) {
	milestones, err := decodeMilestones(resp)
	if err != nil {
		return types.Milestone{}, err
	}
	if len(milestones) == 0 {
		return types.Milestone{}, fmt.Errorf("no milestone row returned")
	}
	return milestones[0], nil
}
