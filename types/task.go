package types

import "time"

type Task struct {
	ID               string     `json:"id,omitempty"`
	UserID           string     `json:"user_id"`
	MilestoneID      *string    `json:"milestone_id,omitempty"` // nullable
	Title            string     `json:"title"`
	Description      string     `json:"description,omitempty"`
	Status           string     `json:"status"`
	Priority         string     `json:"priority,omitempty"` // high | medium | low
	Project          string     `json:"project,omitempty"`
	DueDate          *time.Time `json:"due_date,omitempty"`
	TimeSpentMinutes int        `json:"time_spent_minutes,omitempty"`
	CreatedAt        time.Time  `json:"created_at,omitempty"`
	UpdatedAt        time.Time  `json:"updated_at,omitempty"`
}

type Goal struct {
	ID          string     `json:"id,omitempty"`
	UserID      string     `json:"user_id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Status      string     `json:"status"` // active | completed | archived
	TargetDate  *time.Time `json:"target_date,omitempty"`
	CreatedAt   time.Time  `json:"created_at,omitempty"`
}

type Milestone struct {
	ID          string     `json:"id,omitempty"`
	UserID      string     `json:"user_id"`
	GoalID      string     `json:"goal_id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Status      string     `json:"status"` // not_started | in_progress | completed
	Progress    int        `json:"progress"`
	TargetDate  *time.Time `json:"target_date,omitempty"`
	CreatedAt   time.Time  `json:"created_at,omitempty"`
}

type TaskResponse struct {
	Success      bool   `json:"success"`
	Task         Task   `json:"task,omitempty"`  // the created/updated task
	ErrorMessage string `json:"error,omitempty"` // only set on failure
}

type DeleteTaskResponse struct {
	Success      bool   `json:"success"`
	ErrorMessage string `json:"error,omitempty"`   // only set on failure
	Message      string `json:"message,omitempty"` // confirmation message
}

type GetTasksResponse struct {
	Success      bool   `json:"success"`
	Tasks        []Task `json:"tasks,omitempty"`
	Total        int    `json:"total,omitempty"` // Optional: total count for pagination
	ErrorMessage string `json:"error,omitempty"` // Only set on failure
}

type GoalResponse struct {
	Success      bool   `json:"success"`
	Goal         Goal   `json:"goal,omitempty"`
	ErrorMessage string `json:"error,omitempty"`
}

type GetGoalsResponse struct {
	Success      bool   `json:"success"`
	Goals        []Goal `json:"goals,omitempty"`
	ErrorMessage string `json:"error,omitempty"`
}

type MilestoneResponse struct {
	Success      bool      `json:"success"`
	Milestone    Milestone `json:"milestone,omitempty"`
	ErrorMessage string    `json:"error,omitempty"`
}

type GetMilestonesResponse struct {
	Success      bool        `json:"success"`
	Milestones   []Milestone `json:"milestones,omitempty"`
	ErrorMessage string      `json:"error,omitempty"`
}
