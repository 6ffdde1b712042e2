package types

// TodayContext anchors the agent in calendar time, computed at assembly.
type TodayContext struct {
	Date      string `json:"date"`        // YYYY-MM-DD
	DayOfWeek string `json:"day_of_week"` // Monday, Tuesday, ...
}

// WeeklyProgress summarizes completions since the most recent Monday.
type WeeklyProgress struct {
	WeekStart      string `json:"week_start"` // YYYY-MM-DD
	TasksCompleted int    `json:"tasks_completed"`
	TotalMinutes   int    `json:"total_minutes"`
}

// ContextSnapshot is the bounded, per-request view of a user's productivity
// state handed to the agent. Built fresh per request and discarded after it;
// every list field is non-nil even when its source query failed.
type ContextSnapshot struct {
	UserID            string            `json:"user_id"`
	Today             TodayContext      `json:"today"`
	WeeklyProgress    WeeklyProgress    `json:"weekly_progress"`
	ActiveTasks       []Task            `json:"tasks"`
	ActiveGoals       []Goal            `json:"goals"`
	ActiveMilestones  []Milestone       `json:"milestones"`
	UrgentDeadlines   []Task            `json:"urgent_deadlines"`
	UpcomingDeadlines []Task            `json:"upcoming_deadlines"`
	UserProfile       map[string]string `json:"user_profile,omitempty"` // absent on fetch failure
}
