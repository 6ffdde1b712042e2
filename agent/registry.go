package agent

import "apollo/llm"

// ToolSpecs is the closed set of function tools offered to the model. The
// descriptions carry explicit use / don't-use guidance; how well the model
// routes between task, goal, and milestone tools depends on it.
func ToolSpecs() []llm.ToolDefinition {
	taskStatus := map[string]any{
		"type":        "string",
		"enum":        []string{"pending", "in_progress", "completed"},
		"description": "Task status.",
	}
	priority := map[string]any{
		"type":        "string",
		"enum":        []string{"high", "medium", "low"},
		"description": "Task priority. Default: 'medium'. Use 'high' for urgent/important tasks, 'low' for optional/future tasks.",
	}

	return []llm.ToolDefinition{
		{
			Name: "create_task",
			Description: `Create a TASK (daily/weekly action item) when user requests a small, specific action.

Use create_task ONLY for:
- Small, concrete actions: "Buy milk", "Email John", "Review notes"
- Things that take hours/days, not weeks/months
- User explicitly says "add task" or "create task"

DO NOT use create_task when:
- User mentions "goal" → use create_goal instead
- User mentions long-term objective (weeks/months) → use create_goal
- User mentions "milestone" → use create_milestone
- Planning major initiatives → use create_goal then break into milestones

Tasks are SMALL actions. Goals are BIG objectives. Choose appropriately!`,
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"title": map[string]any{
						"type":        "string",
						"description": "Short, clear task title describing what needs to be done. Keep under 50 characters when possible.",
					},
					"description": map[string]any{
						"type":        "string",
						"description": "Optional detailed description with context, deadlines, or notes.",
					},
					"status": map[string]any{
						"type":        "string",
						"enum":        []string{"pending", "in_progress", "completed"},
						"description": "Initial task status. Default: 'pending'. Use 'in_progress' only if user explicitly says they're already working on it.",
					},
					"milestone_id": map[string]any{
						"type":        "string",
						"description": "Optional UUID of the milestone this task belongs to. Look in the user's context for milestone IDs.",
					},
					"project": map[string]any{
						"type":        "string",
						"description": "Optional project name for grouping related tasks.",
					},
					"priority": priority,
					"due_date": map[string]any{
						"type":        "string",
						"description": "Optional due date in ISO format (YYYY-MM-DD).",
					},
				},
				"required": []string{"title"},
			},
		},
		{
			Name: "update_task",
			Description: `Update an existing task when user requests changes to a task's title, description, or status.

Use this when user says things like:
- "Mark X as complete/done/finished"
- "Change X to in progress"
- "Update the title of X to Y"

DO NOT use this when:
- User wants to create a NEW task (use create_task instead)
- User is asking about task status (just answer, don't modify)
- Task to update is ambiguous (ask which task first)

You must identify the task_id from the user's context (tasks list).`,
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"task_id": map[string]any{
						"type":        "string",
						"description": "UUID of the task to update. Extract from the user's task context by matching the task they're referring to.",
					},
					"updates": map[string]any{
						"type":        "object",
						"description": "Fields to update. Only include fields that are changing. Possible keys: 'title', 'description', 'status', 'milestone_id', 'project', 'priority', 'due_date'.",
						"properties": map[string]any{
							"title":        map[string]any{"type": "string", "description": "New task title"},
							"description":  map[string]any{"type": "string", "description": "New or updated description"},
							"status":       taskStatus,
							"milestone_id": map[string]any{"type": "string", "description": "Link task to a milestone by its UUID"},
							"project":      map[string]any{"type": "string", "description": "Update project grouping"},
							"priority":     priority,
							"due_date":     map[string]any{"type": "string", "description": "New due date in ISO format (YYYY-MM-DD)"},
						},
					},
				},
				"required": []string{"task_id", "updates"},
			},
		},
		{
			Name: "delete_task",
			Description: `Delete a task when user explicitly requests removal.

Use this when user says things like:
- "Delete X task"
- "Remove X from my list"
- "Cancel the X task"

DO NOT use this when:
- User completed a task (use update_task to mark complete instead)
- Task to delete is ambiguous (ask which task first)

CAUTION: Deletion is permanent. If user seems uncertain, confirm before calling.`,
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"task_id": map[string]any{
						"type":        "string",
						"description": "UUID of the task to delete. Extract from user's task context by matching the task they're referring to.",
					},
				},
				"required": []string{"task_id"},
			},
		},
		{
			Name: "create_goal",
			Description: `Create a new goal when user wants to establish a yearly/long-term objective.

Use this when user says:
- "I want to achieve X by [date]"
- "My goal is to X"
- "Create a goal for X"

Goals are high-level objectives with clear target dates, broken down into milestones later.`,
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"title": map[string]any{
						"type":        "string",
						"description": "Clear goal title (3-200 chars).",
					},
					"target_date": map[string]any{
						"type":        "string",
						"description": "Target completion date in ISO format (YYYY-MM-DD).",
					},
					"description": map[string]any{
						"type":        "string",
						"description": "Optional detailed description of the goal, success criteria, or context.",
					},
					"status": map[string]any{
						"type":        "string",
						"enum":        []string{"active", "completed", "archived"},
						"description": "Goal status. Default: 'active'.",
					},
				},
				"required": []string{"title", "target_date"},
			},
		},
		{
			Name: "update_goal",
			Description: `Update an existing goal's title, description, status, or target date.

Use this when user says things like:
- "Mark my X goal as completed"
- "Archive the X goal"
- "Push the X goal's target date to Y"

Identify the goal_id from the user's context (GOALS section).`,
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"goal_id": map[string]any{
						"type":        "string",
						"description": "UUID of the goal to update. Find this in the user's context under GOALS section.",
					},
					"updates": map[string]any{
						"type":        "object",
						"description": "Fields to update. Possible keys: 'title', 'description', 'status', 'target_date'.",
						"properties": map[string]any{
							"title":       map[string]any{"type": "string", "description": "New goal title"},
							"description": map[string]any{"type": "string", "description": "New or updated description"},
							"status": map[string]any{
								"type":        "string",
								"enum":        []string{"active", "completed", "archived"},
								"description": "New status",
							},
							"target_date": map[string]any{"type": "string", "description": "New target date in ISO format (YYYY-MM-DD)"},
						},
					},
				},
				"required": []string{"goal_id", "updates"},
			},
		},
		{
			Name: "list_goals",
			Description: `List user's goals, optionally filtered by status.

Use this when user asks:
- "What are my goals?"
- "Show me my active goals"

Returns all goals with their IDs (needed for creating milestones).`,
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"status": map[string]any{
						"type":        "string",
						"enum":        []string{"active", "completed", "archived"},
						"description": "Optional status filter. Omit to show all goals.",
					},
				},
				"required": []string{},
			},
		},
		{
			Name: "create_milestone",
			Description: `Create a milestone to break down a goal into quarterly/monthly checkpoints.

Use this when:
- User asks to break down a goal
- Planning major objective into phases

Milestones connect to goals via goal_id (find in user context).

NOTE: To create multiple milestones, call this function multiple times.`,
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"goal_id": map[string]any{
						"type":        "string",
						"description": "UUID of the parent goal. Find this in the user's context under GOALS section.",
					},
					"title": map[string]any{
						"type":        "string",
						"description": "Milestone title (3-200 chars).",
					},
					"target_date": map[string]any{
						"type":        "string",
						"description": "Target completion date in ISO format (YYYY-MM-DD).",
					},
					"description": map[string]any{
						"type":        "string",
						"description": "Optional detailed description.",
					},
				},
				"required": []string{"goal_id", "title", "target_date"},
			},
		},
		{
			Name: "update_milestone_progress",
			Description: `Update a milestone's progress percentage.

Use this when user reports progress on a milestone:
- "I'm halfway through X" → progress: 50
- "X milestone is done" → progress: 100

Status follows progress automatically: 0 is not started, 100 is completed, anything between is in progress.`,
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"milestone_id": map[string]any{
						"type":        "string",
						"description": "UUID of the milestone. Find this in the user's context under MILESTONES section.",
					},
					"progress": map[string]any{
						"type":        "integer",
						"description": "Completion percentage, 0-100.",
					},
				},
				"required": []string{"milestone_id", "progress"},
			},
		},
		{
			Name: "list_milestones",
			Description: `List user's milestones, optionally scoped to one goal.

Use this when user asks:
- "What are my milestones?"
- "Show me the milestones for X goal"`,
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"goal_id": map[string]any{
						"type":        "string",
						"description": "Optional UUID of a goal to scope the listing. Omit to list across all goals.",
					},
				},
				"required": []string{},
			},
		},
	}
}
