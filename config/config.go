package config

import "os"

// AgentConfig holds the coordinator agent tunables. Everything is set through
// DefaultAgentConfig and injected from main; there are no package-level
// client singletons.
type AgentConfig struct {
	Model       string
	Temperature float64
	// MaxResponseTokens caps each model completion.
	MaxResponseTokens int
	// MaxHistoryTokens is the budget for conversation history after the
	// system prompt and context snapshot are accounted for.
	MaxHistoryTokens int
	// PerMessageOverhead approximates the per-message framing cost the chat
	// API adds on top of the raw content tokens.
	PerMessageOverhead int
	// StreamChunkSize is the rune count per synthesized chunk on the
	// tool-calling path, which has no true incremental output.
	StreamChunkSize int
}

func DefaultAgentConfig() AgentConfig {
	model := os.Getenv("APOLLO_MODEL")
	if model == "" {
		model = "gpt-4o-mini"
	}

	return AgentConfig{
		Model:              model,
		Temperature:        0.7,
		MaxResponseTokens:  500,
		MaxHistoryTokens:   2000,
		PerMessageOverhead: 8,
		StreamChunkSize:    240,
	}
}

// Context assembly caps (token budget driven, matched to the snapshot shape)
const (
	MaxContextTasks      = 20
	MaxContextGoals      = 10
	MaxContextMilestones = 20
	MaxUrgentDeadlines   = 10
	MaxUpcomingDeadlines = 15
)

// Deadline windows, in days from now
const (
	UrgentWindowDays   = 3
	UpcomingWindowDays = 10
)
