package types

// Conversation roles as the chat completions API expects them.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleTool      = "tool"
)

// ConversationTurn is one message in a conversation. Tool turns additionally
// carry the id of the tool call they answer.
type ConversationTurn struct {
	Role       string `json:"role"`
	Content    string `json:"content"`
	ToolCallID string `json:"tool_call_id,omitempty"`
}

type ChatRequest struct {
	Message             string             `json:"message"`
	ConversationHistory []ConversationTurn `json:"conversation_history,omitempty"`
}

// StreamEvent is one server-sent event on the chat stream. Type is one of
// "progress", "chunk", "done", "error"; Content is empty for "done".
type StreamEvent struct {
	Type    string `json:"type"`
	Content string `json:"content,omitempty"`
}

const (
	EventProgress = "progress"
	EventChunk    = "chunk"
	EventDone     = "done"
	EventError    = "error"
)
