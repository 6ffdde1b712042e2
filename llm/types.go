// Package llm is a thin client for OpenAI-compatible chat completion APIs,
// covering the two shapes the agent needs: a blocking call that may return
// tool calls, and a streamed call for plain conversation.
package llm

import "errors"

// ErrRateLimited marks a 429 from the provider so callers can degrade
// gracefully instead of surfacing a provider error verbatim.
var ErrRateLimited = errors.New("model provider rate limit exceeded")

// Message is one chat turn in the provider wire format.
type Message struct {
	Role       string         `json:"role"`
	Content    string         `json:"content"`
	ToolCallID string         `json:"tool_call_id,omitempty"`
	ToolCalls  []toolCallWire `json:"tool_calls,omitempty"`
}

type toolCallWire struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	Function struct {
		Name      string `json:"name"`
		Arguments string `json:"arguments"`
	} `json:"function"`
}

// AssistantToolCallMessage rebuilds the assistant turn that requested the
// given tool calls, for inclusion in the follow-up request.
func AssistantToolCallMessage(calls []ToolCall) Message {
	msg := Message{Role: "assistant"}
	for _, call := range calls {
		wire := toolCallWire{ID: call.ID, Type: "function"}
		wire.Function.Name = call.Name
		wire.Function.Arguments = call.RawArguments
		msg.ToolCalls = append(msg.ToolCalls, wire)
	}
	return msg
}

// ToolCall is a tool invocation requested by the model. Arguments holds the
// parsed form; RawArguments keeps the provider's original JSON string for
// echoing back on the follow-up call.
type ToolCall struct {
	ID           string
	Name         string
	Arguments    map[string]any
	RawArguments string
}

// ToolDefinition describes one function tool offered to the model.
// Parameters is a JSON Schema object.
type ToolDefinition struct {
	Name        string
	Description string
	Parameters  map[string]any
}

// Request is one chat completion call.
type Request struct {
	Model       string
	Messages    []Message
	Tools       []ToolDefinition
	Temperature float64
	MaxTokens   int
}

// Response is the first choice of a completion. Exactly one of Content and
// ToolCalls is meaningful: a response carrying tool calls has no usable text.
type Response struct {
	Content   string
	ToolCalls []ToolCall
}
