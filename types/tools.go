package types

// ToolCallRequest is a model-proposed invocation of a named action. Arguments
// are exactly what the model produced, unvalidated.
type ToolCallRequest struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments"`
}

const (
	ToolStatusSuccess = "success"
	ToolStatusError   = "error"
)

// ToolCallResult reports one executed (or rejected) tool call. Exactly one of
// Result and Error is populated.
type ToolCallResult struct {
	Tool   string `json:"tool"`
	Status string `json:"status"` // success | error
	Result any    `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`
}
