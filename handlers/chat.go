package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"apollo/agent"
	"apollo/config"
	"apollo/supabase"
	"apollo/types"
)

// mutationKeywords route a message onto the tool-calling path. This is a
// heuristic: a miss just means the user gets a text answer with no side
// effect, a false hit only costs offering tools that go unused.
var mutationKeywords = []string{
	"add", "create", "delete", "remove", "update",
	"mark", "complete", "finish", "done",
}

func needsTools(message string) bool {
	lower := strings.ToLower(message)
	for _, keyword := range mutationKeywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}

// ChatHandler serves the chat endpoint. The model client and config are
// shared across requests; stores are built per request around the caller's
// own Supabase client so row-level security applies.
type ChatHandler struct {
	Model   agent.ModelClient
	Agent   config.AgentConfig
	Profile agent.ProfileSource
}

func (h *ChatHandler) coordinatorFromRequest(r *http.Request) (*agent.Coordinator, string, error) {
	client, userID, err := supabase.ClientFromRequest(r)
	if err != nil {
		return nil, "", err
	}

	tasks := supabase.NewTaskStore(client)
	goals := supabase.NewGoalStore(client)
	milestones := supabase.NewMilestoneStore(client)

	assembler := agent.NewAssembler(tasks, goals, milestones, h.Profile)
	executor := agent.NewExecutor(tasks, goals, milestones)

	return agent.NewCoordinator(h.Model, assembler, executor, h.Agent), userID, nil
}

// Chat handles POST /chat. Every response is a server-sent event stream:
// optional progress events, one or more chunk events, then a single done or
// error event.
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, "Only POST is allowed", http.StatusMethodNotAllowed)
		return
	}

	var req types.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.Logger.Error("Failed to decode chat JSON:", err)
		writeError(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		writeError(w, "Missing message", http.StatusBadRequest)
		return
	}

	coordinator, userID, err := h.coordinatorFromRequest(r)
	if err != nil {
		config.Logger.Error("Failed to authenticate chat request:", err)
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	stream, err := newSSEWriter(w)
	if err != nil {
		config.Logger.Error("Streaming unsupported:", err)
		writeError(w, "Streaming unsupported", http.StatusInternalServerError)
		return
	}

	if needsTools(req.Message) {
		h.serveToolPath(r, stream, coordinator, userID, req)
		return
	}
	h.serveStreamPath(r, stream, coordinator, userID, req)
}

// serveToolPath runs the blocking two-call turn, then replays the final text
// as fixed-size chunks so clients handle both paths identically.
func (h *ChatHandler) serveToolPath(r *http.Request, stream *sseWriter, coordinator *agent.Coordinator, userID string, req types.ChatRequest) {
	if err := stream.send(types.StreamEvent{Type: types.EventProgress, Content: "Working on it..."}); err != nil {
		return
	}

	result, err := coordinator.Respond(r.Context(), userID, req.Message, req.ConversationHistory)
	if err != nil {
		config.Logger.Error("Chat turn failed:", err)
		stream.send(types.StreamEvent{Type: types.EventError, Content: "Something went wrong, please try again"})
		return
	}

	// Slice on rune boundaries so a multi-byte character never straddles
	// two chunks. Every response gets at least one chunk, even an empty one.
	text := []rune(result.Response)
	size := h.Agent.StreamChunkSize
	if size <= 0 {
		size = len(text)
	}
	if len(text) == 0 {
		if err := stream.send(types.StreamEvent{Type: types.EventChunk, Content: ""}); err != nil {
			return
		}
	}
	for start := 0; start < len(text); start += size {
		end := start + size
		if end > len(text) {
			end = len(text)
		}
		if err := stream.send(types.StreamEvent{Type: types.EventChunk, Content: string(text[start:end])}); err != nil {
			// Client went away; mutations already completed.
			return
		}
	}

	stream.send(types.StreamEvent{Type: types.EventDone})
}

func (h *ChatHandler) serveStreamPath(r *http.Request, stream *sseWriter, coordinator *agent.Coordinator, userID string, req types.ChatRequest) {
	sent := 0
	err := coordinator.RespondStream(r.Context(), userID, req.Message, req.ConversationHistory, func(delta string) error {
		sent++
		return stream.send(types.StreamEvent{Type: types.EventChunk, Content: delta})
	})
	if err == nil && sent == 0 {
		// A stream with no content deltas still owes the client a chunk.
		if sendErr := stream.send(types.StreamEvent{Type: types.EventChunk, Content: ""}); sendErr != nil {
			return
		}
	}
	if err != nil {
		if r.Context().Err() != nil {
			// Disconnected client, nothing left to tell it.
			return
		}
		config.Logger.Error("Chat stream failed:", err)
		stream.send(types.StreamEvent{Type: types.EventError, Content: "Something went wrong, please try again"})
		return
	}

	stream.send(types.StreamEvent{Type: types.EventDone})
}
