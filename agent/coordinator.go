package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"apollo/config"
	"apollo/llm"
	"apollo/tokens"
	"apollo/types"
)

// ModelClient is the slice of the llm client the coordinator uses.
type ModelClient interface {
	Complete(ctx context.Context, req llm.Request) (llm.Response, error)
	StreamComplete(ctx context.Context, req llm.Request, onDelta func(string) error) error
}

// Coordinator runs one conversation turn: context assembly, the model call
// with tools, tool execution, and the follow-up call that narrates results.
// It is built per request, around that request's stores.
type Coordinator struct {
	model     ModelClient
	assembler *Assembler
	executor  *Executor
	cfg       config.AgentConfig
}

func NewCoordinator(model ModelClient, assembler *Assembler, executor *Executor, cfg config.AgentConfig) *Coordinator {
	return &Coordinator{
		model:     model,
		assembler: assembler,
		executor:  executor,
		cfg:       cfg,
	}
}

// Result is one completed turn.
type Result struct {
	Response  string
	ToolCalls []types.ToolCallResult
}

// buildMessages assembles the prompt: identity, live context, then the
// trimmed history and the new user message. History is trimmed to budget
// before the model ever sees it.
func (c *Coordinator) buildMessages(ctx context.Context, userID, message string, history []types.ConversationTurn) []llm.Message {
	snapshot := c.assembler.Assemble(ctx, userID)

	trimmed, spent := tokens.TrimToFit(history, c.cfg.MaxHistoryTokens, c.cfg.PerMessageOverhead)
	if len(trimmed) < len(history) {
		config.Logger.Infof("Trimmed conversation history from %d to %d messages (%d tokens)", len(history), len(trimmed), spent)
	}

	messages := []llm.Message{
		{Role: types.RoleSystem, Content: systemPrompt},
		{Role: types.RoleSystem, Content: "User Context:\n" + FormatSnapshot(snapshot)},
	}
	for _, turn := range trimmed {
		messages = append(messages, llm.Message{Role: turn.Role, Content: turn.Content})
	}
	return append(messages, llm.Message{Role: types.RoleUser, Content: message})
}

// Respond handles a turn that may mutate state. The model gets one chance to
// call tools; the follow-up call narrates the results and offers no tools,
// so a turn never recurses. Tools are only offered when the executor has a
// configured action set behind them; without one the turn is plain text.
func (c *Coordinator) Respond(ctx context.Context, userID, message string, history []types.ConversationTurn) (Result, error) {
	messages := c.buildMessages(ctx, userID, message, history)

	offerTools := c.executor.HasActions()
	var tools []llm.ToolDefinition
	if offerTools {
		tools = ToolSpecs()
	}

	first, err := c.model.Complete(ctx, llm.Request{
		Model:       c.cfg.Model,
		Messages:    messages,
		Tools:       tools,
		Temperature: c.cfg.Temperature,
		MaxTokens:   c.cfg.MaxResponseTokens,
	})
	if err != nil {
		return Result{}, fmt.Errorf("model call failed: %w", err)
	}

	if !offerTools || len(first.ToolCalls) == 0 {
		return Result{Response: first.Content}, nil
	}

	requests := make([]types.ToolCallRequest, 0, len(first.ToolCalls))
	for _, call := range first.ToolCalls {
		requests = append(requests, types.ToolCallRequest{
			ID:        call.ID,
			Name:      call.Name,
			Arguments: call.Arguments,
		})
	}
	results := c.executor.Execute(ctx, userID, requests)

	messages = append(messages, llm.AssistantToolCallMessage(first.ToolCalls))
	for i, call := range first.ToolCalls {
		payload, err := json.Marshal(results[i])
		if err != nil {
			payload = []byte(`{"status":"error","error":"failed to encode tool result"}`)
		}
		messages = append(messages, llm.Message{
			Role:       types.RoleTool,
			Content:    string(payload),
			ToolCallID: call.ID,
		})
	}

	second, err := c.model.Complete(ctx, llm.Request{
		Model:       c.cfg.Model,
		Messages:    messages,
		Temperature: c.cfg.Temperature,
		MaxTokens:   c.cfg.MaxResponseTokens,
	})
	if err != nil {
		// The mutations already happened. A provider hiccup on the
		// narration call must not read as a failed request.
		if errors.Is(err, llm.ErrRateLimited) {
			config.Logger.Warn("Rate limited on follow-up call, using fallback response")
			return Result{Response: rateLimitFallback, ToolCalls: results}, nil
		}
		return Result{ToolCalls: results}, fmt.Errorf("follow-up model call failed: %w", err)
	}

	return Result{Response: second.Content, ToolCalls: results}, nil
}

// RespondStream handles a read-only conversational turn, streaming text
// deltas as they arrive. No tools are offered on this path.
func (c *Coordinator) RespondStream(ctx context.Context, userID, message string, history []types.ConversationTurn, onDelta func(string) error) error {
	messages := c.buildMessages(ctx, userID, message, history)

	return c.model.StreamComplete(ctx, llm.Request{
		Model:       c.cfg.Model,
		Messages:    messages,
		Temperature: c.cfg.Temperature,
		MaxTokens:   c.cfg.MaxResponseTokens,
	}, onDelta)
}
