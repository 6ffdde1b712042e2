package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComplete(t *testing.T) {
	t.Run("returns content", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/chat/completions", r.URL.Path)
			assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

			var body map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, false, body["stream"])

			json.NewEncoder(w).Encode(map[string]any{
				"choices": []map[string]any{
					{"message": map[string]any{"content": "hello there"}},
				},
			})
		}))
		defer server.Close()

		client := NewClient(server.URL, "test-key")
		resp, err := client.Complete(context.Background(), Request{
			Model:    "gpt-4o-mini",
			Messages: []Message{{Role: "user", Content: "hi"}},
		})
		require.NoError(t, err)
		assert.Equal(t, "hello there", resp.Content)
		assert.Empty(t, resp.ToolCalls)
	})

	t.Run("parses tool calls and repairs malformed arguments", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var body map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.NotEmpty(t, body["tools"])
			assert.Equal(t, "auto", body["tool_choice"])

			json.NewEncoder(w).Encode(map[string]any{
				"choices": []map[string]any{
					{"message": map[string]any{
						"content": "",
						"tool_calls": []map[string]any{
							{
								"id": "call_1",
								"function": map[string]any{
									"name":      "create_task",
									"arguments": `{"title": "Buy milk"}`,
								},
							},
							{
								"id": "call_2",
								"function": map[string]any{
									"name": "create_task",
									// trailing comma, single quotes: repairable
									"arguments": `{'title': 'Call mom',}`,
								},
							},
						},
					}},
				},
			})
		}))
		defer server.Close()

		client := NewClient(server.URL, "test-key")
		resp, err := client.Complete(context.Background(), Request{
			Model:    "gpt-4o-mini",
			Messages: []Message{{Role: "user", Content: "add two tasks"}},
			Tools: []ToolDefinition{{
				Name:       "create_task",
				Parameters: map[string]any{"type": "object"},
			}},
		})
		require.NoError(t, err)
		require.Len(t, resp.ToolCalls, 2)
		assert.Equal(t, "Buy milk", resp.ToolCalls[0].Arguments["title"])
		assert.Equal(t, "Call mom", resp.ToolCalls[1].Arguments["title"])
	})

	t.Run("maps 429 to ErrRateLimited", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer server.Close()

		client := NewClient(server.URL, "test-key")
		_, err := client.Complete(context.Background(), Request{Model: "gpt-4o-mini"})
		assert.ErrorIs(t, err, ErrRateLimited)
	})
}

func TestStreamComplete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, true, body["stream"])

		w.Header().Set("Content-Type", "text/event-stream")
		flusher := w.(http.Flusher)
		for _, delta := range []string{"Hel", "lo ", "world"} {
			fmt.Fprintf(w, "data: {\"choices\":[{\"delta\":{\"content\":%q}}]}\n\n", delta)
			flusher.Flush()
		}
		fmt.Fprint(w, "data: [DONE]\n\n")
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key")
	var got strings.Builder
	err := client.StreamComplete(context.Background(), Request{
		Model:    "gpt-4o-mini",
		Messages: []Message{{Role: "user", Content: "hi"}},
	}, func(delta string) error {
		got.WriteString(delta)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "Hello world", got.String())
}

func TestParseArguments(t *testing.T) {
	t.Run("empty arguments become empty map", func(t *testing.T) {
		args, err := parseArguments("")
		require.NoError(t, err)
		assert.Empty(t, args)
	})

	t.Run("unrepairable arguments error out", func(t *testing.T) {
		_, err := parseArguments("12")
		assert.Error(t, err)
	})
}
