// Package profile fetches the user's profile note from the vault sidecar
// and flattens it into key/value pairs for prompt context.
package profile

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client talks to the vault sidecar's read-only HTTP API.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 5 * time.Second},
	}
}

// Fetch returns the user's profile fields. The note body is markdown with
// lines like "**Focus:** deep work mornings"; anything else is ignored.
func (c *Client) Fetch(ctx context.Context, userID string) (map[string]string, error) {
	endpoint := fmt.Sprintf("%s/users/%s/profile", c.baseURL, url.PathEscape(userID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build profile request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch profile: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return map[string]string{}, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("profile service returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile response: %w", err)
	}

	var note struct {
		Content string `json:"content"`
	}
	if err := json.Unmarshal(body, &note); err != nil {
		return nil, fmt.Errorf("failed to decode profile response: %w", err)
	}

	return ParseFields(note.Content), nil
}

// ParseFields extracts "**Key:** value" lines from a markdown note body.
func ParseFields(content string) map[string]string {
	fields := map[string]string{}
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "**") {
			continue
		}
		rest := strings.TrimPrefix(line, "**")
		idx := strings.Index(rest, ":**")
		if idx <= 0 {
			continue
		}
		key := strings.TrimSpace(rest[:idx])
		value := strings.TrimSpace(rest[idx+len(":**"):])
		if key == "" || value == "" {
			continue
		}
		fields[key] = value
	}
	return fields
}
