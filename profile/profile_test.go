package profile

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFields(t *testing.T) {
	content := `# Profile

**Name:** Alex
**Focus:** deep work mornings
not a field line
**Empty:**
**Timezone:** Europe/Berlin`

	fields := ParseFields(content)

	assert.Equal(t, map[string]string{
		"Name":     "Alex",
		"Focus":    "deep work mornings",
		"Timezone": "Europe/Berlin",
	}, fields)
}

func TestFetch(t *testing.T) {
	t.Run("parses note content", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/users/user-1/profile", r.URL.Path)
			json.NewEncoder(w).Encode(map[string]string{
				"content": "**Name:** Alex\n**Focus:** writing",
			})
		}))
		defer server.Close()

		fields, err := NewClient(server.URL).Fetch(context.Background(), "user-1")
		require.NoError(t, err)
		assert.Equal(t, "Alex", fields["Name"])
		assert.Equal(t, "writing", fields["Focus"])
	})

	t.Run("missing profile is empty, not an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		fields, err := NewClient(server.URL).Fetch(context.Background(), "user-1")
		require.NoError(t, err)
		assert.Empty(t, fields)
	})

	t.Run("server error propagates", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		_, err := NewClient(server.URL).Fetch(context.Background(), "user-1")
		assert.Error(t, err)
	})
}
