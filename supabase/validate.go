package supabase

import (
	"strings"

	"apollo/types"
)

// validTitle trims and bounds a user-supplied title. Titles shorter than 3
// characters are usually tool-call noise, longer than 200 overflows the UI.
func validTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if len(title) < 3 {
		return "", types.Invalidf("title must be at least 3 characters")
	}
	if len(title) > 200 {
		return "", types.Invalidf("title must be at most 200 characters")
	}
	return title, nil
}

func contains(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}
