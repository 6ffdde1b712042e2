// Package tokens provides token counting and history trimming for the agent,
// backed by tiktoken-go. The cl100k_base encoding is initialized lazily; if
// it cannot be loaded a character-based heuristic is used instead.
package tokens

import (
	"strings"
	"sync"

	"github.com/pkoukk/tiktoken-go"

	"apollo/types"
)

var (
	once     sync.Once
	encoding *tiktoken.Tiktoken
)

func initEncoding() {
	once.Do(func() {
		enc, err := tiktoken.GetEncoding("cl100k_base")
		if err == nil {
			encoding = enc
		}
	})
}

// CountTokens returns the token count for text. Deterministic, and monotonic
// in text length: appending text never decreases the count.
func CountTokens(text string) int {
	initEncoding()
	if encoding != nil {
		return len(encoding.Encode(text, nil, nil))
	}
	return estimateFast(text)
}

// estimateFast is the fallback heuristic: max(runes/4, word count).
func estimateFast(text string) int {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return 0
	}
	runes := len([]rune(trimmed))
	words := len(strings.Fields(trimmed))
	estimate := runes / 4
	if estimate < words {
		estimate = words
	}
	if estimate == 0 {
		estimate = 1
	}
	return estimate
}

// TrimToFit keeps the most recent turns whose accumulated cost, counting
// perMessageOverhead on top of each turn's content, stays within maxBudget.
// The walk runs newest to oldest and stops before the first turn that would
// overflow, so the result is always a chronological suffix of history. A
// single turn larger than the budget is dropped whole; messages are never
// truncated mid-text. Returns the kept turns in chronological order and the
// budget they consume.
func TrimToFit(history []types.ConversationTurn, maxBudget, perMessageOverhead int) ([]types.ConversationTurn, int) {
	kept := []types.ConversationTurn{}
	if maxBudget <= 0 {
		return kept, 0
	}

	total := 0
	for i := len(history) - 1; i >= 0; i-- {
		cost := CountTokens(history[i].Content) + perMessageOverhead
		if total+cost > maxBudget {
			break
		}
		kept = append(kept, history[i])
		total += cost
	}

	// Restore chronological order
	for i, j := 0, len(kept)-1; i < j; i, j = i+1, j-1 {
		kept[i], kept[j] = kept[j], kept[i]
	}
	return kept, total
}
