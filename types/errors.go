package types

import (
	"errors"
	"fmt"
)

// ErrNotOwned covers both "does not exist" and "belongs to someone else";
// callers must not distinguish the two in anything user-facing.
var ErrNotOwned = errors.New("not found or access denied")

// ValidationError marks a business-rule failure whose message is safe to show
// to the user verbatim.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func Invalidf(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// IsUserFacing reports whether err's message may be surfaced to the user
// unchanged (validation and ownership failures).
func IsUserFacing(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve) || errors.Is(err, ErrNotOwned)
}
