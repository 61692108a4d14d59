// Package app holds the application services and business logic.
package app

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCredentials indicates that the provided username or password was incorrect.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrSessionNotFound indicates that the requested session does not exist.
	ErrSessionNotFound = errors.New("session not found")
	// ErrSessionExpired indicates that the session has expired.
	ErrSessionExpired = errors.New("session expired")
)

// ValidationError reports malformed input to account creation or profile
// update. Expected, caller-checkable conditions (missing post, self-like,
// blank comment) do not use it; those return false/nil sentinels instead.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// DailyLimitError reports an attempt to create a second post on the same
// local calendar day. It carries the existing post's ID so the caller can
// offer "delete your existing post" as a remedy.
type DailyLimitError struct {
	ExistingPostID string
	Day            string
}

func (e *DailyLimitError) Error() string {
	return fmt.Sprintf("already posted on %s (post %s)", e.Day, e.ExistingPostID)
}
