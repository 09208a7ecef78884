package schedule

import "errors"

// Common errors returned by the scheduler.
var (
	// ErrConflict is returned when a session interval overlaps an
	// existing session of the same user. Recoverable: the caller
	// should pick another slot.
	ErrConflict = errors.New("session conflicts with an existing session")

	// ErrEmptyPatch is returned when a modify request sets no fields.
	ErrEmptyPatch = errors.New("no fields to update")
)
