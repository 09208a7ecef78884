package session

import "errors"

// Common errors returned by session stores.
var (
	// ErrSessionNotFound is returned when a session does not exist or
	// belongs to another user.
	ErrSessionNotFound = errors.New("session not found")

	// ErrInvalidStatus is returned for an out-of-range session status.
	ErrInvalidStatus = errors.New("invalid session status")

	// ErrInvalidType is returned for an out-of-range session type.
	ErrInvalidType = errors.New("invalid session type")

	// ErrInvalidDate is returned for a malformed start date.
	ErrInvalidDate = errors.New("invalid start date: want MM/DD/YYYY")

	// ErrInvalidTime is returned for a malformed start time.
	ErrInvalidTime = errors.New("invalid start time: want HH:MM:SS")

	// ErrNegativeDuration is returned when a duration field is negative.
	ErrNegativeDuration = errors.New("durations must be non-negative")

	// ErrEmptyUserID is returned when the user id is empty.
	ErrEmptyUserID = errors.New("user id cannot be empty")

	// ErrNilSession is returned when a nil session is passed to Insert.
	ErrNilSession = errors.New("nil session")
)
