package analytics

import "errors"

var (
	// ErrRecordNotFound indicates no analytics record exists for the user.
	ErrRecordNotFound = errors.New("analytics record not found")

	// ErrInvalidPeriod indicates an unrecognized reset period name.
	ErrInvalidPeriod = errors.New("invalid reset period")

	// ErrWatermarkRegression indicates an attempt to move the watermark
	// backwards.
	ErrWatermarkRegression = errors.New("watermark cannot move backwards")

	// ErrInvalidRange indicates a reporting window whose end does not
	// follow its start.
	ErrInvalidRange = errors.New("invalid reporting range")

	// ErrRangeTooWide indicates a reporting window wider than
	// MaxRangeDays.
	ErrRangeTooWide = errors.New("reporting range too wide")

	// ErrEmptyUserID indicates a missing user id.
	ErrEmptyUserID = errors.New("user ID cannot be empty")

	// ErrNilRecord indicates a nil record was passed to the store.
	ErrNilRecord = errors.New("record cannot be nil")
)
