package blocklist

import "errors"

var (
	// ErrEntryNotFound indicates no matching entry owned by the user.
	ErrEntryNotFound = errors.New("blocklist entry not found")

	// ErrInvalidDomain indicates a domain that fails validation.
	ErrInvalidDomain = errors.New("invalid domain")

	// ErrDuplicateDomain indicates the user already blocks the domain.
	ErrDuplicateDomain = errors.New("domain already blocked")

	// ErrInvalidListType indicates an unknown list type.
	ErrInvalidListType = errors.New("invalid list type")

	// ErrEmptyUserID indicates a missing user id.
	ErrEmptyUserID = errors.New("user ID cannot be empty")
)
