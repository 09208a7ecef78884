// Package blocklist manages per-user blocked website domains. Entries
// are tagged with a list type so a focus session only activates the
// lists matching its category, with a permanent list that applies to
// every session.
package blocklist

import "regexp"

// ListType selects which sessions an entry applies to. Values 0-3
// mirror the session type enum; Permanent applies always.
type ListType int

const (
	ListWork ListType = iota
	ListStudy
	ListPersonal
	ListOther
	ListPermanent
)

// Valid reports whether the list type is a known value.
func (t ListType) Valid() bool {
	return t >= ListWork && t <= ListPermanent
}

// String returns the list type name.
func (t ListType) String() string {
	switch t {
	case ListWork:
		return "work"
	case ListStudy:
		return "study"
	case ListPersonal:
		return "personal"
	case ListOther:
		return "other"
	case ListPermanent:
		return "permanent"
	default:
		return "unknown"
	}
}

// ParseListType converts a list type name to a ListType.
func ParseListType(s string) (ListType, error) {
	switch s {
	case "work":
		return ListWork, nil
	case "study":
		return ListStudy, nil
	case "personal":
		return ListPersonal, nil
	case "other":
		return ListOther, nil
	case "permanent":
		return ListPermanent, nil
	default:
		return 0, ErrInvalidListType
	}
}

// Entry is one blocked domain for one user.
type Entry struct {
	ID       string   `json:"id"`
	UserID   string   `json:"user_id"`
	Domain   string   `json:"domain"`
	ListType ListType `json:"list_type"`
}

// Manager provides blocked-domain CRUD scoped to a user.
type Manager interface {
	// Add validates and stores a domain. A domain the user already
	// blocks returns ErrDuplicateDomain regardless of list type.
	Add(userID, domain string, listType ListType) (*Entry, error)

	// List returns all of the user's entries sorted by domain.
	List(userID string) ([]*Entry, error)

	// ListByType returns the user's entries for one list type sorted
	// by domain.
	ListByType(userID string, listType ListType) ([]*Entry, error)

	// Delete removes an entry. A missing id and an entry owned by
	// another user both return ErrEntryNotFound.
	Delete(id, userID string) error
}

// domainPattern accepts a bare domain or a URL: optional scheme,
// dotted host with a 2-6 letter TLD, optional port and path.
var domainPattern = regexp.MustCompile(
	`^(https?://)?([A-Za-z0-9-]+\.)+[A-Za-z]{2,6}(:\d{1,5})?(/\S*)?$`,
)

// ValidDomain reports whether the string is an acceptable domain or
// URL.
func ValidDomain(domain string) bool {
	return domainPattern.MatchString(domain)
}
