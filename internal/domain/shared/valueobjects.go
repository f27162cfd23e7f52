// Package shared contains common domain types, errors, and value objects
// that are used across all domain packages.
package shared

import (
	"regexp"
	"strings"
)

// UUID validation regex (simple version).
var uuidRegex = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)

// UserID represents a unique user identifier (UUID format).
type UserID string

// IsValid checks if the user ID is a valid UUID.
func (u UserID) IsValid() bool {
	return uuidRegex.MatchString(string(u))
}

// String returns the string representation.
func (u UserID) String() string {
	return string(u)
}

// IsEmpty checks if the ID is empty.
func (u UserID) IsEmpty() bool {
	return u == ""
}

// NewUserID creates a new UserID with validation.
func NewUserID(id string) (UserID, error) {
	uid := UserID(strings.ToLower(strings.TrimSpace(id)))
	if !uid.IsValid() {
		return "", NewDomainError("shared", "NewUserID", ErrInvalidID, "invalid user ID format")
	}
	return uid, nil
}

// SealID represents a unique seal identifier (UUID format).
type SealID string

// IsValid checks if the seal ID is a valid UUID.
func (s SealID) IsValid() bool {
	return uuidRegex.MatchString(string(s))
}

// String returns the string representation.
func (s SealID) String() string {
	return string(s)
}

// NewSealID creates a new SealID with validation.
func NewSealID(id string) (SealID, error) {
	sid := SealID(strings.ToLower(strings.TrimSpace(id)))
	if !sid.IsValid() {
		return "", NewDomainError("shared", "NewSealID", ErrInvalidID, "invalid seal ID format")
	}
	return sid, nil
}

// ObjectiveID represents a unique objective identifier (UUID format).
type ObjectiveID string

// IsValid checks if the objective ID is a valid UUID.
func (o ObjectiveID) IsValid() bool {
	return uuidRegex.MatchString(string(o))
}

// String returns the string representation.
func (o ObjectiveID) String() string {
	return string(o)
}

// NewObjectiveID creates a new ObjectiveID with validation.
func NewObjectiveID(id string) (ObjectiveID, error) {
	oid := ObjectiveID(strings.ToLower(strings.TrimSpace(id)))
	if !oid.IsValid() {
		return "", NewDomainError("shared", "NewObjectiveID", ErrInvalidID, "invalid objective ID format")
	}
	return oid, nil
}

// Slug represents a human-stable seal key used in URLs and notification flags.
type Slug string

// Slug format: lowercase words separated by single hyphens.
var slugRegex = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// IsValid checks if the slug format is valid.
func (s Slug) IsValid() bool {
	return len(s) >= 2 && len(s) <= 64 && slugRegex.MatchString(string(s))
}

// String returns the string representation.
func (s Slug) String() string {
	return string(s)
}

// NewSlug creates a new Slug with validation.
func NewSlug(value string) (Slug, error) {
	s := Slug(strings.ToLower(strings.TrimSpace(value)))
	if !s.IsValid() {
		return "", NewDomainError("shared", "NewSlug", ErrInvalidInput, "invalid slug format")
	}
	return s, nil
}

// Username represents a user's public display name.
// Comparison is case-sensitive: "Alice" and "alice" are distinct users,
// and the leaderboard tie-break orders them by code point.
type Username string

var usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9_-]{2,29}$`)

// IsValid checks if the username format is valid.
func (u Username) IsValid() bool {
	return usernameRegex.MatchString(string(u))
}

// String returns the string representation.
func (u Username) String() string {
	return string(u)
}

// NewUsername creates a new Username with validation.
// Case is preserved; only surrounding whitespace is stripped.
func NewUsername(value string) (Username, error) {
	u := Username(strings.TrimSpace(value))
	if !u.IsValid() {
		return "", ErrInvalidUsername
	}
	return u, nil
}
