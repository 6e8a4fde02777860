package models

import "strings"

// Group represents a private circle of users who plan meals together.
// The group name doubles as the storage key, so it must be normalized
// with NormalizeGroupName before any store call.
type Group struct {
	// Name is the human-assigned identifier for the group (normalized,
	// see NormalizeGroupName). It is the primary key.
	Name string

	// Password is the shared secret required to join the group.
	// Stored and compared as plaintext for parity with the data already
	// in production stores; see DESIGN.md before changing this.
	Password string

	// Members is the set of user identifiers belonging to the group.
	// The set only grows; there is no removal operation.
	Members []string

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64
}

// HasMember reports whether userID is in the group's member set.
func (g *Group) HasMember(userID string) bool {
	for _, m := range g.Members {
		if m == userID {
			return true
		}
	}
	return false
}

// NormalizeGroupName substitutes path separators in a group name so the
// result is safe to use as a document key. Lookups must apply the same
// substitution or names containing separators would never resolve.
func NormalizeGroupName(name string) string {
	name = strings.ReplaceAll(name, "/", "_")
	return strings.TrimSpace(name)
}
