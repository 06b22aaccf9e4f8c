// Copyright (c) 2026 BoiBritto. All rights reserved.

// Package visibility defines the audience scoping shared by every
// user-owned content entity (reading-list items, collections, blogs,
// chapters, discussions).
package visibility

// Visibility controls who may see an entity.
type Visibility string

const (
	// Public entities are visible to everyone, including anonymous readers.
	Public Visibility = "public"
	// Private entities are visible only to their owner.
	Private Visibility = "private"
	// Friends entities are scoped to the owner's friend graph. The backend
	// stores the value; listing currently treats it as private because no
	// friend graph exists server-side.
	Friends Visibility = "friends"
)

// Values returns every accepted visibility string, for validators.
func Values() []string {
	return []string{string(Public), string(Private), string(Friends)}
}

// Valid reports whether v is one of the accepted visibility values.
func Valid(v string) bool {
	switch Visibility(v) {
	case Public, Private, Friends:
		return true
	}
	return false
}
