package models

import "time"

// AnonymousCreator is the display name recorded when the creator of an
// event did not supply one.
const AnonymousCreator = "anonymous"

// Event represents one planned meal/outing. An event belongs to exactly
// one group and is immutable once created; the only mutation is a
// whole-record delete.
type Event struct {
	// ID is the unique identifier for the event, assigned by the store
	// on creation (UUID format).
	ID string

	// Group is the normalized name of the owning group.
	Group string

	// CreatorID is the user identifier of whoever created the event.
	CreatorID string

	// CreatorName is the display name of the creator. Defaults to
	// AnonymousCreator when the transport supplied none.
	CreatorName string

	// Start and End are the event's time window as naive local
	// instants. A zero value means the field is missing; End is not
	// required to be after Start and the two are never cross-checked.
	Start time.Time
	End   time.Time

	// Location is free text describing where the event takes place.
	Location string

	// CreatedAt is the instant the record was persisted, set by the
	// store. It is the sort key for history listings.
	CreatedAt time.Time
}
