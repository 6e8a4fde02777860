// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"
	"time"

	"lunchbot/internal/models"
)

// ErrNotFound is returned when a group or event does not exist.
var ErrNotFound = errors.New("not found")

// OrderBy selects the sort key for ListEvents. Both orders are
// ascending.
type OrderBy int

const (
	// OrderByStart sorts by the event start instant.
	OrderByStart OrderBy = iota
	// OrderByCreated sorts by the instant the record was persisted,
	// i.e. insertion order.
	OrderByCreated
)

// ListOptions controls filtering and ordering of ListEvents.
type ListOptions struct {
	OrderBy OrderBy

	// StartFrom and StartTo, when non-nil, keep only events whose Start
	// falls inside the inclusive range. The filter applies to Start
	// only; an event that has already ended still matches if its Start
	// is in range.
	StartFrom *time.Time
	StartTo   *time.Time
}

// Store defines the interface for group and event persistence.
// This abstraction allows swapping storage backends (SQLite, MongoDB)
// without changing the service layer.
type Store interface {
	// GetGroup retrieves a group by its normalized name.
	// Returns ErrNotFound if the group does not exist.
	GetGroup(ctx context.Context, name string) (*models.Group, error)

	// SetGroup creates or overwrites a group, members included.
	SetGroup(ctx context.Context, group *models.Group) error

	// AddMember adds userID to the group's member set. Calling it twice
	// with the same pair has the effect of calling it once.
	// Returns ErrNotFound if the group does not exist.
	AddMember(ctx context.Context, name, userID string) error

	// GroupsWithMember returns every group whose member set contains
	// userID, ordered by name.
	GroupsWithMember(ctx context.Context, userID string) ([]models.Group, error)

	// AddEvent persists a new event under the given group and returns
	// the assigned ID. The event's ID and CreatedAt fields are
	// populated by the store.
	AddEvent(ctx context.Context, group string, event *models.Event) (string, error)

	// ListEvents returns the group's events per the given options.
	ListEvents(ctx context.Context, group string, opts ListOptions) ([]models.Event, error)

	// DeleteEvent removes one event by ID.
	// Returns ErrNotFound if no such event exists under the group.
	DeleteEvent(ctx context.Context, group, id string) error

	// Close releases any resources held by the store.
	Close() error
}
