package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"lunchbot/internal/models"
	"lunchbot/internal/storage"
)

// CurrentWindow is the forward-looking range used to filter "upcoming"
// events.
const CurrentWindow = 48 * time.Hour

// Mode selects which slice of a group's events a query returns.
type Mode string

const (
	// ModeCurrent returns events starting within [now, now+CurrentWindow].
	ModeCurrent Mode = "current"
	// ModeHistory returns every event ever created for the group in
	// insertion order. Note this includes events with a future start;
	// "history" means "everything ever created", not "past events".
	ModeHistory Mode = "history"
)

// ParseMode maps a query-parameter value to a Mode.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeCurrent, ModeHistory:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("unknown filter %q", s)
	}
}

// Events creates, deletes and queries a group's events.
type Events struct {
	store storage.Store
	now   func() time.Time
}

// NewEvents creates an Events engine over the given storage backend.
func NewEvents(store storage.Store) *Events {
	return &Events{store: store, now: time.Now}
}

// Add persists a new event under the named group and returns the
// assigned ID. Returns ErrNotFound if the group does not exist. A
// missing creator display name defaults to the anonymous label.
func (e *Events) Add(ctx context.Context, group string, event *models.Event) (string, error) {
	group = models.NormalizeGroupName(group)
	if event.CreatorName == "" {
		event.CreatorName = models.AnonymousCreator
	}

	ctx, cancel := storeCtx(ctx)
	defer cancel()

	id, err := e.store.AddEvent(ctx, group, event)
	if errors.Is(err, storage.ErrNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		slog.Error("Add event failed", "group", group, "error", err)
		return "", err
	}

	slog.Info("Event added", "group", group, "event_id", id, "creator", event.CreatorID)
	return id, nil
}

// Query returns the group's events for the given mode.
//
// ModeCurrent filters on Start only: an event that has already ended
// but starts inside the window is included, and an event that started
// before now is excluded even if it is still going.
func (e *Events) Query(ctx context.Context, group string, mode Mode) ([]models.Event, error) {
	group = models.NormalizeGroupName(group)

	ctx, cancel := storeCtx(ctx)
	defer cancel()

	if _, err := e.store.GetGroup(ctx, group); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNotFound
		}
		slog.Error("Query failed to check group", "group", group, "error", err)
		return nil, err
	}

	var opts storage.ListOptions
	switch mode {
	case ModeHistory:
		opts.OrderBy = storage.OrderByCreated
	default:
		now := e.now()
		to := now.Add(CurrentWindow)
		opts = storage.ListOptions{
			OrderBy:   storage.OrderByStart,
			StartFrom: &now,
			StartTo:   &to,
		}
	}

	events, err := e.store.ListEvents(ctx, group, opts)
	if err != nil {
		slog.Error("Query failed", "group", group, "mode", mode, "error", err)
		return nil, err
	}

	return events, nil
}

// Delete removes one event by ID. Returns ErrNotFound if no such event
// exists under the group.
func (e *Events) Delete(ctx context.Context, group, id string) error {
	group = models.NormalizeGroupName(group)

	ctx, cancel := storeCtx(ctx)
	defer cancel()

	err := e.store.DeleteEvent(ctx, group, id)
	if errors.Is(err, storage.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		slog.Error("Delete event failed", "group", group, "event_id", id, "error", err)
		return err
	}

	slog.Info("Event deleted", "group", group, "event_id", id)
	return nil
}
