package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"lunchbot/internal/models"
)

func TestEventsQueryCurrent(t *testing.T) {
	store := newTestStore(t)
	groups := NewGroups(store)
	events := NewEvents(store)
	ctx := context.Background()

	base := time.Now().Truncate(time.Second)
	events.now = func() time.Time { return base }

	if err := groups.Create(ctx, "Lunch Club", "abc", "alice"); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	add := func(start, end time.Time, location string) {
		t.Helper()
		_, err := events.Add(ctx, "Lunch Club", &models.Event{
			CreatorID: "alice",
			Start:     start,
			End:       end,
			Location:  location,
		})
		if err != nil {
			t.Fatalf("Add failed: %v", err)
		}
	}

	// The window is keyed on Start only.
	add(base.Add(-time.Hour), base.Add(time.Hour), "already started")
	add(base.Add(time.Hour), base.Add(90*time.Minute), "soon")
	add(base.Add(48*time.Hour), base.Add(49*time.Hour), "window edge")
	add(base.Add(49*time.Hour), base.Add(50*time.Hour), "too far")

	got, err := events.Query(ctx, "Lunch Club", ModeCurrent)
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("events: got %d, want 2", len(got))
	}
	if got[0].Location != "soon" || got[1].Location != "window edge" {
		t.Errorf("got [%s %s], want [soon window edge]", got[0].Location, got[1].Location)
	}
}

func TestEventsQueryHistory(t *testing.T) {
	store := newTestStore(t)
	groups := NewGroups(store)
	events := NewEvents(store)
	ctx := context.Background()

	base := time.Now().Truncate(time.Second)

	if err := groups.Create(ctx, "Lunch Club", "abc", "alice"); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// Created in this order; starts deliberately scrambled, one of them
	// far in the future.
	starts := []time.Time{
		base.Add(100 * 24 * time.Hour),
		base.Add(-24 * time.Hour),
		base.Add(time.Hour),
	}
	for i, start := range starts {
		_, err := events.Add(ctx, "Lunch Club", &models.Event{
			Start:    start,
			End:      start.Add(time.Hour),
			Location: []string{"first", "second", "third"}[i],
		})
		if err != nil {
			t.Fatalf("Add failed: %v", err)
		}
	}

	got, err := events.Query(ctx, "Lunch Club", ModeHistory)
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("events: got %d, want 3 (history includes future events)", len(got))
	}
	for i, want := range []string{"first", "second", "third"} {
		if got[i].Location != want {
			t.Errorf("position %d: got %q, want %q", i, got[i].Location, want)
		}
	}
}

func TestEventsAdd(t *testing.T) {
	store := newTestStore(t)
	groups := NewGroups(store)
	events := NewEvents(store)
	ctx := context.Background()

	if err := groups.Create(ctx, "Lunch Club", "abc", "alice"); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	t.Run("unknown group fails with ErrNotFound", func(t *testing.T) {
		_, err := events.Add(ctx, "nope", &models.Event{Location: "Cafe"})
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("blank creator name defaults to anonymous", func(t *testing.T) {
		ev := &models.Event{CreatorID: "alice", Location: "Cafe"}
		if _, err := events.Add(ctx, "Lunch Club", ev); err != nil {
			t.Fatalf("Add failed: %v", err)
		}
		if ev.CreatorName != models.AnonymousCreator {
			t.Errorf("creator name: got %q, want %q", ev.CreatorName, models.AnonymousCreator)
		}
	})
}

func TestEventsDelete(t *testing.T) {
	store := newTestStore(t)
	groups := NewGroups(store)
	events := NewEvents(store)
	ctx := context.Background()

	if err := groups.Create(ctx, "Lunch Club", "abc", "alice"); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	id, err := events.Add(ctx, "Lunch Club", &models.Event{Location: "Cafe"})
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	if err := events.Delete(ctx, "Lunch Club", id); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := events.Delete(ctx, "Lunch Club", id); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestParseMode(t *testing.T) {
	if _, err := ParseMode("current"); err != nil {
		t.Errorf("ParseMode(current) failed: %v", err)
	}
	if _, err := ParseMode("history"); err != nil {
		t.Errorf("ParseMode(history) failed: %v", err)
	}
	if _, err := ParseMode("upcoming"); err == nil {
		t.Error("expected ParseMode(upcoming) to fail")
	}
}
