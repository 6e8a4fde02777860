package sqlite

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"lunchbot/internal/models"
	"lunchbot/internal/storage"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "lunchbot-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return store
}

func TestSQLiteStoreGroups(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("SetGroup and GetGroup round trip", func(t *testing.T) {
		err := store.SetGroup(ctx, &models.Group{
			Name:     "Lunch Club",
			Password: "abc",
			Members:  []string{"alice"},
		})
		if err != nil {
			t.Fatalf("SetGroup failed: %v", err)
		}

		got, err := store.GetGroup(ctx, "Lunch Club")
		if err != nil {
			t.Fatalf("GetGroup failed: %v", err)
		}
		if got.Password != "abc" {
			t.Errorf("password: got %q, want %q", got.Password, "abc")
		}
		if len(got.Members) != 1 || got.Members[0] != "alice" {
			t.Errorf("members: got %v, want [alice]", got.Members)
		}
		if got.CreatedAt == 0 {
			t.Error("expected non-zero CreatedAt")
		}
	})

	t.Run("GetGroup missing returns ErrNotFound", func(t *testing.T) {
		_, err := store.GetGroup(ctx, "nope")
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("SetGroup overwrites password and members", func(t *testing.T) {
		if err := store.SetGroup(ctx, &models.Group{
			Name:     "Lunch Club",
			Password: "xyz",
			Members:  []string{"bob"},
		}); err != nil {
			t.Fatalf("SetGroup failed: %v", err)
		}

		got, err := store.GetGroup(ctx, "Lunch Club")
		if err != nil {
			t.Fatalf("GetGroup failed: %v", err)
		}
		if got.Password != "xyz" {
			t.Errorf("password: got %q, want %q", got.Password, "xyz")
		}
		if len(got.Members) != 1 || got.Members[0] != "bob" {
			t.Errorf("members: got %v, want [bob]", got.Members)
		}
	})

	t.Run("AddMember is idempotent", func(t *testing.T) {
		if err := store.AddMember(ctx, "Lunch Club", "carol"); err != nil {
			t.Fatalf("AddMember failed: %v", err)
		}
		if err := store.AddMember(ctx, "Lunch Club", "carol"); err != nil {
			t.Fatalf("second AddMember failed: %v", err)
		}

		got, err := store.GetGroup(ctx, "Lunch Club")
		if err != nil {
			t.Fatalf("GetGroup failed: %v", err)
		}
		if len(got.Members) != 2 {
			t.Errorf("members: got %v, want exactly [bob carol]", got.Members)
		}
	})

	t.Run("AddMember on missing group returns ErrNotFound", func(t *testing.T) {
		err := store.AddMember(ctx, "nope", "alice")
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("GroupsWithMember returns only the user's groups in name order", func(t *testing.T) {
		for _, name := range []string{"Zed Crew", "Alpha Crew"} {
			if err := store.SetGroup(ctx, &models.Group{
				Name:     name,
				Password: "pw",
				Members:  []string{"dave"},
			}); err != nil {
				t.Fatalf("SetGroup failed: %v", err)
			}
		}

		groups, err := store.GroupsWithMember(ctx, "dave")
		if err != nil {
			t.Fatalf("GroupsWithMember failed: %v", err)
		}
		if len(groups) != 2 {
			t.Fatalf("groups: got %d, want 2", len(groups))
		}
		if groups[0].Name != "Alpha Crew" || groups[1].Name != "Zed Crew" {
			t.Errorf("order: got [%s %s], want [Alpha Crew Zed Crew]", groups[0].Name, groups[1].Name)
		}

		none, err := store.GroupsWithMember(ctx, "stranger")
		if err != nil {
			t.Fatalf("GroupsWithMember failed: %v", err)
		}
		if len(none) != 0 {
			t.Errorf("expected no groups for stranger, got %v", none)
		}
	})
}

func TestSQLiteStoreEvents(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.SetGroup(ctx, &models.Group{
		Name:     "Lunch Club",
		Password: "abc",
		Members:  []string{"alice"},
	}); err != nil {
		t.Fatalf("SetGroup failed: %v", err)
	}

	base := time.Now().Truncate(time.Second)

	t.Run("AddEvent generates ID and CreatedAt", func(t *testing.T) {
		ev := &models.Event{
			CreatorID:   "alice",
			CreatorName: "Alice",
			Start:       base.Add(time.Hour),
			End:         base.Add(2 * time.Hour),
			Location:    "Cafe",
		}

		id, err := store.AddEvent(ctx, "Lunch Club", ev)
		if err != nil {
			t.Fatalf("AddEvent failed: %v", err)
		}
		if id == "" || ev.ID != id {
			t.Errorf("expected event ID to be generated, got %q", id)
		}
		if ev.CreatedAt.IsZero() {
			t.Error("expected CreatedAt to be set")
		}
	})

	t.Run("AddEvent on missing group returns ErrNotFound", func(t *testing.T) {
		_, err := store.AddEvent(ctx, "nope", &models.Event{Location: "Cafe"})
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("ListEvents filters on Start inclusively", func(t *testing.T) {
		store := newTestStore(t)
		if err := store.SetGroup(ctx, &models.Group{Name: "G", Password: "p"}); err != nil {
			t.Fatalf("SetGroup failed: %v", err)
		}

		starts := []time.Time{
			base.Add(-time.Hour),     // before range
			base,                     // lower bound
			base.Add(24 * time.Hour), // inside
			base.Add(48 * time.Hour), // upper bound
			base.Add(49 * time.Hour), // past range
		}
		for _, s := range starts {
			if _, err := store.AddEvent(ctx, "G", &models.Event{Start: s, End: s.Add(time.Hour)}); err != nil {
				t.Fatalf("AddEvent failed: %v", err)
			}
		}

		from, to := base, base.Add(48*time.Hour)
		events, err := store.ListEvents(ctx, "G", storage.ListOptions{
			OrderBy:   storage.OrderByStart,
			StartFrom: &from,
			StartTo:   &to,
		})
		if err != nil {
			t.Fatalf("ListEvents failed: %v", err)
		}
		if len(events) != 3 {
			t.Fatalf("events: got %d, want 3", len(events))
		}
		for i := 1; i < len(events); i++ {
			if events[i].Start.Before(events[i-1].Start) {
				t.Errorf("events not ordered by Start: %v before %v", events[i].Start, events[i-1].Start)
			}
		}
	})

	t.Run("ListEvents by creation keeps insertion order", func(t *testing.T) {
		store := newTestStore(t)
		if err := store.SetGroup(ctx, &models.Group{Name: "G", Password: "p"}); err != nil {
			t.Fatalf("SetGroup failed: %v", err)
		}

		// Insert in reverse start order; creation order must win.
		locations := []string{"first", "second", "third"}
		for i, loc := range locations {
			ev := &models.Event{
				Start:    base.Add(time.Duration(len(locations)-i) * time.Hour),
				Location: loc,
			}
			if _, err := store.AddEvent(ctx, "G", ev); err != nil {
				t.Fatalf("AddEvent failed: %v", err)
			}
		}

		events, err := store.ListEvents(ctx, "G", storage.ListOptions{OrderBy: storage.OrderByCreated})
		if err != nil {
			t.Fatalf("ListEvents failed: %v", err)
		}
		if len(events) != 3 {
			t.Fatalf("events: got %d, want 3", len(events))
		}
		for i, loc := range locations {
			if events[i].Location != loc {
				t.Errorf("position %d: got %q, want %q", i, events[i].Location, loc)
			}
		}
	})

	t.Run("missing End survives the round trip", func(t *testing.T) {
		store := newTestStore(t)
		if err := store.SetGroup(ctx, &models.Group{Name: "G", Password: "p"}); err != nil {
			t.Fatalf("SetGroup failed: %v", err)
		}

		if _, err := store.AddEvent(ctx, "G", &models.Event{Start: base.Add(time.Hour)}); err != nil {
			t.Fatalf("AddEvent failed: %v", err)
		}

		events, err := store.ListEvents(ctx, "G", storage.ListOptions{})
		if err != nil {
			t.Fatalf("ListEvents failed: %v", err)
		}
		if len(events) != 1 {
			t.Fatalf("events: got %d, want 1", len(events))
		}
		if !events[0].End.IsZero() {
			t.Errorf("expected zero End, got %v", events[0].End)
		}
		if events[0].Start.IsZero() {
			t.Error("expected non-zero Start")
		}
	})

	t.Run("DeleteEvent removes the record", func(t *testing.T) {
		ev := &models.Event{Start: base, Location: "Cafe"}
		id, err := store.AddEvent(ctx, "Lunch Club", ev)
		if err != nil {
			t.Fatalf("AddEvent failed: %v", err)
		}

		if err := store.DeleteEvent(ctx, "Lunch Club", id); err != nil {
			t.Fatalf("DeleteEvent failed: %v", err)
		}
		if err := store.DeleteEvent(ctx, "Lunch Club", id); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected ErrNotFound on second delete, got %v", err)
		}
	})
}
