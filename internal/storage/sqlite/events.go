package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"lunchbot/internal/models"
	"lunchbot/internal/storage"
)

// AddEvent persists a new event under the given group.
// Generates the ID and CreatedAt if not set.
func (s *SQLiteStore) AddEvent(ctx context.Context, group string, event *models.Event) (string, error) {
	var exists int
	err := s.db.QueryRowContext(ctx,
		"SELECT 1 FROM groups WHERE name = ?", group,
	).Scan(&exists)
	if err == sql.ErrNoRows {
		return "", storage.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to check group: %w", err)
	}

	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}
	event.Group = group

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO events (id, group_name, creator_id, creator_name, start_at, end_at, location, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		event.ID, group, event.CreatorID, event.CreatorName,
		toUnix(event.Start), toUnix(event.End), event.Location,
		event.CreatedAt.UnixNano(),
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert event: %w", err)
	}

	return event.ID, nil
}

// ListEvents returns the group's events per the given options.
func (s *SQLiteStore) ListEvents(ctx context.Context, group string, opts storage.ListOptions) ([]models.Event, error) {
	query := `SELECT id, group_name, creator_id, creator_name, start_at, end_at, location, created_at
		 FROM events WHERE group_name = ?`
	args := []any{group}

	if opts.StartFrom != nil {
		query += " AND start_at >= ?"
		args = append(args, opts.StartFrom.Unix())
	}
	if opts.StartTo != nil {
		query += " AND start_at <= ?"
		args = append(args, opts.StartTo.Unix())
	}

	switch opts.OrderBy {
	case storage.OrderByCreated:
		// rowid breaks the (unlikely) tie on created_at so insertion
		// order always holds.
		query += " ORDER BY created_at, rowid"
	default:
		query += " ORDER BY start_at, rowid"
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	var events []models.Event
	for rows.Next() {
		var ev models.Event
		var startAt, endAt, createdAt int64
		if err := rows.Scan(&ev.ID, &ev.Group, &ev.CreatorID, &ev.CreatorName,
			&startAt, &endAt, &ev.Location, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		ev.Start = fromUnix(startAt)
		ev.End = fromUnix(endAt)
		ev.CreatedAt = time.Unix(0, createdAt)
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate events: %w", err)
	}

	return events, nil
}

// DeleteEvent removes one event by ID.
func (s *SQLiteStore) DeleteEvent(ctx context.Context, group, id string) error {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM events WHERE group_name = ? AND id = ?",
		group, id,
	)
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if n == 0 {
		return storage.ErrNotFound
	}

	return nil
}

// toUnix maps a possibly-missing instant to its column value; a zero
// time.Time is stored as 0 so it survives the round trip.
func toUnix(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.Unix()
}

func fromUnix(sec int64) time.Time {
	if sec == 0 {
		return time.Time{}
	}
	return time.Unix(sec, 0)
}
