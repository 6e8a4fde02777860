// Package sqlite provides a SQLite-backed implementation of the
// storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"lunchbot/internal/models"
	"lunchbot/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// SQLiteStore implements storage.Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// GetGroup retrieves a group and its member set by normalized name.
func (s *SQLiteStore) GetGroup(ctx context.Context, name string) (*models.Group, error) {
	group := &models.Group{}
	err := s.db.QueryRowContext(ctx,
		"SELECT name, password, created_at FROM groups WHERE name = ?",
		name,
	).Scan(&group.Name, &group.Password, &group.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get group: %w", err)
	}

	members, err := s.groupMembers(ctx, name)
	if err != nil {
		return nil, err
	}
	group.Members = members

	return group, nil
}

// SetGroup creates or overwrites a group. The previous member set, if
// any, is replaced by the one on the given group.
func (s *SQLiteStore) SetGroup(ctx context.Context, group *models.Group) error {
	if group.CreatedAt == 0 {
		group.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO groups (name, password, created_at) VALUES (?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET password = excluded.password`,
		group.Name, group.Password, group.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert group: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM group_members WHERE group_name = ?", group.Name,
	); err != nil {
		return fmt.Errorf("failed to clear members: %w", err)
	}

	for _, userID := range group.Members {
		_, err = tx.ExecContext(ctx,
			"INSERT OR IGNORE INTO group_members (group_name, user_id) VALUES (?, ?)",
			group.Name, userID,
		)
		if err != nil {
			return fmt.Errorf("failed to insert member: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// AddMember adds userID to the group's member set. INSERT OR IGNORE
// makes the union idempotent.
func (s *SQLiteStore) AddMember(ctx context.Context, name, userID string) error {
	var exists int
	err := s.db.QueryRowContext(ctx,
		"SELECT 1 FROM groups WHERE name = ?", name,
	).Scan(&exists)
	if err == sql.ErrNoRows {
		return storage.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to check group: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		"INSERT OR IGNORE INTO group_members (group_name, user_id) VALUES (?, ?)",
		name, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to add member: %w", err)
	}

	return nil
}

// GroupsWithMember returns every group containing userID, ordered by name.
func (s *SQLiteStore) GroupsWithMember(ctx context.Context, userID string) ([]models.Group, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT g.name, g.password, g.created_at
		 FROM groups g
		 JOIN group_members m ON m.group_name = g.name
		 WHERE m.user_id = ?
		 ORDER BY g.name`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query groups: %w", err)
	}
	defer rows.Close()

	var groups []models.Group
	for rows.Next() {
		var g models.Group
		if err := rows.Scan(&g.Name, &g.Password, &g.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan group: %w", err)
		}
		groups = append(groups, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate groups: %w", err)
	}

	for i := range groups {
		members, err := s.groupMembers(ctx, groups[i].Name)
		if err != nil {
			return nil, err
		}
		groups[i].Members = members
	}

	return groups, nil
}

func (s *SQLiteStore) groupMembers(ctx context.Context, name string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT user_id FROM group_members WHERE group_name = ? ORDER BY user_id",
		name,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get members: %w", err)
	}
	defer rows.Close()

	var members []string
	for rows.Next() {
		var userID string
		if err := rows.Scan(&userID); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		members = append(members, userID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate members: %w", err)
	}

	return members, nil
}
