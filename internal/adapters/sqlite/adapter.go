// Package sqlite provides SQLite-backed implementations of the
// repository ports.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3" // Import the driver anonymously
)

// Adapter owns the database connection and hands out the per-entity
// repositories.
type Adapter struct {
	db *sql.DB
}

// NewAdapter opens the database and runs the schema migration.
func NewAdapter(storagePath string) (*Adapter, error) {
	db, err := sql.Open("sqlite3", storagePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite db: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping sqlite db: %w", err)
	}

	adapter := &Adapter{db: db}
	if err := adapter.migrate(); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return adapter, nil
}

// Close ensures the DB connection is closed gracefully.
func (a *Adapter) Close() error {
	return a.db.Close()
}

// Users returns the user repository backed by this adapter.
func (a *Adapter) Users() *UserRepo { return &UserRepo{db: a.db} }

// Groups returns the group repository backed by this adapter.
func (a *Adapter) Groups() *GroupRepo { return &GroupRepo{db: a.db} }

// Events returns the event repository backed by this adapter.
func (a *Adapter) Events() *EventRepo { return &EventRepo{db: a.db} }

func (a *Adapter) migrate() error {
	query := `
	CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		provider_user_id TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL,
		email TEXT NOT NULL,
		picture TEXT,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS user_groups (
		user_id TEXT NOT NULL,
		group_id TEXT NOT NULL,
		PRIMARY KEY (user_id, group_id),
		FOREIGN KEY(user_id) REFERENCES users(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS groups (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT,
		creator_id TEXT NOT NULL,
		event_id TEXT,
		invite_code TEXT NOT NULL UNIQUE,
		max_members INTEGER NOT NULL,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS group_members (
		group_id TEXT NOT NULL,
		user_id TEXT NOT NULL,
		PRIMARY KEY (group_id, user_id),
		FOREIGN KEY(group_id) REFERENCES groups(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS events (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		description TEXT,
		date DATETIME NOT NULL,
		location TEXT NOT NULL,
		category TEXT NOT NULL,
		created_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS event_attendees (
		event_id TEXT NOT NULL,
		user_id TEXT NOT NULL,
		PRIMARY KEY (event_id, user_id),
		FOREIGN KEY(event_id) REFERENCES events(id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_groups_creator ON groups(creator_id);
	CREATE INDEX IF NOT EXISTS idx_groups_event ON groups(event_id);
	CREATE INDEX IF NOT EXISTS idx_events_category ON events(category);
	`
	if _, err := a.db.Exec(query); err != nil {
		return err
	}
	return nil
}

// replaceLinks rewrites a link table's rows for one owning id inside an
// open transaction.
func replaceLinks(ctx context.Context, tx *sql.Tx, table, ownerCol, memberCol, ownerID string, memberIDs []string) error {
	if _, err := tx.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s WHERE %s = ?", table, ownerCol), ownerID); err != nil {
		return fmt.Errorf("failed to clear %s: %w", table, err)
	}

	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf("INSERT INTO %s (%s, %s) VALUES (?, ?)", table, ownerCol, memberCol))
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, memberID := range memberIDs {
		if _, err := stmt.ExecContext(ctx, ownerID, memberID); err != nil {
			return fmt.Errorf("failed to link %s in %s: %w", memberID, table, err)
		}
	}
	return nil
}

// linkedIDs loads a link table's member ids for one owning id,
// preserving insertion order.
func linkedIDs(ctx context.Context, db *sql.DB, table, ownerCol, memberCol, ownerID string) ([]string, error) {
	rows, err := db.QueryContext(ctx,
		fmt.Sprintf("SELECT %s FROM %s WHERE %s = ? ORDER BY rowid ASC", memberCol, table, ownerCol), ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", table, err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", table, err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}
