package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/crescendo-labs/backend/internal/core/domain"
	"github.com/crescendo-labs/backend/internal/core/ports"
)

// EventRepo implements ports.EventRepository.
type EventRepo struct {
	db *sql.DB
}

// compile-time interface assertion
var _ ports.EventRepository = (*EventRepo)(nil)

const eventColumns = "id, title, description, date, location, category, created_at"

// Save upserts the event and rewrites its attendee links in one
// transaction.
func (r *EventRepo) Save(ctx context.Context, e *domain.Event) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO events (id, title, description, date, location, category, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title=excluded.title,
			description=excluded.description,
			date=excluded.date,
			location=excluded.location,
			category=excluded.category;
	`
	if _, err := tx.ExecContext(ctx, query, e.ID, e.Title, e.Description, e.Date, e.Location, e.Category, e.CreatedAt); err != nil {
		return fmt.Errorf("failed to save event: %w", err)
	}

	if err := replaceLinks(ctx, tx, "event_attendees", "event_id", "user_id", e.ID, e.AttendeeIDs); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("transaction commit failed: %w", err)
	}
	return nil
}

// GetByID loads one event by id.
func (r *EventRepo) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+eventColumns+" FROM events WHERE id = ?", id)
	event, err := scanEvent(row)
	if err != nil {
		return nil, err
	}

	event.AttendeeIDs, err = linkedIDs(ctx, r.db, "event_attendees", "event_id", "user_id", event.ID)
	if err != nil {
		return nil, err
	}
	return event, nil
}

// ListAll loads every event.
func (r *EventRepo) ListAll(ctx context.Context) ([]*domain.Event, error) {
	return r.listEvents(ctx, "SELECT "+eventColumns+" FROM events ORDER BY date ASC")
}

// ListByCategory loads events in a category.
func (r *EventRepo) ListByCategory(ctx context.Context, category string) ([]*domain.Event, error) {
	return r.listEvents(ctx, "SELECT "+eventColumns+" FROM events WHERE category = ? ORDER BY date ASC", category)
}

// ListAfter loads events dated strictly after the given time.
func (r *EventRepo) ListAfter(ctx context.Context, date time.Time) ([]*domain.Event, error) {
	return r.listEvents(ctx, "SELECT "+eventColumns+" FROM events WHERE date > ? ORDER BY date ASC", date)
}

// ListByLocation loads events whose location contains the query,
// case-insensitively.
func (r *EventRepo) ListByLocation(ctx context.Context, location string) ([]*domain.Event, error) {
	query := "SELECT " + eventColumns + " FROM events WHERE LOWER(location) LIKE '%' || LOWER(?) || '%' ORDER BY date ASC"
	return r.listEvents(ctx, query, location)
}

// ListByAttendee loads events a user has confirmed attendance to.
func (r *EventRepo) ListByAttendee(ctx context.Context, userID string) ([]*domain.Event, error) {
	query := "SELECT " + eventColumns + ` FROM events
		JOIN event_attendees ea ON ea.event_id = events.id
		WHERE ea.user_id = ? ORDER BY date ASC`
	return r.listEvents(ctx, query, userID)
}

func (r *EventRepo) listEvents(ctx context.Context, query string, args ...any) ([]*domain.Event, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to load events: %w", err)
	}
	defer rows.Close()

	events := []*domain.Event{}
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate events: %w", err)
	}

	for _, event := range events {
		event.AttendeeIDs, err = linkedIDs(ctx, r.db, "event_attendees", "event_id", "user_id", event.ID)
		if err != nil {
			return nil, err
		}
	}
	return events, nil
}

// Delete removes an event by id.
func (r *EventRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM events WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanEvent(row rowScanner) (*domain.Event, error) {
	var event domain.Event
	var description sql.NullString
	if err := row.Scan(&event.ID, &event.Title, &description, &event.Date, &event.Location, &event.Category, &event.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan event: %w", err)
	}
	if description.Valid {
		event.Description = description.String
	}
	return &event, nil
}
