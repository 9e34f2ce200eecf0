package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/crescendo-labs/backend/internal/core/domain"
	"github.com/crescendo-labs/backend/internal/core/ports"
)

// Events manages event lifecycle and attendance.
type Events struct {
	repo ports.EventRepository
}

// NewEvents constructs the event service.
func NewEvents(repo ports.EventRepository) *Events {
	return &Events{repo: repo}
}

// Create validates the required fields and stores a new event.
func (s *Events) Create(ctx context.Context, title, description string, date time.Time, location, category string) (*domain.Event, error) {
	if strings.TrimSpace(title) == "" || date.IsZero() || strings.TrimSpace(location) == "" {
		return nil, fmt.Errorf("%w: missing required fields: title, date, location", ErrInvalidInput)
	}
	event := domain.NewEvent(title, description, date, location, category)
	if err := s.repo.Save(ctx, event); err != nil {
		return nil, fmt.Errorf("service: save event: %w", err)
	}
	return event, nil
}

// All lists every event.
func (s *Events) All(ctx context.Context) ([]*domain.Event, error) {
	return s.repo.ListAll(ctx)
}

// ByID returns one event.
func (s *Events) ByID(ctx context.Context, id string) (*domain.Event, error) {
	return s.repo.GetByID(ctx, id)
}

// ByCategory lists events in a category.
func (s *Events) ByCategory(ctx context.Context, category string) ([]*domain.Event, error) {
	return s.repo.ListByCategory(ctx, category)
}

// Upcoming lists events dated after now.
func (s *Events) Upcoming(ctx context.Context) ([]*domain.Event, error) {
	return s.repo.ListAfter(ctx, time.Now().UTC())
}

// ByLocation lists events whose location contains the query,
// case-insensitively.
func (s *Events) ByLocation(ctx context.Context, location string) ([]*domain.Event, error) {
	return s.repo.ListByLocation(ctx, location)
}

// ByAttendee lists events the user has confirmed attendance to.
func (s *Events) ByAttendee(ctx context.Context, userID string) ([]*domain.Event, error) {
	return s.repo.ListByAttendee(ctx, userID)
}

// ConfirmAttendance records a user's attendance. Confirming twice is a
// no-op.
func (s *Events) ConfirmAttendance(ctx context.Context, eventID, userID string) (*domain.Event, error) {
	event, err := s.repo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	event.AddAttendee(userID)
	if err := s.repo.Save(ctx, event); err != nil {
		return nil, fmt.Errorf("service: save event: %w", err)
	}
	return event, nil
}

// CancelAttendance removes a user's attendance.
func (s *Events) CancelAttendance(ctx context.Context, eventID, userID string) (*domain.Event, error) {
	event, err := s.repo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	event.RemoveAttendee(userID)
	if err := s.repo.Save(ctx, event); err != nil {
		return nil, fmt.Errorf("service: save event: %w", err)
	}
	return event, nil
}

// ConfirmGroupAttendance records attendance for a whole member list.
func (s *Events) ConfirmGroupAttendance(ctx context.Context, eventID string, userIDs []string) (*domain.Event, error) {
	event, err := s.repo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	for _, id := range userIDs {
		event.AddAttendee(id)
	}
	if err := s.repo.Save(ctx, event); err != nil {
		return nil, fmt.Errorf("service: save event: %w", err)
	}
	return event, nil
}

// Attendees returns the ids of users attending an event.
func (s *Events) Attendees(ctx context.Context, eventID string) ([]string, error) {
	event, err := s.repo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	return event.AttendeeIDs, nil
}

// Delete removes an event.
func (s *Events) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
