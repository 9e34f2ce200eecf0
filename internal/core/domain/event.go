package domain

import (
	"time"

	"github.com/google/uuid"
)

// DefaultEventCategory is used when an event is created without one.
const DefaultEventCategory = "General"

// Event is a gathering users can confirm attendance to.
type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Date        time.Time `json:"date"`
	Location    string    `json:"location"`
	Category    string    `json:"category"`
	AttendeeIDs []string  `json:"attendeeIds"`
	CreatedAt   time.Time `json:"createdAt"`
}

// NewEvent creates an event, defaulting the category.
func NewEvent(title, description string, date time.Time, location, category string) *Event {
	if category == "" {
		category = DefaultEventCategory
	}
	return &Event{
		ID:          uuid.New().String(),
		Title:       title,
		Description: description,
		Date:        date,
		Location:    location,
		Category:    category,
		AttendeeIDs: []string{},
		CreatedAt:   time.Now().UTC(),
	}
}

// AddAttendee confirms a user's attendance. Adding twice is a no-op.
func (e *Event) AddAttendee(userID string) {
	for _, id := range e.AttendeeIDs {
		if id == userID {
			return
		}
	}
	e.AttendeeIDs = append(e.AttendeeIDs, userID)
}

// RemoveAttendee cancels a user's attendance if present.
func (e *Event) RemoveAttendee(userID string) {
	for i, id := range e.AttendeeIDs {
		if id == userID {
			e.AttendeeIDs = append(e.AttendeeIDs[:i], e.AttendeeIDs[i+1:]...)
			return
		}
	}
}

// IsAttending reports whether the user has confirmed attendance.
func (e *Event) IsAttending(userID string) bool {
	for _, id := range e.AttendeeIDs {
		if id == userID {
			return true
		}
	}
	return false
}
