package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/crescendo-labs/backend/internal/core/domain"
)

func TestEvents_Create(t *testing.T) {
	repo := newMemEventRepo()
	svc := NewEvents(repo)
	ctx := context.Background()

	date := time.Now().Add(48 * time.Hour)
	event, err := svc.Create(ctx, "Jazz Night", "open stage", date, "Berlin", "")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if event.Category != domain.DefaultEventCategory {
		t.Errorf("category = %q, want default", event.Category)
	}

	tests := []struct {
		name     string
		title    string
		date     time.Time
		location string
	}{
		{"missing title", "", date, "Berlin"},
		{"missing date", "Jazz Night", time.Time{}, "Berlin"},
		{"missing location", "Jazz Night", date, ""},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Create(ctx, tc.title, "", tc.date, tc.location, ""); !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestEvents_Queries(t *testing.T) {
	repo := newMemEventRepo()
	svc := NewEvents(repo)
	ctx := context.Background()

	past := time.Now().Add(-24 * time.Hour)
	future := time.Now().Add(24 * time.Hour)

	if _, err := svc.Create(ctx, "Retro", "", past, "Berlin Mitte", "Music"); err != nil {
		t.Fatalf("setup: %v", err)
	}
	upcoming, err := svc.Create(ctx, "Next Up", "", future, "Hamburg", "Music")
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	if _, err := svc.Create(ctx, "Other", "", future, "Berlin Kreuzberg", "Sports"); err != nil {
		t.Fatalf("setup: %v", err)
	}

	t.Run("upcoming excludes past events", func(t *testing.T) {
		got, err := svc.Upcoming(ctx)
		if err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("upcoming count = %d, want 2", len(got))
		}
	})

	t.Run("by category", func(t *testing.T) {
		got, err := svc.ByCategory(ctx, "Music")
		if err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("music count = %d, want 2", len(got))
		}
	})

	t.Run("by location substring, case-insensitive", func(t *testing.T) {
		got, err := svc.ByLocation(ctx, "berlin")
		if err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("berlin count = %d, want 2", len(got))
		}
	})

	t.Run("by id", func(t *testing.T) {
		got, err := svc.ByID(ctx, upcoming.ID)
		if err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}
		if got.Title != "Next Up" {
			t.Errorf("title = %q, want %q", got.Title, "Next Up")
		}
	})
}

func TestEvents_Attendance(t *testing.T) {
	repo := newMemEventRepo()
	svc := NewEvents(repo)
	ctx := context.Background()

	event, err := svc.Create(ctx, "Jazz Night", "", time.Now().Add(time.Hour), "Berlin", "")
	if err != nil {
		t.Fatalf("setup: %v", err)
	}

	if _, err := svc.ConfirmAttendance(ctx, event.ID, "user-1"); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	// idempotent
	if _, err := svc.ConfirmAttendance(ctx, event.ID, "user-1"); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if _, err := svc.ConfirmGroupAttendance(ctx, event.ID, []string{"user-1", "user-2", "user-3"}); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	attendees, err := svc.Attendees(ctx, event.ID)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if len(attendees) != 3 {
		t.Fatalf("attendee count = %d, want 3", len(attendees))
	}

	if _, err := svc.CancelAttendance(ctx, event.ID, "user-2"); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	byAttendee, err := svc.ByAttendee(ctx, "user-2")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if len(byAttendee) != 0 {
		t.Fatalf("user-2 should no longer attend any event, got %d", len(byAttendee))
	}
}

func TestEvents_Delete(t *testing.T) {
	repo := newMemEventRepo()
	svc := NewEvents(repo)
	ctx := context.Background()

	event, err := svc.Create(ctx, "Jazz Night", "", time.Now().Add(time.Hour), "Berlin", "")
	if err != nil {
		t.Fatalf("setup: %v", err)
	}

	if err := svc.Delete(ctx, event.ID); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if err := svc.Delete(ctx, event.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
