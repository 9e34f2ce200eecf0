package ports

import (
	"context"
	"time"

	"github.com/crescendo-labs/backend/internal/core/domain"
)

// UserRepository persists users. Lookups that miss return
// domain.ErrNotFound.
type UserRepository interface {
	Save(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByProviderUserID(ctx context.Context, providerUserID string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	ListByGroup(ctx context.Context, groupID string) ([]*domain.User, error)
	ListAll(ctx context.Context) ([]*domain.User, error)
	Delete(ctx context.Context, id string) error
}

// GroupRepository persists groups and their membership.
type GroupRepository interface {
	Save(ctx context.Context, g *domain.Group) error
	GetByID(ctx context.Context, id string) (*domain.Group, error)
	GetByInviteCode(ctx context.Context, code string) (*domain.Group, error)
	ListByCreator(ctx context.Context, creatorID string) ([]*domain.Group, error)
	ListByEvent(ctx context.Context, eventID string) ([]*domain.Group, error)
	ListByMember(ctx context.Context, userID string) ([]*domain.Group, error)
	ListAll(ctx context.Context) ([]*domain.Group, error)
	ExistsByNameAndEvent(ctx context.Context, name, eventID string) (bool, error)
	ExistsByInviteCode(ctx context.Context, code string) (bool, error)
	Delete(ctx context.Context, id string) error
}

// EventRepository persists events and attendance.
type EventRepository interface {
	Save(ctx context.Context, e *domain.Event) error
	GetByID(ctx context.Context, id string) (*domain.Event, error)
	ListAll(ctx context.Context) ([]*domain.Event, error)
	ListByCategory(ctx context.Context, category string) ([]*domain.Event, error)
	ListAfter(ctx context.Context, date time.Time) ([]*domain.Event, error)
	ListByLocation(ctx context.Context, location string) ([]*domain.Event, error)
	ListByAttendee(ctx context.Context, userID string) ([]*domain.Event, error)
	Delete(ctx context.Context, id string) error
}
