package services

import (
	"context"
	"strings"
	"time"

	"github.com/crescendo-labs/backend/internal/core/domain"
)

// In-memory repositories shared by the service tests.

type memUserRepo struct {
	users   map[string]*domain.User
	saveErr error
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]*domain.User)}
}

func (r *memUserRepo) Save(_ context.Context, u *domain.User) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	copied := *u
	r.users[u.ID] = &copied
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (r *memUserRepo) GetByProviderUserID(_ context.Context, providerUserID string) (*domain.User, error) {
	for _, u := range r.users {
		if u.ProviderUserID == providerUserID {
			copied := *u
			return &copied, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *memUserRepo) ListByGroup(_ context.Context, groupID string) ([]*domain.User, error) {
	var out []*domain.User
	for _, u := range r.users {
		for _, gid := range u.GroupIDs {
			if gid == groupID {
				copied := *u
				out = append(out, &copied)
				break
			}
		}
	}
	return out, nil
}

func (r *memUserRepo) ListAll(_ context.Context) ([]*domain.User, error) {
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		copied := *u
		out = append(out, &copied)
	}
	return out, nil
}

func (r *memUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

type memGroupRepo struct {
	groups  map[string]*domain.Group
	saveErr error
}

func newMemGroupRepo() *memGroupRepo {
	return &memGroupRepo{groups: make(map[string]*domain.Group)}
}

func (r *memGroupRepo) Save(_ context.Context, g *domain.Group) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	copied := *g
	r.groups[g.ID] = &copied
	return nil
}

func (r *memGroupRepo) GetByID(_ context.Context, id string) (*domain.Group, error) {
	g, ok := r.groups[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *g
	return &copied, nil
}

func (r *memGroupRepo) GetByInviteCode(_ context.Context, code string) (*domain.Group, error) {
	for _, g := range r.groups {
		if g.InviteCode == code {
			copied := *g
			return &copied, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *memGroupRepo) ListByCreator(_ context.Context, creatorID string) ([]*domain.Group, error) {
	var out []*domain.Group
	for _, g := range r.groups {
		if g.CreatorID == creatorID {
			copied := *g
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *memGroupRepo) ListByEvent(_ context.Context, eventID string) ([]*domain.Group, error) {
	var out []*domain.Group
	for _, g := range r.groups {
		if g.EventID == eventID {
			copied := *g
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *memGroupRepo) ListByMember(_ context.Context, userID string) ([]*domain.Group, error) {
	var out []*domain.Group
	for _, g := range r.groups {
		if g.IsMember(userID) {
			copied := *g
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *memGroupRepo) ListAll(_ context.Context) ([]*domain.Group, error) {
	out := make([]*domain.Group, 0, len(r.groups))
	for _, g := range r.groups {
		copied := *g
		out = append(out, &copied)
	}
	return out, nil
}

func (r *memGroupRepo) ExistsByNameAndEvent(_ context.Context, name, eventID string) (bool, error) {
	for _, g := range r.groups {
		if g.Name == name && g.EventID == eventID {
			return true, nil
		}
	}
	return false, nil
}

func (r *memGroupRepo) ExistsByInviteCode(_ context.Context, code string) (bool, error) {
	for _, g := range r.groups {
		if g.InviteCode == code {
			return true, nil
		}
	}
	return false, nil
}

func (r *memGroupRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.groups[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.groups, id)
	return nil
}

type memEventRepo struct {
	events  map[string]*domain.Event
	saveErr error
}

func newMemEventRepo() *memEventRepo {
	return &memEventRepo{events: make(map[string]*domain.Event)}
}

func (r *memEventRepo) Save(_ context.Context, e *domain.Event) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	copied := *e
	r.events[e.ID] = &copied
	return nil
}

func (r *memEventRepo) GetByID(_ context.Context, id string) (*domain.Event, error) {
	e, ok := r.events[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *e
	return &copied, nil
}

func (r *memEventRepo) ListAll(_ context.Context) ([]*domain.Event, error) {
	out := make([]*domain.Event, 0, len(r.events))
	for _, e := range r.events {
		copied := *e
		out = append(out, &copied)
	}
	return out, nil
}

func (r *memEventRepo) ListByCategory(_ context.Context, category string) ([]*domain.Event, error) {
	var out []*domain.Event
	for _, e := range r.events {
		if e.Category == category {
			copied := *e
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *memEventRepo) ListAfter(_ context.Context, date time.Time) ([]*domain.Event, error) {
	var out []*domain.Event
	for _, e := range r.events {
		if e.Date.After(date) {
			copied := *e
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *memEventRepo) ListByLocation(_ context.Context, location string) ([]*domain.Event, error) {
	var out []*domain.Event
	for _, e := range r.events {
		if strings.Contains(strings.ToLower(e.Location), strings.ToLower(location)) {
			copied := *e
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *memEventRepo) ListByAttendee(_ context.Context, userID string) ([]*domain.Event, error) {
	var out []*domain.Event
	for _, e := range r.events {
		if e.IsAttending(userID) {
			copied := *e
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *memEventRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.events[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.events, id)
	return nil
}
