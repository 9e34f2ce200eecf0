package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/crescendo-labs/backend/internal/core/domain"
	"github.com/crescendo-labs/backend/internal/core/ports"
)

// ErrInvalidInput marks request-shaped failures the HTTP layer maps to
// a client error.
var ErrInvalidInput = errors.New("service: invalid input")

// Users manages account provisioning and lookup.
type Users struct {
	repo ports.UserRepository
}

// NewUsers constructs the user service.
func NewUsers(repo ports.UserRepository) *Users {
	return &Users{repo: repo}
}

// Upsert creates the user for a provider subject or refreshes the
// profile fields of an existing one. Called on every verified token so
// profiles track the identity provider.
func (s *Users) Upsert(ctx context.Context, identity domain.Identity) (*domain.User, error) {
	if identity.Subject == "" {
		return nil, fmt.Errorf("%w: provider user id is required", ErrInvalidInput)
	}

	user, err := s.repo.GetByProviderUserID(ctx, identity.Subject)
	switch {
	case err == nil:
		user.Name = identity.Name
		user.Email = identity.Email
		user.Picture = identity.Picture
	case errors.Is(err, domain.ErrNotFound):
		user = domain.NewUser(identity.Subject, identity.Name, identity.Email, identity.Picture)
	default:
		return nil, fmt.Errorf("service: load user: %w", err)
	}

	if err := s.repo.Save(ctx, user); err != nil {
		return nil, fmt.Errorf("service: save user: %w", err)
	}
	return user, nil
}

// ByID returns one user.
func (s *Users) ByID(ctx context.Context, id string) (*domain.User, error) {
	return s.repo.GetByID(ctx, id)
}

// ByProviderUserID returns the user owning a provider subject.
func (s *Users) ByProviderUserID(ctx context.Context, providerUserID string) (*domain.User, error) {
	return s.repo.GetByProviderUserID(ctx, providerUserID)
}

// ByEmail returns the user with the given email.
func (s *Users) ByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.repo.GetByEmail(ctx, email)
}

// ByGroup lists the members of a group.
func (s *Users) ByGroup(ctx context.Context, groupID string) ([]*domain.User, error) {
	return s.repo.ListByGroup(ctx, groupID)
}

// All lists every user.
func (s *Users) All(ctx context.Context) ([]*domain.User, error) {
	return s.repo.ListAll(ctx)
}

// AddToGroup records group membership on the user side.
func (s *Users) AddToGroup(ctx context.Context, userID, groupID string) (*domain.User, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.AddGroup(groupID)
	if err := s.repo.Save(ctx, user); err != nil {
		return nil, fmt.Errorf("service: save user: %w", err)
	}
	return user, nil
}

// RemoveFromGroup drops group membership on the user side.
func (s *Users) RemoveFromGroup(ctx context.Context, userID, groupID string) (*domain.User, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.RemoveGroup(groupID)
	if err := s.repo.Save(ctx, user); err != nil {
		return nil, fmt.Errorf("service: save user: %w", err)
	}
	return user, nil
}

// Delete removes a user.
func (s *Users) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	return s.repo.Delete(ctx, id)
}
