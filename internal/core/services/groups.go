package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/crescendo-labs/backend/internal/core/domain"
	"github.com/crescendo-labs/backend/internal/core/ports"
)

// Groups manages group lifecycle, membership, and invite codes.
type Groups struct {
	repo ports.GroupRepository
}

// NewGroups constructs the group service.
func NewGroups(repo ports.GroupRepository) *Groups {
	return &Groups{repo: repo}
}

// Create creates a group with a unique invite code. Group names must be
// unique within an event.
func (s *Groups) Create(ctx context.Context, name, description, creatorID, eventID string) (*domain.Group, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: group name cannot be empty", ErrInvalidInput)
	}
	if strings.TrimSpace(creatorID) == "" {
		return nil, fmt.Errorf("%w: creator id cannot be empty", ErrInvalidInput)
	}

	if eventID != "" {
		taken, err := s.repo.ExistsByNameAndEvent(ctx, name, eventID)
		if err != nil {
			return nil, fmt.Errorf("service: check group name: %w", err)
		}
		if taken {
			return nil, fmt.Errorf("%w: group name already exists for this event", ErrInvalidInput)
		}
	}

	group := domain.NewGroup(name, description, creatorID, eventID)
	if err := s.ensureUniqueInviteCode(ctx, group); err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, group); err != nil {
		return nil, fmt.Errorf("service: save group: %w", err)
	}
	return group, nil
}

// ByID returns one group.
func (s *Groups) ByID(ctx context.Context, id string) (*domain.Group, error) {
	return s.repo.GetByID(ctx, id)
}

// ByInviteCode returns the group owning an invite code.
func (s *Groups) ByInviteCode(ctx context.Context, code string) (*domain.Group, error) {
	return s.repo.GetByInviteCode(ctx, code)
}

// ByCreator lists groups created by a user.
func (s *Groups) ByCreator(ctx context.Context, creatorID string) ([]*domain.Group, error) {
	return s.repo.ListByCreator(ctx, creatorID)
}

// ByEvent lists groups attached to an event.
func (s *Groups) ByEvent(ctx context.Context, eventID string) ([]*domain.Group, error) {
	return s.repo.ListByEvent(ctx, eventID)
}

// ByMember lists groups a user belongs to.
func (s *Groups) ByMember(ctx context.Context, userID string) ([]*domain.Group, error) {
	return s.repo.ListByMember(ctx, userID)
}

// All lists every group.
func (s *Groups) All(ctx context.Context) ([]*domain.Group, error) {
	return s.repo.ListAll(ctx)
}

// Join adds the user to the group identified by an invite code,
// enforcing capacity and duplicate-member rules.
func (s *Groups) Join(ctx context.Context, inviteCode, userID string) (*domain.Group, error) {
	group, err := s.repo.GetByInviteCode(ctx, inviteCode)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: invalid invite code", ErrInvalidInput)
		}
		return nil, fmt.Errorf("service: load group: %w", err)
	}
	return s.addMember(ctx, group, userID)
}

// AddMember adds the user to a group by id.
func (s *Groups) AddMember(ctx context.Context, groupID, userID string) (*domain.Group, error) {
	group, err := s.repo.GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	return s.addMember(ctx, group, userID)
}

func (s *Groups) addMember(ctx context.Context, group *domain.Group, userID string) (*domain.Group, error) {
	if err := group.AddMember(userID); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, group); err != nil {
		return nil, fmt.Errorf("service: save group: %w", err)
	}
	return group, nil
}

// RemoveMember removes the user from a group.
func (s *Groups) RemoveMember(ctx context.Context, groupID, userID string) (*domain.Group, error) {
	group, err := s.repo.GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if err := group.RemoveMember(userID); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, group); err != nil {
		return nil, fmt.Errorf("service: save group: %w", err)
	}
	return group, nil
}

// Update applies partial changes to name, description, and capacity.
// Capacity can never drop below the current member count.
func (s *Groups) Update(ctx context.Context, groupID string, name, description *string, maxMembers *int) (*domain.Group, error) {
	group, err := s.repo.GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}

	if name != nil && strings.TrimSpace(*name) != "" {
		group.Name = *name
	}
	if description != nil {
		group.Description = *description
	}
	if maxMembers != nil && *maxMembers > 0 {
		if *maxMembers < group.MemberCount() {
			return nil, fmt.Errorf("%w: max members cannot be less than current member count", ErrInvalidInput)
		}
		group.MaxMembers = *maxMembers
	}

	if err := s.repo.Save(ctx, group); err != nil {
		return nil, fmt.Errorf("service: save group: %w", err)
	}
	return group, nil
}

// AssignEvent attaches an event to a group; empty eventID clears it.
func (s *Groups) AssignEvent(ctx context.Context, groupID, eventID string) (*domain.Group, error) {
	group, err := s.repo.GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	group.EventID = eventID
	if err := s.repo.Save(ctx, group); err != nil {
		return nil, fmt.Errorf("service: save group: %w", err)
	}
	return group, nil
}

// RegenerateInviteCode replaces the group's invite code with a fresh
// unique one and returns it.
func (s *Groups) RegenerateInviteCode(ctx context.Context, groupID string) (string, error) {
	group, err := s.repo.GetByID(ctx, groupID)
	if err != nil {
		return "", err
	}

	group.InviteCode = domain.GenerateInviteCode()
	if err := s.ensureUniqueInviteCode(ctx, group); err != nil {
		return "", err
	}
	if err := s.repo.Save(ctx, group); err != nil {
		return "", fmt.Errorf("service: save group: %w", err)
	}
	return group.InviteCode, nil
}

// Delete removes a group.
func (s *Groups) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *Groups) ensureUniqueInviteCode(ctx context.Context, group *domain.Group) error {
	for {
		taken, err := s.repo.ExistsByInviteCode(ctx, group.InviteCode)
		if err != nil {
			return fmt.Errorf("service: check invite code: %w", err)
		}
		if !taken {
			return nil
		}
		group.InviteCode = domain.GenerateInviteCode()
	}
}
