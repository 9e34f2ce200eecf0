package domain

import (
	"errors"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
)

// DefaultMaxMembers caps group size when a request does not specify one.
const DefaultMaxMembers = 50

// InviteCodeLength is the length of generated invite codes.
const InviteCodeLength = 6

const inviteCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

var (
	ErrGroupFull     = errors.New("domain: group is full")
	ErrAlreadyMember = errors.New("domain: user is already a member")
	ErrNotMember     = errors.New("domain: user is not a member")
)

// Group is a set of users participating in an event together. Members
// join through a short shareable invite code.
type Group struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatorID   string    `json:"creatorId"`
	EventID     string    `json:"eventId,omitempty"`
	InviteCode  string    `json:"inviteCode"`
	MemberIDs   []string  `json:"memberIds"`
	MaxMembers  int       `json:"maxMembers"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// NewGroup creates a group with the creator as its first member and a
// freshly generated invite code. Uniqueness of the code is the
// repository's concern; callers regenerate on collision.
func NewGroup(name, description, creatorID, eventID string) *Group {
	now := time.Now().UTC()
	return &Group{
		ID:          uuid.New().String(),
		Name:        name,
		Description: description,
		CreatorID:   creatorID,
		EventID:     eventID,
		InviteCode:  GenerateInviteCode(),
		MemberIDs:   []string{creatorID},
		MaxMembers:  DefaultMaxMembers,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// GenerateInviteCode returns a random A-Z0-9 code of InviteCodeLength.
func GenerateInviteCode() string {
	code := make([]byte, InviteCodeLength)
	for i := range code {
		code[i] = inviteCodeAlphabet[rand.IntN(len(inviteCodeAlphabet))]
	}
	return string(code)
}

// HasSpace reports whether the group can take another member.
func (g *Group) HasSpace() bool {
	return len(g.MemberIDs) < g.MaxMembers
}

// IsMember reports whether the user already belongs to the group.
func (g *Group) IsMember(userID string) bool {
	for _, id := range g.MemberIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// AddMember enforces capacity and duplicate-member rules.
func (g *Group) AddMember(userID string) error {
	if !g.HasSpace() {
		return ErrGroupFull
	}
	if g.IsMember(userID) {
		return ErrAlreadyMember
	}
	g.MemberIDs = append(g.MemberIDs, userID)
	g.UpdatedAt = time.Now().UTC()
	return nil
}

// RemoveMember removes the user, failing if they were not a member.
func (g *Group) RemoveMember(userID string) error {
	for i, id := range g.MemberIDs {
		if id == userID {
			g.MemberIDs = append(g.MemberIDs[:i], g.MemberIDs[i+1:]...)
			g.UpdatedAt = time.Now().UTC()
			return nil
		}
	}
	return ErrNotMember
}

// MemberCount returns the current member total.
func (g *Group) MemberCount() int {
	return len(g.MemberIDs)
}
