package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is an account provisioned from a verified identity-provider
// token. ProviderUserID is the stable subject claim.
type User struct {
	ID             string    `json:"id"`
	ProviderUserID string    `json:"providerUserId"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Picture        string    `json:"picture,omitempty"`
	GroupIDs       []string  `json:"groupIds"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// NewUser creates a user for a provider subject.
func NewUser(providerUserID, name, email, picture string) *User {
	now := time.Now().UTC()
	return &User{
		ID:             uuid.New().String(),
		ProviderUserID: providerUserID,
		Name:           name,
		Email:          email,
		Picture:        picture,
		GroupIDs:       []string{},
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// AddGroup records group membership on the user. Idempotent.
func (u *User) AddGroup(groupID string) {
	for _, id := range u.GroupIDs {
		if id == groupID {
			return
		}
	}
	u.GroupIDs = append(u.GroupIDs, groupID)
	u.UpdatedAt = time.Now().UTC()
}

// RemoveGroup drops group membership from the user if present.
func (u *User) RemoveGroup(groupID string) {
	for i, id := range u.GroupIDs {
		if id == groupID {
			u.GroupIDs = append(u.GroupIDs[:i], u.GroupIDs[i+1:]...)
			u.UpdatedAt = time.Now().UTC()
			return
		}
	}
}

// Identity is the verified claim set extracted from an ID token.
type Identity struct {
	Subject   string
	Name      string
	Email     string
	Picture   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}
