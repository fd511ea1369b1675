package auth

import (
	"time"

	"github.com/google/uuid"
)

// User is the persisted user record. PasswordHash is never serialized;
// handlers expose users through PublicUser only.
type User struct {
	ID           uuid.UUID
	DisplayName  string
	Email        string
	PasswordHash string
	// GoogleID is the federated subject, empty for local accounts.
	// A valid record carries at least one of PasswordHash / GoogleID.
	GoogleID  string
	Photo     string
	CreatedAt time.Time
}

// PublicUser is the client-facing view of a user.
type PublicUser struct {
	ID          uuid.UUID `json:"id"`
	DisplayName string    `json:"displayName"`
	Email       string    `json:"email"`
	Photo       string    `json:"photo,omitempty"`
}

// Public converts the persisted record to its client-facing view. This is
// the only place the password hash gets stripped.
func (u User) Public() PublicUser {
	return PublicUser{
		ID:          u.ID,
		DisplayName: u.DisplayName,
		Email:       u.Email,
		Photo:       u.Photo,
	}
}
