package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents a user record in the database.
type User struct {
	ID           uuid.UUID `json:"id" db:"id"`                  // Primary key
	Username     string    `json:"username" db:"username"`      // Unique username
	Email        string    `json:"email" db:"email"`            // Unique email
	PasswordHash string    `json:"-" db:"password_hash"`        // bcrypt hash, never serialized
	CreatedAt    time.Time `json:"-" db:"created_at"`           // Creation timestamp
	UpdatedAt    time.Time `json:"-" db:"updated_at"`           // Last update timestamp
}

// UserUpdate carries the optional fields of a profile update.
// A nil field is left untouched.
type UserUpdate struct {
	Username     *string
	Email        *string
	PasswordHash *string
}

// IsEmpty reports whether the update contains no fields at all.
func (u UserUpdate) IsEmpty() bool {
	return u.Username == nil && u.Email == nil && u.PasswordHash == nil
}
