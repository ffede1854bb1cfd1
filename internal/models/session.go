package models

import (
	"github.com/google/uuid"
)

// Session binds an opaque bearer token to a user and an expiry instant.
// Sessions are stored in Redis keyed by token and serialized as JSON;
// the id exists for log correlation only.
type Session struct {
	ID        uuid.UUID `json:"id"`
	Token     string    `json:"token"`
	UserID    uuid.UUID `json:"user_id"`
	ExpiresAt DateTime  `json:"expires_at"`
}
