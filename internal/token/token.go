package token

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"net/http"
	"strings"
	"time"
)

// Generator issues opaque bearer tokens and knows the session lifetime.
// Tokens carry no claims; they are only lookup keys for server-side sessions.
type Generator struct {
	Exp time.Duration // Session validity window
}

// New creates a new Generator instance
func New(expiration time.Duration) *Generator {
	return &Generator{
		Exp: expiration,
	}
}

// Generate returns a fresh unguessable token: 32 bytes from crypto/rand,
// hex encoded.
func (g *Generator) Generate(ctx context.Context) (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// ExpiresAt returns the expiry instant for a session issued at now.
func (g *Generator) ExpiresAt(now time.Time) time.Time {
	return now.Add(g.Exp)
}

// GetTokenFromRequest extracts the token string from the Authorization header
func (g *Generator) GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", errors.New("authorization header missing")
	}

	parts := strings.Fields(authHeader)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return "", errors.New("invalid authorization header format")
	}

	return parts[1], nil
}
