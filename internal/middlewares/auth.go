package middlewares

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/taskhive/taskhive/internal/logger"
	"github.com/taskhive/taskhive/internal/models"
	"github.com/taskhive/taskhive/internal/services"
)

// Tokener extracts the bearer token from a request.
type Tokener interface {
	GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error)
}

// Authenticator resolves a bearer token to the authenticated user.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*models.User, error)
}

// contextKey is an unexported type for keys in context
type contextKey int

const (
	userKey contextKey = iota
	tokenKey
)

// SetUserToContext stores the authenticated user in the context.
func SetUserToContext(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// GetUserFromContext retrieves the authenticated user from the context.
// Returns nil if not present.
func GetUserFromContext(ctx context.Context) *models.User {
	user, _ := ctx.Value(userKey).(*models.User)
	return user
}

// SetTokenToContext stores the presented bearer token in the context.
func SetTokenToContext(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey, token)
}

// GetTokenFromContext retrieves the presented bearer token from the context.
// Returns the empty string if not present.
func GetTokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(tokenKey).(string)
	return token
}

// AuthMiddleware returns a middleware that resolves the bearer token to the
// authenticated user and stores user and token in the request context.
// A missing, malformed, unknown or expired token yields 401.
func AuthMiddleware(tokener Tokener, auth Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			tokenString, err := tokener.GetTokenFromRequest(ctx, r)
			if err != nil {
				logger.Log.Infow("authorization failed", "err", err)
				writeUnauthorized(w)
				return
			}

			user, err := auth.Authenticate(ctx, tokenString)
			if err != nil {
				if errors.Is(err, services.ErrUnauthorized) {
					logger.Log.Infow("authorization failed", "err", err)
					writeUnauthorized(w)
					return
				}
				logger.Log.Errorw("authentication error", "err", err)
				w.WriteHeader(http.StatusInternalServerError)
				return
			}

			ctx = SetUserToContext(ctx, user)
			ctx = SetTokenToContext(ctx, tokenString)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func writeUnauthorized(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{
		"error": "Could not validate credentials",
	})
}
