package handlers

import (
	"context"
	"net/http"

	"github.com/taskhive/taskhive/internal/logger"
	"github.com/taskhive/taskhive/internal/middlewares"
)

// Logouter defines the interface that the logout service must implement.
type Logouter interface {
	Logout(ctx context.Context, token string) error
}

// NewLogoutHandler returns an HTTP handler that revokes the presented
// session. Logging out twice is not an error.
// @Summary Log out
// @Description Deletes the session behind the presented bearer token.
// @Tags auth
// @Security BearerAuth
// @Success 204 "Session deleted"
// @Failure 401 "Missing or invalid token"
// @Router /auth/logout [post]
func NewLogoutHandler(svc Logouter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tok := middlewares.GetTokenFromContext(r.Context())

		if err := svc.Logout(r.Context(), tok); err != nil {
			logger.Log.Errorw("logout failed", "err", err)
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
