package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/taskhive/taskhive/internal/middlewares"
)

// NewMeHandler returns an HTTP handler serving the authenticated user's
// profile.
// @Summary Current user
// @Description Returns the id, username and email of the authenticated user.
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.User "Authenticated user"
// @Failure 401 "Missing or invalid token"
// @Router /auth/me [get]
func NewMeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := middlewares.GetUserFromContext(r.Context())
		if user == nil {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(user)
	}
}
