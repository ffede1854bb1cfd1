package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/mail"

	"github.com/google/uuid"

	"github.com/taskhive/taskhive/internal/logger"
	"github.com/taskhive/taskhive/internal/middlewares"
	"github.com/taskhive/taskhive/internal/models"
	"github.com/taskhive/taskhive/internal/repositories"
)

// ProfileUpdater defines the interface that the profile update service must
// implement.
type ProfileUpdater interface {
	UpdateProfile(ctx context.Context, userID uuid.UUID, username, password, email *string) (*models.User, error)
}

// MeUpdateErrorResponse represents an error response for a profile update
// swagger:model MeUpdateErrorResponse
type MeUpdateErrorResponse struct {
	// Error message
	// default: no fields to update
	Error string `json:"error"`
}

// NewMeUpdateHandler returns an HTTP handler updating the authenticated
// user's profile. Absent form fields are left unchanged; at least one must
// be present.
// @Summary Update current user
// @Description Partially updates username, password and email of the authenticated user.
// @Tags auth
// @Accept x-www-form-urlencoded
// @Produce json
// @Security BearerAuth
// @Param username formData string false "New username"
// @Param password formData string false "New password"
// @Param email formData string false "New email"
// @Success 200 {object} models.User "Updated user"
// @Failure 401 "Missing or invalid token"
// @Failure 409 {object} handlers.MeUpdateErrorResponse "Username or email already exists"
// @Failure 422 {object} handlers.MeUpdateErrorResponse "No fields or malformed fields"
// @Router /auth/me [put]
func NewMeUpdateHandler(svc ProfileUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := middlewares.GetUserFromContext(r.Context())
		if user == nil {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		if err := r.ParseForm(); err != nil {
			w.WriteHeader(http.StatusUnprocessableEntity)
			json.NewEncoder(w).Encode(MeUpdateErrorResponse{
				Error: "invalid form data",
			})
			return
		}

		username := formValue(r, "username")
		password := formValue(r, "password")
		email := formValue(r, "email")
		if email != nil {
			if _, err := mail.ParseAddress(*email); err != nil {
				w.WriteHeader(http.StatusUnprocessableEntity)
				json.NewEncoder(w).Encode(MeUpdateErrorResponse{
					Error: "invalid email address",
				})
				return
			}
		}

		updated, err := svc.UpdateProfile(r.Context(), user.ID, username, password, email)
		if err != nil {
			switch {
			case errors.Is(err, repositories.ErrNoFieldsToUpdate):
				w.WriteHeader(http.StatusUnprocessableEntity)
				json.NewEncoder(w).Encode(MeUpdateErrorResponse{
					Error: "no fields to update",
				})
			case errors.Is(err, repositories.ErrUsernameTaken):
				w.WriteHeader(http.StatusConflict)
				json.NewEncoder(w).Encode(MeUpdateErrorResponse{
					Error: fmt.Sprintf("User with username %s already exists", *username),
				})
			case errors.Is(err, repositories.ErrEmailTaken):
				w.WriteHeader(http.StatusConflict)
				json.NewEncoder(w).Encode(MeUpdateErrorResponse{
					Error: fmt.Sprintf("User with email %s already exists", *email),
				})
			case errors.Is(err, repositories.ErrUserNotFound):
				w.WriteHeader(http.StatusNotFound)
				json.NewEncoder(w).Encode(MeUpdateErrorResponse{
					Error: "User does not exist",
				})
			default:
				logger.Log.Errorw("internal server error", "err", err)
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(MeUpdateErrorResponse{
					Error: "Internal server error",
				})
			}
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(updated)
	}
}
