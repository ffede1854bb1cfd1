package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/taskhive/taskhive/internal/logger"
	"github.com/taskhive/taskhive/internal/services"
)

// Loginer defines the interface that the login service must implement.
type Loginer interface {
	Login(ctx context.Context, identifier, password string) (string, error)
}

// TokenResponse represents a successful login response
// swagger:model TokenResponse
type TokenResponse struct {
	// Opaque bearer token
	AccessToken string `json:"access_token"`
	// Token type, always "bearer"
	// default: bearer
	TokenType string `json:"token_type"`
}

// TokenErrorResponse represents an error response for login
// swagger:model TokenErrorResponse
type TokenErrorResponse struct {
	// Error message
	// default: Incorrect username or password
	Error string `json:"error"`
}

// NewTokenHandler returns an HTTP handler for the password-grant login.
// The username form field carries a username or an email.
// @Summary Obtain a bearer token
// @Description Authenticates by username-or-email plus password and returns an opaque bearer token valid for 30 days.
// @Tags auth
// @Accept x-www-form-urlencoded
// @Produce json
// @Param username formData string true "Username or email"
// @Param password formData string true "Password"
// @Success 200 {object} handlers.TokenResponse "Bearer token returned"
// @Failure 401 {object} handlers.TokenErrorResponse "Invalid credentials"
// @Failure 422 {object} handlers.TokenErrorResponse "Missing fields"
// @Router /auth/token [post]
func NewTokenHandler(svc Loginer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			w.WriteHeader(http.StatusUnprocessableEntity)
			json.NewEncoder(w).Encode(TokenErrorResponse{
				Error: "invalid form data",
			})
			return
		}

		identifier := r.PostFormValue("username")
		password := r.PostFormValue("password")
		if identifier == "" || password == "" {
			w.WriteHeader(http.StatusUnprocessableEntity)
			json.NewEncoder(w).Encode(TokenErrorResponse{
				Error: "username and password are required",
			})
			return
		}

		accessToken, err := svc.Login(r.Context(), identifier, password)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrInvalidCredentials):
				w.Header().Set("WWW-Authenticate", "Bearer")
				w.WriteHeader(http.StatusUnauthorized)
				json.NewEncoder(w).Encode(TokenErrorResponse{
					Error: "Incorrect username or password",
				})
			default:
				logger.Log.Errorw("internal server error", "err", err)
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(TokenErrorResponse{
					Error: "Internal server error",
				})
			}
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(TokenResponse{
			AccessToken: accessToken,
			TokenType:   "bearer",
		})
	}
}
