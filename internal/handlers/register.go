package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/mail"

	"github.com/taskhive/taskhive/internal/logger"
	"github.com/taskhive/taskhive/internal/models"
	"github.com/taskhive/taskhive/internal/repositories"
)

// Registerer defines the interface that the registration service must implement.
type Registerer interface {
	Register(ctx context.Context, username, password, email string) (*models.User, error)
}

// RegisterResponse represents a successful registration response
// swagger:model RegisterResponse
type RegisterResponse struct {
	// Success message
	// default: User created successfully
	Detail string `json:"detail"`
}

// RegisterErrorResponse represents an error response for registration
// swagger:model RegisterErrorResponse
type RegisterErrorResponse struct {
	// Error message
	// default: User with username john_doe already exists
	Error string `json:"error"`
}

// NewRegisterHandler returns an HTTP handler for user registration.
// @Summary Register a new user
// @Description Creates a new user account from form fields. Ensures unique username and email. Password is hashed before storing.
// @Tags auth
// @Accept x-www-form-urlencoded
// @Produce json
// @Param username formData string true "Username"
// @Param password formData string true "Password"
// @Param email formData string true "Email"
// @Success 201 {object} handlers.RegisterResponse "User successfully registered"
// @Failure 409 {object} handlers.RegisterErrorResponse "Username or email already exists"
// @Failure 422 {object} handlers.RegisterErrorResponse "Missing or malformed fields"
// @Router /auth/register [post]
func NewRegisterHandler(svc Registerer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			w.WriteHeader(http.StatusUnprocessableEntity)
			json.NewEncoder(w).Encode(RegisterErrorResponse{
				Error: "invalid form data",
			})
			return
		}

		username := r.PostFormValue("username")
		password := r.PostFormValue("password")
		email := r.PostFormValue("email")
		if username == "" || password == "" || email == "" {
			w.WriteHeader(http.StatusUnprocessableEntity)
			json.NewEncoder(w).Encode(RegisterErrorResponse{
				Error: "username, password and email are required",
			})
			return
		}
		if _, err := mail.ParseAddress(email); err != nil {
			w.WriteHeader(http.StatusUnprocessableEntity)
			json.NewEncoder(w).Encode(RegisterErrorResponse{
				Error: "invalid email address",
			})
			return
		}

		_, err := svc.Register(r.Context(), username, password, email)
		if err != nil {
			switch {
			case errors.Is(err, repositories.ErrUsernameTaken):
				w.WriteHeader(http.StatusConflict)
				json.NewEncoder(w).Encode(RegisterErrorResponse{
					Error: fmt.Sprintf("User with username %s already exists", username),
				})
			case errors.Is(err, repositories.ErrEmailTaken):
				w.WriteHeader(http.StatusConflict)
				json.NewEncoder(w).Encode(RegisterErrorResponse{
					Error: fmt.Sprintf("User with email %s already exists", email),
				})
			default:
				logger.Log.Errorw("internal server error", "err", err)
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(RegisterErrorResponse{
					Error: "Internal server error",
				})
			}
			return
		}

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(RegisterResponse{
			Detail: "User created successfully",
		})
	}
}
