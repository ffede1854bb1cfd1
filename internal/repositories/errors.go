package repositories

import "errors"

// Error variables
var (
	// ErrUserNotFound is returned when no user matches the lookup key.
	ErrUserNotFound = errors.New("user does not exist")
	// ErrUsernameTaken is returned when the username unique constraint is violated.
	ErrUsernameTaken = errors.New("username already exists")
	// ErrEmailTaken is returned when the email unique constraint is violated.
	ErrEmailTaken = errors.New("email already exists")
	// ErrNoFieldsToUpdate is returned when a partial update carries no fields.
	ErrNoFieldsToUpdate = errors.New("no fields to update")
	// ErrSessionNotFound is returned when no session matches the token.
	ErrSessionNotFound = errors.New("session does not exist")
	// ErrDuplicateToken is returned when a freshly generated token collides
	// with a stored one.
	ErrDuplicateToken = errors.New("session token already exists")
	// ErrTaskNotFound is returned when no task matches the id.
	ErrTaskNotFound = errors.New("task does not exist")
)
