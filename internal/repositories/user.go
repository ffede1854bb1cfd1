package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"

	"github.com/taskhive/taskhive/internal/logger"
	"github.com/taskhive/taskhive/internal/models"
)

// Unique constraint names declared in the users migration. A violation is
// classified by the constraint Postgres reports, never by matching error text.
const (
	usernameConstraint = "users_username_key"
	emailConstraint    = "users_email_key"
)

const userColumns = "id, username, email, password_hash, created_at, updated_at"

type UserReadRepository struct {
	db *sqlx.DB
}

func NewUserReadRepository(db *sqlx.DB) *UserReadRepository {
	return &UserReadRepository{db: db}
}

// GetByID returns the user with the given id.
func (r *UserReadRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return r.get(ctx, "id", id)
}

// GetByUsername returns the user with the given username (case-sensitive).
func (r *UserReadRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.get(ctx, "username", username)
}

// GetByEmail returns the user with the given email.
func (r *UserReadRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.get(ctx, "email", email)
}

func (r *UserReadRepository) get(ctx context.Context, column string, key any) (*models.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE %s = $1`, userColumns, column)

	var user models.User
	err := r.db.GetContext(ctx, &user, query, key)

	// Log with query in single line
	logger.Log.Infow("user select",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{key},
		"error", err,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s %v", ErrUserNotFound, column, key)
		}
		return nil, err
	}

	return &user, nil
}

type UserWriteRepository struct {
	db *sqlx.DB
}

func NewUserWriteRepository(db *sqlx.DB) *UserWriteRepository {
	return &UserWriteRepository{db: db}
}

// Create inserts a new user and returns the stored record. Uniqueness is
// enforced by the database in a single constrained insert, so two concurrent
// registrations with the same username can never both succeed.
func (r *UserWriteRepository) Create(ctx context.Context, username, email, passwordHash string) (*models.User, error) {
	query := fmt.Sprintf(`
		INSERT INTO users (username, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING %s
	`, userColumns)
	args := []any{username, email, passwordHash}

	var user models.User
	err := r.db.GetContext(ctx, &user, query, args...)

	logger.Log.Infow("user insert",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{username, email},
		"error", err,
	)

	if err != nil {
		return nil, classifyUniqueViolation(err)
	}

	return &user, nil
}

// Update changes only the supplied fields and returns the updated record.
// New values are re-checked for uniqueness by the same constraints as Create.
func (r *UserWriteRepository) Update(ctx context.Context, id uuid.UUID, upd models.UserUpdate) (*models.User, error) {
	if upd.IsEmpty() {
		return nil, ErrNoFieldsToUpdate
	}

	set := make([]string, 0, 4)
	args := make([]any, 0, 4)
	if upd.Username != nil {
		args = append(args, *upd.Username)
		set = append(set, fmt.Sprintf("username = $%d", len(args)))
	}
	if upd.Email != nil {
		args = append(args, *upd.Email)
		set = append(set, fmt.Sprintf("email = $%d", len(args)))
	}
	if upd.PasswordHash != nil {
		args = append(args, *upd.PasswordHash)
		set = append(set, fmt.Sprintf("password_hash = $%d", len(args)))
	}
	set = append(set, "updated_at = NOW()")
	args = append(args, id)

	query := fmt.Sprintf(`
		UPDATE users SET %s
		WHERE id = $%d
		RETURNING %s
	`, strings.Join(set, ", "), len(args), userColumns)

	var user models.User
	err := r.db.GetContext(ctx, &user, query, args...)

	logger.Log.Infow("user update",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{id},
		"error", err,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: id %s", ErrUserNotFound, id)
		}
		return nil, classifyUniqueViolation(err)
	}

	return &user, nil
}

// Delete removes a user by id. Deleting an absent user is not an error.
// Owned tasks go with the user via the foreign key cascade.
func (r *UserWriteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	const query = `DELETE FROM users WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, id)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logger.Log.Infow("user delete",
		"query", query,
		"args", []any{id},
		"result", rowsAffected,
		"error", err,
	)

	return err
}

// classifyUniqueViolation translates a unique-constraint violation into the
// matching domain conflict. With a row colliding on both username and email,
// Postgres reports the username constraint first (declared first in the
// schema); that priority is arbitrary but fixed.
func classifyUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		switch pgErr.ConstraintName {
		case usernameConstraint:
			return ErrUsernameTaken
		case emailConstraint:
			return ErrEmailTaken
		}
	}
	return err
}
