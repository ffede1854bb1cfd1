package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskhive/taskhive/internal/logger"
	"github.com/taskhive/taskhive/internal/models"
	"github.com/taskhive/taskhive/internal/repositories"
)

// Error variables
var (
	ErrInvalidCredentials = errors.New("incorrect username or password")
	ErrUnauthorized       = errors.New("could not validate credentials")
)

// maxTokenAttempts bounds regeneration after a token collision. Collisions
// cannot realistically happen with 256-bit tokens, but the store contract
// reports them and the loop keeps login total.
const maxTokenAttempts = 3

// UserReader defines read-only operations for users.
type UserReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// UserWriter defines write operations for users.
type UserWriter interface {
	Create(ctx context.Context, username, email, passwordHash string) (*models.User, error)
	Update(ctx context.Context, id uuid.UUID, upd models.UserUpdate) (*models.User, error)
}

// SessionStore defines session persistence operations.
type SessionStore interface {
	Create(ctx context.Context, session models.Session) error
	GetByToken(ctx context.Context, token string) (*models.Session, error)
	Delete(ctx context.Context, token string) error
}

// TokenGenerator issues opaque bearer tokens.
type TokenGenerator interface {
	Generate(ctx context.Context) (string, error)
}

// AuthService handles registration, login, request authentication,
// profile updates and logout.
type AuthService struct {
	reader   UserReader
	writer   UserWriter
	sessions SessionStore
	tokens   TokenGenerator
	ttl      time.Duration
}

// NewAuthService creates a new AuthService instance. ttl is the validity
// window of issued sessions.
func NewAuthService(reader UserReader, writer UserWriter, sessions SessionStore, tokens TokenGenerator, ttl time.Duration) *AuthService {
	return &AuthService{
		reader:   reader,
		writer:   writer,
		sessions: sessions,
		tokens:   tokens,
		ttl:      ttl,
	}
}

// Register hashes the password and creates the user. Uniqueness conflicts
// surface unchanged from the repository.
func (svc *AuthService) Register(ctx context.Context, username, password, email string) (*models.User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.Errorw("failed to hash password", "err", err)
		return nil, err
	}

	user, err := svc.writer.Create(ctx, username, email, string(hashedPassword))
	if err != nil {
		logger.Log.Errorw("failed to create user", "username", username, "err", err)
		return nil, err
	}

	return user, nil
}

// Login authenticates a user by username or email and returns a fresh
// session token. An identifier containing '@' is treated as an email,
// anything else as a username; that heuristic is deliberately simpler
// than full email validation. An unknown identifier and a wrong password
// are indistinguishable to the caller.
func (svc *AuthService) Login(ctx context.Context, identifier, password string) (string, error) {
	var (
		user *models.User
		err  error
	)
	if strings.Contains(identifier, "@") {
		user, err = svc.reader.GetByEmail(ctx, identifier)
	} else {
		user, err = svc.reader.GetByUsername(ctx, identifier)
	}
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			logger.Log.Infow("login with unknown identifier")
			return "", ErrInvalidCredentials
		}
		logger.Log.Errorw("failed to get user", "err", err)
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		logger.Log.Infow("login with wrong password", "user_id", user.ID)
		return "", ErrInvalidCredentials
	}

	for attempt := 0; attempt < maxTokenAttempts; attempt++ {
		tok, err := svc.tokens.Generate(ctx)
		if err != nil {
			logger.Log.Errorw("failed to generate token", "err", err)
			return "", err
		}

		session := models.Session{
			ID:        uuid.New(),
			Token:     tok,
			UserID:    user.ID,
			ExpiresAt: models.NewDateTime(time.Now().Add(svc.ttl)),
		}

		err = svc.sessions.Create(ctx, session)
		if err == nil {
			return tok, nil
		}
		if !errors.Is(err, repositories.ErrDuplicateToken) {
			logger.Log.Errorw("failed to create session", "err", err)
			return "", err
		}
		logger.Log.Warnw("token collision, regenerating", "attempt", attempt+1)
	}

	return "", repositories.ErrDuplicateToken
}

// Authenticate resolves a bearer token to its user. A missing session, an
// expired one and a session whose user no longer exists are
// indistinguishable; expired sessions are left in the store for lazy cleanup.
func (svc *AuthService) Authenticate(ctx context.Context, tok string) (*models.User, error) {
	session, err := svc.sessions.GetByToken(ctx, tok)
	if err != nil {
		if errors.Is(err, repositories.ErrSessionNotFound) {
			return nil, ErrUnauthorized
		}
		logger.Log.Errorw("failed to get session", "err", err)
		return nil, err
	}

	if !time.Now().Before(session.ExpiresAt.Time) {
		logger.Log.Infow("expired session", "session_id", session.ID)
		return nil, ErrUnauthorized
	}

	user, err := svc.reader.GetByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			logger.Log.Warnw("session references missing user", "session_id", session.ID, "user_id", session.UserID)
			return nil, ErrUnauthorized
		}
		logger.Log.Errorw("failed to get user", "err", err)
		return nil, err
	}

	return user, nil
}

// Logout deletes the session behind the presented token. Idempotent.
func (svc *AuthService) Logout(ctx context.Context, tok string) error {
	return svc.sessions.Delete(ctx, tok)
}

// UpdateProfile changes the supplied subset of username, password and email.
// The password is re-hashed; uniqueness conflicts and an empty update
// surface unchanged from the repository.
func (svc *AuthService) UpdateProfile(ctx context.Context, userID uuid.UUID, username, password, email *string) (*models.User, error) {
	upd := models.UserUpdate{
		Username: username,
		Email:    email,
	}
	if password != nil {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
		if err != nil {
			logger.Log.Errorw("failed to hash password", "err", err)
			return nil, err
		}
		hash := string(hashedPassword)
		upd.PasswordHash = &hash
	}

	user, err := svc.writer.Update(ctx, userID, upd)
	if err != nil {
		logger.Log.Errorw("failed to update user", "user_id", userID, "err", err)
		return nil, err
	}

	return user, nil
}
