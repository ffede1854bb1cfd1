package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taskhive/taskhive/internal/logger"
	"github.com/taskhive/taskhive/internal/models"
)

// SessionRepository persists sessions in Redis keyed by token. The key TTL
// mirrors expires_at as lazy cleanup; validity is still decided from the
// expires_at field at authentication time.
type SessionRepository struct {
	client *redis.Client
}

// NewSessionRepository creates a new repository instance.
func NewSessionRepository(client *redis.Client) *SessionRepository {
	return &SessionRepository{client: client}
}

func sessionKey(token string) string {
	return "session:" + token
}

// Create stores a new session. A colliding token fails with ErrDuplicateToken.
func (r *SessionRepository) Create(ctx context.Context, session models.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}

	key := sessionKey(session.Token)
	ttl := time.Until(session.ExpiresAt.Time)
	if ttl < 0 {
		// Already-expired sessions are stored without TTL; authentication
		// rejects them from expires_at.
		ttl = 0
	}

	ok, err := r.client.SetNX(ctx, key, data, ttl).Result()

	logger.Log.Infow("session create",
		"session_id", session.ID,
		"user_id", session.UserID,
		"expires_at", session.ExpiresAt.String(),
		"stored", ok,
		"error", err,
	)

	if err != nil {
		return err
	}
	if !ok {
		return ErrDuplicateToken
	}
	return nil
}

// GetByToken returns the session for a token. It does not check expiry;
// that is the caller's responsibility, performed immediately after lookup.
func (r *SessionRepository) GetByToken(ctx context.Context, tok string) (*models.Session, error) {
	val, err := r.client.Get(ctx, sessionKey(tok)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionNotFound
		}
		logger.Log.Errorw("session lookup failed", "error", err)
		return nil, err
	}

	var session models.Session
	if err := json.Unmarshal([]byte(val), &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// Delete removes a session by token. Deleting an absent session is not an error.
func (r *SessionRepository) Delete(ctx context.Context, tok string) error {
	err := r.client.Del(ctx, sessionKey(tok)).Err()

	logger.Log.Infow("session delete",
		"error", err,
	)

	return err
}
