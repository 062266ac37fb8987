package entities

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Ошибки сессий пользователей.
var (
	ErrWrongCredentials    = errors.New("wrong credentials")
	ErrInvalidSessionToken = errors.New("invalid session token")
	ErrSessionExpired      = errors.New("session is expired")
	ErrSessionRevoked      = errors.New("session is revoked")
)

// DefaultSessionTTL задает срок действия сессии пользователя.
const DefaultSessionTTL = 30 * time.Minute

// Session представляет сессию пользователя.
// Token заполняется при выпуске и при разборе токена.
type Session struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	ExpiresAt time.Time
	Token     string
}

// NewSession создает сессию пользователя со сроком действия ttl.
func NewSession(userID uuid.UUID, ttl time.Duration) *Session {
	return &Session{
		ID:        uuid.New(),
		UserID:    userID,
		ExpiresAt: time.Now().UTC().Add(ttl),
	}
}
