// Package registry содержит реестр сессий пользователей поверх Redis.
package registry

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"realtydesk/internal/estate/domain/entities"
	"realtydesk/internal/estate/ports/services"
	rdb "realtydesk/pkg/db/redis"
	"realtydesk/pkg/logger"
)

// Константы для логирования.
const (
	LogMethodPut    = "put"
	LogMethodExists = "exists"
	LogMethodRevoke = "revoke"

	ErrorFailedToPut    = "failed to store session in redis"
	ErrorFailedToCheck  = "failed to check session in redis"
	ErrorFailedToRevoke = "failed to revoke session in redis"
)

const sessionKeyPrefix = "session:"

// SessionRegistry реализует интерфейс SessionRegistry с использованием Redis.
// Записи живут до истечения срока действия сессии либо до явного отзыва.
type SessionRegistry struct {
	client *rdb.Client
}

// NewSessionRegistry создает новый реестр сессий поверх клиента Redis.
func NewSessionRegistry(client *rdb.Client) services.SessionRegistry {
	return &SessionRegistry{client: client}
}

func sessionKey(sessionID uuid.UUID) string {
	return sessionKeyPrefix + sessionID.String()
}

// Put регистрирует сессию с временем жизни до ее истечения.
func (r *SessionRegistry) Put(ctx context.Context, session *entities.Session) error {
	log := logger.Log(ctx).With(
		zap.String("method", LogMethodPut),
		zap.String("sessionID", session.ID.String()),
	)

	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("%s: %w", ErrorFailedToPut, entities.ErrSessionExpired)
	}

	if err := r.client.Set(ctx, sessionKey(session.ID), session.UserID.String(), ttl); err != nil {
		log.Error(ctx, ErrorFailedToPut, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrorFailedToPut, err)
	}

	return nil
}

// Exists сообщает, зарегистрирована ли еще сессия.
func (r *SessionRegistry) Exists(ctx context.Context, sessionID uuid.UUID) (bool, error) {
	log := logger.Log(ctx).With(
		zap.String("method", LogMethodExists),
		zap.String("sessionID", sessionID.String()),
	)

	count, err := r.client.RawClient().Exists(ctx, sessionKey(sessionID)).Result()
	if err != nil {
		log.Error(ctx, ErrorFailedToCheck, zap.Error(err))
		return false, fmt.Errorf("%s: %w", ErrorFailedToCheck, err)
	}

	return count > 0, nil
}

// Revoke удаляет сессию из реестра.
func (r *SessionRegistry) Revoke(ctx context.Context, sessionID uuid.UUID) error {
	log := logger.Log(ctx).With(
		zap.String("method", LogMethodRevoke),
		zap.String("sessionID", sessionID.String()),
	)

	if err := r.client.Delete(ctx, sessionKey(sessionID)); err != nil {
		log.Error(ctx, ErrorFailedToRevoke, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrorFailedToRevoke, err)
	}

	return nil
}
