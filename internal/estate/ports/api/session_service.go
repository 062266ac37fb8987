package api

import (
	"context"

	"github.com/google/uuid"

	"realtydesk/internal/estate/domain/entities"
)

// SessionUseCase определяет порт управления сессиями пользователей.
type SessionUseCase interface {
	// CreateByCredentials создает сессию по логину и паролю.
	CreateByCredentials(ctx context.Context, login, password string) (*entities.Session, error)

	// CreateByUserID создает сессию для уже проверенного пользователя.
	CreateByUserID(ctx context.Context, userID uuid.UUID) (*entities.Session, error)

	// Authorize проверяет токен и возвращает действующую сессию.
	Authorize(ctx context.Context, token string) (*entities.Session, error)

	// Revoke отзывает сессию по токену.
	Revoke(ctx context.Context, token string) error
}
