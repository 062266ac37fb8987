package services

import (
	"context"

	"github.com/google/uuid"

	"realtydesk/internal/estate/domain/entities"
)

// SessionRegistry хранит выпущенные сессии до их истечения или отзыва.
type SessionRegistry interface {
	Put(ctx context.Context, session *entities.Session) error

	Exists(ctx context.Context, sessionID uuid.UUID) (bool, error)

	Revoke(ctx context.Context, sessionID uuid.UUID) error
}
