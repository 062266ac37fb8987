package services

import (
	"context"

	"realtydesk/internal/estate/domain/entities"
)

// TokenService выпускает и разбирает токены сессий пользователей.
type TokenService interface {
	IssueSessionToken(ctx context.Context, session *entities.Session) (string, error)

	ParseSessionToken(ctx context.Context, token string) (*entities.Session, error)
}
