package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"realtydesk/internal/estate/domain/entities"
	"realtydesk/internal/estate/ports/api"
	"realtydesk/internal/estate/ports/repositories"
	svc "realtydesk/internal/estate/ports/services"
	"realtydesk/pkg/logger"
)

const (
	methodCreateSessionByCredentials = "CreateByCredentials"
	methodCreateSessionByUserID      = "CreateByUserID"
	methodAuthorizeSession           = "Authorize"
	methodRevokeSession              = "Revoke"

	msgCreatingSession      = "creating user session"
	msgAuthorizingSession   = "authorizing user session"
	msgRevokingSession      = "revoking user session"
	msgUnknownCredentials   = "unknown login or wrong password"
	msgSessionRejected      = "session token rejected"
	msgSessionNotInRegistry = "session is not registered or already revoked"
	msgSessionIssued        = "session issued successfully"
	msgSessionAuthorized    = "session authorized successfully"
	msgSessionRevoked       = "session revoked successfully"

	msgErrIssuingToken    = "failed to issue session token"
	msgErrParsingToken    = "failed to parse session token"
	msgErrStoringSession  = "failed to store session"
	msgErrCheckingSession = "failed to check session"
	msgErrRevokingSession = "failed to revoke session"

	errCtxVerifyingPassword   = "verifying password"
	errCtxIssuingSessionToken = "issuing session token"
	errCtxParsingSessionToken = "parsing session token"
	errCtxStoringSession      = "storing session"
	errCtxCheckingSession     = "checking session"
	errCtxRevokingSession     = "revoking session"
)

// SessionUseCaseImpl реализует интерфейс SessionUseCase.
type SessionUseCaseImpl struct {
	users     repositories.UserRepository
	passwords svc.PasswordService
	tokens    svc.TokenService
	registry  svc.SessionRegistry
	ttl       time.Duration
}

// NewSessionUseCase создает новый экземпляр сценариев работы с сессиями.
// При неположительном ttl используется срок действия по умолчанию.
func NewSessionUseCase(
	users repositories.UserRepository,
	passwords svc.PasswordService,
	tokens svc.TokenService,
	registry svc.SessionRegistry,
	ttl time.Duration,
) api.SessionUseCase {
	if ttl <= 0 {
		ttl = entities.DefaultSessionTTL
	}

	return &SessionUseCaseImpl{
		users:     users,
		passwords: passwords,
		tokens:    tokens,
		registry:  registry,
		ttl:       ttl,
	}
}

// CreateByCredentials выпускает сессию по логину и паролю.
// Неизвестный логин и неверный пароль неразличимы для вызывающего.
func (s *SessionUseCaseImpl) CreateByCredentials(ctx context.Context, login, password string) (*entities.Session, error) {
	log := logger.Log(ctx).With(zap.String("method", methodCreateSessionByCredentials), zap.String("login", login))
	log.Debug(ctx, msgCreatingSession)

	user, err := s.users.FindByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, entities.ErrUserNotExists) {
			log.Debug(ctx, msgUnknownCredentials)
			return nil, fmt.Errorf("%s: %w", errCtxFindingUser, entities.ErrWrongCredentials)
		}
		log.Error(ctx, msgErrFindingUser, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxFindingUser, err)
	}

	ok, err := s.passwords.VerifyPassword(ctx, password, user.PasswordHash)
	if err != nil {
		if errors.Is(err, entities.ErrInvalidPassword) {
			log.Debug(ctx, msgUnknownCredentials)
			return nil, fmt.Errorf("%s: %w", errCtxVerifyingPassword, entities.ErrWrongCredentials)
		}
		log.Error(ctx, msgErrVerifyingPassword, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxVerifyingPassword, err)
	}
	if !ok {
		log.Debug(ctx, msgUnknownCredentials)
		return nil, fmt.Errorf("%s: %w", errCtxVerifyingPassword, entities.ErrWrongCredentials)
	}

	return s.issueSession(ctx, log, user.ID)
}

// CreateByUserID выпускает сессию для существующего пользователя без проверки пароля.
func (s *SessionUseCaseImpl) CreateByUserID(ctx context.Context, userID uuid.UUID) (*entities.Session, error) {
	log := logger.Log(ctx).With(zap.String("method", methodCreateSessionByUserID), zap.String("userID", userID.String()))
	log.Debug(ctx, msgCreatingSession)

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, entities.ErrUserNotExists) {
			log.Debug(ctx, msgErrFindingUser, zap.Error(err))
		} else {
			log.Error(ctx, msgErrFindingUser, zap.Error(err))
		}
		return nil, fmt.Errorf("%s: %w", errCtxFindingUser, err)
	}

	return s.issueSession(ctx, log, user.ID)
}

// Authorize разбирает токен, сверяет сессию с реестром и подтверждает
// существование пользователя.
func (s *SessionUseCaseImpl) Authorize(ctx context.Context, token string) (*entities.Session, error) {
	log := logger.Log(ctx).With(zap.String("method", methodAuthorizeSession))
	log.Debug(ctx, msgAuthorizingSession)

	session, err := s.parseToken(ctx, log, token)
	if err != nil {
		return nil, err
	}

	registered, err := s.registry.Exists(ctx, session.ID)
	if err != nil {
		log.Error(ctx, msgErrCheckingSession, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxCheckingSession, err)
	}
	if !registered {
		log.Debug(ctx, msgSessionNotInRegistry, zap.String("sessionID", session.ID.String()))
		return nil, fmt.Errorf("%s: %w", errCtxCheckingSession, entities.ErrSessionRevoked)
	}

	if _, err := s.users.FindByID(ctx, session.UserID); err != nil {
		if errors.Is(err, entities.ErrUserNotExists) {
			log.Debug(ctx, msgErrFindingUser, zap.Error(err))
		} else {
			log.Error(ctx, msgErrFindingUser, zap.Error(err))
		}
		return nil, fmt.Errorf("%s: %w", errCtxFindingUser, err)
	}

	log.Info(ctx, msgSessionAuthorized, zap.String("sessionID", session.ID.String()))
	return session, nil
}

// Revoke разбирает токен и удаляет сессию из реестра.
func (s *SessionUseCaseImpl) Revoke(ctx context.Context, token string) error {
	log := logger.Log(ctx).With(zap.String("method", methodRevokeSession))
	log.Debug(ctx, msgRevokingSession)

	session, err := s.parseToken(ctx, log, token)
	if err != nil {
		return err
	}

	if err := s.registry.Revoke(ctx, session.ID); err != nil {
		log.Error(ctx, msgErrRevokingSession, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxRevokingSession, err)
	}

	log.Info(ctx, msgSessionRevoked, zap.String("sessionID", session.ID.String()))
	return nil
}

func (s *SessionUseCaseImpl) issueSession(ctx context.Context, log *logger.Logger, userID uuid.UUID) (*entities.Session, error) {
	session := entities.NewSession(userID, s.ttl)

	token, err := s.tokens.IssueSessionToken(ctx, session)
	if err != nil {
		log.Error(ctx, msgErrIssuingToken, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxIssuingSessionToken, err)
	}
	session.Token = token

	if err := s.registry.Put(ctx, session); err != nil {
		log.Error(ctx, msgErrStoringSession, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxStoringSession, err)
	}

	log.Info(ctx, msgSessionIssued, zap.String("sessionID", session.ID.String()))
	return session, nil
}

func (s *SessionUseCaseImpl) parseToken(ctx context.Context, log *logger.Logger, token string) (*entities.Session, error) {
	session, err := s.tokens.ParseSessionToken(ctx, token)
	if err != nil {
		if errors.Is(err, entities.ErrInvalidSessionToken) || errors.Is(err, entities.ErrSessionExpired) {
			log.Debug(ctx, msgSessionRejected, zap.Error(err))
		} else {
			log.Error(ctx, msgErrParsingToken, zap.Error(err))
		}
		return nil, fmt.Errorf("%s: %w", errCtxParsingSessionToken, err)
	}

	return session, nil
}
