package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"realtydesk/internal/estate/domain/entities"
	svc "realtydesk/internal/estate/ports/services"
	"realtydesk/pkg/logger"
)

// Константы для работы с JWT.
const (
	methodIssueSessionToken = "IssueSessionToken"
	methodParseSessionToken = "ParseSessionToken"
	msgIssuingToken         = "issuing session token"
	msgParsingToken         = "parsing session token"
	msgTokenIssued          = "session token issued successfully"
	msgTokenParsed          = "session token parsed successfully"
	msgInvalidToken         = "invalid session token format"
	msgTokenExpired         = "session token has expired"
	//nolint:gosec
	errSigningToken = "error signing session token"
	//nolint:gosec
	errParsingToken    = "error parsing session token"
	errCtxIssuingToken = "issuing session token"
	errCtxParsingToken = "parsing session token"
)

// ErrInvalidAlgorithm представляет статическую ошибку неверного алгоритма подписи.
var ErrInvalidAlgorithm = errors.New("invalid signing algorithm")

// ErrEmptySecretKey возникает при попытке подписать токен пустым ключом.
var ErrEmptySecretKey = errors.New("empty secret key")

// Claims используется для адаптации между доменной сессией и библиотекой JWT.
// Идентификатор сессии хранится в зарегистрированном клейме jti.
type Claims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// ServiceJWT реализует интерфейс TokenService.
type ServiceJWT struct {
	secretKey []byte
}

// NewJWT создает новый экземпляр сервиса токенов сессий.
func NewJWT(secretKey string) svc.TokenService {
	return &ServiceJWT{secretKey: []byte(secretKey)}
}

// sessionToClaims преобразует доменную сессию в claims библиотеки JWT.
func sessionToClaims(session *entities.Session) Claims {
	return Claims{
		UserID: session.UserID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        session.ID.String(),
			Subject:   session.UserID.String(),
			ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
		},
	}
}

// claimsToSession восстанавливает доменную сессию из claims библиотеки JWT.
func claimsToSession(claims *Claims) (*entities.Session, error) {
	sessionID, err := uuid.Parse(claims.ID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: bad session id", errCtxParsingToken, entities.ErrInvalidSessionToken)
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: bad user id", errCtxParsingToken, entities.ErrInvalidSessionToken)
	}

	session := &entities.Session{ID: sessionID, UserID: userID}
	if claims.ExpiresAt != nil {
		session.ExpiresAt = claims.ExpiresAt.Time
	}

	return session, nil
}

// IssueSessionToken подписывает JWT токен для сессии пользователя.
func (s *ServiceJWT) IssueSessionToken(ctx context.Context, session *entities.Session) (string, error) {
	log := logger.Log(ctx).With(
		zap.String("method", methodIssueSessionToken),
		zap.String("sessionID", session.ID.String()),
	)
	log.Debug(ctx, msgIssuingToken)

	if len(s.secretKey) == 0 {
		log.Error(ctx, "empty secret key provided")
		return "", fmt.Errorf("%s: %w", errCtxIssuingToken, ErrEmptySecretKey)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, sessionToClaims(session))

	tokenString, err := token.SignedString(s.secretKey)
	if err != nil {
		log.Error(ctx, errSigningToken, zap.Error(err))
		return "", fmt.Errorf("%s: %w", errCtxIssuingToken, err)
	}

	log.Debug(ctx, msgTokenIssued, zap.Time("expiresAt", session.ExpiresAt))
	return tokenString, nil
}

// ParseSessionToken проверяет подпись и срок действия токена и восстанавливает сессию.
func (s *ServiceJWT) ParseSessionToken(ctx context.Context, tokenString string) (*entities.Session, error) {
	log := logger.Log(ctx).With(zap.String("method", methodParseSessionToken))
	log.Debug(ctx, msgParsingToken)

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAlgorithm, token.Header["alg"])
		}
		return s.secretKey, nil
	})
	if err != nil {
		if strings.Contains(err.Error(), "token is expired") {
			log.Debug(ctx, msgTokenExpired)
			return nil, fmt.Errorf("%s: %w", errCtxParsingToken, entities.ErrSessionExpired)
		}
		log.Error(ctx, errParsingToken, zap.Error(err))
		return nil, fmt.Errorf("%s: %w: %w", errCtxParsingToken, entities.ErrInvalidSessionToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		log.Debug(ctx, msgInvalidToken)
		return nil, fmt.Errorf("%s: %w", errCtxParsingToken, entities.ErrInvalidSessionToken)
	}

	session, err := claimsToSession(claims)
	if err != nil {
		log.Debug(ctx, msgInvalidToken)
		return nil, err
	}
	session.Token = tokenString

	log.Debug(ctx, msgTokenParsed, zap.String("sessionID", session.ID.String()))
	return session, nil
}
