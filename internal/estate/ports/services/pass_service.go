package services

import "context"

// PasswordService хеширует и проверяет пароли пользователей.
type PasswordService interface {
	HashPassword(ctx context.Context, password string) (string, error)

	VerifyPassword(ctx context.Context, password, hash string) (bool, error)
}
