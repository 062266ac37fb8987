// Package api определяет порты прикладных сценариев: команды и запросы
// сервиса учёта недвижимости в виде простых структур данных.
package api

import (
	"context"

	"github.com/google/uuid"

	"realtydesk/internal/estate/domain/entities"
)

// CreateUser описывает команду регистрации пользователя.
// Требуется хотя бы один контакт: email или телефон.
type CreateUser struct {
	Name     string
	Login    string
	Password string
	Email    *string
	Phone    *string
}

// UpdateUserName описывает команду смены имени пользователя.
type UpdateUserName struct {
	UserID uuid.UUID
	Name   string
}

// UpdateUserEmail описывает команду смены адреса почты пользователя.
type UpdateUserEmail struct {
	UserID uuid.UUID
	Email  string
}

// UpdateUserPhone описывает команду смены телефона пользователя.
type UpdateUserPhone struct {
	UserID uuid.UUID
	Phone  string
}

// UpdateUserPassword описывает команду смены пароля пользователя.
// Старый пароль проверяется до принятия нового.
type UpdateUserPassword struct {
	UserID      uuid.UUID
	OldPassword string
	NewPassword string
}

// UserUseCase определяет порт команд над пользователями.
type UserUseCase interface {
	Create(ctx context.Context, cmd CreateUser) (*entities.User, error)

	UpdateName(ctx context.Context, cmd UpdateUserName) (*entities.User, error)

	UpdateEmail(ctx context.Context, cmd UpdateUserEmail) (*entities.User, error)

	UpdatePhone(ctx context.Context, cmd UpdateUserPhone) (*entities.User, error)

	UpdatePassword(ctx context.Context, cmd UpdateUserPassword) (*entities.User, error)
}
