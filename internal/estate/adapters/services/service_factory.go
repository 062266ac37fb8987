// Package services предоставляет фабрику для создания и доступа к сервисам
// работы с пользователями, таким как сервисы паролей и токенов сессий.
package services

import (
	svc "realtydesk/internal/estate/ports/services"
)

// ServiceFactory создает все необходимые сервисы для работы с пользователями.
type ServiceFactory struct {
	passwordService svc.PasswordService
	tokenService    svc.TokenService
}

// NewServiceFactory создает новую фабрику сервисов с настройками по умолчанию.
func NewServiceFactory(jwtSecretKey string, bcryptCost int) *ServiceFactory {
	return &ServiceFactory{
		passwordService: NewBcrypt(bcryptCost),
		tokenService:    NewJWT(jwtSecretKey),
	}
}

// PasswordService возвращает сервис для работы с паролями.
func (f *ServiceFactory) PasswordService() svc.PasswordService {
	return f.passwordService
}

// TokenService возвращает сервис для работы с токенами.
func (f *ServiceFactory) TokenService() svc.TokenService {
	return f.tokenService
}
