package services

import (
	"notegrid/internal/gateway/config"
	svc "notegrid/internal/gateway/ports/services"
)

// ServiceFactory создает сервисы паролей и токенов из конфигурации.
type ServiceFactory struct {
	passwordService svc.PasswordService
	tokenService    svc.TokenService
}

// NewServiceFactory создает фабрику сервисов.
func NewServiceFactory(cfg *config.JWTConfig) *ServiceFactory {
	return &ServiceFactory{
		passwordService: NewBcrypt(cfg.BcryptCost),
		tokenService:    NewJWT(cfg.SecretKey, cfg.AccessTokenTTL, cfg.RefreshTokenTTL),
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
