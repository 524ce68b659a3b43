package services

import (
	"context"

	"notegrid/internal/gateway/domain/entities"
)

// IdentityService - провайдер идентичности, которым пользуется слой представления.
type IdentityService interface {
	SignUp(ctx context.Context, email, password, confirmation string) (*entities.Credential, error)
	SignIn(ctx context.Context, email, password string) (*entities.Credential, error)
	Refresh(ctx context.Context, refreshToken string) (*entities.Credential, error)
	SignOut(ctx context.Context, sessionID, refreshToken string) error
	ValidateToken(ctx context.Context, token string) (*entities.Claims, error)
}
