package entities

import (
	"time"

	"github.com/google/uuid"
)

// User - учетная запись в провайдере идентичности.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewUser создает пользователя с новым идентификатором.
func NewUser(email, passwordHash string) *User {
	now := time.Now().UTC()
	return &User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// Credential выдается при входе и регистрации.
type Credential struct {
	UserID       string    `json:"userId"`
	Email        string    `json:"email"`
	SessionID    string    `json:"sessionId"`
	AccessToken  string    `json:"accessToken"`
	RefreshToken string    `json:"refreshToken"`
	ExpiresAt    time.Time `json:"expiresAt"`
}

// Claims - проверенное содержимое access токена.
type Claims struct {
	UserID    string
	SessionID string
	ExpiresAt time.Time
}

// RefreshSession связывает refresh токен с сессией.
type RefreshSession struct {
	UserID    string
	Email     string
	SessionID string
}
