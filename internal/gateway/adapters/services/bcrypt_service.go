package services

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	svc "notegrid/internal/gateway/ports/services"
)

// MaxPasswordBytes - предел длины пароля, который принимает bcrypt.
const MaxPasswordBytes = 72

const (
	errMsgHashPassword    = "failed to hash password"
	errMsgCompareHash     = "failed to compare password with hash"
	errMsgPasswordTooLong = "password exceeds 72 bytes"
)

// ServiceBcrypt хэширует пароли учетных записей.
type ServiceBcrypt struct {
	cost int
}

// NewBcrypt создает сервис с указанной стоимостью. Стоимость вне допустимого
// диапазона заменяется bcrypt.DefaultCost.
func NewBcrypt(cost int) *ServiceBcrypt {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &ServiceBcrypt{cost: cost}
}

// Cost возвращает используемую стоимость.
func (s *ServiceBcrypt) Cost() int {
	return s.cost
}

// Hash хэширует пароль. Сложность пароля проверяет вызывающая сторона.
func (s *ServiceBcrypt) Hash(_ context.Context, password string) (string, error) {
	if len(password) > MaxPasswordBytes {
		return "", fmt.Errorf("%s: %w", errMsgPasswordTooLong, svc.ErrHashingFailed)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", fmt.Errorf("%s: %w: %w", errMsgHashPassword, svc.ErrHashingFailed, err)
	}
	return string(hashed), nil
}

// Verify сообщает, соответствует ли пароль хэшу. Несовпадение и слишком
// длинный пароль - не ошибка, а false.
func (s *ServiceBcrypt) Verify(_ context.Context, password, hash string) (bool, error) {
	if password == "" || hash == "" || len(password) > MaxPasswordBytes {
		return false, nil
	}

	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("%s: %w", errMsgCompareHash, err)
	}
}

var _ svc.PasswordService = (*ServiceBcrypt)(nil)
