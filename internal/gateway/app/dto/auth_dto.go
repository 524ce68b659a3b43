// Package dto содержит объекты передачи данных для Gateway.
package dto

// SignUpRequest содержит данные для регистрации пользователя.
type SignUpRequest struct {
	Email                string `json:"email"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"passwordConfirmation"`
}

// SignInRequest содержит данные для входа пользователя.
type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RefreshRequest содержит refresh токен.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// SignOutRequest содержит refresh токен, который нужно погасить. Поле необязательно.
type SignOutRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// ErrorResponse - тело ответа с ошибкой вне операций над заметками.
type ErrorResponse struct {
	Error string `json:"error"`
}
