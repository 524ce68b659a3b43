// Package auth содержит HTTP обработчики регистрации, входа и выхода.
package auth

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"notegrid/internal/gateway/app/dto"
	"notegrid/internal/gateway/app/http/middleware"
	"notegrid/internal/gateway/app/identity"
	"notegrid/internal/gateway/domain/entities"
	"notegrid/internal/gateway/ports/services"
	"notegrid/pkg/logger"
)

// Константы для логирования.
const (
	LogHandlerSignUp  = "auth handler: sign up"
	LogHandlerSignIn  = "auth handler: sign in"
	LogHandlerRefresh = "auth handler: refresh" // #nosec G101 - not a credential
	LogHandlerSignOut = "auth handler: sign out"

	ErrorInvalidRequest       = "invalid request"
	ErrorFailedToServeRequest = "failed to serve request"
	ErrorInternal             = "internal server error"
)

// Handler содержит HTTP обработчики для авторизации.
type Handler struct {
	identity services.IdentityService
	sessions services.NoteSessions
}

// NewHandler создает новый экземпляр обработчика авторизации.
func NewHandler(identityService services.IdentityService, sessions services.NoteSessions) *Handler {
	return &Handler{
		identity: identityService,
		sessions: sessions,
	}
}

// SignUp регистрирует пользователя и открывает сессию заметок.
func (h *Handler) SignUp(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerSignUp)

	var req dto.SignUpRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		log.Debug(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return writeError(ctx, http.StatusBadRequest, ErrorInvalidRequest)
	}

	credential, err := h.identity.SignUp(requestCtx, req.Email, req.Password, req.PasswordConfirmation)
	if err != nil {
		return h.fail(ctx, err)
	}

	return h.open(ctx, http.StatusCreated, credential)
}

// SignIn проверяет учетные данные и открывает сессию заметок.
func (h *Handler) SignIn(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerSignIn)

	var req dto.SignInRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		log.Debug(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return writeError(ctx, http.StatusBadRequest, ErrorInvalidRequest)
	}

	credential, err := h.identity.SignIn(requestCtx, req.Email, req.Password)
	if err != nil {
		return h.fail(ctx, err)
	}

	return h.open(ctx, http.StatusOK, credential)
}

// Refresh обменивает refresh токен на новую пару токенов той же сессии.
func (h *Handler) Refresh(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerRefresh)

	var req dto.RefreshRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		log.Debug(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return writeError(ctx, http.StatusBadRequest, ErrorInvalidRequest)
	}

	credential, err := h.identity.Refresh(requestCtx, req.RefreshToken)
	if err != nil {
		return h.fail(ctx, err)
	}

	h.sessions.Ensure(credential.SessionID, credential.UserID)
	return ctx.Status(http.StatusOK).JSON(credential)
}

// SignOut отзывает сессию и освобождает ее состояние заметок.
func (h *Handler) SignOut(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerSignOut)

	claims, ok := middleware.ClaimsFrom(ctx)
	if !ok {
		return writeError(ctx, http.StatusUnauthorized, identity.ErrUnauthorized.Error())
	}

	var req dto.SignOutRequest
	if len(ctx.Body()) > 0 {
		if err := ctx.Bind().JSON(&req); err != nil {
			log.Debug(requestCtx, ErrorInvalidRequest, zap.Error(err))
			return writeError(ctx, http.StatusBadRequest, ErrorInvalidRequest)
		}
	}

	if err := h.identity.SignOut(requestCtx, claims.SessionID, req.RefreshToken); err != nil {
		return h.fail(ctx, err)
	}

	h.sessions.Close(claims.SessionID)
	return ctx.SendStatus(http.StatusNoContent)
}

func (h *Handler) open(ctx fiber.Ctx, status int, credential *entities.Credential) error {
	h.sessions.Open(credential.SessionID, credential.UserID)
	return ctx.Status(status).JSON(credential)
}

func (h *Handler) fail(ctx fiber.Ctx, err error) error {
	status, message := statusOf(err)
	if status == http.StatusInternalServerError {
		requestCtx := middleware.RequestContext(ctx)
		logger.Log(requestCtx).Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
	}
	return writeError(ctx, status, message)
}

func statusOf(err error) (int, string) {
	switch {
	case errors.Is(err, identity.ErrInvalidEmail):
		return http.StatusUnprocessableEntity, identity.ErrInvalidEmail.Error()
	case errors.Is(err, identity.ErrWeakPassword):
		return http.StatusUnprocessableEntity, identity.ErrWeakPassword.Error()
	case errors.Is(err, identity.ErrPasswordTooLong):
		return http.StatusUnprocessableEntity, identity.ErrPasswordTooLong.Error()
	case errors.Is(err, identity.ErrPasswordMismatch):
		return http.StatusUnprocessableEntity, identity.ErrPasswordMismatch.Error()
	case errors.Is(err, identity.ErrInvalidInput):
		return http.StatusUnprocessableEntity, identity.ErrInvalidInput.Error()
	case errors.Is(err, identity.ErrEmailTaken):
		return http.StatusConflict, identity.ErrEmailTaken.Error()
	case errors.Is(err, identity.ErrInvalidCredentials):
		return http.StatusUnauthorized, identity.ErrInvalidCredentials.Error()
	case errors.Is(err, identity.ErrInvalidRefreshToken):
		return http.StatusUnauthorized, identity.ErrInvalidRefreshToken.Error()
	case errors.Is(err, identity.ErrUnauthorized):
		return http.StatusUnauthorized, identity.ErrUnauthorized.Error()
	default:
		return http.StatusInternalServerError, ErrorInternal
	}
}

func writeError(ctx fiber.Ctx, status int, message string) error {
	return ctx.Status(status).JSON(dto.ErrorResponse{Error: message})
}
