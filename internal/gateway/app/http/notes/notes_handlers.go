// Package notes содержит HTTP обработчики списка заметок и сессии редактирования.
package notes

import (
	"net/http"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"notegrid/internal/gateway/app/dto"
	"notegrid/internal/gateway/app/http/middleware"
	noteapp "notegrid/internal/gateway/app/notes"
	"notegrid/internal/gateway/ports/services"
	"notegrid/pkg/logger"
)

// Константы для логирования.
const (
	LogHandlerList        = "notes handler: list"
	LogHandlerLoad        = "notes handler: load"
	LogHandlerCreate      = "notes handler: create"
	LogHandlerUpdate      = "notes handler: update"
	LogHandlerDelete      = "notes handler: delete"
	LogHandlerBeginEdit   = "notes handler: begin edit"
	LogHandlerUpdateDraft = "notes handler: update draft"
	LogHandlerCommitEdit  = "notes handler: commit edit"
	LogHandlerCancelEdit  = "notes handler: cancel edit"

	ErrorInvalidRequest  = "invalid request"
	ErrorOperationFailed = "note operation failed"
)

// ParamNoteID - имя параметра маршрута с идентификатором заметки.
const ParamNoteID = "note_id"

// Handler содержит HTTP обработчики заметок.
type Handler struct {
	sessions services.NoteSessions
}

// NewHandler создает обработчик заметок.
func NewHandler(sessions services.NoteSessions) *Handler {
	return &Handler{sessions: sessions}
}

// List возвращает текущий снимок без обращения к хранилищу.
func (h *Handler) List(ctx fiber.Ctx) error {
	session, ok := h.session(ctx, LogHandlerList)
	if !ok {
		return unauthorized(ctx)
	}
	return respond(ctx, session, http.StatusOK, nil)
}

// Load заменяет коллекцию содержимым хранилища.
func (h *Handler) Load(ctx fiber.Ctx) error {
	session, ok := h.session(ctx, LogHandlerLoad)
	if !ok {
		return unauthorized(ctx)
	}

	opErr := session.Controller.LoadAll(middleware.RequestContext(ctx))
	return respond(ctx, session, http.StatusOK, opErr)
}

// Create добавляет заметку.
func (h *Handler) Create(ctx fiber.Ctx) error {
	session, ok := h.session(ctx, LogHandlerCreate)
	if !ok {
		return unauthorized(ctx)
	}

	var req dto.ContentRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		return badRequest(ctx, err)
	}

	_, opErr := session.Controller.Add(middleware.RequestContext(ctx), req.Content)
	return respond(ctx, session, http.StatusCreated, opErr)
}

// Update сохраняет новое содержимое заметки.
func (h *Handler) Update(ctx fiber.Ctx) error {
	session, ok := h.session(ctx, LogHandlerUpdate)
	if !ok {
		return unauthorized(ctx)
	}

	var req dto.ContentRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		return badRequest(ctx, err)
	}

	opErr := session.Controller.Save(middleware.RequestContext(ctx), ctx.Params(ParamNoteID), req.Content)
	return respond(ctx, session, http.StatusOK, opErr)
}

// Delete удаляет заметку.
func (h *Handler) Delete(ctx fiber.Ctx) error {
	session, ok := h.session(ctx, LogHandlerDelete)
	if !ok {
		return unauthorized(ctx)
	}

	opErr := session.Controller.Remove(middleware.RequestContext(ctx), ctx.Params(ParamNoteID))
	return respond(ctx, session, http.StatusOK, opErr)
}

// BeginEdit открывает сессию редактирования для заметки из коллекции.
func (h *Handler) BeginEdit(ctx fiber.Ctx) error {
	session, ok := h.session(ctx, LogHandlerBeginEdit)
	if !ok {
		return unauthorized(ctx)
	}

	note, ok := session.Controller.Note(ctx.Params(ParamNoteID))
	if !ok {
		return respond(ctx, session, http.StatusOK, noteapp.ErrNotFound)
	}

	session.Edit.Begin(note)
	return respond(ctx, session, http.StatusOK, nil)
}

// UpdateDraft меняет черновик открытой сессии редактирования.
func (h *Handler) UpdateDraft(ctx fiber.Ctx) error {
	session, ok := h.session(ctx, LogHandlerUpdateDraft)
	if !ok {
		return unauthorized(ctx)
	}

	var req dto.DraftRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		return badRequest(ctx, err)
	}

	return respond(ctx, session, http.StatusOK, session.Edit.UpdateDraft(req.Draft))
}

// CommitEdit сохраняет черновик через контроллер.
func (h *Handler) CommitEdit(ctx fiber.Ctx) error {
	session, ok := h.session(ctx, LogHandlerCommitEdit)
	if !ok {
		return unauthorized(ctx)
	}

	opErr := session.Edit.Commit(middleware.RequestContext(ctx), session.Controller)
	return respond(ctx, session, http.StatusOK, opErr)
}

// CancelEdit закрывает сессию редактирования.
func (h *Handler) CancelEdit(ctx fiber.Ctx) error {
	session, ok := h.session(ctx, LogHandlerCancelEdit)
	if !ok {
		return unauthorized(ctx)
	}

	session.Edit.Cancel()
	return respond(ctx, session, http.StatusOK, nil)
}

// session возвращает сессию заметок вошедшего пользователя.
func (h *Handler) session(ctx fiber.Ctx, operation string) (*noteapp.Session, bool) {
	requestCtx := middleware.RequestContext(ctx)
	logger.Log(requestCtx).Debug(requestCtx, operation)

	claims, ok := middleware.ClaimsFrom(ctx)
	if !ok {
		return nil, false
	}
	return h.sessions.Ensure(claims.SessionID, claims.UserID), true
}

func unauthorized(ctx fiber.Ctx) error {
	return ctx.Status(http.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "unauthorized"})
}

func respond(ctx fiber.Ctx, session *noteapp.Session, status int, opErr error) error {
	response := dto.NotesResponse{Snapshot: session.Snapshot()}

	if opErr != nil {
		kind := noteapp.KindOf(opErr)
		status = StatusOf(kind)
		response.Error = &noteapp.OperationError{Kind: kind, Message: opErr.Error()}

		requestCtx := middleware.RequestContext(ctx)
		log := logger.Log(requestCtx).With(zap.String("kind", string(kind)), zap.Error(opErr))
		if status >= http.StatusInternalServerError {
			log.Warn(requestCtx, ErrorOperationFailed)
		} else {
			log.Debug(requestCtx, ErrorOperationFailed)
		}
	}

	return ctx.Status(status).JSON(response)
}

// StatusOf сопоставляет вид ошибки операции с HTTP статусом.
func StatusOf(kind noteapp.ErrorKind) int {
	switch kind {
	case noteapp.KindValidation:
		return http.StatusUnprocessableEntity
	case noteapp.KindNotFound:
		return http.StatusNotFound
	case noteapp.KindBusy, noteapp.KindNoEditSession:
		return http.StatusConflict
	case noteapp.KindTimeout:
		return http.StatusGatewayTimeout
	case noteapp.KindMalformedDocument:
		return http.StatusBadGateway
	default:
		return http.StatusServiceUnavailable
	}
}

func badRequest(ctx fiber.Ctx, err error) error {
	requestCtx := middleware.RequestContext(ctx)
	logger.Log(requestCtx).Debug(requestCtx, ErrorInvalidRequest, zap.Error(err))
	return ctx.Status(http.StatusBadRequest).JSON(dto.ErrorResponse{Error: ErrorInvalidRequest})
}
