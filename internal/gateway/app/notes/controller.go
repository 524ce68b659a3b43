package notes

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"notegrid/internal/gateway/domain/entities"
	"notegrid/pkg/logger"
)

// Константы для логирования.
const (
	LogOperationRejected = "operation rejected: same kind in flight"
	LogOperationFailed   = "note operation failed"
	LogRemoveAbsent      = "note already absent in store"
)

// NoteRepository - операции хранилища, которыми пользуется контроллер.
type NoteRepository interface {
	FetchAll(ctx context.Context) ([]entities.Note, error)
	Create(ctx context.Context, content string) (entities.Note, error)
	Update(ctx context.Context, id, content string) error
	Remove(ctx context.Context, id string) error
}

// Controller владеет коллекцией заметок сессии.
// Коллекция меняется только после подтверждения хранилища.
// Мьютекс удерживается только на синхронных переходах, не во время вызова хранилища.
type Controller struct {
	repo    NoteRepository
	timeout time.Duration

	mu    sync.Mutex
	notes []entities.Note
	ops   map[OpKind]OpState
}

// NewController создает контроллер с пустой коллекцией.
// timeout ограничивает каждый вызов хранилища; ноль отключает ограничение.
func NewController(repo NoteRepository, timeout time.Duration) *Controller {
	ops := make(map[OpKind]OpState, len(OpKinds))
	for _, kind := range OpKinds {
		ops[kind] = idle()
	}

	return &Controller{
		repo:    repo,
		timeout: timeout,
		notes:   []entities.Note{},
		ops:     ops,
	}
}

// LoadAll полностью заменяет коллекцию содержимым хранилища.
func (c *Controller) LoadAll(ctx context.Context) error {
	if err := c.begin(ctx, OpFetch); err != nil {
		return err
	}

	opCtx, cancel := c.operationContext(ctx)
	defer cancel()

	fetched, err := c.repo.FetchAll(opCtx)
	err = normalize(opCtx, err)

	return c.finish(ctx, OpFetch, err, func() {
		c.notes = dedupe(fetched)
	})
}

// Add создает заметку и добавляет ее в конец коллекции.
// Пустое после обрезки пробелов содержимое отклоняется без обращения к хранилищу.
func (c *Controller) Add(ctx context.Context, content string) (entities.Note, error) {
	if err := c.begin(ctx, OpAdd); err != nil {
		return entities.Note{}, err
	}

	if strings.TrimSpace(content) == "" {
		return entities.Note{}, c.finish(ctx, OpAdd, ErrValidation, nil)
	}

	opCtx, cancel := c.operationContext(ctx)
	defer cancel()

	note, err := c.repo.Create(opCtx, content)
	err = normalize(opCtx, err)

	if err := c.finish(ctx, OpAdd, err, func() {
		// полная перезагрузка могла уже принести этот документ
		if c.indexOf(note.ID) < 0 {
			c.notes = append(c.notes, note)
		}
	}); err != nil {
		return entities.Note{}, err
	}
	return note, nil
}

// Save перезаписывает содержимое заметки, присутствующей в коллекции.
// Позиция заметки и остальные заметки не меняются.
func (c *Controller) Save(ctx context.Context, id, content string) error {
	if err := c.begin(ctx, OpSave); err != nil {
		return err
	}

	if _, ok := c.Note(id); !ok {
		return c.finish(ctx, OpSave, ErrNotFound, nil)
	}

	opCtx, cancel := c.operationContext(ctx)
	defer cancel()

	err := normalize(opCtx, c.repo.Update(opCtx, id, content))

	return c.finish(ctx, OpSave, err, func() {
		if i := c.indexOf(id); i >= 0 {
			c.notes[i].Content = content
		}
	})
}

// Remove удаляет заметку. Отсутствие документа в хранилище считается успехом.
func (c *Controller) Remove(ctx context.Context, id string) error {
	if err := c.begin(ctx, OpDelete); err != nil {
		return err
	}

	opCtx, cancel := c.operationContext(ctx)
	defer cancel()

	err := normalize(opCtx, c.repo.Remove(opCtx, id))
	if errors.Is(err, ErrNotFound) {
		logger.Log(ctx).Debug(ctx, LogRemoveAbsent, zap.String("noteID", id))
		err = nil
	}

	return c.finish(ctx, OpDelete, err, func() {
		c.notes = slices.DeleteFunc(c.notes, func(n entities.Note) bool { return n.ID == id })
	})
}

// Note возвращает заметку по идентификатору.
func (c *Controller) Note(id string) (entities.Note, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if i := c.indexOf(id); i >= 0 {
		return c.notes[i], true
	}
	return entities.Note{}, false
}

// Snapshot возвращает копию состояния.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	ops := make(map[OpKind]OpState, len(c.ops))
	for kind, state := range c.ops {
		if state.LastError != nil {
			copied := *state.LastError
			state.LastError = &copied
		}
		ops[kind] = state
	}

	return State{
		Notes:      slices.Clone(c.notes),
		Operations: ops,
	}
}

// begin переводит класс операций в InFlight или отклоняет повторный вызов.
// Отклонение не трогает выполняющуюся операцию и ее LastError.
func (c *Controller) begin(ctx context.Context, kind OpKind) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.ops[kind].Pending() {
		logger.Log(ctx).Info(ctx, LogOperationRejected, zap.String("kind", string(kind)))
		return ErrOperationInFlight
	}

	c.ops[kind] = inFlight()
	return nil
}

// finish завершает операцию: apply выполняется только при успехе.
func (c *Controller) finish(ctx context.Context, kind OpKind, err error, apply func()) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		c.ops[kind] = failed(err)
		logger.Log(ctx).Warn(ctx, LogOperationFailed,
			zap.String("kind", string(kind)),
			zap.String("error_kind", string(KindOf(err))),
			zap.Error(err))
		return err
	}

	if apply != nil {
		apply()
	}
	c.ops[kind] = idle()
	return nil
}

func (c *Controller) operationContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.timeout)
}

// indexOf вызывается под мьютексом.
func (c *Controller) indexOf(id string) int {
	return slices.IndexFunc(c.notes, func(n entities.Note) bool { return n.ID == id })
}

// normalize превращает истечение таймаута операции в ErrTimeout,
// даже если репозиторий вернул другую ошибку.
func normalize(opCtx context.Context, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(opCtx.Err(), context.DeadlineExceeded) && !errors.Is(err, ErrTimeout) {
		return errors.Join(ErrTimeout, err)
	}
	return err
}

func dedupe(fetched []entities.Note) []entities.Note {
	result := make([]entities.Note, 0, len(fetched))
	seen := make(map[string]struct{}, len(fetched))
	for _, note := range fetched {
		if _, ok := seen[note.ID]; ok {
			continue
		}
		seen[note.ID] = struct{}{}
		result = append(result, note)
	}
	return result
}
