package notes

import (
	"context"
	"sync"

	"notegrid/internal/gateway/domain/entities"
)

// Saver сохраняет содержимое заметки. Реализуется *Controller.
type Saver interface {
	Save(ctx context.Context, id, content string) error
}

// EditSnapshot - состояние сессии редактирования.
type EditSnapshot struct {
	Active   bool   `json:"active"`
	TargetID string `json:"targetId,omitempty"`
	Draft    string `json:"draft,omitempty"`
}

// EditSession хранит черновик одной заметки отдельно от коллекции.
// Одновременно открыта не более чем одна сессия.
type EditSession struct {
	mu         sync.Mutex
	active     bool
	targetID   string
	draft      string
	generation uint64
}

// NewEditSession создает закрытую сессию редактирования.
func NewEditSession() *EditSession {
	return &EditSession{}
}

// Begin открывает сессию для заметки, заменяя предыдущую.
func (s *EditSession) Begin(note entities.Note) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.active = true
	s.targetID = note.ID
	s.draft = note.Content
	s.generation++
}

// UpdateDraft меняет черновик без побочных эффектов.
func (s *EditSession) UpdateDraft(text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.active {
		return ErrNoEditSession
	}
	s.draft = text
	return nil
}

// Commit передает черновик в saver. При успехе сессия закрывается,
// при ошибке остается открытой с тем же черновиком.
func (s *EditSession) Commit(ctx context.Context, saver Saver) error {
	s.mu.Lock()
	if !s.active {
		s.mu.Unlock()
		return ErrNoEditSession
	}
	targetID, draft, generation := s.targetID, s.draft, s.generation
	s.mu.Unlock()

	if err := saver.Save(ctx, targetID, draft); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// сессия, замененная или измененная во время сохранения, остается открытой
	if s.active && s.generation == generation && s.draft == draft {
		s.close()
	}
	return nil
}

// Cancel безусловно закрывает сессию и отбрасывает черновик.
func (s *EditSession) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.close()
}

// Snapshot возвращает текущее состояние.
func (s *EditSession) Snapshot() EditSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return EditSnapshot{Active: s.active, TargetID: s.targetID, Draft: s.draft}
}

func (s *EditSession) close() {
	s.active = false
	s.targetID = ""
	s.draft = ""
	s.generation++
}
