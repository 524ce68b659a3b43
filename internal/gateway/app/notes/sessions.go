package notes

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"notegrid/internal/gateway/ports/store"
)

// Session связывает вошедшего пользователя с его контроллером и сессией редактирования.
type Session struct {
	ID         string
	UserID     string
	Controller *Controller
	Edit       *EditSession

	lastUsed atomic.Int64
}

func (s *Session) touch(now time.Time) {
	s.lastUsed.Store(now.UnixNano())
}

// LastUsed возвращает момент последнего обращения к сессии.
func (s *Session) LastUsed() time.Time {
	return time.Unix(0, s.lastUsed.Load())
}

// Snapshot - состояние, отдаваемое слою представления.
type Snapshot struct {
	State
	Edit EditSnapshot `json:"edit"`
}

// Snapshot собирает снимок коллекции и сессии редактирования.
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		State: s.Controller.Snapshot(),
		Edit:  s.Edit.Snapshot(),
	}
}

// Registry хранит сессии в памяти процесса. Долговременного кэша нет:
// сессия начинается с пустой коллекцией и заполняется LoadAll.
type Registry struct {
	store   store.DocumentStore
	timeout time.Duration
	idleTTL time.Duration

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewRegistry создает реестр сессий поверх хранилища документов.
func NewRegistry(documents store.DocumentStore, operationTimeout time.Duration) *Registry {
	return &Registry{
		store:    documents,
		timeout:  operationTimeout,
		sessions: make(map[string]*Session),
	}
}

// WithIdleTTL задает время простоя, после которого Sweep удаляет сессию.
// Ноль отключает вытеснение.
func (r *Registry) WithIdleTTL(ttl time.Duration) *Registry {
	r.idleTTL = ttl
	return r
}

// Open создает новую сессию, заменяя существующую с тем же идентификатором.
func (r *Registry) Open(sessionID, userID string) *Session {
	session := r.newSession(sessionID, userID)

	r.mu.Lock()
	defer r.mu.Unlock()

	r.sessions[sessionID] = session
	return session
}

// Ensure возвращает существующую сессию пользователя или открывает новую.
func (r *Registry) Ensure(sessionID, userID string) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	if session, ok := r.sessions[sessionID]; ok && session.UserID == userID {
		session.touch(time.Now())
		return session
	}

	session := r.newSession(sessionID, userID)
	r.sessions[sessionID] = session
	return session
}

// Get возвращает сессию по идентификатору.
func (r *Registry) Get(sessionID string) (*Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	session, ok := r.sessions[sessionID]
	if ok {
		session.touch(time.Now())
	}
	return session, ok
}

// Close удаляет сессию вместе с ее состоянием.
func (r *Registry) Close(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sessions, sessionID)
}

// Len возвращает число открытых сессий.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.sessions)
}

// Sweep удаляет сессии, простаивающие дольше idleTTL относительно now,
// и возвращает число удаленных.
func (r *Registry) Sweep(now time.Time) int {
	if r.idleTTL <= 0 {
		return 0
	}
	deadline := now.Add(-r.idleTTL)

	r.mu.Lock()
	defer r.mu.Unlock()

	evicted := 0
	for id, session := range r.sessions {
		if session.LastUsed().Before(deadline) {
			delete(r.sessions, id)
			evicted++
		}
	}
	return evicted
}

// Run периодически вызывает Sweep, пока не отменен ctx.
func (r *Registry) Run(ctx context.Context, interval time.Duration) {
	if r.idleTTL <= 0 || interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			r.Sweep(now)
		}
	}
}

func (r *Registry) newSession(sessionID, userID string) *Session {
	repo := NewRepository(r.store, CollectionFor(userID))
	session := &Session{
		ID:         sessionID,
		UserID:     userID,
		Controller: NewController(repo, r.timeout),
		Edit:       NewEditSession(),
	}
	session.touch(time.Now())
	return session
}
