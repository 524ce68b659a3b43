package http_test

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sync"
	"time"

	"notegrid/internal/gateway/app/identity"
	"notegrid/internal/gateway/domain/entities"
	"notegrid/internal/gateway/ports/store"
)

// fakeIdentity выдает токены вида "token-<sid>" и принимает только их.
type fakeIdentity struct {
	mu        sync.Mutex
	seq       int
	users     map[string]string
	claims    map[string]*entities.Claims
	refresh   map[string]*entities.Claims
	signedOut []string
}

func newFakeIdentity() *fakeIdentity {
	return &fakeIdentity{
		users:   make(map[string]string),
		claims:  make(map[string]*entities.Claims),
		refresh: make(map[string]*entities.Claims),
	}
}

func (f *fakeIdentity) SignUp(_ context.Context, email, password, confirmation string) (*entities.Credential, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch {
	case len(password) < identity.MinPasswordLength:
		return nil, fmt.Errorf("validating: %w: %w", identity.ErrInvalidInput, identity.ErrWeakPassword)
	case password != confirmation:
		return nil, fmt.Errorf("validating: %w: %w", identity.ErrInvalidInput, identity.ErrPasswordMismatch)
	}
	if _, ok := f.users[email]; ok {
		return nil, identity.ErrEmailTaken
	}
	f.users[email] = password
	return f.issue(email), nil
}

func (f *fakeIdentity) SignIn(_ context.Context, email, password string) (*entities.Credential, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if stored, ok := f.users[email]; !ok || stored != password {
		return nil, identity.ErrInvalidCredentials
	}
	return f.issue(email), nil
}

func (f *fakeIdentity) Refresh(_ context.Context, refreshToken string) (*entities.Credential, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	claims, ok := f.refresh[refreshToken]
	if !ok {
		return nil, identity.ErrInvalidRefreshToken
	}
	delete(f.refresh, refreshToken)

	f.seq++
	access := fmt.Sprintf("token-%s-%d", claims.SessionID, f.seq)
	next := fmt.Sprintf("refresh-%s-%d", claims.SessionID, f.seq)
	f.claims[access] = claims
	f.refresh[next] = claims
	return &entities.Credential{
		UserID:       claims.UserID,
		SessionID:    claims.SessionID,
		AccessToken:  access,
		RefreshToken: next,
		ExpiresAt:    claims.ExpiresAt,
	}, nil
}

func (f *fakeIdentity) SignOut(_ context.Context, sessionID, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	maps.DeleteFunc(f.claims, func(_ string, c *entities.Claims) bool { return c.SessionID == sessionID })
	f.signedOut = append(f.signedOut, sessionID)
	return nil
}

func (f *fakeIdentity) ValidateToken(_ context.Context, token string) (*entities.Claims, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	claims, ok := f.claims[token]
	if !ok {
		return nil, identity.ErrUnauthorized
	}
	return claims, nil
}

func (f *fakeIdentity) issue(email string) *entities.Credential {
	f.seq++
	claims := &entities.Claims{
		UserID:    "user-" + email,
		SessionID: fmt.Sprintf("sid-%d", f.seq),
		ExpiresAt: time.Now().Add(time.Hour),
	}
	access := "token-" + claims.SessionID
	refresh := "refresh-" + claims.SessionID
	f.claims[access] = claims
	f.refresh[refresh] = claims

	return &entities.Credential{
		UserID:       claims.UserID,
		Email:        email,
		SessionID:    claims.SessionID,
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresAt:    claims.ExpiresAt,
	}
}

// documentStore - хранилище документов в памяти с внедряемой ошибкой.
type documentStore struct {
	mu          sync.Mutex
	seq         int
	collections map[string][]store.Document
	err         error
}

func newDocumentStore() *documentStore {
	return &documentStore{collections: make(map[string][]store.Document)}
}

func (s *documentStore) fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

func (s *documentStore) ListDocuments(_ context.Context, collection string) ([]store.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.err != nil {
		return nil, s.err
	}
	return slices.Clone(s.collections[collection]), nil
}

func (s *documentStore) CreateDocument(_ context.Context, collection string, fields map[string]any) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.err != nil {
		return "", s.err
	}
	s.seq++
	id := fmt.Sprintf("n%d", s.seq)
	s.collections[collection] = append(s.collections[collection], store.Document{ID: id, Fields: maps.Clone(fields)})
	return id, nil
}

func (s *documentStore) UpdateDocument(_ context.Context, collection, id string, fields map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.err != nil {
		return s.err
	}
	docs := s.collections[collection]
	i := slices.IndexFunc(docs, func(d store.Document) bool { return d.ID == id })
	if i < 0 {
		return store.ErrNotFound
	}
	docs[i].Fields = maps.Clone(docs[i].Fields)
	maps.Copy(docs[i].Fields, fields)
	return nil
}

func (s *documentStore) DeleteDocument(_ context.Context, collection, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.err != nil {
		return s.err
	}
	docs := s.collections[collection]
	i := slices.IndexFunc(docs, func(d store.Document) bool { return d.ID == id })
	if i < 0 {
		return store.ErrNotFound
	}
	s.collections[collection] = slices.Delete(docs, i, i+1)
	return nil
}
