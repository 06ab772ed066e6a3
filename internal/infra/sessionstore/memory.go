package sessionstore

import (
	"context"
	"sync"

	"newswave/internal/domain/entity"
	"newswave/internal/repository"
)

// Memory keeps the session for the lifetime of the process.
type Memory struct {
	mu      sync.RWMutex
	session entity.Session
}

var _ repository.SessionRepository = (*Memory)(nil)

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Save(_ context.Context, session entity.Session) error {
	if !session.Valid() {
		return &entity.ValidationError{Field: "session", Message: "refusing to save an incomplete session"}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session = session
	return nil
}

func (m *Memory) Load(_ context.Context) entity.Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.session
}

func (m *Memory) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session = entity.Session{}
	return nil
}
