package httpapi

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/asmit/lexiq/internal/quiz"
)

// ErrSessionNotFound indicates no stored session for the given ID.
var ErrSessionNotFound = errors.New("session not found")

// SessionStore persists quiz sessions between requests. The web layer
// owns session storage; the quiz engine only sees the value object.
type SessionStore interface {
	Get(ctx context.Context, id string) (*quiz.Session, error)
	Put(ctx context.Context, session *quiz.Session) error
	Delete(ctx context.Context, id string) error
}

// memoryEntry wraps a session with its expiry time.
type memoryEntry struct {
	session   *quiz.Session
	expiresAt time.Time
}

// MemorySessionStore is the default in-process store. Sessions expire
// after a TTL so abandoned quizzes don't accumulate.
type MemorySessionStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
}

// NewMemorySessionStore creates a MemorySessionStore with the given TTL.
func NewMemorySessionStore(ttl time.Duration) *MemorySessionStore {
	return &MemorySessionStore{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
	}
}

func (s *MemorySessionStore) Get(_ context.Context, id string) (*quiz.Session, error) {
	s.mu.RLock()
	entry, ok := s.entries[id]
	s.mu.RUnlock()

	if !ok || time.Now().After(entry.expiresAt) {
		return nil, ErrSessionNotFound
	}
	return entry.session, nil
}

func (s *MemorySessionStore) Put(_ context.Context, session *quiz.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[session.ID] = memoryEntry{
		session:   session,
		expiresAt: time.Now().Add(s.ttl),
	}
	s.sweepLocked()
	return nil
}

func (s *MemorySessionStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, id)
	return nil
}

// sweepLocked drops expired entries. Called opportunistically on writes;
// the caller must hold the write lock.
func (s *MemorySessionStore) sweepLocked() {
	now := time.Now()
	for id, entry := range s.entries {
		if now.After(entry.expiresAt) {
			delete(s.entries, id)
		}
	}
}
