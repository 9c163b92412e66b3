package httpapi

import "sync"

// sessionLocks serializes request handling per session ID. The quiz
// engine assumes at most one in-flight operation per session; this is
// where the web layer meets that obligation.
type sessionLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newSessionLocks() *sessionLocks {
	return &sessionLocks{locks: make(map[string]*sync.Mutex)}
}

// acquire locks the mutex for id, creating it on first use. The returned
// function releases it.
func (l *sessionLocks) acquire(id string) func() {
	l.mu.Lock()
	m, ok := l.locks[id]
	if !ok {
		m = &sync.Mutex{}
		l.locks[id] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}

// forget drops the mutex for a finished session.
func (l *sessionLocks) forget(id string) {
	l.mu.Lock()
	delete(l.locks, id)
	l.mu.Unlock()
}
