package session

import (
	"context"
	"maps"
	"sync"
	"time"
)

// MemoryStore implements Store interface using in-memory storage
type MemoryStore struct {
	mu        sync.RWMutex
	sessions  map[string]*Session
	ticker    *time.Ticker
	done      chan struct{}
	closeOnce sync.Once
}

// NewMemoryStore creates a new in-memory session store. A positive
// cleanupInterval starts a background sweep of expired sessions; stop it
// with Close.
func NewMemoryStore(cleanupInterval time.Duration) *MemoryStore {
	store := &MemoryStore{
		sessions: make(map[string]*Session),
		done:     make(chan struct{}),
	}

	if cleanupInterval > 0 {
		store.ticker = time.NewTicker(cleanupInterval)
		go store.cleanupLoop()
	}

	return store
}

// Create stores a new session
func (m *MemoryStore) Create(ctx context.Context, session *Session) error {
	if session == nil || session.Token == "" {
		return ErrInvalidSession
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.sessions[session.Token] = copySession(session)
	return nil
}

// Get retrieves a session by token
func (m *MemoryStore) Get(ctx context.Context, token string) (*Session, error) {
	m.mu.RLock()
	session, exists := m.sessions[token]
	m.mu.RUnlock()

	if !exists {
		return nil, ErrSessionNotFound
	}

	if session.IsExpired() {
		m.mu.Lock()
		delete(m.sessions, token)
		m.mu.Unlock()
		return nil, ErrSessionExpired
	}

	return copySession(session), nil
}

// Update updates an existing session
func (m *MemoryStore) Update(ctx context.Context, session *Session) error {
	if session == nil || session.Token == "" {
		return ErrInvalidSession
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.sessions[session.Token]; !exists {
		return ErrSessionNotFound
	}

	m.sessions[session.Token] = copySession(session)
	return nil
}

// Delete removes a session by token
func (m *MemoryStore) Delete(ctx context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sessions, token)
	return nil
}

// DeleteExpired removes all expired sessions
func (m *MemoryStore) DeleteExpired(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	for token, session := range m.sessions {
		if now.After(session.ExpiresAt) {
			delete(m.sessions, token)
		}
	}

	return nil
}

// Close stops the cleanup goroutine. Safe to call more than once.
func (m *MemoryStore) Close() error {
	m.closeOnce.Do(func() {
		if m.ticker != nil {
			m.ticker.Stop()
			close(m.done)
		}
	})
	return nil
}

// Len returns the number of stored sessions.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// cleanupLoop runs periodic cleanup of expired sessions
func (m *MemoryStore) cleanupLoop() {
	for {
		select {
		case <-m.ticker.C:
			_ = m.DeleteExpired(context.Background())
		case <-m.done:
			return
		}
	}
}

// copySession clones a session so callers cannot mutate stored state through
// the returned pointer.
func copySession(s *Session) *Session {
	c := *s
	if s.Data != nil {
		c.Data = make(map[string]any, len(s.Data))
		maps.Copy(c.Data, s.Data)
	}
	return &c
}
