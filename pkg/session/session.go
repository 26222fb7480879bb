package session

import (
	"time"

	"github.com/google/uuid"
)

// Session is a per-client mutable mapping with a lifetime. Arbitrary data
// lives in Data; the upload engine records file ownership there under its
// own key. Whoever holds the token holds the session - there is no further
// authorization state.
type Session struct {
	ID             uuid.UUID      `json:"id"`
	Token          string         `json:"token"`
	Data           map[string]any `json:"data,omitempty"`
	ExpiresAt      time.Time      `json:"expires_at"`
	LastActivityAt time.Time      `json:"last_activity_at"`
	CreatedAt      time.Time      `json:"created_at"`
}

// New creates a session identified by token that expires after ttl.
func New(token string, ttl time.Duration) *Session {
	now := time.Now()
	return &Session{
		ID:             uuid.New(),
		Token:          token,
		Data:           make(map[string]any),
		ExpiresAt:      now.Add(ttl),
		LastActivityAt: now,
		CreatedAt:      now,
	}
}

// IsExpired returns true if the session has expired.
func (s *Session) IsExpired() bool {
	return s != nil && time.Now().After(s.ExpiresAt)
}

// Get retrieves a value from session data.
func (s *Session) Get(key string) (any, bool) {
	if s == nil || s.Data == nil {
		return nil, false
	}
	val, ok := s.Data[key]
	return val, ok
}

// GetString retrieves a string value from session data.
func (s *Session) GetString(key string) (string, bool) {
	val, ok := s.Get(key)
	if !ok {
		return "", false
	}
	str, ok := val.(string)
	return str, ok
}

// Set stores a value in session data.
func (s *Session) Set(key string, value any) {
	if s == nil {
		return
	}
	if s.Data == nil {
		s.Data = make(map[string]any)
	}
	s.Data[key] = value
}

// Delete removes a value from session data.
func (s *Session) Delete(key string) {
	if s == nil || s.Data == nil {
		return
	}
	delete(s.Data, key)
}

// Clear removes all data from the session.
func (s *Session) Clear() {
	if s == nil {
		return
	}
	s.Data = make(map[string]any)
}

// Touch updates the last activity time.
func (s *Session) Touch() {
	if s == nil {
		return
	}
	s.LastActivityAt = time.Now()
}
