package session

import "context"

// Store defines the interface for session persistence. The upload engine
// never touches a Store - it mutates Session.Data in memory, and the caller
// decides when to persist through one of these.
type Store interface {
	// Create stores a new session
	Create(ctx context.Context, session *Session) error

	// Get retrieves a session by token
	Get(ctx context.Context, token string) (*Session, error)

	// Update updates an existing session
	Update(ctx context.Context, session *Session) error

	// Delete removes a session by token
	Delete(ctx context.Context, token string) error

	// DeleteExpired removes all expired sessions
	DeleteExpired(ctx context.Context) error
}
