package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultKeyPrefix = "session:"

// RedisStore implements Store interface on top of a Redis client. Sessions
// are serialized as JSON under "<prefix><token>" with a TTL matching the
// session expiry, so expired sessions vanish without a sweep.
//
// Note that JSON round-tripping turns nested maps in Session.Data into
// map[string]any; consumers of the data must accept that shape.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
}

// RedisStoreOption configures a RedisStore.
type RedisStoreOption func(*RedisStore)

// WithKeyPrefix overrides the default "session:" key prefix.
func WithKeyPrefix(prefix string) RedisStoreOption {
	return func(s *RedisStore) {
		if prefix != "" {
			s.prefix = prefix
		}
	}
}

// NewRedisStore creates a Redis-backed session store.
func NewRedisStore(client redis.UniversalClient, opts ...RedisStoreOption) *RedisStore {
	store := &RedisStore{
		client: client,
		prefix: defaultKeyPrefix,
	}
	for _, opt := range opts {
		opt(store)
	}
	return store
}

// Create stores a new session
func (s *RedisStore) Create(ctx context.Context, session *Session) error {
	return s.write(ctx, session)
}

// Get retrieves a session by token
func (s *RedisStore) Get(ctx context.Context, token string) (*Session, error) {
	raw, err := s.client.Get(ctx, s.prefix+token).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionNotFound
		}
		return nil, errors.Join(ErrStoreFailure, err)
	}

	var session Session
	if err := json.Unmarshal(raw, &session); err != nil {
		return nil, errors.Join(ErrStoreFailure, err)
	}

	if session.IsExpired() {
		_ = s.client.Del(ctx, s.prefix+token).Err()
		return nil, ErrSessionExpired
	}

	return &session, nil
}

// Update updates an existing session
func (s *RedisStore) Update(ctx context.Context, session *Session) error {
	if session == nil || session.Token == "" {
		return ErrInvalidSession
	}

	exists, err := s.client.Exists(ctx, s.prefix+session.Token).Result()
	if err != nil {
		return errors.Join(ErrStoreFailure, err)
	}
	if exists == 0 {
		return ErrSessionNotFound
	}

	return s.write(ctx, session)
}

// Delete removes a session by token
func (s *RedisStore) Delete(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, s.prefix+token).Err(); err != nil {
		return errors.Join(ErrStoreFailure, err)
	}
	return nil
}

// DeleteExpired is a no-op: Redis evicts keys via their TTL.
func (s *RedisStore) DeleteExpired(ctx context.Context) error {
	return nil
}

func (s *RedisStore) write(ctx context.Context, session *Session) error {
	if session == nil || session.Token == "" {
		return ErrInvalidSession
	}

	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return ErrSessionExpired
	}

	raw, err := json.Marshal(session)
	if err != nil {
		return errors.Join(ErrStoreFailure, err)
	}

	if err := s.client.Set(ctx, s.prefix+session.Token, raw, ttl).Err(); err != nil {
		return errors.Join(ErrStoreFailure, err)
	}
	return nil
}
