package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store is a namespaced byte store on top of a go-redis client.
// Missing keys are reported as (nil, nil).
type Store struct {
	db     redis.UniversalClient
	prefix string
}

// NewStore wraps the client; every key is prefixed with prefix.
func NewStore(client redis.UniversalClient, prefix string) *Store {
	return &Store{db: client, prefix: prefix}
}

// Get returns the stored value or nil when the key does not exist.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, nil
	}
	val, err := s.db.Get(ctx, s.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Join(ErrStoreFailed, err)
	}
	return val, nil
}

// Set stores key-value with expiration. Zero duration means no expiration.
func (s *Store) Set(ctx context.Context, key string, val []byte, exp time.Duration) error {
	if key == "" || len(val) == 0 {
		return nil
	}
	if err := s.db.Set(ctx, s.prefix+key, val, exp).Err(); err != nil {
		return errors.Join(ErrStoreFailed, err)
	}
	return nil
}

// Delete removes a key. Empty keys are ignored.
func (s *Store) Delete(ctx context.Context, key string) error {
	if key == "" {
		return nil
	}
	if err := s.db.Del(ctx, s.prefix+key).Err(); err != nil {
		return errors.Join(ErrStoreFailed, err)
	}
	return nil
}

// Conn returns the underlying Redis client.
func (s *Store) Conn() redis.UniversalClient {
	return s.db
}
