// Package session manages login state through opaque session tokens.
//
// Tokens are unguessable random values and carry no embedded identity
// or privilege information; everything is re-derived from the session
// store and the identity repository on each request, so a tampered
// token can never escalate privilege.
package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// tokenBytes is the entropy of a session token (256 bits).
const tokenBytes = 32

const keyPrefix = "session:"

// newToken returns a fresh opaque session token.
func newToken() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate session token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// Store persists the binding between a session token and a user id.
// Implementations must be safe for concurrent use.
type Store interface {
	Put(ctx context.Context, token string, userID uint, ttl time.Duration) error
	// Get returns the bound user id, or ok=false for an unknown or
	// expired token.
	Get(ctx context.Context, token string) (userID uint, ok bool, err error)
	Delete(ctx context.Context, token string) error
}

// RedisStore keeps sessions in Redis so they survive restarts and are
// shared across instances.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore returns a Store backed by the given Redis client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Put(ctx context.Context, token string, userID uint, ttl time.Duration) error {
	return s.client.Set(ctx, keyPrefix+token, strconv.FormatUint(uint64(userID), 10), ttl).Err()
}

func (s *RedisStore) Get(ctx context.Context, token string) (uint, bool, error) {
	val, err := s.client.Get(ctx, keyPrefix+token).Result()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	userID, err := strconv.ParseUint(val, 10, 32)
	if err != nil {
		return 0, false, err
	}
	return uint(userID), true, nil
}

func (s *RedisStore) Delete(ctx context.Context, token string) error {
	return s.client.Del(ctx, keyPrefix+token).Err()
}

type memoryEntry struct {
	userID    uint
	expiresAt time.Time
}

// MemoryStore is an in-process Store used in tests and when Redis is
// unavailable. Expired entries are dropped lazily on read.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]memoryEntry
}

// NewMemoryStore returns an empty in-memory Store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]memoryEntry)}
}

func (s *MemoryStore) Put(_ context.Context, token string, userID uint, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[token] = memoryEntry{userID: userID, expiresAt: time.Now().Add(ttl)}
	return nil
}

func (s *MemoryStore) Get(_ context.Context, token string) (uint, bool, error) {
	s.mu.RLock()
	entry, ok := s.sessions[token]
	s.mu.RUnlock()

	if !ok {
		return 0, false, nil
	}
	if time.Now().After(entry.expiresAt) {
		s.mu.Lock()
		delete(s.sessions, token)
		s.mu.Unlock()
		return 0, false, nil
	}
	return entry.userID, true, nil
}

func (s *MemoryStore) Delete(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
	return nil
}
