package cache

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrStateNotFound is returned when an OAuth state has expired or was never stored.
var ErrStateNotFound = errors.New("oauth state not found")

// IVerifierStore persists PKCE code verifiers keyed by OAuth state between
// the authorize redirect and the callback.
type IVerifierStore interface {
	Save(ctx context.Context, state string, verifier string) error
	Take(ctx context.Context, state string) (string, error)
}

const verifierTTL = 10 * time.Minute

// RedisVerifierStore stores verifiers in Redis with a TTL so abandoned
// authorization flows clean themselves up.
type RedisVerifierStore struct {
	client *redis.Client
}

func NewRedisVerifierStore(client *redis.Client) *RedisVerifierStore {
	return &RedisVerifierStore{client: client}
}

func (s *RedisVerifierStore) Save(ctx context.Context, state string, verifier string) error {
	return s.client.Set(ctx, "pkce:"+state, verifier, verifierTTL).Err()
}

// Take returns the verifier for a state and deletes it, so each state
// can be redeemed at most once.
func (s *RedisVerifierStore) Take(ctx context.Context, state string) (string, error) {
	key := "pkce:" + state
	verifier, err := s.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrStateNotFound
	}
	if err != nil {
		return "", err
	}
	s.client.Del(ctx, key)
	return verifier, nil
}

// MemoryVerifierStore is the fallback when Redis is not configured. It is
// good enough for a single-instance deployment.
type MemoryVerifierStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
}

type memoryEntry struct {
	verifier  string
	expiresAt time.Time
}

func NewMemoryVerifierStore() *MemoryVerifierStore {
	return &MemoryVerifierStore{entries: make(map[string]memoryEntry)}
}

func (s *MemoryVerifierStore) Save(_ context.Context, state string, verifier string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for k, e := range s.entries {
		if now.After(e.expiresAt) {
			delete(s.entries, k)
		}
	}
	s.entries[state] = memoryEntry{verifier: verifier, expiresAt: now.Add(verifierTTL)}
	return nil
}

func (s *MemoryVerifierStore) Take(_ context.Context, state string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[state]
	if !ok || time.Now().After(entry.expiresAt) {
		delete(s.entries, state)
		return "", ErrStateNotFound
	}
	delete(s.entries, state)
	return entry.verifier, nil
}
