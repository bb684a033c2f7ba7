package repositories

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenStore keeps the set of issued, not yet revoked access tokens
type TokenStore interface {
	Save(ctx context.Context, token string, userID uint, ttl time.Duration) error
	Exists(ctx context.Context, token string) (bool, error)
	Revoke(ctx context.Context, token string) error
}

// RedisTokenStore implements TokenStore with Redis key expiry
type RedisTokenStore struct {
	client *redis.Client
}

// NewRedisTokenStore creates a new RedisTokenStore
func NewRedisTokenStore(client *redis.Client) *RedisTokenStore {
	return &RedisTokenStore{client: client}
}

func tokenKey(token string) string {
	return "auth:token:" + token
}

func (s *RedisTokenStore) Save(ctx context.Context, token string, userID uint, ttl time.Duration) error {
	return s.client.Set(ctx, tokenKey(token), fmt.Sprint(userID), ttl).Err()
}

func (s *RedisTokenStore) Exists(ctx context.Context, token string) (bool, error) {
	n, err := s.client.Exists(ctx, tokenKey(token)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *RedisTokenStore) Revoke(ctx context.Context, token string) error {
	return s.client.Del(ctx, tokenKey(token)).Err()
}

// MemoryTokenStore is the single-process TokenStore used when Redis is not configured
type MemoryTokenStore struct {
	mu     sync.Mutex
	tokens map[string]time.Time
	now    func() time.Time
}

func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{tokens: make(map[string]time.Time), now: time.Now}
}

func (s *MemoryTokenStore) Save(_ context.Context, token string, _ uint, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[token] = s.now().Add(ttl)
	return nil
}

func (s *MemoryTokenStore) Exists(_ context.Context, token string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	expiry, ok := s.tokens[token]
	if !ok {
		return false, nil
	}
	if !s.now().Before(expiry) {
		delete(s.tokens, token)
		return false, nil
	}
	return true, nil
}

func (s *MemoryTokenStore) Revoke(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, token)
	return nil
}
