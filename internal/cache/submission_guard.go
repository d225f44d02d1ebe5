package cache

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const submissionKeyPrefix = "submission:"

// SubmissionGuard hands out one claim per form token so a double-clicked or
// replayed form post is only sent to the backend once.
type SubmissionGuard interface {
	// Claim returns false when the token was already claimed.
	Claim(ctx context.Context, token string) (bool, error)
	// Release frees the token so a corrected form can be resent.
	Release(ctx context.Context, token string) error
}

// NewSubmissionGuard uses Redis when connected and process memory otherwise.
func NewSubmissionGuard(ttl time.Duration) SubmissionGuard {
	if client != nil {
		return &redisGuard{rdb: client, ttl: ttl}
	}
	return NewMemoryGuard(ttl, time.Now)
}

type redisGuard struct {
	rdb *redis.Client
	ttl time.Duration
}

func (g *redisGuard) Claim(ctx context.Context, token string) (bool, error) {
	return g.rdb.SetNX(ctx, submissionKeyPrefix+token, 1, g.ttl).Result()
}

func (g *redisGuard) Release(ctx context.Context, token string) error {
	return g.rdb.Del(ctx, submissionKeyPrefix+token).Err()
}

type MemoryGuard struct {
	ttl time.Duration
	now func() time.Time

	mu     sync.Mutex
	claims map[string]time.Time
}

func NewMemoryGuard(ttl time.Duration, now func() time.Time) *MemoryGuard {
	return &MemoryGuard{ttl: ttl, now: now, claims: make(map[string]time.Time)}
}

func (g *MemoryGuard) Claim(_ context.Context, token string) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	for t, expires := range g.claims {
		if now.After(expires) {
			delete(g.claims, t)
		}
	}
	if _, taken := g.claims[token]; taken {
		return false, nil
	}
	g.claims[token] = now.Add(g.ttl)
	return true, nil
}

func (g *MemoryGuard) Release(_ context.Context, token string) error {
	g.mu.Lock()
	delete(g.claims, token)
	g.mu.Unlock()
	return nil
}
