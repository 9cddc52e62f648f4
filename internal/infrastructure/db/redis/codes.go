package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const codeTTL = 15 * time.Minute

// CodeStore holds email verification codes in Redis.
// Key format: verify:<email>
type CodeStore struct {
	client *redis.Client
}

// NewCodeStore creates a CodeStore wrapping the given Redis client.
func NewCodeStore(client *redis.Client) *CodeStore {
	return &CodeStore{client: client}
}

// Put stores the code for email, replacing any previous one. The code
// expires after codeTTL.
func (s *CodeStore) Put(ctx context.Context, email, code string) error {
	return s.client.Set(ctx, s.key(email), code, codeTTL).Err()
}

// Get returns the current code for email, or "" when none is pending.
func (s *CodeStore) Get(ctx context.Context, email string) (string, error) {
	code, err := s.client.Get(ctx, s.key(email)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", fmt.Errorf("get code: %w", err)
	}
	return code, nil
}

// Delete removes a consumed code.
func (s *CodeStore) Delete(ctx context.Context, email string) error {
	return s.client.Del(ctx, s.key(email)).Err()
}

func (s *CodeStore) key(email string) string {
	return "verify:" + email
}

const (
	resendWindow = 10 * time.Minute
	resendMax    = 3
)

// ResendLimiter throttles verification code resends per key using an
// INCR + EXPIRE counter window.
type ResendLimiter struct {
	client *redis.Client
}

// NewResendLimiter creates a ResendLimiter wrapping the given Redis client.
func NewResendLimiter(client *redis.Client) *ResendLimiter {
	return &ResendLimiter{client: client}
}

// Allow reports whether another resend is permitted inside the current window.
func (l *ResendLimiter) Allow(ctx context.Context, key string) (bool, error) {
	pipe := l.client.Pipeline()
	incr := pipe.Incr(ctx, "ratelimit:"+key)
	pipe.Expire(ctx, "ratelimit:"+key, resendWindow)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("rate limit: %w", err)
	}
	return incr.Val() <= resendMax, nil
}
