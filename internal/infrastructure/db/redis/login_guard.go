package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultMaxAttempts = 5
	defaultWindow      = 15 * time.Minute
)

// LoginGuard counts failed logins per email in Redis. The counter starts its
// TTL on the first failure, so an email is locked for at most one window.
// Key format: login_failures:<lowercased email>
type LoginGuard struct {
	client      *redis.Client
	maxAttempts int
	window      time.Duration
}

// NewLoginGuard creates a LoginGuard. Non-positive settings fall back to 5 attempts per 15 minutes.
func NewLoginGuard(client *redis.Client, maxAttempts int, window time.Duration) *LoginGuard {
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxAttempts
	}
	if window <= 0 {
		window = defaultWindow
	}
	return &LoginGuard{client: client, maxAttempts: maxAttempts, window: window}
}

// Locked reports whether email has used up its failed attempts for the current window.
func (g *LoginGuard) Locked(ctx context.Context, email string) (bool, error) {
	n, err := g.client.Get(ctx, g.key(email)).Int()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("login guard get: %w", err)
	}
	return n >= g.maxAttempts, nil
}

// RecordFailure increments the failure counter, starting the window on the first failure.
func (g *LoginGuard) RecordFailure(ctx context.Context, email string) error {
	key := g.key(email)
	n, err := g.client.Incr(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("login guard incr: %w", err)
	}
	if n == 1 {
		if err := g.client.Expire(ctx, key, g.window).Err(); err != nil {
			return fmt.Errorf("login guard expire: %w", err)
		}
	}
	return nil
}

// Reset clears the failure counter after a successful login.
func (g *LoginGuard) Reset(ctx context.Context, email string) error {
	return g.client.Del(ctx, g.key(email)).Err()
}

func (g *LoginGuard) key(email string) string {
	return "login_failures:" + strings.ToLower(strings.TrimSpace(email))
}
