// Package ratelimit implements the login throttle as keyed counters over
// rolling windows, backed by ulule/limiter's in-memory store.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"expensetrack/internal/core/ports"

	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

const (
	// Window is the rolling window shared by both counters.
	Window = 15 * time.Minute
	// MaxPerUsername blocks a username after this many failures.
	MaxPerUsername = 5
	// MaxPerIP blocks a source IP after this many failures.
	MaxPerIP = 10

	usernameKeyPrefix = "login-user:"
	ipKeyPrefix       = "login-ip:"
)

// LoginThrottle tracks failed login attempts per username and per source
// IP. Both counters share one store; keys are disambiguated by prefix.
type LoginThrottle struct {
	user *limiter.Limiter
	ip   *limiter.Limiter
}

var _ ports.LoginThrottle = (*LoginThrottle)(nil)

// NewLoginThrottle creates the standard throttle: 5 failures per username
// and 10 per IP within a rolling 15-minute window.
func NewLoginThrottle() *LoginThrottle {
	store := memory.NewStore()
	return &LoginThrottle{
		user: limiter.New(store, limiter.Rate{Period: Window, Limit: MaxPerUsername}),
		ip:   limiter.New(store, limiter.Rate{Period: Window, Limit: MaxPerIP}),
	}
}

func peek(ctx context.Context, l *limiter.Limiter, key string) (ports.ThrottleStatus, error) {
	lctx, err := l.Peek(ctx, key)
	if err != nil {
		return ports.ThrottleStatus{}, fmt.Errorf("failed to peek throttle key %q: %w", key, err)
	}
	status := ports.ThrottleStatus{Blocked: lctx.Remaining <= 0}
	if status.Blocked {
		retry := lctx.Reset - time.Now().Unix()
		if retry < 1 {
			retry = 1
		}
		status.RetryAfterSeconds = retry
	}
	return status, nil
}

// PeekUser reports the username counter without incrementing it.
func (t *LoginThrottle) PeekUser(ctx context.Context, username string) (ports.ThrottleStatus, error) {
	return peek(ctx, t.user, usernameKeyPrefix+username)
}

// PeekIP reports the source-IP counter without incrementing it.
func (t *LoginThrottle) PeekIP(ctx context.Context, ip string) (ports.ThrottleStatus, error) {
	return peek(ctx, t.ip, ipKeyPrefix+ip)
}

// RecordFailure increments both counters after a failed attempt.
func (t *LoginThrottle) RecordFailure(ctx context.Context, username, ip string) error {
	if _, err := t.user.Get(ctx, usernameKeyPrefix+username); err != nil {
		return fmt.Errorf("failed to increment username throttle: %w", err)
	}
	if _, err := t.ip.Get(ctx, ipKeyPrefix+ip); err != nil {
		return fmt.Errorf("failed to increment IP throttle: %w", err)
	}
	return nil
}

// ClearUser resets the username counter after a successful login.
func (t *LoginThrottle) ClearUser(ctx context.Context, username string) error {
	if _, err := t.user.Reset(ctx, usernameKeyPrefix+username); err != nil {
		return fmt.Errorf("failed to reset username throttle: %w", err)
	}
	return nil
}
