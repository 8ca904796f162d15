package ports

import "context"

// ThrottleStatus reports the state of one keyed login-attempt counter.
type ThrottleStatus struct {
	Blocked           bool
	RetryAfterSeconds int64
}

// LoginThrottle is an explicit keyed counter store for login attempts,
// passed into the auth check as a dependency so the throttle is testable
// without a real clock. Keys are caller-chosen strings (one per username,
// one per source IP); each key counts failures inside a rolling window.
type LoginThrottle interface {
	// PeekUser reports the username counter without incrementing it.
	PeekUser(ctx context.Context, username string) (ThrottleStatus, error)

	// PeekIP reports the source-IP counter without incrementing it.
	PeekIP(ctx context.Context, ip string) (ThrottleStatus, error)

	// RecordFailure increments both counters after a failed attempt.
	RecordFailure(ctx context.Context, username, ip string) error

	// ClearUser resets the username counter after a successful login. The
	// IP counter is left untouched.
	ClearUser(ctx context.Context, username string) error
}
