package services

import (
	"context"
	"crypto/subtle"
	"fmt"

	"expensetrack/internal/apperrors"
	"expensetrack/internal/core/ports"
	"expensetrack/internal/utils"
)

// AuthService checks the single static credential pair behind keyed
// login-attempt throttling. The throttle is an injected dependency so the
// windowed counters can be tested without a real clock.
type AuthService struct {
	username     string
	passwordHash string // bcrypt
	throttle     ports.LoginThrottle
}

// NewAuthService creates an AuthService for the configured credential pair.
func NewAuthService(username, passwordHash string, throttle ports.LoginThrottle) *AuthService {
	return &AuthService{
		username:     username,
		passwordHash: passwordHash,
		throttle:     throttle,
	}
}

// Login verifies the submitted credentials from the given source IP.
//
// Both throttle counters are consulted first: a blocked key rejects the
// attempt regardless of credential correctness, returning a
// *apperrors.RateLimitError with the wait time. The username is compared in
// constant time and the password against the bcrypt hash. Success clears
// the per-username counter; failure increments both counters and returns
// apperrors.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, username, password, ip string) error {
	userStatus, err := s.throttle.PeekUser(ctx, username)
	if err != nil {
		return fmt.Errorf("failed to check username throttle: %w", err)
	}
	if userStatus.Blocked {
		return &apperrors.RateLimitError{Key: "username", RetryAfterSeconds: userStatus.RetryAfterSeconds}
	}

	ipStatus, err := s.throttle.PeekIP(ctx, ip)
	if err != nil {
		return fmt.Errorf("failed to check IP throttle: %w", err)
	}
	if ipStatus.Blocked {
		return &apperrors.RateLimitError{Key: "ip", RetryAfterSeconds: ipStatus.RetryAfterSeconds}
	}

	validUsername := subtle.ConstantTimeCompare([]byte(s.username), []byte(username)) == 1
	validPassword := utils.CheckPasswordHash(password, s.passwordHash)

	if validUsername && validPassword {
		if err := s.throttle.ClearUser(ctx, username); err != nil {
			return fmt.Errorf("failed to clear username throttle: %w", err)
		}
		return nil
	}

	if err := s.throttle.RecordFailure(ctx, username, ip); err != nil {
		return fmt.Errorf("failed to record login failure: %w", err)
	}
	return apperrors.ErrInvalidCredentials
}
