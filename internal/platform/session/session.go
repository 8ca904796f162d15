// Package session issues and verifies the signed cookie that carries the
// authenticated flag. The only session state is that flag, so a stateless
// HS256 token replaces a server-side session store.
package session

import (
	"errors"
	"fmt"
	"time"

	"expensetrack/internal/apperrors"

	"github.com/golang-jwt/jwt/v5"
)

const (
	// CookieName is the session cookie.
	CookieName = "expense_session"
	// IntendedCookieName stores the originally-requested URL across the
	// login redirect.
	IntendedCookieName = "intended_url"

	issuer  = "expensetrack"
	subject = "authenticated"
)

// ErrInvalidSession indicates a missing, malformed, tampered or expired
// session token. It matches apperrors.ErrUnauthenticated.
var ErrInvalidSession = fmt.Errorf("%w: invalid session token", apperrors.ErrUnauthenticated)

// Manager mints and verifies session tokens.
type Manager struct {
	secret   []byte
	duration time.Duration
}

// NewManager creates a session Manager signing with secret; tokens expire
// after duration.
func NewManager(secret string, duration time.Duration) *Manager {
	return &Manager{secret: []byte(secret), duration: duration}
}

// Duration returns the configured session lifetime, used for cookie MaxAge.
func (m *Manager) Duration() time.Duration {
	return m.duration
}

// IssueToken mints a signed session token marking the bearer authenticated.
func (m *Manager) IssueToken() (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(m.duration)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, nil
}

// ValidateToken verifies signature, expiry and claims of a session token.
func (m *Manager) ValidateToken(tokenString string) error {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return ErrInvalidSession
	}
	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject != subject {
		return ErrInvalidSession
	}
	return nil
}
