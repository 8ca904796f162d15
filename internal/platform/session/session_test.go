package session_test

import (
	"testing"
	"time"

	"expensetrack/internal/platform/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_IssueAndValidate(t *testing.T) {
	m := session.NewManager("test-secret", time.Hour)

	token, err := m.IssueToken()
	require.NoError(t, err)
	require.NotEmpty(t, token)

	assert.NoError(t, m.ValidateToken(token))
}

func TestManager_RejectsTamperedToken(t *testing.T) {
	m := session.NewManager("test-secret", time.Hour)

	token, err := m.IssueToken()
	require.NoError(t, err)

	tampered := token[:len(token)-2] + "xx"
	assert.ErrorIs(t, m.ValidateToken(tampered), session.ErrInvalidSession)
}

func TestManager_RejectsForeignSecret(t *testing.T) {
	issuer := session.NewManager("secret-a", time.Hour)
	verifier := session.NewManager("secret-b", time.Hour)

	token, err := issuer.IssueToken()
	require.NoError(t, err)

	assert.ErrorIs(t, verifier.ValidateToken(token), session.ErrInvalidSession)
}

func TestManager_RejectsExpiredToken(t *testing.T) {
	m := session.NewManager("test-secret", -time.Minute)

	token, err := m.IssueToken()
	require.NoError(t, err)

	assert.ErrorIs(t, m.ValidateToken(token), session.ErrInvalidSession)
}

func TestManager_RejectsGarbage(t *testing.T) {
	m := session.NewManager("test-secret", time.Hour)
	assert.ErrorIs(t, m.ValidateToken("not-a-token"), session.ErrInvalidSession)
	assert.ErrorIs(t, m.ValidateToken(""), session.ErrInvalidSession)
}
