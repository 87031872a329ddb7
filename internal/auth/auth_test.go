package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager() *Manager {
	// MinCost keeps the bcrypt tests fast.
	return NewManager("test-secret", time.Hour, 4)
}

func TestTokenRoundTrip(t *testing.T) {
	m := newTestManager()

	token, err := m.GenerateToken(42, "vendor")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := m.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "vendor", claims.Role)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	m := newTestManager()
	other := NewManager("other-secret", time.Hour, 4)

	token, err := m.GenerateToken(1, "customer")
	require.NoError(t, err)

	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	m := NewManager("test-secret", -time.Minute, 4)

	token, err := m.GenerateToken(1, "customer")
	require.NoError(t, err)

	_, err = m.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	m := newTestManager()

	_, err := m.ValidateToken("not.a.token")
	assert.Error(t, err)
}

func TestPasswordHashAndCheck(t *testing.T) {
	m := newTestManager()

	hash, err := m.HashPassword("hunter2hunter2")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter2hunter2", hash)

	assert.True(t, m.CheckPassword(hash, "hunter2hunter2"))
	assert.False(t, m.CheckPassword(hash, "wrong-password"))
}
