package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenManager_RoundTrip(t *testing.T) {
	m := NewTokenManager("secret", time.Hour)

	token, expiresAt, err := m.Generate("user-1", "a@b.c", "customer")
	require.NoError(t, err)
	assert.True(t, expiresAt.After(time.Now()))

	identity, err := m.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, Identity{UserID: "user-1", Role: "customer"}, identity)
}

func TestTokenManager_RejectsOtherSecret(t *testing.T) {
	token, _, err := NewTokenManager("one", time.Hour).Generate("user-1", "", "admin")
	require.NoError(t, err)

	_, err = NewTokenManager("two", time.Hour).Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_RejectsExpired(t *testing.T) {
	m := NewTokenManager("secret", -time.Minute)
	token, _, err := m.Generate("user-1", "", "customer")
	require.NoError(t, err)

	_, err = m.Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_RejectsGarbage(t *testing.T) {
	_, err := NewTokenManager("secret", time.Hour).Validate("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestIdentity(t *testing.T) {
	admin := Identity{UserID: "a", Role: "admin"}
	assert.True(t, admin.IsAdmin())
	assert.True(t, admin.HasRole("seller", "admin"))
	assert.True(t, admin.Owns("a"))
	assert.False(t, admin.Owns("b"))
	assert.False(t, Identity{}.Owns(""))
}
