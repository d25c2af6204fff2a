package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager() *TokenManager {
	return NewTokenManager("access-secret", "refresh-secret", time.Hour, 7*24*time.Hour)
}

func TestGeneratePair_RoundTrip(t *testing.T) {
	m := newTestManager()

	access, refresh, err := m.GeneratePair("user-123")
	require.NoError(t, err)
	require.NotEmpty(t, access)
	require.NotEmpty(t, refresh)

	accessClaims, err := m.ValidateAccessToken(access)
	require.NoError(t, err)
	assert.Equal(t, "user-123", accessClaims.UserID)
	assert.Equal(t, "user-123", accessClaims.Subject)

	refreshClaims, err := m.ValidateRefreshToken(refresh)
	require.NoError(t, err)
	assert.Equal(t, "user-123", refreshClaims.UserID)
}

func TestGeneratePair_ConsecutivePairsDiffer(t *testing.T) {
	m := newTestManager()

	access1, refresh1, err := m.GeneratePair("user-123")
	require.NoError(t, err)
	access2, refresh2, err := m.GeneratePair("user-123")
	require.NoError(t, err)

	// Both issuances almost certainly share the same second-granularity
	// iat/exp, so the jti is what keeps them distinct.
	assert.NotEqual(t, access1, access2)
	assert.NotEqual(t, refresh1, refresh2)

	claims1, err := m.ValidateRefreshToken(refresh1)
	require.NoError(t, err)
	claims2, err := m.ValidateRefreshToken(refresh2)
	require.NoError(t, err)
	assert.NotEmpty(t, claims1.ID)
	assert.NotEqual(t, claims1.ID, claims2.ID)
}

func TestValidateAccessToken_RejectsRefreshToken(t *testing.T) {
	m := newTestManager()

	_, refresh, err := m.GeneratePair("user-123")
	require.NoError(t, err)

	// Signed with the refresh secret, so it must not pass access validation.
	_, err = m.ValidateAccessToken(refresh)
	assert.Error(t, err)
}

func TestValidateRefreshToken_RejectsAccessToken(t *testing.T) {
	m := newTestManager()

	access, _, err := m.GeneratePair("user-123")
	require.NoError(t, err)

	_, err = m.ValidateRefreshToken(access)
	assert.Error(t, err)
}

func TestValidateAccessToken_Expired(t *testing.T) {
	m := NewTokenManager("access-secret", "refresh-secret", -time.Minute, 7*24*time.Hour)

	access, _, err := m.GeneratePair("user-123")
	require.NoError(t, err)

	_, err = m.ValidateAccessToken(access)
	assert.Error(t, err)
}

func TestValidateAccessToken_Malformed(t *testing.T) {
	m := newTestManager()

	_, err := m.ValidateAccessToken("not.a.token")
	assert.Error(t, err)
}

func TestValidateAccessToken_WrongSecret(t *testing.T) {
	m := newTestManager()
	other := NewTokenManager("different-secret", "refresh-secret", time.Hour, 7*24*time.Hour)

	access, _, err := other.GeneratePair("user-123")
	require.NoError(t, err)

	_, err = m.ValidateAccessToken(access)
	assert.Error(t, err)
}
