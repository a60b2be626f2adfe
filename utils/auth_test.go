package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordRoundTrip(t *testing.T) {
	hashed := HashPassword("s3cret-pass")

	assert.True(t, VerifyPassword("s3cret-pass", hashed))
	assert.False(t, VerifyPassword("wrong", hashed))
	assert.False(t, VerifyPassword("s3cret-pass", "plain-text"))
}

func TestHashPasswordUsesFreshSalt(t *testing.T) {
	assert.NotEqual(t, HashPassword("same"), HashPassword("same"))
}

func TestTokenRoundTrip(t *testing.T) {
	SetJWTSecret("test-secret")

	token, err := GenerateToken("admin-1", "asha", []string{"Manager", "Viewer"})
	require.NoError(t, err)

	claims, err := ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "admin-1", claims.UserID)
	assert.Equal(t, "asha", claims.Username)
	assert.Equal(t, []string{"Manager", "Viewer"}, claims.Roles)
}

func TestParseTokenRejectsForeignSignature(t *testing.T) {
	SetJWTSecret("one")
	token, err := GenerateToken("admin-1", "asha", nil)
	require.NoError(t, err)

	SetJWTSecret("two")
	_, err = ParseToken(token)
	assert.Error(t, err)
}
