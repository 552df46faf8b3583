package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken(42, "admin")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, "cafeteria-app", claims.Issuer)
}

func TestParseGarbageToken(t *testing.T) {
	_, err := ParseToken("not-a-token")
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hashed, err := HashPassword("employee123")
	require.NoError(t, err)
	assert.NotEqual(t, "employee123", hashed)

	assert.True(t, CheckPassword(hashed, "employee123"))
	assert.False(t, CheckPassword(hashed, "wrong"))
}
