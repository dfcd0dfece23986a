package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	tokens := NewTokens("secret", time.Hour)

	token, err := tokens.GenerateToken(7, RoleManager)
	require.NoError(t, err)

	id, err := tokens.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, Identity{UserID: 7, Role: RoleManager}, id)
	assert.True(t, id.IsManager())
}

func TestValidateTokenRejects(t *testing.T) {
	tokens := NewTokens("secret", time.Hour)
	good, err := tokens.GenerateToken(7, RoleCustomer)
	require.NoError(t, err)

	expired := NewTokens("secret", time.Hour)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	old, err := expired.GenerateToken(7, RoleCustomer)
	require.NoError(t, err)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"sub": 7})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	testCases := []struct {
		testName string
		token    string
		tokens   *Tokens
	}{
		{"Should reject a token signed with another secret", good, NewTokens("other", time.Hour)},
		{"Should reject an expired token", old, tokens},
		{"Should reject an unsigned token", unsigned, tokens},
		{"Should reject garbage", "not-a-token", tokens},
	}

	for _, tc := range testCases {
		t.Run(tc.testName, func(t *testing.T) {
			_, err := tc.tokens.ValidateToken(tc.token)
			assert.Error(t, err)
		})
	}
}

func TestGenerateTokenRejectsUnknownRole(t *testing.T) {
	_, err := NewTokens("secret", time.Hour).GenerateToken(1, "dropshipper")
	assert.ErrorIs(t, err, ErrInvalidRole)
}
