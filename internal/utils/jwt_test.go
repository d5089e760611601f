package utils

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateTokenPair(t *testing.T) {
	userID := uuid.New()
	guideID := uuid.New()

	pair, err := GenerateTokenPair(userID, &guideID, "guide@example.com", false)
	require.NoError(t, err)
	assert.Equal(t, "Bearer", pair.TokenType)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)

	claims, err := ValidateToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	require.NotNil(t, claims.GuideID)
	assert.Equal(t, guideID, *claims.GuideID)
	assert.Equal(t, "guide@example.com", claims.Email)
	assert.False(t, claims.IsAdmin)
}

func TestGenerateTokenPairAdminWithoutGuide(t *testing.T) {
	pair, err := GenerateTokenPair(uuid.New(), nil, "admin@example.com", true)
	require.NoError(t, err)

	claims, err := ValidateToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Nil(t, claims.GuideID)
	assert.True(t, claims.IsAdmin)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	_, err := ValidateToken("not.a.token")
	assert.Error(t, err)
}

func TestConfigureJWTSecret(t *testing.T) {
	ConfigureJWT("an-entirely-different-secret", 0)
	defer ConfigureJWT("", 0)

	pair, err := GenerateTokenPair(uuid.New(), nil, "guide@example.com", false)
	require.NoError(t, err)

	_, err = ValidateToken(pair.AccessToken)
	require.NoError(t, err)

	// a token minted under the old secret no longer validates
	ConfigureJWT("", 0)
	_, err = ValidateToken(pair.AccessToken)
	assert.Error(t, err)
}
