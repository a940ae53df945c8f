package auth

import (
	"strings"
	"testing"

	"launchboard_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionTokenRoundtrip(t *testing.T) {
	InitSession("unit-test-secret", 60)

	user := &models.User{
		Role:               "startup",
		IsAdmin:            true,
		SubscriptionStatus: models.SubscriptionActive,
	}
	user.ID = "user-123"

	token, err := NewSessionToken(user)
	require.NoError(t, err)

	claims, err := ParseSessionToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "startup", claims.Role)
	assert.True(t, claims.IsAdmin)
	assert.Equal(t, models.SubscriptionActive, claims.SubscriptionStatus)
}

func TestParseSessionToken_RejectsTampered(t *testing.T) {
	InitSession("unit-test-secret", 60)

	user := &models.User{Role: "startup"}
	user.ID = "user-456"

	token, err := NewSessionToken(user)
	require.NoError(t, err)

	_, err = ParseSessionToken(token + "x")
	assert.Error(t, err)

	InitSession("different-secret", 60)
	_, err = ParseSessionToken(token)
	assert.Error(t, err)
}

func TestGenerateReferralCode(t *testing.T) {
	code := GenerateReferralCode("Asha Rao")

	parts := strings.SplitN(code, "-", 2)
	require.Len(t, parts, 2)
	assert.Equal(t, "ASHA", parts[0])
	assert.Len(t, parts[1], 6)
	// The suffix alphabet excludes lookalike characters.
	assert.NotContains(t, parts[1], "0")
	assert.NotContains(t, parts[1], "O")
	assert.NotContains(t, parts[1], "1")
	assert.NotContains(t, parts[1], "I")
}

func TestGenerateReferralCode_EmptyName(t *testing.T) {
	code := GenerateReferralCode("...")
	assert.True(t, strings.HasPrefix(code, "USER-"))
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("correct horse battery")
	require.NoError(t, err)

	assert.True(t, CheckPasswordHash("correct horse battery", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))
}
