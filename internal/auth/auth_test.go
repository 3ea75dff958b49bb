package auth

import (
	"testing"

	"benchracers_backend/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setTestConfig(secret string) {
	cfg := &config.Config{}
	cfg.JWT.Secret = secret
	cfg.JWT.TTL = 60
	config.AppConfig = cfg
}

func TestTokenRoundTrip(t *testing.T) {
	setTestConfig("unit-test-secret")

	token, err := GenerateToken("driver@test.com", "Driver", true)
	require.NoError(t, err)

	claims, err := ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "driver@test.com", claims.Email)
	assert.Equal(t, "Driver", claims.Name)
	assert.True(t, claims.IsEditor)
}

func TestParseToken_WrongSecret(t *testing.T) {
	setTestConfig("secret-one")
	token, err := GenerateToken("driver@test.com", "Driver", false)
	require.NoError(t, err)

	setTestConfig("secret-two")
	_, err = ParseToken(token)
	assert.Error(t, err)
}

func TestParseToken_Garbage(t *testing.T) {
	setTestConfig("unit-test-secret")

	_, err := ParseToken("not.a.token")
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("password123")
	require.NoError(t, err)
	assert.NotEqual(t, "password123", hash)

	assert.True(t, CheckPasswordHash("password123", hash))
	assert.False(t, CheckPasswordHash("password124", hash))
}

func TestValidatePassword(t *testing.T) {
	assert.Error(t, ValidatePassword("short"))
	assert.Error(t, ValidatePassword("1234567"))
	assert.NoError(t, ValidatePassword("12345678"))
}

func TestGenerateRandomToken(t *testing.T) {
	a := GenerateRandomToken()
	b := GenerateRandomToken()

	assert.Len(t, a, 64) // 32 байта в hex
	assert.NotEqual(t, a, b)
}
