package utils

import (
	"testing"
	"time"

	"ehealth/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndExtractClaims(t *testing.T) {
	config.AppConfig.JWTSecret = "test-secret"
	defer func() { config.AppConfig.JWTSecret = "" }()

	token, err := GenerateToken("user-1", "doctor", time.Hour)
	require.NoError(t, err)

	claims, err := ExtractClaimsFromToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "doctor", claims.Role)
}

func TestExtractClaimsRejectsExpiredToken(t *testing.T) {
	config.AppConfig.JWTSecret = "test-secret"
	defer func() { config.AppConfig.JWTSecret = "" }()

	token, err := GenerateToken("user-1", "patient", -time.Minute)
	require.NoError(t, err)

	_, err = ExtractClaimsFromToken(token)
	assert.Error(t, err)
}

func TestExtractClaimsRejectsForeignSecret(t *testing.T) {
	config.AppConfig.JWTSecret = "one"
	token, err := GenerateToken("user-1", "patient", time.Hour)
	require.NoError(t, err)

	config.AppConfig.JWTSecret = "two"
	defer func() { config.AppConfig.JWTSecret = "" }()

	_, err = ExtractClaimsFromToken(token)
	assert.Error(t, err)
}

func TestHashTokenIsStable(t *testing.T) {
	assert.Equal(t, HashToken("abc"), HashToken("abc"))
	assert.NotEqual(t, HashToken("abc"), HashToken("abd"))
	assert.Len(t, HashToken("abc"), 64)
}

func TestTokenTTLDefault(t *testing.T) {
	config.AppConfig.TokenTTLHours = 0
	assert.Equal(t, 24*time.Hour, TokenTTL())
	config.AppConfig.TokenTTLHours = 2
	defer func() { config.AppConfig.TokenTTLHours = 0 }()
	assert.Equal(t, 2*time.Hour, TokenTTL())
}
