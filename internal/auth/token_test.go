package auth

import (
	"testing"
	"time"

	"github.com/go-playground/assert/v2"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	token, err := CreateAccessToken("secret", 42, AccessTokenTTL)
	assert.Equal(t, nil, err)
	assert.NotEqual(t, "", token)

	userID, err := ParseAccessToken("secret", token)
	assert.Equal(t, nil, err)
	assert.Equal(t, int64(42), userID)
}

func TestAccessTokenWrongSecret(t *testing.T) {
	token, err := CreateAccessToken("secret", 42, AccessTokenTTL)
	assert.Equal(t, nil, err)

	_, err = ParseAccessToken("other-secret", token)
	assert.NotEqual(t, nil, err)
}

func TestAccessTokenExpired(t *testing.T) {
	token, err := CreateAccessToken("secret", 42, -time.Minute)
	assert.Equal(t, nil, err)

	_, err = ParseAccessToken("secret", token)
	assert.NotEqual(t, nil, err)
}

func TestAccessTokenGarbage(t *testing.T) {
	_, err := ParseAccessToken("secret", "not-a-token")
	assert.NotEqual(t, nil, err)
}

func TestPasswordHashAndVerify(t *testing.T) {
	hash, err := HashPassword("chai-lover-123")
	assert.Equal(t, nil, err)
	assert.NotEqual(t, "chai-lover-123", hash)

	assert.Equal(t, true, VerifyPassword("chai-lover-123", hash))
	assert.Equal(t, false, VerifyPassword("wrong-password", hash))
}
