package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestJWTService_RoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret", 15, 7)

	pair, err := svc.Generate(42)
	require.NoError(t, err)
	assert.EqualValues(t, 900, pair.ExpiresIn)
	assert.EqualValues(t, 7*24*3600, pair.RefreshExpiresIn)

	userID, err := svc.VerifyAccess(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, uint(42), userID)

	claims, err := svc.ParseRefresh(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.NotEmpty(t, claims.TokenID)
}

func TestJWTService_RejectsWrongTokenType(t *testing.T) {
	svc := NewJWTService("test-secret", 15, 7)
	pair, err := svc.Generate(42)
	require.NoError(t, err)

	_, err = svc.VerifyAccess(pair.RefreshToken)
	assert.Error(t, err)

	_, err = svc.ParseRefresh(pair.AccessToken)
	assert.Error(t, err)
}

func TestJWTService_RejectsForeignSignature(t *testing.T) {
	pair, err := NewJWTService("other-secret", 15, 7).Generate(42)
	require.NoError(t, err)

	_, err = NewJWTService("test-secret", 15, 7).VerifyAccess(pair.AccessToken)
	assert.Error(t, err)
}

func TestJWTService_RejectsExpired(t *testing.T) {
	svc := NewJWTService("test-secret", -1, 7)
	pair, err := svc.Generate(42)
	require.NoError(t, err)

	_, err = svc.VerifyAccess(pair.AccessToken)
	assert.Error(t, err)
}

func TestBcryptPasswordHasher(t *testing.T) {
	h := NewBcryptPasswordHasher(bcrypt.MinCost)

	hash, err := h.Hash("Str0ng!Password")
	require.NoError(t, err)
	assert.NoError(t, h.Verify("Str0ng!Password", hash))
	assert.Error(t, h.Verify("wrong", hash))
	assert.Error(t, h.Verify("Str0ng!Password", "not-a-hash"))

	_, err = h.Hash(string(make([]byte, 73)))
	assert.Error(t, err)
}
