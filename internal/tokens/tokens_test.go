package tokens

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignAccessToken_SetsExpectedClaims(t *testing.T) {
	t.Parallel()

	secret := []byte("test-jwt-secret")
	token, err := SignAccessToken(42, RoleAdmin, secret)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := AccessClaimsFromToken(token, secret)
	require.NoError(t, err)

	assert.Equal(t, RoleAdmin, claims.Role)
	uid, err := claims.UserID()
	require.NoError(t, err)
	assert.EqualValues(t, 42, uid)

	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, time.Now().Add(AccessTTL), claims.ExpiresAt.Time, time.Minute)
}

func TestAccessClaimsFromToken_RejectsWrongSecret(t *testing.T) {
	t.Parallel()

	token, err := SignAccessToken(1, RoleUser, []byte("secret-a"))
	require.NoError(t, err)

	_, err = AccessClaimsFromToken(token, []byte("secret-b"))
	require.Error(t, err)
}

func TestAccessClaimsFromToken_RejectsExpired(t *testing.T) {
	t.Parallel()

	secret := []byte("test-jwt-secret")
	claims := AccessClaims{
		Role: RoleUser,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "7",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	require.NoError(t, err)

	_, err = AccessClaimsFromToken(raw, secret)
	require.Error(t, err)
}

func TestAccessClaimsFromToken_RejectsWrongMethod(t *testing.T) {
	t.Parallel()

	raw, err := jwt.NewWithClaims(jwt.SigningMethodNone, AccessClaims{
		Role:             RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{Subject: "1"},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = AccessClaimsFromToken(raw, []byte("test-jwt-secret"))
	require.Error(t, err)
}
