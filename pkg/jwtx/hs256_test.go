package jwtx_test

import (
	"testing"
	"time"

	"github.com/aussiebroadwan/researchdesk/pkg/jwtx"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

func TestHS256SignAndVerify(t *testing.T) {
	h, err := jwtx.NewHS256(testSecret, testIssuer, 0)
	require.NoError(t, err)
	require.Equal(t, "HS256", h.Alg())

	claims := jwtx.NewUserClaims("user-1", "alice@example.com", "Alice", "researcher", testIssuer, time.Hour, time.Now().UTC())
	token, err := h.Sign(claims)
	require.NoError(t, err)

	got, err := h.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "user-1", got.Subject)
	require.Equal(t, "alice@example.com", got.Email)
	require.Equal(t, "Alice", got.Name)
	require.Equal(t, "researcher", got.Role)
}

func TestHS256Verify_Rejects(t *testing.T) {
	h, err := jwtx.NewHS256(testSecret, testIssuer, 0)
	require.NoError(t, err)
	now := time.Now().UTC()

	t.Run("expired", func(t *testing.T) {
		token, err := h.Sign(jwtx.NewUserClaims("u", "", "", "", testIssuer, time.Hour, now.Add(-2*time.Hour)))
		require.NoError(t, err)
		_, err = h.Verify(token)
		require.ErrorIs(t, err, jwtx.ErrExpired)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		token, err := h.Sign(jwtx.NewUserClaims("u", "", "", "", "someone-else", time.Hour, now))
		require.NoError(t, err)
		_, err = h.Verify(token)
		require.ErrorIs(t, err, jwtx.ErrIssuer)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other, err := jwtx.NewHS256([]byte("another-secret-of-enough-length"), testIssuer, 0)
		require.NoError(t, err)
		token, err := other.Sign(jwtx.NewUserClaims("u", "", "", "", testIssuer, time.Hour, now))
		require.NoError(t, err)
		_, err = h.Verify(token)
		require.ErrorIs(t, err, jwtx.ErrInvalidSig)
	})

	t.Run("missing expiry", func(t *testing.T) {
		claims := jwtx.Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "u", Issuer: testIssuer}}
		token, err := h.Sign(claims)
		require.NoError(t, err)
		_, err = h.Verify(token)
		require.Error(t, err)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := h.Verify("not.a.jwt")
		require.ErrorIs(t, err, jwtx.ErrMalformed)
	})

	t.Run("alg none", func(t *testing.T) {
		claims := jwtx.NewUserClaims("u", "", "", "", testIssuer, time.Hour, now)
		token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)
		_, err = h.Verify(token)
		require.Error(t, err)
	})
}

func TestNewHS256_WeakSecret(t *testing.T) {
	_, err := jwtx.NewHS256([]byte("short"), testIssuer, 0)
	require.ErrorIs(t, err, jwtx.ErrWeakSecret)
}
