package authx

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-secret")

func TestVerifyRoundTrip(t *testing.T) {
	t.Parallel()

	v := &HMACVerifier{Secret: testSecret, Issuer: "hivedesk-identity"}

	raw, err := Sign(testSecret, "hivedesk-identity", "user-1", "u1@example.com",
		[]string{"workspace:read", "workspace:write"}, time.Minute)
	require.NoError(t, err)

	claims, err := v.Verify(raw)
	require.NoError(t, err)
	require.Equal(t, "user-1", claims.Subject)
	require.Equal(t, "u1@example.com", claims.Email)
	require.Equal(t, []string{"workspace:read", "workspace:write"}, claims.Scopes)
}

func TestVerifyRejectsBadTokens(t *testing.T) {
	t.Parallel()

	v := &HMACVerifier{Secret: testSecret, Issuer: "hivedesk-identity"}

	t.Run("wrong secret", func(t *testing.T) {
		raw, err := Sign([]byte("other-secret"), "hivedesk-identity", "user-1", "", nil, time.Minute)
		require.NoError(t, err)
		_, err = v.Verify(raw)
		require.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		raw, err := Sign(testSecret, "someone-else", "user-1", "", nil, time.Minute)
		require.NoError(t, err)
		_, err = v.Verify(raw)
		require.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		raw, err := Sign(testSecret, "hivedesk-identity", "user-1", "", nil, -time.Minute)
		require.NoError(t, err)
		_, err = v.Verify(raw)
		require.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("missing subject", func(t *testing.T) {
		raw, err := Sign(testSecret, "hivedesk-identity", "", "", nil, time.Minute)
		require.NoError(t, err)
		_, err = v.Verify(raw)
		require.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := v.Verify("not.a.jwt")
		require.ErrorIs(t, err, ErrInvalidToken)
	})
}
