package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-signing-secret"

func TestIssueVerifyRoundTrip(t *testing.T) {
	signed, err := Issue("6502f1a2b3c4d5e6f7a8b9c0", "AGT-1234ABCD", "agent@example.com", testSecret, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	claims, err := Verify(signed, testSecret)
	require.NoError(t, err)

	assert.Equal(t, "6502f1a2b3c4d5e6f7a8b9c0", claims.PrincipalID)
	assert.Equal(t, "AGT-1234ABCD", claims.PrincipalCode)
	assert.Equal(t, "agent@example.com", claims.Email)
}

func TestVerifyExpiredToken(t *testing.T) {
	signed, err := Issue("id", "code", "a@b.com", testSecret, -time.Hour)
	require.NoError(t, err)

	claims, err := Verify(signed, testSecret)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestVerifyWrongSecret(t *testing.T) {
	signed, err := Issue("id", "code", "a@b.com", testSecret, time.Hour)
	require.NoError(t, err)

	claims, err := Verify(signed, "some-other-secret")
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestVerifyMalformedToken(t *testing.T) {
	for _, raw := range []string{"", "garbage", "a.b", "a.b.c"} {
		claims, err := Verify(raw, testSecret)
		assert.Nil(t, claims, "token %q", raw)
		assert.ErrorIs(t, err, ErrTokenInvalid, "token %q", raw)
	}
}

func TestIssueDefaultValidityWindow(t *testing.T) {
	signed, err := IssueDefault("id", "code", "a@b.com", testSecret)
	require.NoError(t, err)

	claims, err := Verify(signed, testSecret)
	require.NoError(t, err)

	expected := time.Now().Add(DefaultValidityDays * 24 * time.Hour)
	assert.WithinDuration(t, expected, claims.ExpiresAt.Time, time.Minute)
}
