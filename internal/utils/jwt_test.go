package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "unit-test-secret"

func TestAuthTokenRoundTrip(t *testing.T) {
	in := Claims{UserID: "u-1", Email: "ann@x.com", Role: "SEEKER"}
	tok, err := NewAuthToken(testSecret, in, 7*24*time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, tok.Token)
	assert.WithinDuration(t, time.Now().UTC().Add(7*24*time.Hour), tok.Exp, 5*time.Second)

	out, err := VerifyAuthToken(testSecret, tok.Token)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestVerifyAuthTokenRejectsTampering(t *testing.T) {
	tok, err := NewAuthToken(testSecret, Claims{UserID: "u-1", Email: "a@b.c", Role: "OWNER"}, time.Hour)
	require.NoError(t, err)

	// Flip one character inside the payload segment. The signature no
	// longer matches, so verification must fail.
	parts := strings.Split(tok.Token, ".")
	require.Len(t, parts, 3)
	payload := []byte(parts[1])
	mid := len(payload) / 2
	if payload[mid] == 'a' {
		payload[mid] = 'b'
	} else {
		payload[mid] = 'a'
	}
	tampered := parts[0] + "." + string(payload) + "." + parts[2]

	_, err = VerifyAuthToken(testSecret, tampered)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyAuthTokenRejectsExpired(t *testing.T) {
	tok, err := NewAuthToken(testSecret, Claims{UserID: "u-1"}, -time.Minute)
	require.NoError(t, err)

	_, err = VerifyAuthToken(testSecret, tok.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyAuthTokenRejectsWrongSecret(t *testing.T) {
	tok, err := NewAuthToken(testSecret, Claims{UserID: "u-1"}, time.Hour)
	require.NoError(t, err)

	_, err = VerifyAuthToken("a-different-secret", tok.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyAuthTokenRejectsGarbage(t *testing.T) {
	for _, raw := range []string{"", "not-a-token", "a.b", "a.b.c"} {
		_, err := VerifyAuthToken(testSecret, raw)
		assert.ErrorIs(t, err, ErrInvalidToken, "input %q", raw)
	}
}
