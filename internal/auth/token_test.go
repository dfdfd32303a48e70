package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newTestTokens(t *testing.T, raw string) *TokenService {
	t.Helper()
	secret, err := NewSecret(raw)
	require.NoError(t, err)
	return NewTokenService(secret, time.Hour)
}

func reasonOf(t *testing.T, err error) Reason {
	t.Helper()
	var verr *VerificationError
	require.True(t, errors.As(err, &verr), "expected *VerificationError, got %v", err)
	return verr.Reason
}

func TestIssueVerifyRoundTrip(t *testing.T) {
	tokens := newTestTokens(t, testSecret)

	tok, err := tokens.Issue("user-1")
	require.NoError(t, err)
	assert.NotEmpty(t, tok.ID)
	assert.Equal(t, time.Hour, tok.ExpiresAt.Sub(tok.IssuedAt))

	p, err := tokens.Verify(tok.Value)
	require.NoError(t, err)
	assert.Equal(t, "user-1", p.IdentityID)
	assert.Equal(t, tok.ID, p.TokenID)
	assert.True(t, p.ExpiresAt.Equal(tok.ExpiresAt))
}

func TestIssueRequiresIdentity(t *testing.T) {
	tokens := newTestTokens(t, testSecret)
	_, err := tokens.Issue("")
	assert.Error(t, err)
}

func TestVerifyExpired(t *testing.T) {
	tokens := newTestTokens(t, testSecret)
	issued := time.Now().Add(-2 * time.Hour)
	tokens.now = func() time.Time { return issued }
	tok, err := tokens.Issue("user-1")
	require.NoError(t, err)

	tokens.now = time.Now
	_, err = tokens.Verify(tok.Value)
	assert.Equal(t, ReasonExpired, reasonOf(t, err))
}

func TestVerifyBadSignature(t *testing.T) {
	issuer := newTestTokens(t, testSecret)
	verifier := newTestTokens(t, "ffffffffffffffffffffffffffffffff")

	tok, err := issuer.Issue("user-1")
	require.NoError(t, err)

	_, err = verifier.Verify(tok.Value)
	assert.Equal(t, ReasonBadSignature, reasonOf(t, err))
}

func TestVerifyExpiredWinsOverBadSignature(t *testing.T) {
	issuer := newTestTokens(t, testSecret)
	issuer.now = func() time.Time { return time.Now().Add(-3 * time.Hour) }
	tok, err := issuer.Issue("user-1")
	require.NoError(t, err)

	verifier := newTestTokens(t, "ffffffffffffffffffffffffffffffff")
	_, err = verifier.Verify(tok.Value)
	assert.Equal(t, ReasonExpired, reasonOf(t, err))
}

func TestVerifyMalformedAndMissing(t *testing.T) {
	tokens := newTestTokens(t, testSecret)

	_, err := tokens.Verify("not-a-token")
	assert.Equal(t, ReasonMalformed, reasonOf(t, err))

	_, err = tokens.Verify("   ")
	assert.Equal(t, ReasonMissing, reasonOf(t, err))
}

func TestExtractBearer(t *testing.T) {
	cases := map[string]string{
		"Bearer abc":     "abc",
		"bearer abc":     "abc",
		"BEARER   abc  ": "abc",
		"abc":            "abc",
		"Bearer":         "",
		"":               "",
		"Bearerabc":      "Bearerabc",
	}
	for in, want := range cases {
		assert.Equal(t, want, ExtractBearer(in), "input %q", in)
	}
}
