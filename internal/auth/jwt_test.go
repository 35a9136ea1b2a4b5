package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTokens_IssueAndVerify(t *testing.T) {
	tokens := NewTokens([]byte("test-secret"), time.Hour)

	tok, err := tokens.Issue("user-1", "CLIENT")
	require.NoError(t, err)

	claims, err := tokens.Verify(tok)
	require.NoError(t, err)
	require.Equal(t, "user-1", claims.Subject)
	require.Equal(t, "CLIENT", claims.Role)
}

func TestTokens_Expired(t *testing.T) {
	// A negative TTL produces a token whose expiry is already behind us.
	tokens := NewTokens([]byte("test-secret"), -time.Minute)

	tok, err := tokens.Issue("user-1", "CLIENT")
	require.NoError(t, err)

	_, err = tokens.Verify(tok)
	require.ErrorIs(t, err, ErrTokenExpired)
}

func TestTokens_WrongSecret(t *testing.T) {
	issuer := NewTokens([]byte("secret-a"), time.Hour)
	verifier := NewTokens([]byte("secret-b"), time.Hour)

	tok, err := issuer.Issue("user-1", "ADMIN")
	require.NoError(t, err)

	_, err = verifier.Verify(tok)
	require.ErrorIs(t, err, ErrTokenSignature)
}

func TestTokens_Malformed(t *testing.T) {
	tokens := NewTokens([]byte("test-secret"), time.Hour)

	_, err := tokens.Verify("not-a-token")
	require.ErrorIs(t, err, ErrTokenMalformed)

	_, err = tokens.Verify("")
	require.ErrorIs(t, err, ErrTokenMalformed)
}

func TestTokens_MissingClaims(t *testing.T) {
	tokens := NewTokens([]byte("test-secret"), time.Hour)

	tok, err := tokens.Issue("", "")
	require.NoError(t, err)

	_, err = tokens.Verify(tok)
	require.ErrorIs(t, err, ErrTokenMalformed)
}
