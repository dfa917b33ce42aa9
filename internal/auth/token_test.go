package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenIssuer_RoundTrip(t *testing.T) {
	issuer, err := NewTokenIssuer("s3cr3t", time.Minute)
	require.NoError(t, err)

	token, exp, err := issuer.Issue(42, "usuario@email.com")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Minute), exp, 5*time.Second)

	claims, err := issuer.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "42", claims.Subject)
	assert.Equal(t, "usuario@email.com", claims.Email)
}

func TestTokenIssuer_RejectsForeignSecret(t *testing.T) {
	issuer, err := NewTokenIssuer("one", time.Minute)
	require.NoError(t, err)
	other, err := NewTokenIssuer("two", time.Minute)
	require.NoError(t, err)

	token, _, err := issuer.Issue(1, "a@b.c")
	require.NoError(t, err)

	_, err = other.Parse(token)
	assert.Error(t, err)
}

func TestTokenIssuer_Expired(t *testing.T) {
	issuer, err := NewTokenIssuer("s3cr3t", time.Minute)
	require.NoError(t, err)

	issuer.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	token, _, err := issuer.Issue(1, "a@b.c")
	require.NoError(t, err)

	issuer.now = time.Now
	_, err = issuer.Parse(token)
	assert.Error(t, err)
}

func TestNewTokenIssuer_RequiresSecret(t *testing.T) {
	_, err := NewTokenIssuer("", time.Minute)
	assert.Error(t, err)
}
