package tokenizer

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openlance/vouch/core"
)

func testIdentity() *core.Identity {
	return &core.Identity{
		ID:            "user-1",
		WalletAddress: "0xabc",
		Email:         "0xabc@wallet.generated",
		Name:          "Wallet User 0xabc...",
	}
}

func TestIssueAndParseSession(t *testing.T) {
	tk := NewJWTTokenizer("test-secret")

	token, err := tk.IssueSession(testIdentity(), time.Hour)
	require.NoError(t, err)

	session, err := tk.ParseSession(token)
	require.NoError(t, err)

	assert.Equal(t, "user-1", session.Subject)
	assert.Equal(t, "0xabc@wallet.generated", session.Email)
	assert.True(t, session.Wallet)
	assert.WithinDuration(t, time.Now().Add(time.Hour), session.ExpiresAt, 5*time.Second)
}

func TestParseSessionWrongSecret(t *testing.T) {
	token, err := NewJWTTokenizer("secret-a").IssueSession(testIdentity(), time.Hour)
	require.NoError(t, err)

	_, err = NewJWTTokenizer("secret-b").ParseSession(token)
	assert.True(t, errors.Is(err, core.ErrInvalidToken))
}

func TestParseSessionExpired(t *testing.T) {
	tk := NewJWTTokenizer("test-secret")

	token, err := tk.IssueSession(testIdentity(), -time.Minute)
	require.NoError(t, err)

	_, err = tk.ParseSession(token)
	assert.True(t, errors.Is(err, core.ErrTokenExpired))
}

func TestParseSessionMissingTimestampClaims(t *testing.T) {
	tk := NewJWTTokenizer("test-secret")

	// Correctly-signed tokens that omit exp/iat must be rejected, not
	// dereferenced.
	cases := map[string]jwt.MapClaims{
		"no timestamps": {"sub": "user-1"},
		"no iat":        {"sub": "user-1", "exp": time.Now().Add(time.Hour).Unix()},
	}

	for name, claims := range cases {
		t.Run(name, func(t *testing.T) {
			token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
			require.NoError(t, err)

			_, err = tk.ParseSession(token)
			assert.True(t, errors.Is(err, core.ErrInvalidToken))
		})
	}
}

func TestParseSessionGarbage(t *testing.T) {
	tk := NewJWTTokenizer("test-secret")

	_, err := tk.ParseSession("not.a.jwt")
	assert.True(t, errors.Is(err, core.ErrInvalidToken))
}

func TestIndependentLifetimes(t *testing.T) {
	tk := NewJWTTokenizer("test-secret")

	short, err := tk.IssueSession(testIdentity(), time.Hour)
	require.NoError(t, err)
	long, err := tk.IssueSession(testIdentity(), 7*24*time.Hour)
	require.NoError(t, err)

	shortSession, err := tk.ParseSession(short)
	require.NoError(t, err)
	longSession, err := tk.ParseSession(long)
	require.NoError(t, err)

	assert.True(t, longSession.ExpiresAt.After(shortSession.ExpiresAt.Add(6*24*time.Hour)))
}
