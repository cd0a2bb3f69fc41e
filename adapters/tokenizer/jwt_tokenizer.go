package tokenizer

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/openlance/vouch/core"
	"github.com/openlance/vouch/ports"
)

// JWTTokenizer implements the Tokenizer interface with HS256 over a shared
// secret. It has no external dependencies beyond the secret, so issuance can
// never fail for wiring reasons.
type JWTTokenizer struct {
	secret []byte
}

// NewJWTTokenizer creates a tokenizer signing with the given secret.
func NewJWTTokenizer(secret string) *JWTTokenizer {
	return &JWTTokenizer{secret: []byte(secret)}
}

// IssueSession signs a session token for the identity with the given
// lifetime.
func (j *JWTTokenizer) IssueSession(identity *core.Identity, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Email:  identity.Email,
		Wallet: true,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(j.secret)
	if err != nil {
		return "", fmt.Errorf("signing session token: %w", err)
	}
	return signed, nil
}

// ParseSession verifies a session token and returns the session it asserts.
func (j *JWTTokenizer) ParseSession(tokenStr string) (*core.Session, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return j.secret, nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, core.ErrTokenExpired
		}
		return nil, fmt.Errorf("parsing session token: %w", core.ErrInvalidToken)
	}
	if !token.Valid {
		return nil, core.ErrInvalidToken
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok {
		return nil, core.ErrInvalidToken
	}

	// A correctly-signed token may still omit the timestamp claims;
	// sessions issued here always carry both.
	if claims.IssuedAt == nil || claims.ExpiresAt == nil {
		return nil, core.ErrInvalidToken
	}

	return &core.Session{
		Subject:   claims.Subject,
		Email:     claims.Email,
		Wallet:    claims.Wallet,
		IssuedAt:  claims.IssuedAt.Time,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

var _ ports.Tokenizer = (*JWTTokenizer)(nil)
