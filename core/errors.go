package core

import "errors"

var (
	ErrNoChallenge      = errors.New("no challenge found for address")
	ErrInvalidSignature = errors.New("invalid signature")
	ErrDecodeFailed     = errors.New("malformed signature or public key encoding")
	ErrIdentityConflict = errors.New("identity already exists for address")
	ErrIdentityNotFound = errors.New("identity not found")
	ErrInvalidToken     = errors.New("invalid token")
	ErrTokenExpired     = errors.New("token has expired")
)
