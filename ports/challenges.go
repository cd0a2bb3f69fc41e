package ports

import (
	"context"

	"github.com/openlance/vouch/core"
)

// ChallengeStore holds outstanding challenges keyed by lowercase wallet
// address. At most one live challenge exists per address; issuing a new one
// replaces the previous entry.
type ChallengeStore interface {
	// Issue generates a fresh challenge for the address, replacing any
	// prior entry, and returns it.
	Issue(ctx context.Context, address string) (*core.Challenge, error)

	// Peek returns the live challenge for the address without consuming
	// it. Absent or expired entries return core.ErrNoChallenge.
	Peek(ctx context.Context, address string) (*core.Challenge, error)

	// Take atomically returns and consumes the live challenge for the
	// address, so concurrent callers race for at most one winner. Absent
	// or expired entries return core.ErrNoChallenge.
	Take(ctx context.Context, address string) (*core.Challenge, error)

	// Consume removes the challenge for the address. Removing an absent
	// entry is not an error.
	Consume(ctx context.Context, address string) error
}
