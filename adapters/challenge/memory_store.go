package challenge

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"github.com/openlance/vouch/core"
	"github.com/openlance/vouch/internal/wallet"
	"github.com/openlance/vouch/ports"
)

const (
	// nonceBytes is the entropy of the random nonce embedded in each
	// challenge.
	nonceBytes = 16

	// DefaultTTL is the maximum age of a challenge before it is treated
	// as absent.
	DefaultTTL = 5 * time.Minute
)

// challengeText renders the human-readable challenge presented to the wallet.
func challengeText(nonce string) string {
	return "Sign this challenge: " + nonce
}

// newChallenge builds a challenge with a fresh random nonce for a normalized
// address.
func newChallenge(address string) (*core.Challenge, error) {
	buf := make([]byte, nonceBytes)
	if _, err := rand.Read(buf); err != nil {
		return nil, fmt.Errorf("generating nonce: %w", err)
	}
	return &core.Challenge{
		Address:   address,
		Text:      challengeText(hex.EncodeToString(buf)),
		CreatedAt: time.Now(),
	}, nil
}

// MemoryStore is an in-memory implementation of the ChallengeStore interface.
// Suitable for single-instance deployments and tests; multi-instance
// deployments share challenges through the Redis store instead.
type MemoryStore struct {
	entries map[string]*core.Challenge
	ttl     time.Duration
	mu      sync.Mutex
}

// NewMemoryStore creates an in-memory challenge store with the given maximum
// challenge age. A non-positive ttl falls back to DefaultTTL.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryStore{
		entries: make(map[string]*core.Challenge),
		ttl:     ttl,
	}
}

// Issue generates and stores a new challenge, replacing any prior entry for
// the address.
func (s *MemoryStore) Issue(ctx context.Context, address string) (*core.Challenge, error) {
	address = wallet.NormalizeAddress(address)

	ch, err := newChallenge(address)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.entries[address] = ch
	s.mu.Unlock()

	return ch, nil
}

// Peek returns the live challenge for the address. Expired entries are
// removed and reported as absent.
func (s *MemoryStore) Peek(ctx context.Context, address string) (*core.Challenge, error) {
	address = wallet.NormalizeAddress(address)

	s.mu.Lock()
	defer s.mu.Unlock()

	ch, ok := s.entries[address]
	if !ok {
		return nil, core.ErrNoChallenge
	}
	if time.Since(ch.CreatedAt) > s.ttl {
		delete(s.entries, address)
		return nil, core.ErrNoChallenge
	}
	return ch, nil
}

// Take returns and removes the live challenge for the address in one
// critical section; only one of several concurrent callers gets it.
func (s *MemoryStore) Take(ctx context.Context, address string) (*core.Challenge, error) {
	address = wallet.NormalizeAddress(address)

	s.mu.Lock()
	defer s.mu.Unlock()

	ch, ok := s.entries[address]
	if !ok {
		return nil, core.ErrNoChallenge
	}
	delete(s.entries, address)
	if time.Since(ch.CreatedAt) > s.ttl {
		return nil, core.ErrNoChallenge
	}
	return ch, nil
}

// Consume removes the challenge for the address. Idempotent.
func (s *MemoryStore) Consume(ctx context.Context, address string) error {
	address = wallet.NormalizeAddress(address)

	s.mu.Lock()
	delete(s.entries, address)
	s.mu.Unlock()

	return nil
}

var _ ports.ChallengeStore = (*MemoryStore)(nil)
