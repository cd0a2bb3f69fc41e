package users

import (
	"context"
	"sync"

	"github.com/openlance/vouch/core"
	"github.com/openlance/vouch/ports"
)

// MemoryStore is an in-memory implementation of the UserStore interface,
// primarily for tests.
type MemoryStore struct {
	byWallet map[string]*core.Identity
	mu       sync.RWMutex
}

// NewMemoryStore creates an empty in-memory user store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byWallet: make(map[string]*core.Identity),
	}
}

// FindByWallet returns the identity for a lowercase wallet address.
func (s *MemoryStore) FindByWallet(ctx context.Context, address string) (*core.Identity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	identity, ok := s.byWallet[address]
	if !ok {
		return nil, core.ErrIdentityNotFound
	}
	cp := *identity
	return &cp, nil
}

// FindByID returns the identity with the given user ID.
func (s *MemoryStore) FindByID(ctx context.Context, id string) (*core.Identity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, identity := range s.byWallet {
		if identity.ID == id {
			cp := *identity
			return &cp, nil
		}
	}
	return nil, core.ErrIdentityNotFound
}

// Create inserts a new identity, enforcing wallet address uniqueness.
func (s *MemoryStore) Create(ctx context.Context, identity *core.Identity) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byWallet[identity.WalletAddress]; exists {
		return core.ErrIdentityConflict
	}
	cp := *identity
	s.byWallet[identity.WalletAddress] = &cp
	return nil
}

var _ ports.UserStore = (*MemoryStore)(nil)
