package ports

import (
	"context"

	"github.com/openlance/vouch/core"
)

// UserStore is the external user-record collaborator. Wallet address
// uniqueness is enforced here; concurrent creation for the same address
// surfaces core.ErrIdentityConflict, which callers recover by re-reading.
type UserStore interface {
	// FindByWallet returns the identity for a lowercase wallet address,
	// or core.ErrIdentityNotFound.
	FindByWallet(ctx context.Context, address string) (*core.Identity, error)

	// FindByID returns the identity with the given user ID, or
	// core.ErrIdentityNotFound.
	FindByID(ctx context.Context, id string) (*core.Identity, error)

	// Create inserts a new identity. Returns core.ErrIdentityConflict if
	// an identity with the same wallet address (or email) already exists.
	Create(ctx context.Context, identity *core.Identity) error
}
