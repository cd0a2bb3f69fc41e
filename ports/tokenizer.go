package ports

import (
	"time"

	"github.com/openlance/vouch/core"
)

// Tokenizer converts between identities and signed session tokens.
type Tokenizer interface {
	// IssueSession signs a session token for the identity with the given
	// lifetime.
	IssueSession(identity *core.Identity, ttl time.Duration) (string, error)

	// ParseSession verifies a session token and returns the session it
	// asserts. Expired or tampered tokens return core.ErrTokenExpired or
	// core.ErrInvalidToken.
	ParseSession(token string) (*core.Session, error)
}
