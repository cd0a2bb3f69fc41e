package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/openlance/vouch/core"
	"github.com/openlance/vouch/internal/wallet"
	"github.com/openlance/vouch/ports"
)

// VerificationMode decides, once at startup, whether signatures are
// cryptographically enforced. Deriving this per-request from string patterns
// risks a crafted address matching a development marker in production.
type VerificationMode int

const (
	// ModeEnforced requires a valid Ed25519 signature on every login.
	ModeEnforced VerificationMode = iota

	// ModeBypass accepts logins without signature verification. Local
	// development only; never reachable in a production deployment.
	ModeBypass
)

// Development markers used by local wallet stubs. They are recognized under
// ModeBypass only, to pick the right diagnostic, and carry no meaning under
// ModeEnforced.
const (
	devSignaturePrefix      = "dev_signature_"
	devAddressPrefix        = "0xdev"
	devPublicKeyPlaceholder = "0xdev_public_key_placeholder"
)

// DefaultAccessTTL is the lifetime of issued access tokens. The session
// cookie has an independent, longer lifetime set at the transport layer.
const DefaultAccessTTL = time.Hour

// VerifyResult is the outcome of a successful login.
type VerifyResult struct {
	AccessToken string
	Identity    *core.Identity
	Verified    bool   // whether the signature was cryptographically checked
	Warning     string // set when the login was accepted without verification
}

// AuthService orchestrates the two-step wallet login: challenge issuance and
// signature verification followed by session issuance.
type AuthService struct {
	challenges ports.ChallengeStore
	users      ports.UserStore
	tokenizer  ports.Tokenizer
	eventPub   ports.EventPublisher

	mode      VerificationMode
	accessTTL time.Duration
	logger    *slog.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(
	challenges ports.ChallengeStore,
	users ports.UserStore,
	tokenizer ports.Tokenizer,
	eventPub ports.EventPublisher,
	mode VerificationMode,
) *AuthService {
	return &AuthService{
		challenges: challenges,
		users:      users,
		tokenizer:  tokenizer,
		eventPub:   eventPub,
		mode:       mode,
		accessTTL:  DefaultAccessTTL,
		logger:     slog.Default().With("component", "auth"),
	}
}

// RequestChallenge issues a new challenge for the address, invalidating any
// previous one.
func (s *AuthService) RequestChallenge(ctx context.Context, address string) (*core.Challenge, error) {
	ch, err := s.challenges.Issue(ctx, address)
	if err != nil {
		return nil, fmt.Errorf("issuing challenge: %w", err)
	}
	return ch, nil
}

// Verify checks a signed challenge and exchanges it for a session. The
// challenge is consumed on every decision branch, so a failed attempt
// requires a fresh challenge and two concurrent attempts race for one
// winner. publicKey may be empty (see the permissive no-key branch below).
func (s *AuthService) Verify(ctx context.Context, address, signature, publicKey string) (*VerifyResult, error) {
	addr := wallet.NormalizeAddress(address)

	ch, err := s.challenges.Take(ctx, addr)
	if err != nil {
		if errors.Is(err, core.ErrNoChallenge) {
			s.logger.Info("login rejected: no outstanding challenge", "address", addr)
			return nil, core.ErrNoChallenge
		}
		return nil, fmt.Errorf("reading challenge: %w", err)
	}

	if s.mode == ModeBypass {
		s.logBypass(addr, signature, publicKey)
		return s.accept(ctx, addr, false, "")
	}

	if publicKey == "" {
		// Without a public key there is nothing to verify against. Kept
		// from the legacy behavior: accept, but annotate the result so
		// callers can tell the session was never proven.
		s.logger.Warn("login accepted without public key; signature not verified", "address", addr)
		return s.accept(ctx, addr, false, "publicKey not provided; signature not verified")
	}

	sigBytes, err := wallet.DecodeBytes(signature)
	if err != nil {
		s.reject(addr, "undecodable signature", err)
		return nil, core.ErrInvalidSignature
	}
	keyBytes, err := wallet.DecodeBytes(publicKey)
	if err != nil {
		s.reject(addr, "undecodable public key", err)
		return nil, core.ErrInvalidSignature
	}

	if !wallet.VerifySignature(ch.Text, sigBytes, keyBytes) {
		s.reject(addr, "signature check failed", nil)
		return nil, core.ErrInvalidSignature
	}

	return s.accept(ctx, addr, true, "")
}

// ValidateSession verifies a session token presented on a subsequent request.
func (s *AuthService) ValidateSession(ctx context.Context, token string) (*core.Session, error) {
	return s.tokenizer.ParseSession(token)
}

// accept resolves the identity for an already-taken challenge and issues a
// session.
func (s *AuthService) accept(ctx context.Context, addr string, verified bool, warning string) (*VerifyResult, error) {
	identity, err := s.resolveIdentity(ctx, addr)
	if err != nil {
		return nil, err
	}

	token, err := s.tokenizer.IssueSession(identity, s.accessTTL)
	if err != nil {
		return nil, fmt.Errorf("issuing session: %w", err)
	}

	if s.eventPub != nil {
		if err := s.eventPub.PublishLogin(ctx, identity.ID, addr, verified); err != nil {
			// Analytics consumers can catch up later; the login stands.
			s.logger.Warn("failed to publish login event", "address", addr, "error", err)
		}
	}

	return &VerifyResult{
		AccessToken: token,
		Identity:    identity,
		Verified:    verified,
		Warning:     warning,
	}, nil
}

// reject logs the server-side diagnostic for a failed attempt. The challenge
// was already taken, so the attempt burned it; the caller reports a uniform
// unauthorized outcome with none of this detail.
func (s *AuthService) reject(addr, reason string, err error) {
	s.logger.Info("login rejected", "address", addr, "reason", reason, "error", err)
}

// resolveIdentity finds the identity for the address, creating one on first
// login. A concurrent first login for the same address loses the insert race
// and re-reads the winning row.
func (s *AuthService) resolveIdentity(ctx context.Context, addr string) (*core.Identity, error) {
	identity, err := s.users.FindByWallet(ctx, addr)
	if err == nil {
		return identity, nil
	}
	if !errors.Is(err, core.ErrIdentityNotFound) {
		return nil, fmt.Errorf("looking up identity: %w", err)
	}

	identity = &core.Identity{
		ID:            uuid.New().String(),
		WalletAddress: addr,
		Email:         addr + "@wallet.generated",
		Name:          displayName(addr),
		CreatedAt:     time.Now(),
	}

	err = s.users.Create(ctx, identity)
	if err == nil {
		s.logger.Info("created identity for wallet", "address", addr, "user_id", identity.ID)
		return identity, nil
	}
	if !errors.Is(err, core.ErrIdentityConflict) {
		return nil, fmt.Errorf("creating identity: %w", err)
	}

	// Lost the race to a parallel first login; the row exists now.
	identity, err = s.users.FindByWallet(ctx, addr)
	if err != nil {
		return nil, fmt.Errorf("re-reading identity after conflict: %w", err)
	}
	return identity, nil
}

// logBypass records which development marker (if any) triggered the bypass,
// for parity with local wallet stubs.
func (s *AuthService) logBypass(addr, signature, publicKey string) {
	switch {
	case strings.HasPrefix(signature, devSignaturePrefix):
		s.logger.Warn("bypassing signature verification: development signature", "address", addr)
	case strings.HasPrefix(addr, devAddressPrefix):
		s.logger.Warn("bypassing signature verification: development address", "address", addr)
	case publicKey == devPublicKeyPlaceholder || publicKey == "":
		s.logger.Warn("bypassing signature verification: development public key", "address", addr)
	default:
		s.logger.Warn("bypassing signature verification: bypass mode enabled", "address", addr)
	}
}

// displayName derives a human-readable name from the address prefix.
func displayName(addr string) string {
	prefix := addr
	if len(prefix) > 8 {
		prefix = prefix[:8]
	}
	return "Wallet User " + prefix + "..."
}
