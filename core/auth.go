package core

import "time"

// Challenge is an outstanding authentication challenge for a wallet address.
type Challenge struct {
	Address   string    // Wallet address, lowercase
	Text      string    // Full challenge text presented to the wallet for signing
	CreatedAt time.Time // When the challenge was issued
}

// Identity is a durable user record resolved from a verified wallet address.
type Identity struct {
	ID            string    // Unique user identifier
	WalletAddress string    // Wallet address, lowercase, unique per identity
	Email         string    // Synthesized placeholder email for wallet-only users
	Name          string    // Display name derived from the address prefix
	CreatedAt     time.Time // When the identity was first created
}

// Session is an authenticated session bound to an identity.
type Session struct {
	Subject   string    // User ID the session asserts
	Email     string    // Email carried in the session claims
	Wallet    bool      // Whether the session was established via wallet auth
	IssuedAt  time.Time // When the session was created
	ExpiresAt time.Time // When the session expires
}
