// Package wallet implements the signing conventions of Aptos-style wallets:
// the sign-message wrapper, signature/key decoding, and Ed25519 verification.
package wallet

import (
	"fmt"
	"strings"
)

// signMessagePrefix is the chain tag wallets prepend when signing an
// application-supplied message.
const signMessagePrefix = "APTOS"

// FormatSignMessage wraps a challenge the way wallets format it before
// signing. Wallets never sign the raw challenge text, so verification must
// target this exact form.
func FormatSignMessage(challenge string) string {
	return fmt.Sprintf("%s\nmessage: %s", signMessagePrefix, challenge)
}

// NormalizeAddress lowercases a wallet address. Addresses are compared and
// stored exclusively in this form.
func NormalizeAddress(address string) string {
	return strings.ToLower(address)
}
