package wallet

import "crypto/ed25519"

// VerifySignature checks a detached Ed25519 signature over the formatted
// sign-message wrapper around the challenge. Malformed key or signature
// lengths report false rather than panicking.
func VerifySignature(challenge string, signature, publicKey []byte) bool {
	if len(publicKey) != ed25519.PublicKeySize || len(signature) != ed25519.SignatureSize {
		return false
	}
	msg := []byte(FormatSignMessage(challenge))
	return ed25519.Verify(ed25519.PublicKey(publicKey), msg, signature)
}
