package wallet

import (
	"crypto/ed25519"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/openlance/vouch/core"
)

// DecodeBytes interprets a signature or public key string supplied by a
// client. Wallets are inconsistent about encoding, so three forms are
// accepted: 0x-prefixed hex, base64, and bare hex, tried in that order.
func DecodeBytes(s string) ([]byte, error) {
	if strings.HasPrefix(s, "0x") {
		b, err := hexutil.Decode(s)
		if err != nil {
			return nil, fmt.Errorf("decoding 0x-prefixed value: %w", core.ErrDecodeFailed)
		}
		return b, nil
	}

	if b, err := base64.StdEncoding.DecodeString(s); err == nil {
		if len(b) == ed25519.PublicKeySize || len(b) == ed25519.SignatureSize {
			return b, nil
		}
		// A bare-hex string is frequently also valid base64. When the
		// base64 reading has an impossible length for a key or
		// signature, prefer the hex one.
		if h, herr := hex.DecodeString(s); herr == nil {
			return h, nil
		}
		return b, nil
	}

	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("value is neither base64 nor hex: %w", core.ErrDecodeFailed)
	}
	return b, nil
}
