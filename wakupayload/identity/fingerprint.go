package identity

import (
	"encoding/hex"
	"errors"

	wpcrypto "github.com/felicio/wakupayload/wakupayload/crypto"
)

// Fingerprint is a stable identifier for a secp256k1 public key, derived
// the way the Ethereum/Waku ecosystem this codec interoperates with derives
// an address from a key: Keccak256 of the 64-byte X‖Y coordinate pair (the
// uncompressed key with its leading 0x04 prefix stripped), truncated to the
// trailing 20 bytes of the digest.
//
// This reuses the same Keccak256 primitive the signing layer already needs
// (wakupayload/crypto.Keccak256), rather than introducing a second hash
// algorithm purely for display purposes.
type Fingerprint [20]byte

// FingerprintFromPublicKey computes the fingerprint of an uncompressed
// secp256k1 public key (0x04 ‖ X ‖ Y, wpcrypto.PublicKeySize bytes).
func FingerprintFromPublicKey(pub []byte) (Fingerprint, error) {
	var fp Fingerprint
	if len(pub) != wpcrypto.PublicKeySize || pub[0] != 0x04 {
		return fp, errors.New("identity: not an uncompressed secp256k1 public key")
	}
	digest := wpcrypto.Keccak256(pub[1:])
	copy(fp[:], digest[len(digest)-len(fp):])
	return fp, nil
}

// ParseFingerprintHex parses the hex form produced by Fingerprint.String.
func ParseFingerprintHex(s string) (Fingerprint, error) {
	var fp Fingerprint
	b, err := hex.DecodeString(s)
	if err != nil {
		return fp, err
	}
	if len(b) != len(fp) {
		return fp, errors.New("identity: invalid fingerprint length")
	}
	copy(fp[:], b)
	return fp, nil
}

func (fp Fingerprint) String() string {
	return hex.EncodeToString(fp[:])
}
