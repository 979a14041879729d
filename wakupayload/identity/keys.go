package identity

import (
	wpcrypto "github.com/felicio/wakupayload/wakupayload/crypto"
)

// KeyPair is a secp256k1 private key and its derived uncompressed public
// key. It is a thin re-export of wakupayload/crypto.KeyPair so callers
// outside the crypto package have a stable, documented entry point for key
// generation that doesn't require importing the primitives package
// directly.
type KeyPair = wpcrypto.KeyPair

// GenerateKeyPair generates a fresh secp256k1 key pair.
func GenerateKeyPair() (KeyPair, error) {
	return wpcrypto.GenerateKeyPair()
}

// NewKeyPair builds a KeyPair from an existing 32-byte private key,
// deriving the public key rather than requiring the caller to supply it.
func NewKeyPair(privateKey []byte) (KeyPair, error) {
	var kp KeyPair
	if len(privateKey) != wpcrypto.PrivateKeySize {
		return kp, wpcrypto.ErrInvalidPrivateKey
	}
	pub, err := wpcrypto.DerivePublicKey(privateKey)
	if err != nil {
		return kp, err
	}
	copy(kp.PrivateKey[:], privateKey)
	kp.PublicKey = pub
	return kp, nil
}
