package crypto

import (
	"errors"

	"github.com/btcsuite/btcd/btcec"
)

const (
	// PrivateKeySize is the length of a secp256k1 scalar private key.
	PrivateKeySize = 32
	// PublicKeySize is the length of an uncompressed secp256k1 public key
	// (0x04 ‖ X ‖ Y).
	PublicKeySize = 65
	// SignatureSize is the length of a compact signature: r(32) ‖ s(32) ‖
	// recovery-id(1).
	SignatureSize = 65
)

var (
	// ErrInvalidPrivateKey is returned when a private key is not 32 bytes.
	ErrInvalidPrivateKey = errors.New("crypto: invalid secp256k1 private key size")
	// ErrInvalidPublicKey is returned when a public key is not a valid
	// uncompressed secp256k1 point.
	ErrInvalidPublicKey = errors.New("crypto: invalid secp256k1 public key")
	// ErrInvalidSignature is returned by Recover when the recovery id is out
	// of range or no public key can be recovered from the signature.
	ErrInvalidSignature = errors.New("crypto: invalid signature")
)

// KeyPair is a secp256k1 scalar plus its derived uncompressed public key.
type KeyPair struct {
	PrivateKey [PrivateKeySize]byte
	PublicKey  [PublicKeySize]byte
}

// GenerateKeyPair generates a fresh secp256k1 key pair.
func GenerateKeyPair() (KeyPair, error) {
	priv, err := btcec.NewPrivateKey(btcec.S256())
	if err != nil {
		return KeyPair{}, err
	}
	var kp KeyPair
	copy(kp.PrivateKey[:], priv.Serialize())
	copy(kp.PublicKey[:], priv.PubKey().SerializeUncompressed())
	return kp, nil
}

// DerivePublicKey returns the uncompressed public key for a secp256k1
// private key.
func DerivePublicKey(priv []byte) ([PublicKeySize]byte, error) {
	var out [PublicKeySize]byte
	if len(priv) != PrivateKeySize {
		return out, ErrInvalidPrivateKey
	}
	p, pub := btcec.PrivKeyFromBytes(btcec.S256(), priv)
	if p == nil {
		return out, ErrInvalidPrivateKey
	}
	copy(out[:], pub.SerializeUncompressed())
	return out, nil
}

// Sign produces a compact, recoverable ECDSA signature over digest (which
// must be a 32-byte hash). The returned bytes are r(32) ‖ s(32) ‖
// recovery-id(1), with recovery-id in {0, 1}.
func Sign(priv []byte, digest []byte) ([SignatureSize]byte, error) {
	var out [SignatureSize]byte
	if len(priv) != PrivateKeySize {
		return out, ErrInvalidPrivateKey
	}
	p, _ := btcec.PrivKeyFromBytes(btcec.S256(), priv)
	if p == nil {
		return out, ErrInvalidPrivateKey
	}
	// btcec.SignCompact's header byte encodes recovery id + compression
	// flags in the range 27..34; normalize it back down to a bare 0/1
	// recovery id for the wire format spec.md §3 requires.
	sig, err := btcec.SignCompact(btcec.S256(), p, digest, true)
	if err != nil {
		return out, err
	}
	header := sig[0]
	recID := (header - 27) & ^byte(4)
	copy(out[:64], sig[1:])
	out[64] = recID
	return out, nil
}

// Recover recovers the uncompressed public key that produced sig over
// digest. It returns ErrInvalidSignature if the recovery id is out of range
// or the recovered point is otherwise invalid — this is a routine, non-fatal
// condition for an attacker-controlled signature and callers should treat it
// as "no public key", not as a hard decode failure.
func Recover(sig [SignatureSize]byte, digest []byte) ([PublicKeySize]byte, error) {
	var out [PublicKeySize]byte
	recID := sig[64]
	if recID > 1 {
		return out, ErrInvalidSignature
	}
	compact := make([]byte, SignatureSize)
	compact[0] = 27 + 4 + recID // compressed-key header, matches SignCompact(..., true)
	copy(compact[1:], sig[:64])

	pub, _, err := btcec.RecoverCompact(btcec.S256(), compact, digest)
	if err != nil {
		return out, ErrInvalidSignature
	}
	copy(out[:], pub.SerializeUncompressed())
	return out, nil
}
