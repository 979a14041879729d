package ecies

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/elliptic"
	"crypto/hmac"
	"crypto/rand"
	"crypto/subtle"
	"encoding/binary"
	"errors"
	"hash"
	"io"
	"math/big"

	"github.com/btcsuite/btcd/btcec"

	wpcrypto "github.com/felicio/wakupayload/wakupayload/crypto"
)

var (
	// ErrDecryptionFailed is returned on MAC mismatch or an unusable shared
	// secret (point at infinity). It is the same sentinel crypto's
	// AES-GCM wrapper uses, so callers can match on one error regardless
	// of which outer encryption scheme produced it.
	ErrDecryptionFailed = wpcrypto.ErrDecryptionFailed
	// ErrInvalidPublicKey is returned when the embedded ephemeral public key
	// (or the recipient public key passed to Encrypt) is not a valid
	// uncompressed secp256k1 point.
	ErrInvalidPublicKey = errors.New("ecies: invalid public key")
	// ErrMalformedEnvelope is returned when a ciphertext blob is too short
	// to contain its required fields.
	ErrMalformedEnvelope = wpcrypto.ErrMalformedEnvelope
)

const (
	ephemeralPubSize = wpcrypto.PublicKeySize // 65
	macSize          = 32                     // HMAC-SHA256
)

// Encrypt encrypts data to the recipient's uncompressed secp256k1 public
// key, returning ephemeral_pub(65) ‖ iv(16) ‖ ciphertext(N) ‖ mac(32).
func Encrypt(pub *[wpcrypto.PublicKeySize]byte, data []byte) ([]byte, error) {
	curve := btcec.S256()
	pubX, pubY := elliptic.Unmarshal(curve, pub[:])
	if pubX == nil {
		return nil, ErrInvalidPublicKey
	}

	ephD, ephX, ephY, err := generateKey(curve)
	if err != nil {
		return nil, err
	}

	sx, _ := curve.ScalarMult(pubX, pubY, ephD.Bytes())
	if sx == nil {
		return nil, ErrDecryptionFailed
	}
	z := sharedSecretBytes(sx, curve)

	params := secp256k1Params
	ke, km := deriveKeys(params.Hash, z, params.KeyLen)

	iv := make([]byte, params.BlockSize)
	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return nil, err
	}

	ciphertext, err := ctrXOR(ke, iv, data)
	if err != nil {
		return nil, err
	}

	tag := messageTag(params.Hash, km, iv, ciphertext)

	ephPub := elliptic.Marshal(curve, ephX, ephY)
	out := make([]byte, 0, len(ephPub)+len(iv)+len(ciphertext)+len(tag))
	out = append(out, ephPub...)
	out = append(out, iv...)
	out = append(out, ciphertext...)
	out = append(out, tag...)
	return out, nil
}

// Decrypt reverses Encrypt. The MAC is checked in constant time before the
// plaintext is released.
func Decrypt(priv *[wpcrypto.PrivateKeySize]byte, blob []byte) ([]byte, error) {
	params := secp256k1Params
	minLen := ephemeralPubSize + params.BlockSize + macSize
	if len(blob) < minLen {
		return nil, ErrMalformedEnvelope
	}

	ephPubBytes := blob[:ephemeralPubSize]
	iv := blob[ephemeralPubSize : ephemeralPubSize+params.BlockSize]
	ciphertext := blob[ephemeralPubSize+params.BlockSize : len(blob)-macSize]
	tag := blob[len(blob)-macSize:]

	curve := btcec.S256()
	ephX, ephY := elliptic.Unmarshal(curve, ephPubBytes)
	if ephX == nil {
		return nil, ErrInvalidPublicKey
	}

	d := new(big.Int).SetBytes(priv[:])
	sx, _ := curve.ScalarMult(ephX, ephY, d.Bytes())
	if sx == nil {
		return nil, ErrDecryptionFailed
	}
	z := sharedSecretBytes(sx, curve)

	ke, km := deriveKeys(params.Hash, z, params.KeyLen)

	expected := messageTag(params.Hash, km, iv, ciphertext)
	if subtle.ConstantTimeCompare(expected, tag) != 1 {
		return nil, ErrDecryptionFailed
	}

	return ctrXOR(ke, iv, ciphertext)
}

// generateKey draws a fresh ephemeral scalar on curve, per the same
// approach as elliptic.GenerateKey but kept local so the generated scalar
// is available for the ECDH multiply above without re-deriving it.
func generateKey(curve *btcec.KoblitzCurve) (d *big.Int, x, y *big.Int, err error) {
	priv, err := btcec.NewPrivateKey(curve)
	if err != nil {
		return nil, nil, nil, err
	}
	d = new(big.Int).SetBytes(priv.Serialize())
	x, y = priv.PubKey().X, priv.PubKey().Y
	return d, x, y, nil
}

// sharedSecretBytes renders the X coordinate of a ScalarMult result as a
// fixed-width big-endian byte string sized to the curve, matching
// go-ethereum's GenerateShared.
func sharedSecretBytes(x *big.Int, curve *btcec.KoblitzCurve) []byte {
	byteLen := (curve.Params().BitSize + 7) / 8
	buf := make([]byte, byteLen)
	xb := x.Bytes()
	copy(buf[byteLen-len(xb):], xb)
	return buf
}

// concatKDF implements the NIST SP 800-56 concatenation KDF, exactly as
// go-ethereum's crypto/ecies package does.
func concatKDF(h hash.Hash, z []byte, kdLen int) []byte {
	counterBytes := make([]byte, 4)
	k := make([]byte, 0, roundup(kdLen, h.Size()))
	for counter := uint32(1); len(k) < kdLen; counter++ {
		binary.BigEndian.PutUint32(counterBytes, counter)
		h.Reset()
		h.Write(counterBytes)
		h.Write(z)
		k = h.Sum(k)
	}
	return k[:kdLen]
}

func roundup(size, blockSize int) int {
	return size + blockSize - (size % blockSize)
}

func deriveKeys(hashCtor func() hash.Hash, z []byte, keyLen int) (ke, km []byte) {
	h := hashCtor()
	k := concatKDF(h, z, 2*keyLen)
	ke = k[:keyLen]
	kmRaw := k[keyLen:]
	h.Reset()
	h.Write(kmRaw)
	km = h.Sum(nil)
	return ke, km
}

func messageTag(hashCtor func() hash.Hash, km, iv, ciphertext []byte) []byte {
	mac := hmac.New(hashCtor, km)
	mac.Write(iv)
	mac.Write(ciphertext)
	return mac.Sum(nil)
}

func ctrXOR(key, iv, in []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	stream := cipher.NewCTR(block, iv)
	out := make([]byte, len(in))
	stream.XORKeyStream(out, in)
	return out, nil
}
