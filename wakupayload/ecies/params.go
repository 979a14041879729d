package ecies

import (
	"crypto/sha256"
	"hash"
)

// Params describes the KDF/cipher/MAC parameters for one ECIES ciphersuite.
// This mirrors go-ethereum's ECIESParams, trimmed to the single ciphersuite
// this codec uses.
type Params struct {
	Hash      func() hash.Hash // hash used by the KDF and the HMAC tag
	KeyLen    int              // length in bytes of the AES key derived from the shared secret
	BlockSize int              // AES block size, also the CTR IV length
}

// secp256k1Params is the one ciphersuite this codec speaks: AES-128-CTR
// with an HMAC-SHA256 tag, matching go-ethereum's parameter choice for a
// 256-bit curve.
var secp256k1Params = &Params{
	Hash:      sha256.New,
	KeyLen:    16,
	BlockSize: 16,
}
