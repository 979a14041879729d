package crypto

import "golang.org/x/crypto/sha3"

// Keccak256 returns the Keccak-256 digest of the concatenation of data.
// This is the pre-standardization Keccak variant (not SHA3-256), matching
// the digest used throughout the Ethereum/Waku crypto stack.
func Keccak256(data ...[]byte) []byte {
	h := sha3.NewLegacyKeccak256()
	for _, d := range data {
		h.Write(d)
	}
	return h.Sum(nil)
}
