// Package ecies implements the hybrid ECIES asymmetric encryption scheme
// used as the "outer" encryption layer of the payload codec.
//
// The construction mirrors go-ethereum's crypto/ecies package (concatenation
// KDF over SHA-256, AES-128-CTR, HMAC-SHA256 message tag) rebound to the
// secp256k1 curve, because that construction is what the wire format this
// codec interoperates with actually speaks. It is re-implemented here rather
// than vendored, against the fixed wire layout:
//
//	ephemeral_pub(65) ‖ iv(16) ‖ ciphertext(N) ‖ mac(32)
package ecies
