// Package identity provides small convenience helpers around secp256k1 key
// material: generating a key pair and computing a stable fingerprint for a
// public key. Neither is required by the wire codec itself — the codec
// takes raw key bytes at every call site — but both are the kind of
// bookkeeping a caller managing several keys needs, and are grounded on the
// equivalent convenience layer the teacher library keeps around its own
// identity primitive.
package identity
