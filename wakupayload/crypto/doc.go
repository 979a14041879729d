// Package crypto provides the layer-1 cryptographic primitives used by the
// payload codec, plus the AES-256-GCM symmetric outer wrapper built directly
// on top of them.
//
// Contents
//
//   - CSPRNG byte generation (RandomBytes)
//   - Keccak256 digest (Keccak256)
//   - Raw AES-256-GCM seal/open (EncryptAESGCM, DecryptAESGCM)
//   - The cipher‖tag‖iv symmetric wire wrapper (EncryptSymmetric, DecryptSymmetric)
//   - secp256k1 key generation, compact ECDSA signing, and public-key
//     recovery (GenerateKeyPair, Sign, Recover, DerivePublicKey)
//
// Every function here is a pure, synchronous function of its inputs. None
// retains state across calls, and private key material is never logged.
package crypto
