package crypto

// EncryptSymmetric encrypts data under key (AES-256-GCM) and returns
// cipher‖tag‖iv. A fresh random IV is generated for every call; key must be
// 32 bytes.
//
// The IV is appended after the ciphertext and tag rather than prepended.
// This layout is unconventional but required for interop with peers
// implementing the same wire format — do not "fix" it.
func EncryptSymmetric(data, key []byte) ([]byte, error) {
	iv, err := RandomBytes(GCMIVSize)
	if err != nil {
		return nil, err
	}
	cipherAndTag, err := EncryptAESGCM(key, iv, data)
	if err != nil {
		return nil, err
	}
	out := make([]byte, len(cipherAndTag)+GCMIVSize)
	copy(out, cipherAndTag)
	copy(out[len(cipherAndTag):], iv)
	return out, nil
}

// DecryptSymmetric reverses EncryptSymmetric. It returns ErrMalformedEnvelope
// if blob is too short to contain a trailing IV, rather than panicking on an
// out-of-range slice.
func DecryptSymmetric(blob, key []byte) ([]byte, error) {
	if len(blob) < GCMIVSize {
		return nil, ErrMalformedEnvelope
	}
	split := len(blob) - GCMIVSize
	iv := blob[split:]
	cipherAndTag := blob[:split]
	return DecryptAESGCM(key, iv, cipherAndTag)
}
