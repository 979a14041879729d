package envelope

import (
	"errors"
	"fmt"

	wpcrypto "github.com/felicio/wakupayload/wakupayload/crypto"
)

var (
	// ErrMalformedEnvelope is returned by ClearDecode when the flags
	// size-field is zero, a declared field runs past the end of the
	// message, or the total length is not a positive multiple of
	// PaddingTarget.
	ErrMalformedEnvelope = wpcrypto.ErrMalformedEnvelope
	// ErrPaddingGenerationFailed is returned when the random padding
	// generator produced the wrong number of bytes, or produced an
	// all-zero block longer than 3 bytes (a sign of a broken RNG).
	ErrPaddingGenerationFailed = errors.New("envelope: padding generation failed")
	// ErrPayloadTooLarge is returned by ClearEncode when payload needs a
	// size-field wider than the flags byte's two size-field bits can
	// declare (MaxPayloadLen bytes).
	ErrPayloadTooLarge = errors.New("envelope: payload too large for a 2-bit size-field length")
)

// Signature is a compact, recoverable secp256k1 ECDSA signature over an
// envelope, plus the public key it binds to.
//
// PublicKey is nil when recovery failed (out-of-range recovery id, or a
// point-at-infinity result) — per spec, an attacker-controlled signature
// must not prevent payload inspection, so recovery failure is not a hard
// decode error.
type Signature struct {
	R          [32]byte
	S          [32]byte
	RecoveryID byte
	PublicKey  *[wpcrypto.PublicKeySize]byte
}

// Bytes returns the compact 65-byte r‖s‖recovery-id wire form.
func (s Signature) Bytes() [wpcrypto.SignatureSize]byte {
	var out [wpcrypto.SignatureSize]byte
	copy(out[:32], s.R[:])
	copy(out[32:64], s.S[:])
	out[64] = s.RecoveryID
	return out
}

// ClearEncode builds the clear envelope for payload: flags ‖ size-field ‖
// payload ‖ padding ‖ [signature]. If sigPrivKey is non-nil the envelope is
// signed and the returned Signature's PublicKey is the uncompressed public
// key derived from sigPrivKey (not a recovered one — the signer always
// knows its own key).
func ClearEncode(payload []byte, sigPrivKey *[wpcrypto.PrivateKeySize]byte) ([]byte, *Signature, error) {
	if len(payload) > MaxPayloadLen {
		return nil, nil, fmt.Errorf("%w: payload is %d bytes, max is %d", ErrPayloadTooLarge, len(payload), MaxPayloadLen)
	}
	sizeFieldLen := computeSizeFieldLen(len(payload))

	sigLen := 0
	if sigPrivKey != nil {
		sigLen = SignatureSize
	}

	headerLen := 1 + sizeFieldLen
	rawSize := headerLen + len(payload) + sigLen
	paddingSize := PaddingTarget - (rawSize % PaddingTarget)

	env := make([]byte, 0, rawSize+paddingSize)
	flags := byte(sizeFieldLen) & sizeFieldLenMask

	sizeField := make([]byte, sizeFieldLen)
	putSizeField(sizeField, sizeFieldLen, len(payload))

	env = append(env, flags)
	env = append(env, sizeField...)
	env = append(env, payload...)

	padding, err := wpcrypto.RandomBytes(paddingSize)
	if err != nil {
		return nil, nil, err
	}
	if err := validatePadding(padding); err != nil {
		return nil, nil, err
	}
	env = append(env, padding...)

	if sigPrivKey == nil {
		return env, nil, nil
	}

	env[0] |= signedFlagBit
	digest := wpcrypto.Keccak256(env)
	sigBytes, err := wpcrypto.Sign(sigPrivKey[:], digest)
	if err != nil {
		return nil, nil, err
	}

	pub, err := wpcrypto.DerivePublicKey(sigPrivKey[:])
	if err != nil {
		return nil, nil, err
	}
	sig := &Signature{RecoveryID: sigBytes[64], PublicKey: &pub}
	copy(sig.R[:], sigBytes[:32])
	copy(sig.S[:], sigBytes[32:64])

	wire := sig.Bytes()
	env = append(env, wire[:]...)

	return env, sig, nil
}

// ClearDecode parses a clear envelope produced by ClearEncode, returning the
// payload and, if the envelope was signed, a Signature record. Recovery
// failure leaves Signature.PublicKey nil without failing the decode.
func ClearDecode(message []byte) ([]byte, *Signature, error) {
	if len(message) == 0 || len(message)%PaddingTarget != 0 {
		return nil, nil, fmt.Errorf("%w: length %d is not a positive multiple of %d", ErrMalformedEnvelope, len(message), PaddingTarget)
	}

	flags := message[0]
	sizeFieldLen := int(flags & sizeFieldLenMask)
	if sizeFieldLen == 0 {
		return nil, nil, fmt.Errorf("%w: zero size-field length", ErrMalformedEnvelope)
	}
	if len(message) < 1+sizeFieldLen {
		return nil, nil, fmt.Errorf("%w: message shorter than header", ErrMalformedEnvelope)
	}

	payloadLen := readSizeField(message[1:1+sizeFieldLen], sizeFieldLen)
	payloadStart := 1 + sizeFieldLen
	payloadEnd := payloadStart + payloadLen
	if payloadLen < 0 || payloadEnd > len(message) {
		return nil, nil, fmt.Errorf("%w: declared payload length %d exceeds envelope", ErrMalformedEnvelope, payloadLen)
	}
	payload := message[payloadStart:payloadEnd]

	isSigned := flags&signedFlagBit != 0
	if !isSigned {
		return payload, nil, nil
	}

	if len(message) < payloadEnd+SignatureSize {
		return nil, nil, fmt.Errorf("%w: signed envelope missing signature bytes", ErrMalformedEnvelope)
	}

	sigStart := len(message) - SignatureSize
	signed := message[:sigStart]
	sigBytes := message[sigStart:]

	var compact [wpcrypto.SignatureSize]byte
	copy(compact[:], sigBytes)

	sig := &Signature{RecoveryID: compact[64]}
	copy(sig.R[:], compact[:32])
	copy(sig.S[:], compact[32:64])

	digest := wpcrypto.Keccak256(signed)
	if pub, err := wpcrypto.Recover(compact, digest); err == nil {
		sig.PublicKey = &pub
	}

	return payload, sig, nil
}

// validatePadding rejects an all-zero padding block longer than 3 bytes —
// a symptom of a broken RNG, per spec.
func validatePadding(padding []byte) error {
	if len(padding) <= 3 {
		return nil
	}
	for _, b := range padding {
		if b != 0 {
			return nil
		}
	}
	return ErrPaddingGenerationFailed
}
