package wakupayload

import (
	"errors"
	"fmt"

	"github.com/felicio/wakupayload/wakupayload/crypto"
	"github.com/felicio/wakupayload/wakupayload/ecies"
	"github.com/felicio/wakupayload/wakupayload/envelope"
)

// ErrInvalidParameters is returned (wrapped with detail) when Encode/Decode
// options don't select exactly one outer encryption scheme. Key sizes are
// fixed by the option fields' array types, so they are not checked here.
var ErrInvalidParameters = errors.New("wakupayload: invalid parameters")

// ErrMalformedEnvelope is re-exported for callers that want to match on it
// without importing wakupayload/envelope directly.
var ErrMalformedEnvelope = envelope.ErrMalformedEnvelope

// ErrDecryptionFailed is re-exported for callers that want to match on it
// without importing wakupayload/crypto or wakupayload/ecies directly.
var ErrDecryptionFailed = crypto.ErrDecryptionFailed

// EncodeOptions configures Encode. Exactly one of AsymPubKey or SymKey must
// be set; SigPrivKey is independently optional.
type EncodeOptions struct {
	SigPrivKey *[crypto.PrivateKeySize]byte
	AsymPubKey *[crypto.PublicKeySize]byte
	SymKey     *[crypto.AES256KeySize]byte
}

// DecodeOptions configures Decode. Exactly one of AsymPrivKey or SymKey
// must be set, matching whichever outer scheme Encode used.
type DecodeOptions struct {
	AsymPrivKey *[crypto.PrivateKeySize]byte
	SymKey      *[crypto.AES256KeySize]byte
}

// EncodeResult is the output of Encode: the final wire bytes plus the
// signature record, if the payload was signed.
type EncodeResult struct {
	Payload   []byte
	Signature *envelope.Signature
}

// DecodeResult is the output of Decode: the recovered application payload
// plus the signature record, if the envelope was signed.
type DecodeResult struct {
	Payload   []byte
	Signature *envelope.Signature
}

// Encode builds the clear envelope for payload and applies exactly one
// outer encryption scheme selected by opts, returning the final wire bytes.
//
// Option validation happens before any randomness is drawn or envelope
// bytes are built, so a rejected call never leaves partially-consumed state
// behind.
func Encode(payload []byte, opts EncodeOptions) (EncodeResult, error) {
	if err := validateEncodeOptions(opts); err != nil {
		return EncodeResult{}, err
	}

	inner, sig, err := envelope.ClearEncode(payload, opts.SigPrivKey)
	if err != nil {
		return EncodeResult{}, err
	}

	var outer []byte
	if opts.AsymPubKey != nil {
		outer, err = ecies.Encrypt(opts.AsymPubKey, inner)
	} else {
		outer, err = crypto.EncryptSymmetric(inner, opts.SymKey[:])
	}
	if err != nil {
		return EncodeResult{}, err
	}

	return EncodeResult{Payload: outer, Signature: sig}, nil
}

// Decode reverses Encode: it undoes exactly one outer encryption scheme
// selected by opts, then parses the resulting clear envelope.
func Decode(blob []byte, opts DecodeOptions) (DecodeResult, error) {
	if err := validateDecodeOptions(opts); err != nil {
		return DecodeResult{}, err
	}

	var inner []byte
	var err error
	if opts.AsymPrivKey != nil {
		inner, err = ecies.Decrypt(opts.AsymPrivKey, blob)
	} else {
		inner, err = crypto.DecryptSymmetric(blob, opts.SymKey[:])
	}
	if err != nil {
		return DecodeResult{}, err
	}

	payload, sig, err := envelope.ClearDecode(inner)
	if err != nil {
		return DecodeResult{}, err
	}

	return DecodeResult{Payload: payload, Signature: sig}, nil
}

func validateEncodeOptions(opts EncodeOptions) error {
	if (opts.AsymPubKey == nil) == (opts.SymKey == nil) {
		return fmt.Errorf("%w: exactly one of AsymPubKey or SymKey must be set", ErrInvalidParameters)
	}
	return nil
}

func validateDecodeOptions(opts DecodeOptions) error {
	if (opts.AsymPrivKey == nil) == (opts.SymKey == nil) {
		return fmt.Errorf("%w: exactly one of AsymPrivKey or SymKey must be set", ErrInvalidParameters)
	}
	return nil
}
