package envelope

import (
	"bytes"
	"errors"
	"testing"

	wpcrypto "github.com/felicio/wakupayload/wakupayload/crypto"
)

func TestClearEncodeDecodeRoundTrip(t *testing.T) {
	for _, n := range []int{0, 1, 255, 256, 257, 65535, 65536} {
		payload := bytes.Repeat([]byte("A"), n)
		env, sig, err := ClearEncode(payload, nil)
		if err != nil {
			t.Fatalf("n=%d: ClearEncode: %v", n, err)
		}
		if sig != nil {
			t.Fatalf("n=%d: expected no signature", n)
		}
		if len(env)%PaddingTarget != 0 || len(env) < PaddingTarget {
			t.Fatalf("n=%d: envelope length %d is not a positive multiple of %d", n, len(env), PaddingTarget)
		}

		got, gotSig, err := ClearDecode(env)
		if err != nil {
			t.Fatalf("n=%d: ClearDecode: %v", n, err)
		}
		if gotSig != nil {
			t.Fatalf("n=%d: unexpected signature on decode", n)
		}
		if !bytes.Equal(got, payload) {
			t.Fatalf("n=%d: round trip mismatch: got %d bytes, want %d", n, len(got), len(payload))
		}
	}
}

func TestClearEncodeDecodeSignedRoundTrip(t *testing.T) {
	kp, err := wpcrypto.GenerateKeyPair()
	if err != nil {
		t.Fatalf("GenerateKeyPair: %v", err)
	}

	for _, n := range []int{0, 1, 255, 256, 65535} {
		payload := bytes.Repeat([]byte("x"), n)
		env, sig, err := ClearEncode(payload, &kp.PrivateKey)
		if err != nil {
			t.Fatalf("n=%d: ClearEncode: %v", n, err)
		}
		if sig == nil || sig.PublicKey == nil {
			t.Fatalf("n=%d: expected signature with public key", n)
		}
		if *sig.PublicKey != kp.PublicKey {
			t.Fatalf("n=%d: signer public key mismatch", n)
		}

		got, gotSig, err := ClearDecode(env)
		if err != nil {
			t.Fatalf("n=%d: ClearDecode: %v", n, err)
		}
		if !bytes.Equal(got, payload) {
			t.Fatalf("n=%d: payload mismatch", n)
		}
		if gotSig == nil || gotSig.PublicKey == nil {
			t.Fatalf("n=%d: expected recovered public key", n)
		}
		if *gotSig.PublicKey != kp.PublicKey {
			t.Fatalf("n=%d: recovered public key does not match signer, got %x want %x", n, *gotSig.PublicKey, kp.PublicKey)
		}
	}
}

func TestClearEncodeEmptyPayloadIsExactly256Bytes(t *testing.T) {
	env, sig, err := ClearEncode(nil, nil)
	if err != nil {
		t.Fatalf("ClearEncode: %v", err)
	}
	if sig != nil {
		t.Fatalf("expected no signature")
	}
	if len(env) != PaddingTarget {
		t.Fatalf("got length %d, want exactly %d", len(env), PaddingTarget)
	}
	if env[0]&sizeFieldLenMask != 1 {
		t.Fatalf("flags low bits = %d, want 1", env[0]&sizeFieldLenMask)
	}
}

func TestClearDecodeRejectsZeroSizeFieldLength(t *testing.T) {
	msg := make([]byte, PaddingTarget)
	// flags byte is 0: size-field-len bits are 0, which is invalid.
	if _, _, err := ClearDecode(msg); err == nil {
		t.Fatalf("expected an error for zero size-field length")
	}
}

func TestClearDecodeRejectsNonMultipleOf256(t *testing.T) {
	msg := make([]byte, PaddingTarget-1)
	if _, _, err := ClearDecode(msg); err == nil {
		t.Fatalf("expected an error for non-multiple-of-256 length")
	}
}

func TestClearDecodeRejectsOversizedDeclaredLength(t *testing.T) {
	msg := make([]byte, PaddingTarget)
	msg[0] = 1 // size-field-len = 1
	msg[1] = 255
	if _, _, err := ClearDecode(msg); err == nil {
		t.Fatalf("expected an error for declared length exceeding envelope")
	}
}

func TestClearEncodeRejectsPayloadNeedingFourByteSizeField(t *testing.T) {
	payload := make([]byte, MaxPayloadLen+1)
	if _, _, err := ClearEncode(payload, nil); !errors.Is(err, ErrPayloadTooLarge) {
		t.Fatalf("expected ErrPayloadTooLarge, got %v", err)
	}
}

func TestClearEncodeAcceptsMaxPayloadLen(t *testing.T) {
	payload := bytes.Repeat([]byte("z"), MaxPayloadLen)
	env, _, err := ClearEncode(payload, nil)
	if err != nil {
		t.Fatalf("ClearEncode at MaxPayloadLen: %v", err)
	}
	got, _, err := ClearDecode(env)
	if err != nil {
		t.Fatalf("ClearDecode at MaxPayloadLen: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Fatalf("round trip mismatch at MaxPayloadLen")
	}
}

func TestClearEncodeTwiceDiffers(t *testing.T) {
	a, _, err := ClearEncode([]byte("same"), nil)
	if err != nil {
		t.Fatalf("ClearEncode: %v", err)
	}
	b, _, err := ClearEncode([]byte("same"), nil)
	if err != nil {
		t.Fatalf("ClearEncode: %v", err)
	}
	if bytes.Equal(a, b) {
		t.Fatalf("two encodings of the same payload must differ (random padding)")
	}
}

func TestSizeFieldLenTransitions(t *testing.T) {
	cases := []struct {
		payloadLen int
		want       int
	}{
		{0, 1},
		{255, 1},
		{256, 2},
		{65535, 2},
		{65536, 3},
		{16777215, 3},
		{16777216, 4},
	}
	for _, c := range cases {
		if got := computeSizeFieldLen(c.payloadLen); got != c.want {
			t.Fatalf("computeSizeFieldLen(%d) = %d, want %d", c.payloadLen, got, c.want)
		}
	}
}
