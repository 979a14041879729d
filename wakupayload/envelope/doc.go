// Package envelope implements the clear (unencrypted) framing layer of the
// payload codec: a self-describing, padded, optionally-signed byte string
//
//	flags(1) ‖ size-field(1..3) ‖ payload(N) ‖ padding(P) ‖ [signature(65)]
//
// whose total length is always a positive multiple of 256 bytes. This is
// the layer that gets wrapped by an outer encryption scheme
// (wakupayload/crypto's AES-GCM wrapper or wakupayload/ecies) before it is
// ever sent anywhere.
package envelope
