// Package wakupayload implements the version-1 payload codec for a
// Waku-style peer-to-peer messaging protocol. It transforms an application
// payload plus optional signing key into an opaque, length-padded,
// authenticated, and encrypted byte string suitable for transmission as the
// payload field of a Waku message, and reverses the transformation on
// receipt.
//
// Encode composes wakupayload/envelope's clear framing with exactly one of
// wakupayload/ecies's asymmetric scheme or wakupayload/crypto's symmetric
// AES-256-GCM wrapper. Decode reverses the composition. Every exported
// function in this module tree is a pure, synchronous function of its
// inputs: none retains state across calls, opens a socket, or blocks on
// anything but the host's CSPRNG.
package wakupayload
