// Package pqcrypto models the KEM and signature capability interfaces
// spec.md section 9 requires: "three operations each (encapsulate/
// decapsulate and sign/verify, plus key-generation out-of-band)". The
// core depends only on these interfaces; concrete providers in this
// package range from insecure self-test placeholders to vetted
// post-quantum implementations.
package pqcrypto

import "errors"

// ErrProvider wraps any failure surfaced by a KEM, DSA, or HMAC
// provider (spec.md error taxonomy item 6, ProviderError).
var ErrProvider = errors.New("pqcrypto: provider error")

// KEMPublicKey and KEMPrivateKey are opaque, provider-specific key
// handles. Callers obtain them from a KEMProvider's key-generation
// helper (out of band, per spec.md section 9) and pass them back into
// Encapsulate/Decapsulate on the same provider.
type KEMPublicKey interface {
	Bytes() []byte
}

type KEMPrivateKey interface {
	Bytes() []byte
}

// KEMProvider is the abstract PQ-KEM capability the envelope sealer and
// opener call through. Implementations MUST NOT silently substitute a
// stub for production use (spec.md section 4.7).
type KEMProvider interface {
	Name() string
	Encapsulate(pk KEMPublicKey) (ciphertext, sharedSecret []byte, err error)
	Decapsulate(sk KEMPrivateKey, ciphertext []byte) (sharedSecret []byte, err error)
}

// DSAPublicKey and DSAPrivateKey are opaque, provider-specific key
// handles for the abstract signature capability.
type DSAPublicKey interface {
	Bytes() []byte
}

type DSAPrivateKey interface {
	Bytes() []byte
}

// SignatureProvider is the abstract post-quantum (or vetted classical
// equivalent) signature capability the sealer/opener call through.
type SignatureProvider interface {
	Name() string
	Sign(sk DSAPrivateKey, digest []byte) (signature []byte, err error)
	Verify(pk DSAPublicKey, digest, signature []byte) bool
}
