package pqcrypto

// RawBytes adapts an opaque key blob (as read from a CLI flag or key
// file) to all four key-handle interfaces. Every provider in this
// package accepts a RawBytes handle transparently: Encapsulate/
// Decapsulate/Sign/Verify unmarshal it into their concrete key type on
// first use (see the type-assertion fallbacks in circl.go and bls.go).
type RawBytes []byte

func (k RawBytes) Bytes() []byte { return []byte(k) }

var (
	_ KEMPublicKey  = RawBytes(nil)
	_ KEMPrivateKey = RawBytes(nil)
	_ DSAPublicKey  = RawBytes(nil)
	_ DSAPrivateKey = RawBytes(nil)
)
