package pqcrypto

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"fmt"
)

// rawKey is a trivial []byte-backed key handle used by the placeholder
// providers.
type rawKey []byte

func (k rawKey) Bytes() []byte { return []byte(k) }

// Placeholder implements both KEMProvider and SignatureProvider with the
// insecure stand-ins spec.md section 9 documents: hash-of-key
// encapsulation and HMAC-as-signature. These are adequate only for
// self-tests; they MUST be swapped for Circl (circl.go) or another vetted
// provider in any deployment.
type Placeholder struct{}

var _ KEMProvider = Placeholder{}
var _ SignatureProvider = Placeholder{}

func (Placeholder) Name() string { return "placeholder" }

// GenerateKEMKeyPair derives a deterministic "public key" as the SHA-256
// of a fresh random secret, exactly the "hash-of-key" placeholder spec.md
// warns callers never to ship.
func (Placeholder) GenerateKEMKeyPair() (KEMPublicKey, KEMPrivateKey, error) {
	sk := make([]byte, 32)
	if _, err := rand.Read(sk); err != nil {
		return nil, nil, fmt.Errorf("%w: generate kem key: %v", ErrProvider, err)
	}
	pkHash := sha256.Sum256(sk)
	return rawKey(pkHash[:]), rawKey(sk), nil
}

// Encapsulate produces a shared secret deterministically from the
// public key and a fresh random nonce carried as the ciphertext.
func (Placeholder) Encapsulate(pk KEMPublicKey) (ciphertext, sharedSecret []byte, err error) {
	nonce := make([]byte, 32)
	if _, err := rand.Read(nonce); err != nil {
		return nil, nil, fmt.Errorf("%w: encapsulate: %v", ErrProvider, err)
	}
	h := sha256.New()
	h.Write(pk.Bytes())
	h.Write(nonce)
	return nonce, h.Sum(nil), nil
}

// Decapsulate recomputes the public key from the private key (since the
// placeholder public key IS the hash of the private key) and rederives
// the same shared secret the encapsulating side produced.
func (Placeholder) Decapsulate(sk KEMPrivateKey, ciphertext []byte) ([]byte, error) {
	pkHash := sha256.Sum256(sk.Bytes())
	h := sha256.New()
	h.Write(pkHash[:])
	h.Write(ciphertext)
	return h.Sum(nil), nil
}

// GenerateDSAKeyPair returns a single symmetric HMAC key used as both
// the "private" signing key and "public" verification key. This is not
// a real asymmetric signature scheme; it exists only so self-tests can
// exercise the sealer/opener without a real PQ-DSA dependency.
func (Placeholder) GenerateDSAKeyPair() (DSAPublicKey, DSAPrivateKey, error) {
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		return nil, nil, fmt.Errorf("%w: generate dsa key: %v", ErrProvider, err)
	}
	return rawKey(key), rawKey(key), nil
}

func (Placeholder) Sign(sk DSAPrivateKey, digest []byte) ([]byte, error) {
	mac := hmac.New(sha256.New, sk.Bytes())
	mac.Write(digest)
	return mac.Sum(nil), nil
}

func (Placeholder) Verify(pk DSAPublicKey, digest, signature []byte) bool {
	mac := hmac.New(sha256.New, pk.Bytes())
	mac.Write(digest)
	expected := mac.Sum(nil)
	return hmac.Equal(expected, signature)
}
