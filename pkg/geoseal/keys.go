package geoseal

import (
	"crypto/sha256"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

const subkeySize = 32

// deriveSubkey runs HKDF-SHA-256 over secret with the given info string,
// producing subkeySize bytes. Grounded on spec.md section 4.7 step 3,
// which pins the exact info strings used below.
func deriveSubkey(secret []byte, info string) ([]byte, error) {
	r := hkdf.New(sha256.New, secret, nil, []byte(info))
	out := make([]byte, subkeySize)
	if _, err := io.ReadFull(r, out); err != nil {
		return nil, fmt.Errorf("geoseal: hkdf derive %q: %w", info, err)
	}
	return out, nil
}

// deriveMessageKey derives K_s, K_c, and K_msg = HKDF(K_s XOR K_c) from
// the KEM shared secret and the envelope's (h, z, L_s, L_c) ids.
func deriveMessageKey(sharedSecret []byte, h string, lSphere int, z string, lCube int) (kMsg, seed []byte, err error) {
	ks, err := deriveSubkey(sharedSecret, fmt.Sprintf("geo:sphere|%s|%d", h, lSphere))
	if err != nil {
		return nil, nil, err
	}
	kc, err := deriveSubkey(sharedSecret, fmt.Sprintf("geo:cube|%s|%d", z, lCube))
	if err != nil {
		return nil, nil, err
	}
	xored := make([]byte, subkeySize)
	for i := range xored {
		xored[i] = ks[i] ^ kc[i]
	}
	kMsg, err = deriveSubkey(xored, "geo:msg")
	if err != nil {
		return nil, nil, err
	}
	sum := sha256.Sum256(kMsg)
	return kMsg, sum[:], nil
}

// keystream builds the repeated-seed XOR mask of the requested length.
// This is the reference keystream of spec.md section 4.7 step 4; it is
// not authenticated on its own, only under the envelope's detached
// signature. A conformant implementation MAY substitute an AEAD keyed
// by K_msg instead; the envelope wire format is agnostic to that choice
// as long as sealer and opener agree, so it would replace this function
// and xorBytes without touching Envelope or Attest.
// TODO: swap in an AEAD (e.g. XChaCha20-Poly1305) keyed by K_msg once a
// wire-format version field exists to let old envelopes keep decoding.
func keystream(seed []byte, n int) []byte {
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		out[i] = seed[i%len(seed)]
	}
	return out
}

func xorBytes(a, b []byte) []byte {
	out := make([]byte, len(a))
	for i := range a {
		out[i] = a[i] ^ b[i]
	}
	return out
}
