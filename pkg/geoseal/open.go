package geoseal

import (
	"fmt"
	"log"

	"github.com/issdandavis/SCBE-AETHERMOORE-sub001/pkg/commitment"
	"github.com/issdandavis/SCBE-AETHERMOORE-sub001/pkg/pqcrypto"
)

// Opener verifies and decrypts envelopes produced by a Sealer using the
// same KEM/DSA capability providers.
type Opener struct {
	KEM    pqcrypto.KEMProvider
	DSA    pqcrypto.SignatureProvider
	Logger *log.Logger
}

// NewOpener builds an Opener with the given capability providers.
func NewOpener(kem pqcrypto.KEMProvider, dsa pqcrypto.SignatureProvider, logger *log.Logger) *Opener {
	if logger == nil {
		logger = log.New(log.Writer(), "[geoseal] ", log.LstdFlags)
	}
	return &Opener{KEM: kem, DSA: dsa, Logger: logger}
}

// Result is the outcome of an Open call. On signature failure ok is
// false and Plaintext is nil: the core never returns a "fail to noise"
// plaintext (spec.md section 7).
type Result struct {
	OK        bool
	Plaintext []byte
}

// Open implements C8: recompute the signed digest, verify the detached
// signature, decapsulate the KEM ciphertext, and re-derive the message
// key from the envelope's *declared* (h, z, L_s, L_c) — never from a
// fresh projection of ctx. ctx is accepted only so a caller can run its
// own context-mismatch policy after Open returns; it never affects
// decryption (spec.md section 4.8, and the Open Question in section 9
// about the reference CLI ignoring --context during decryption).
func (o *Opener) Open(env *Envelope, ctx []float64, kemPriv pqcrypto.KEMPrivateKey, dsaPub pqcrypto.DSAPublicKey) (Result, error) {
	canonical, err := commitment.MarshalCanonical(env.Attest)
	if err != nil {
		return Result{}, fmt.Errorf("%w: canonicalize attestation: %v", ErrEncoding, err)
	}
	digest := commitment.DigestEnvelope(canonical, env.CtK, env.CtSpec)

	if !o.DSA.Verify(dsaPub, digest, env.Sig) {
		o.Logger.Printf("signature verification failed: h=%s z=%s", env.Attest.H, env.Attest.Z)
		return Result{OK: false, Plaintext: nil}, ErrSignatureInvalid
	}

	sharedSecret, err := o.KEM.Decapsulate(kemPriv, env.CtK)
	if err != nil {
		return Result{}, fmt.Errorf("%w: kem decapsulate: %v", pqcrypto.ErrProvider, err)
	}

	_, seed, err := deriveMessageKey(sharedSecret, env.Attest.H, env.Attest.LSphere, env.Attest.Z, env.Attest.LCube)
	if err != nil {
		return Result{}, err
	}

	pt := xorBytes(env.CtSpec, keystream(seed, len(env.CtSpec)))
	o.Logger.Printf("opened envelope: path=%s h=%s z=%s bytes=%d", env.Attest.Path, env.Attest.H, env.Attest.Z, len(pt))
	return Result{OK: true, Plaintext: pt}, nil
}
