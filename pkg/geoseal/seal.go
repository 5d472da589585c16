package geoseal

import (
	"fmt"
	"log"

	"github.com/issdandavis/SCBE-AETHERMOORE-sub001/pkg/commitment"
	"github.com/issdandavis/SCBE-AETHERMOORE-sub001/pkg/geoproj"
	"github.com/issdandavis/SCBE-AETHERMOORE-sub001/pkg/pqcrypto"
)

// Clock returns the current time as unix seconds. Abstracted so sealing
// is testable with a frozen clock (spec.md section 8, attestation
// determinism).
type Clock func() int64

// Sealer binds plaintext to a context projection and emits a signed
// envelope. It mirrors the teacher's dependency-injected Service shape
// (pkg/attestation/service.go): capability providers and a logger are
// supplied by the caller, never constructed implicitly.
type Sealer struct {
	KEM    pqcrypto.KEMProvider
	DSA    pqcrypto.SignatureProvider
	Now    Clock
	Logger *log.Logger
}

// NewSealer builds a Sealer with the given capability providers. A nil
// logger defaults to a discard-free stdlib logger tagged "[geoseal]",
// matching the teacher's NewService default-config pattern.
func NewSealer(kem pqcrypto.KEMProvider, dsa pqcrypto.SignatureProvider, now Clock, logger *log.Logger) *Sealer {
	if logger == nil {
		logger = log.New(log.Writer(), "[geoseal] ", log.LstdFlags)
	}
	if now == nil {
		now = defaultClock
	}
	return &Sealer{KEM: kem, DSA: dsa, Now: now, Logger: logger}
}

// Options configures the projection levels used when sealing.
type Options struct {
	LSphere int
	LCube   int
}

// Seal implements C7: project the context, encapsulate against the KEM
// public key, derive the message key, mask the plaintext, build and
// sign the attestation, and emit the envelope.
func (s *Sealer) Seal(plaintext []byte, ctx []float64, kemPub pqcrypto.KEMPublicKey, dsaPriv pqcrypto.DSAPrivateKey, opts Options) (*Envelope, error) {
	proj, err := geoproj.Project(ctx, opts.LSphere, opts.LCube, geoproj.DefaultCubeArity)
	if err != nil {
		return nil, err
	}

	ctK, sharedSecret, err := s.KEM.Encapsulate(kemPub)
	if err != nil {
		return nil, fmt.Errorf("%w: kem encapsulate: %v", pqcrypto.ErrProvider, err)
	}

	_, seed, err := deriveMessageKey(sharedSecret, proj.H, opts.LSphere, proj.Z, opts.LCube)
	if err != nil {
		return nil, err
	}

	ctSpec := xorBytes(plaintext, keystream(seed, len(plaintext)))

	attest := Attest{
		H:       proj.H,
		Z:       proj.Z,
		LSphere: opts.LSphere,
		LCube:   opts.LCube,
		P:       commitment.Float6(proj.Potentials.P),
		Margin:  commitment.Float6(proj.Potentials.Margin),
		TS:      s.Now(),
		Path:    proj.Path,
	}

	canonical, err := commitment.MarshalCanonical(attest)
	if err != nil {
		return nil, fmt.Errorf("%w: canonicalize attestation: %v", ErrEncoding, err)
	}
	digest := commitment.DigestEnvelope(canonical, ctK, ctSpec)

	sig, err := s.DSA.Sign(dsaPriv, digest)
	if err != nil {
		return nil, fmt.Errorf("%w: sign envelope: %v", pqcrypto.ErrProvider, err)
	}

	s.Logger.Printf("sealed envelope: path=%s ring_h=%s ring_z=%s bytes=%d", attest.Path, attest.H, attest.Z, len(plaintext))

	return &Envelope{CtK: ctK, CtSpec: ctSpec, Attest: attest, Sig: sig}, nil
}

func defaultClock() int64 {
	return wallClockUnixSeconds()
}
