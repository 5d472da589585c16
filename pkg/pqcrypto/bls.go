// BLS12-381 signature provider: a second, classical-but-vetted
// SignatureProvider ("or equivalent" per spec.md section 9), adapted
// from the teacher's pkg/crypto/bls/bls.go signer. Aggregation is
// dropped here — this domain signs single envelope digests, not
// validator quorums — but the key types, domain separation, and
// once-guarded initialization follow the teacher's shape closely.
package pqcrypto

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"math/big"
	"sync"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
)

// domainEnvelope is the BLS domain-separation tag for envelope
// signatures, matching the teacher's DomainAttestation-style constants.
const domainEnvelope = "SCBE_AETHERMOORE_GEOSEAL_V1"

var (
	blsInitOnce sync.Once
	blsInitErr  error
	blsG1Gen    bls12381.G1Affine
	blsG2Gen    bls12381.G2Affine
)

func blsInitialize() error {
	blsInitOnce.Do(func() {
		_, _, g1, g2 := bls12381.Generators()
		blsG1Gen = g1
		blsG2Gen = g2
	})
	return blsInitErr
}

// blsPrivateKey and blsPublicKey wrap the BLS scalar and G2 point.
type blsPrivateKey struct{ scalar fr.Element }
type blsPublicKey struct{ point bls12381.G2Affine }

func (k blsPrivateKey) Bytes() []byte {
	b := k.scalar.Bytes()
	return b[:]
}

func (k blsPublicKey) Bytes() []byte {
	b := k.point.Bytes()
	return b[:]
}

// BLS implements SignatureProvider using BLS12-381 (sig on G1, keys on
// G2), mirroring the teacher's validator-signature scheme.
type BLS struct{}

var _ SignatureProvider = BLS{}

func (BLS) Name() string { return "bls12-381" }

// GenerateKeyPair generates a fresh BLS12-381 key pair.
func (BLS) GenerateKeyPair() (DSAPublicKey, DSAPrivateKey, error) {
	if err := blsInitialize(); err != nil {
		return nil, nil, fmt.Errorf("%w: bls init: %v", ErrProvider, err)
	}
	var sk fr.Element
	if _, err := sk.SetRandom(); err != nil {
		return nil, nil, fmt.Errorf("%w: bls keygen: %v", ErrProvider, err)
	}
	priv := blsPrivateKey{scalar: sk}
	pub := derivePublicKey(priv)
	return pub, priv, nil
}

func derivePublicKey(sk blsPrivateKey) blsPublicKey {
	var pk bls12381.G2Affine
	var skBig big.Int
	sk.scalar.BigInt(&skBig)
	pk.ScalarMultiplication(&blsG2Gen, &skBig)
	return blsPublicKey{point: pk}
}

func (BLS) Sign(sk DSAPrivateKey, digest []byte) ([]byte, error) {
	if err := blsInitialize(); err != nil {
		return nil, fmt.Errorf("%w: bls init: %v", ErrProvider, err)
	}
	priv, ok := sk.(blsPrivateKey)
	if !ok {
		var scalar fr.Element
		scalar.SetBytes(sk.Bytes())
		priv = blsPrivateKey{scalar: scalar}
	}
	h := hashToG1(domainSeparated(digest))
	var sig bls12381.G1Affine
	var skBig big.Int
	priv.scalar.BigInt(&skBig)
	sig.ScalarMultiplication(&h, &skBig)
	b := sig.Bytes()
	return b[:], nil
}

func (BLS) Verify(pk DSAPublicKey, digest, signature []byte) bool {
	if err := blsInitialize(); err != nil {
		return false
	}
	pub, ok := pk.(blsPublicKey)
	if !ok {
		var point bls12381.G2Affine
		if _, err := point.SetBytes(pk.Bytes()); err != nil {
			return false
		}
		pub = blsPublicKey{point: point}
	}
	var sig bls12381.G1Affine
	if _, err := sig.SetBytes(signature); err != nil {
		return false
	}
	h := hashToG1(domainSeparated(digest))

	var negPk bls12381.G2Affine
	negPk.Neg(&pub.point)

	ok2, err := bls12381.PairingCheck(
		[]bls12381.G1Affine{sig, h},
		[]bls12381.G2Affine{blsG2Gen, negPk},
	)
	if err != nil {
		return false
	}
	return ok2
}

func domainSeparated(digest []byte) []byte {
	h := sha256.New()
	h.Write([]byte(domainEnvelope))
	h.Write(digest)
	return h.Sum(nil)
}

// hashToG1 hashes a message to a point on G1 using the hash-and-pray
// method, matching the teacher's bls.go implementation.
func hashToG1(message []byte) bls12381.G1Affine {
	h := sha256.New()
	h.Write([]byte("BLS_SIG_BLS12381G1_XMD:SHA-256_SSWU_RO_"))
	h.Write(message)

	var counter uint64
	for {
		h2 := sha256.New()
		h2.Write(h.Sum(nil))
		binary.Write(h2, binary.BigEndian, counter)
		hash := h2.Sum(nil)

		var point bls12381.G1Affine
		if _, err := point.SetBytes(hash); err == nil && !point.IsInfinity() {
			return point
		}

		var scalar fr.Element
		scalar.SetBytes(hash)
		var scalarBig big.Int
		scalar.BigInt(&scalarBig)

		var result bls12381.G1Affine
		result.ScalarMultiplication(&blsG1Gen, &scalarBig)
		if !result.IsInfinity() {
			return result
		}

		counter++
		if counter > 1000 {
			return blsG1Gen
		}
	}
}
