// Circl-backed providers: the vetted ML-KEM-768 and ML-DSA-65
// implementations spec.md section 9 requires any deployment to swap in
// for the placeholder. Grounded on github.com/cloudflare/circl, named in
// the retrieved pack's SAGE-X-project-sage, codahale-lockstitch-go, and
// parsdao-pars go.mod files.
package pqcrypto

import (
	"fmt"

	"github.com/cloudflare/circl/kem"
	"github.com/cloudflare/circl/kem/mlkem/mlkem768"
	"github.com/cloudflare/circl/sign"
	"github.com/cloudflare/circl/sign/mldsa/mldsa65"
)

// circlKEMPublicKey/circlKEMPrivateKey adapt circl's kem.PublicKey /
// kem.PrivateKey to this package's opaque handle interfaces.
type circlKEMPublicKey struct{ pk kem.PublicKey }
type circlKEMPrivateKey struct{ sk kem.PrivateKey }

func (k circlKEMPublicKey) Bytes() []byte {
	b, _ := k.pk.MarshalBinary()
	return b
}

func (k circlKEMPrivateKey) Bytes() []byte {
	b, _ := k.sk.MarshalBinary()
	return b
}

// CirclKEM implements KEMProvider using ML-KEM-768.
type CirclKEM struct{}

var _ KEMProvider = CirclKEM{}

func (CirclKEM) Name() string { return mlkem768.Scheme().Name() }

// GenerateKeyPair produces a fresh ML-KEM-768 key pair.
func (CirclKEM) GenerateKeyPair() (KEMPublicKey, KEMPrivateKey, error) {
	pk, sk, err := mlkem768.Scheme().GenerateKeyPair()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: mlkem768 keygen: %v", ErrProvider, err)
	}
	return circlKEMPublicKey{pk}, circlKEMPrivateKey{sk}, nil
}

func (CirclKEM) Encapsulate(pk KEMPublicKey) (ciphertext, sharedSecret []byte, err error) {
	wrapped, ok := pk.(circlKEMPublicKey)
	if !ok {
		unmarshaled, uErr := mlkem768.Scheme().UnmarshalBinaryPublicKey(pk.Bytes())
		if uErr != nil {
			return nil, nil, fmt.Errorf("%w: unmarshal mlkem768 public key: %v", ErrProvider, uErr)
		}
		wrapped = circlKEMPublicKey{unmarshaled}
	}
	ct, ss, err := mlkem768.Scheme().Encapsulate(wrapped.pk)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: mlkem768 encapsulate: %v", ErrProvider, err)
	}
	return ct, ss, nil
}

func (CirclKEM) Decapsulate(sk KEMPrivateKey, ciphertext []byte) ([]byte, error) {
	wrapped, ok := sk.(circlKEMPrivateKey)
	if !ok {
		unmarshaled, uErr := mlkem768.Scheme().UnmarshalBinaryPrivateKey(sk.Bytes())
		if uErr != nil {
			return nil, fmt.Errorf("%w: unmarshal mlkem768 private key: %v", ErrProvider, uErr)
		}
		wrapped = circlKEMPrivateKey{unmarshaled}
	}
	ss, err := mlkem768.Scheme().Decapsulate(wrapped.sk, ciphertext)
	if err != nil {
		return nil, fmt.Errorf("%w: mlkem768 decapsulate: %v", ErrProvider, err)
	}
	return ss, nil
}

// circlDSAPublicKey/circlDSAPrivateKey adapt circl's sign.PublicKey /
// sign.PrivateKey.
type circlDSAPublicKey struct{ pk sign.PublicKey }
type circlDSAPrivateKey struct{ sk sign.PrivateKey }

func (k circlDSAPublicKey) Bytes() []byte {
	b, _ := k.pk.MarshalBinary()
	return b
}

func (k circlDSAPrivateKey) Bytes() []byte {
	b, _ := k.sk.MarshalBinary()
	return b
}

// CirclDSA implements SignatureProvider using ML-DSA-65.
type CirclDSA struct{}

var _ SignatureProvider = CirclDSA{}

func (CirclDSA) Name() string { return mldsa65.Scheme().Name() }

// GenerateKeyPair produces a fresh ML-DSA-65 key pair.
func (CirclDSA) GenerateKeyPair() (DSAPublicKey, DSAPrivateKey, error) {
	pk, sk, err := mldsa65.Scheme().GenerateKey()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: mldsa65 keygen: %v", ErrProvider, err)
	}
	return circlDSAPublicKey{pk}, circlDSAPrivateKey{sk}, nil
}

func (CirclDSA) Sign(sk DSAPrivateKey, digest []byte) ([]byte, error) {
	wrapped, ok := sk.(circlDSAPrivateKey)
	if !ok {
		unmarshaled, uErr := mldsa65.Scheme().UnmarshalBinaryPrivateKey(sk.Bytes())
		if uErr != nil {
			return nil, fmt.Errorf("%w: unmarshal mldsa65 private key: %v", ErrProvider, uErr)
		}
		wrapped = circlDSAPrivateKey{unmarshaled}
	}
	sig := mldsa65.Scheme().Sign(wrapped.sk, digest, nil)
	return sig, nil
}

func (CirclDSA) Verify(pk DSAPublicKey, digest, signature []byte) bool {
	wrapped, ok := pk.(circlDSAPublicKey)
	if !ok {
		unmarshaled, uErr := mldsa65.Scheme().UnmarshalBinaryPublicKey(pk.Bytes())
		if uErr != nil {
			return false
		}
		wrapped = circlDSAPublicKey{unmarshaled}
	}
	return mldsa65.Scheme().Verify(wrapped.pk, digest, signature, nil)
}
