package geoseal

import (
	"bytes"
	"errors"
	"testing"

	"github.com/issdandavis/SCBE-AETHERMOORE-sub001/pkg/pqcrypto"
)

func frozen(ts int64) Clock {
	return func() int64 { return ts }
}

func newTestSealerOpener(t *testing.T) (*Sealer, *Opener, pqcrypto.KEMPublicKey, pqcrypto.KEMPrivateKey, pqcrypto.DSAPublicKey, pqcrypto.DSAPrivateKey) {
	t.Helper()
	kem := pqcrypto.Placeholder{}
	dsa := pqcrypto.Placeholder{}
	kemPub, kemPriv, err := kem.GenerateKEMKeyPair()
	if err != nil {
		t.Fatal(err)
	}
	dsaPub, dsaPriv, err := dsa.GenerateDSAKeyPair()
	if err != nil {
		t.Fatal(err)
	}
	sealer := NewSealer(kem, dsa, frozen(1700000000), nil)
	opener := NewOpener(kem, dsa, nil)
	return sealer, opener, kemPub, kemPriv, dsaPub, dsaPriv
}

func TestGeoSealRoundTrip(t *testing.T) {
	sealer, opener, kemPub, kemPriv, dsaPub, dsaPriv := newTestSealerOpener(t)
	ctx := []float64{0.2, -0.3, 0.7, 1.0, -2.0, 0.5, 3.1, -9.9, 0.0}
	pt := []byte("hello aethermoore")

	env, err := sealer.Seal(pt, ctx, kemPub, dsaPriv, Options{LSphere: 0, LCube: 0})
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}
	res, err := opener.Open(env, ctx, kemPriv, dsaPub)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if !res.OK {
		t.Fatal("expected ok=true")
	}
	if !bytes.Equal(res.Plaintext, pt) {
		t.Fatalf("plaintext mismatch: got %q, want %q", res.Plaintext, pt)
	}
}

func TestGeoSealEmptyPlaintext(t *testing.T) {
	sealer, opener, kemPub, kemPriv, dsaPub, dsaPriv := newTestSealerOpener(t)
	ctx := []float64{1, 2, 3}
	env, err := sealer.Seal(nil, ctx, kemPub, dsaPriv, Options{})
	if err != nil {
		t.Fatal(err)
	}
	res, err := opener.Open(env, ctx, kemPriv, dsaPub)
	if err != nil {
		t.Fatal(err)
	}
	if !res.OK || len(res.Plaintext) != 0 {
		t.Fatalf("expected ok empty plaintext, got %+v", res)
	}
}

func TestGeoSealSingleByteSweep(t *testing.T) {
	sealer, opener, kemPub, kemPriv, dsaPub, dsaPriv := newTestSealerOpener(t)
	ctx := []float64{0.1, 0.2, 0.3}
	for b := 0; b < 256; b++ {
		pt := []byte{byte(b)}
		env, err := sealer.Seal(pt, ctx, kemPub, dsaPriv, Options{})
		if err != nil {
			t.Fatalf("byte %d: Seal: %v", b, err)
		}
		res, err := opener.Open(env, ctx, kemPriv, dsaPub)
		if err != nil {
			t.Fatalf("byte %d: Open: %v", b, err)
		}
		if !res.OK || len(res.Plaintext) != 1 || res.Plaintext[0] != byte(b) {
			t.Fatalf("byte %d: round trip mismatch, got %+v", b, res)
		}
	}
}

func TestGeoSealTamperCtSpecInvalidatesSignature(t *testing.T) {
	sealer, opener, kemPub, kemPriv, dsaPub, dsaPriv := newTestSealerOpener(t)
	env, err := sealer.Seal([]byte("secret payload"), []float64{1, 2, 3}, kemPub, dsaPriv, Options{})
	if err != nil {
		t.Fatal(err)
	}
	env.CtSpec[0] ^= 0x01
	res, err := opener.Open(env, nil, kemPriv, dsaPub)
	if !errors.Is(err, ErrSignatureInvalid) {
		t.Fatalf("expected ErrSignatureInvalid, got %v", err)
	}
	if res.OK || res.Plaintext != nil {
		t.Fatalf("expected no plaintext on tamper, got %+v", res)
	}
}

func TestGeoSealTamperCtKInvalidatesSignature(t *testing.T) {
	sealer, opener, kemPub, kemPriv, dsaPub, dsaPriv := newTestSealerOpener(t)
	env, err := sealer.Seal([]byte("secret payload"), []float64{1, 2, 3}, kemPub, dsaPriv, Options{})
	if err != nil {
		t.Fatal(err)
	}
	env.CtK[0] ^= 0x01
	_, err = opener.Open(env, nil, kemPriv, dsaPub)
	if !errors.Is(err, ErrSignatureInvalid) {
		t.Fatalf("expected ErrSignatureInvalid, got %v", err)
	}
}

func TestGeoSealTamperAttestFieldInvalidatesSignature(t *testing.T) {
	sealer, opener, kemPub, kemPriv, dsaPub, dsaPriv := newTestSealerOpener(t)
	env, err := sealer.Seal([]byte("secret payload"), []float64{1, 2, 3}, kemPub, dsaPriv, Options{})
	if err != nil {
		t.Fatal(err)
	}
	env.Attest.Path = "interior-tampered"
	_, err = opener.Open(env, nil, kemPriv, dsaPub)
	if !errors.Is(err, ErrSignatureInvalid) {
		t.Fatalf("expected ErrSignatureInvalid, got %v", err)
	}
}
