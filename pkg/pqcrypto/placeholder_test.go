package pqcrypto

import "testing"

func TestPlaceholderKEMRoundTrip(t *testing.T) {
	p := Placeholder{}
	pk, sk, err := p.GenerateKEMKeyPair()
	if err != nil {
		t.Fatal(err)
	}
	ct, ss1, err := p.Encapsulate(pk)
	if err != nil {
		t.Fatal(err)
	}
	ss2, err := p.Decapsulate(sk, ct)
	if err != nil {
		t.Fatal(err)
	}
	if string(ss1) != string(ss2) {
		t.Fatal("encapsulate/decapsulate shared secrets do not match")
	}
}

func TestPlaceholderDSARoundTrip(t *testing.T) {
	p := Placeholder{}
	pk, sk, err := p.GenerateDSAKeyPair()
	if err != nil {
		t.Fatal(err)
	}
	digest := []byte("some digest bytes")
	sig, err := p.Sign(sk, digest)
	if err != nil {
		t.Fatal(err)
	}
	if !p.Verify(pk, digest, sig) {
		t.Fatal("expected signature to verify")
	}
	if p.Verify(pk, []byte("tampered digest bytes"), sig) {
		t.Fatal("expected signature verification to fail for tampered digest")
	}
}
