package pqcrypto

import "testing"

func TestBLSSignVerifyRoundTrip(t *testing.T) {
	p := BLS{}
	pk, sk, err := p.GenerateKeyPair()
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

func TestBLSVerifyRejectsWrongKey(t *testing.T) {
	p := BLS{}
	_, sk, err := p.GenerateKeyPair()
	if err != nil {
		t.Fatal(err)
	}
	otherPk, _, err := p.GenerateKeyPair()
	if err != nil {
		t.Fatal(err)
	}
	digest := []byte("some digest bytes")
	sig, err := p.Sign(sk, digest)
	if err != nil {
		t.Fatal(err)
	}
	if p.Verify(otherPk, digest, sig) {
		t.Fatal("expected signature verification to fail under an unrelated public key")
	}
}
