package pqcrypto

import "testing"

func TestCirclKEMRoundTrip(t *testing.T) {
	p := CirclKEM{}
	pk, sk, err := p.GenerateKeyPair()
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

func TestCirclKEMRoundTripViaRawBytes(t *testing.T) {
	p := CirclKEM{}
	pk, sk, err := p.GenerateKeyPair()
	if err != nil {
		t.Fatal(err)
	}
	ct, ss1, err := p.Encapsulate(RawBytes(pk.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	ss2, err := p.Decapsulate(RawBytes(sk.Bytes()), ct)
	if err != nil {
		t.Fatal(err)
	}
	if string(ss1) != string(ss2) {
		t.Fatal("encapsulate/decapsulate via unmarshaled RawBytes keys do not match")
	}
}

func TestCirclDSARoundTrip(t *testing.T) {
	p := CirclDSA{}
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

func TestCirclDSARoundTripViaRawBytes(t *testing.T) {
	p := CirclDSA{}
	pk, sk, err := p.GenerateKeyPair()
	if err != nil {
		t.Fatal(err)
	}
	digest := []byte("some other digest bytes")
	sig, err := p.Sign(RawBytes(sk.Bytes()), digest)
	if err != nil {
		t.Fatal(err)
	}
	if !p.Verify(RawBytes(pk.Bytes()), digest, sig) {
		t.Fatal("expected signature to verify via unmarshaled RawBytes keys")
	}
}
