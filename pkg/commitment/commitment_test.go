package commitment_test

import (
	"encoding/hex"
	"testing"

	"github.com/issdandavis/SCBE-AETHERMOORE-sub001/pkg/commitment"
	"github.com/issdandavis/SCBE-AETHERMOORE-sub001/pkg/geoseal"
)

func TestCanonicalizeJSONSortsKeysNoWhitespace(t *testing.T) {
	raw := []byte(`{"z": 1, "a": {"d": 2, "c": 3}, "b": [3,1,2]}`)
	got, err := commitment.CanonicalizeJSON(raw)
	if err != nil {
		t.Fatal(err)
	}
	want := `{"a":{"c":3,"d":2},"b":[3,1,2],"z":1}`
	if string(got) != want {
		t.Fatalf("CanonicalizeJSON = %s, want %s", got, want)
	}
}

// TestCanonicalBytesArePinned pins the exact byte sequence of the real
// geoseal.Attest record (not a stand-in map shape), per spec.md's design
// note that canonical JSON byte-stability is load-bearing for cross-
// implementation interop. P and margin must survive as six-decimal
// JSON numbers, not be renormalized to float64's shortest form.
func TestCanonicalBytesArePinned(t *testing.T) {
	attest := geoseal.Attest{
		H:       "S0:(1000,1000,1000)",
		Z:       "C0:(500,500,500,500,500,500)",
		LSphere: 0,
		LCube:   0,
		P:       commitment.Float6(0.123456),
		Margin:  commitment.Float6(-0.5),
		TS:      1700000000,
		Path:    "interior",
	}
	got, err := commitment.MarshalCanonical(attest)
	if err != nil {
		t.Fatal(err)
	}
	want := `{"L_c":0,"L_s":0,"P":0.123456,"h":"S0:(1000,1000,1000)","margin":-0.500000,"path":"interior","ts":1700000000,"z":"C0:(500,500,500,500,500,500)"}`
	if string(got) != want {
		t.Fatalf("canonical bytes =\n%s\nwant\n%s", got, want)
	}
}

func TestDigestDeterministic(t *testing.T) {
	a := []byte(`{"a":1}`)
	ct := []byte{1, 2, 3}
	d1 := commitment.DigestAttestAndCiphertext(a, ct)
	d2 := commitment.DigestAttestAndCiphertext(a, ct)
	if hex.EncodeToString(d1) != hex.EncodeToString(d2) {
		t.Fatal("digest is not deterministic")
	}
}

func TestFloat6Format(t *testing.T) {
	if commitment.Float6(1).String() != "1.000000" {
		t.Fatalf("Float6(1) = %s, want 1.000000", commitment.Float6(1).String())
	}
	if commitment.Float6(-0.5).String() != "-0.500000" {
		t.Fatalf("Float6(-0.5) = %s, want -0.500000", commitment.Float6(-0.5).String())
	}
}
