package xlate

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"math"
	"testing"

	"github.com/issdandavis/SCBE-AETHERMOORE-sub001/pkg/tokenizer"
	"github.com/issdandavis/SCBE-AETHERMOORE-sub001/pkg/tongue"
)

func frozenClock(unix int64) Clock {
	return func() (int64, float64) { return unix, float64(unix) }
}

func TestCrossTongueRoundTrip(t *testing.T) {
	ls, err := tongue.Build(nil)
	if err != nil {
		t.Fatal(err)
	}
	payload := []byte("hello aethermoore")

	toksKO, err := tokenizer.Encode(ls, tongue.KO, payload)
	if err != nil {
		t.Fatal(err)
	}
	t1 := tokenizer.Join(toksKO)

	t2, att, err := Retokenize(ls, tongue.KO, tongue.DR, t1, ModeByte, []byte("k"), frozenClock(1700000000))
	if err != nil {
		t.Fatalf("Retokenize: %v", err)
	}

	got, err := tokenizer.Decode(ls, tongue.DR, t2)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, payload) {
		t.Fatalf("decode(retokenize(...)) = %q, want %q", got, payload)
	}

	wantSum := sha256.Sum256(payload)
	if att.SHA256Bytes != hex.EncodeToString(wantSum[:]) {
		t.Fatalf("sha256_bytes = %s, want %s", att.SHA256Bytes, hex.EncodeToString(wantSum[:]))
	}

	wantPhaseDelta := math.Mod(5*math.Pi/3-0, 2*math.Pi)
	if math.Abs(att.PhaseDelta-wantPhaseDelta) > 1e-9 {
		t.Fatalf("phase_delta = %v, want %v", att.PhaseDelta, wantPhaseDelta)
	}

	wantRatio := math.Pow(1.618033988749895, 5) / math.Pow(1.618033988749895, 0)
	if math.Abs(att.WeightRatio-wantRatio) > 1e-6 {
		t.Fatalf("weight_ratio = %v, want %v", att.WeightRatio, wantRatio)
	}
}

func TestAttestationDeterminism(t *testing.T) {
	ls, err := tongue.Build(nil)
	if err != nil {
		t.Fatal(err)
	}
	payload := []byte("deterministic payload")
	toks, err := tokenizer.Encode(ls, tongue.AV, payload)
	if err != nil {
		t.Fatal(err)
	}
	text := tokenizer.Join(toks)

	_, att1, err := Retokenize(ls, tongue.AV, tongue.UM, text, ModeSemantic, []byte("fixed-key"), frozenClock(42))
	if err != nil {
		t.Fatal(err)
	}
	_, att2, err := Retokenize(ls, tongue.AV, tongue.UM, text, ModeSemantic, []byte("fixed-key"), frozenClock(42))
	if err != nil {
		t.Fatal(err)
	}
	if att1.HMACAttest != att2.HMACAttest || att1.SHA256Bytes != att2.SHA256Bytes {
		t.Fatal("attestation is not deterministic for fixed inputs and frozen clock")
	}
}

func TestCrossTonguePreservationAllPairs(t *testing.T) {
	ls, err := tongue.Build(nil)
	if err != nil {
		t.Fatal(err)
	}
	payload := []byte{0x00, 0x7F, 0x80, 0xFF, 0x01, 0x02, 0x03}
	for _, src := range tongue.All() {
		toks, err := tokenizer.Encode(ls, src, payload)
		if err != nil {
			t.Fatal(err)
		}
		text := tokenizer.Join(toks)
		for _, dst := range tongue.All() {
			outToks, _, err := Retokenize(ls, src, dst, text, ModeByte, nil, frozenClock(0))
			if err != nil {
				t.Fatalf("retokenize %s->%s: %v", src, dst, err)
			}
			got, err := tokenizer.Decode(ls, dst, outToks)
			if err != nil {
				t.Fatal(err)
			}
			if !bytes.Equal(got, payload) {
				t.Fatalf("%s->%s: round trip mismatch", src, dst)
			}
		}
	}
}
