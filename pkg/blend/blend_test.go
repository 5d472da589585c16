package blend

import (
	"bytes"
	"crypto/rand"
	"testing"

	"github.com/issdandavis/SCBE-AETHERMOORE-sub001/pkg/tongue"
)

func TestBlendInversion(t *testing.T) {
	ls, err := tongue.Build(nil)
	if err != nil {
		t.Fatal(err)
	}
	pattern := []tongue.Tongue{tongue.KO, tongue.KO, tongue.AV, tongue.RU, tongue.CA, tongue.UM, tongue.DR}
	data := make([]byte, 1024)
	if _, err := rand.Read(data); err != nil {
		t.Fatal(err)
	}
	pairs, err := Blend(ls, pattern, data)
	if err != nil {
		t.Fatal(err)
	}
	got, err := Unblend(ls, pattern, pairs)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, data) {
		t.Fatal("unblend(blend(pattern, data)) != data")
	}
}

func TestUnblendDetectsPatternMismatch(t *testing.T) {
	ls, err := tongue.Build(nil)
	if err != nil {
		t.Fatal(err)
	}
	pattern := []tongue.Tongue{tongue.KO, tongue.AV}
	pairs, err := Blend(ls, pattern, []byte{1, 2, 3, 4})
	if err != nil {
		t.Fatal(err)
	}
	pairs[1].Tongue = tongue.RU // corrupt the second pair's declared tongue
	_, err = Unblend(ls, pattern, pairs)
	if err == nil {
		t.Fatal("expected pattern mismatch error")
	}
	var mismatch *ErrPatternMismatch
	if _, ok := err.(*ErrPatternMismatch); !ok {
		t.Fatalf("expected *ErrPatternMismatch, got %T: %v", err, err)
	}
	_ = mismatch
}

func TestBlendEmptyData(t *testing.T) {
	ls, err := tongue.Build(nil)
	if err != nil {
		t.Fatal(err)
	}
	pattern := []tongue.Tongue{tongue.KO}
	pairs, err := Blend(ls, pattern, nil)
	if err != nil {
		t.Fatal(err)
	}
	got, err := Unblend(ls, pattern, pairs)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty output, got %v", got)
	}
}
