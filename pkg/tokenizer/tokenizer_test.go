package tokenizer

import (
	"bytes"
	"errors"
	"testing"

	"github.com/issdandavis/SCBE-AETHERMOORE-sub001/pkg/tongue"
)

func mustLexicons(t *testing.T) *tongue.Lexicons {
	t.Helper()
	ls, err := tongue.Build(nil)
	if err != nil {
		t.Fatalf("tongue.Build(nil): %v", err)
	}
	return ls
}

func TestRoundTripFullPayload(t *testing.T) {
	ls := mustLexicons(t)
	payload := make([]byte, 256)
	for i := range payload {
		payload[i] = byte(i)
	}
	for _, tg := range tongue.All() {
		toks, err := Encode(ls, tg, payload)
		if err != nil {
			t.Fatalf("Encode(%s): %v", tg, err)
		}
		got, err := Decode(ls, tg, toks)
		if err != nil {
			t.Fatalf("Decode(%s): %v", tg, err)
		}
		if !bytes.Equal(got, payload) {
			t.Fatalf("round trip mismatch for tongue %s", tg)
		}
	}
}

func TestDefaultLexiconByteSweepKO(t *testing.T) {
	ls := mustLexicons(t)
	payload := make([]byte, 256)
	for i := range payload {
		payload[i] = byte(i)
	}
	toks, err := Encode(ls, tongue.KO, payload)
	if err != nil {
		t.Fatal(err)
	}
	seen := make(map[string]bool, 256)
	for _, tok := range toks {
		seen[tok] = true
	}
	if len(seen) != 256 {
		t.Fatalf("got %d distinct tokens, want 256", len(seen))
	}
	got, err := Decode(ls, tongue.KO, toks)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, payload) {
		t.Fatal("decode(encode(range(256))) != range(256)")
	}
}

func TestUnknownTokenReportsOffendingString(t *testing.T) {
	ls := mustLexicons(t)
	toks, err := Encode(ls, tongue.KO, []byte{0x00, 0x01})
	if err != nil {
		t.Fatal(err)
	}
	toks[1] = toks[1] + "x"
	_, err = Decode(ls, tongue.KO, toks)
	if err == nil {
		t.Fatal("expected error for corrupted token")
	}
	var unk *ErrUnknownToken
	if !errors.As(err, &unk) {
		t.Fatalf("expected *ErrUnknownToken, got %T: %v", err, err)
	}
	if unk.Token != toks[1] {
		t.Fatalf("offending token = %q, want %q", unk.Token, toks[1])
	}
	if unk.Index != 1 {
		t.Fatalf("offending index = %d, want 1", unk.Index)
	}
}

func TestNormalizeAcceptsCommasAndWhitespace(t *testing.T) {
	in := " ko:ka'na, ko:ka'ne \t ko:ka'ni\n"
	got := Normalize(in)
	want := []string{"ko:ka'na", "ko:ka'ne", "ko:ka'ni"}
	if len(got) != len(want) {
		t.Fatalf("Normalize: got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Normalize[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
