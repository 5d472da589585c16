// Package blend implements the byte-level interleave/deinterleave codec
// (C4) that stripes bytes across a periodic pattern of tongues.
package blend

import (
	"fmt"

	"github.com/issdandavis/SCBE-AETHERMOORE-sub001/pkg/tongue"
)

// ErrPatternMismatch is returned by Unblend when an observed tongue
// differs from the one the pattern predicts at that index.
type ErrPatternMismatch struct {
	Index    int
	Expected tongue.Tongue
	Got      tongue.Tongue
}

func (e *ErrPatternMismatch) Error() string {
	return fmt.Sprintf("blend: pattern mismatch at index %d: expected %s, got %s", e.Index, e.Expected, e.Got)
}

// Pair is one interleaved (tongue, token) entry.
type Pair struct {
	Tongue tongue.Tongue
	Token  string
}

// Blend interleaves data's bytes across pattern, token-encoding byte i
// under pattern[i mod len(pattern)].
func Blend(ls *tongue.Lexicons, pattern []tongue.Tongue, data []byte) ([]Pair, error) {
	if len(pattern) == 0 {
		return nil, fmt.Errorf("blend: empty pattern")
	}
	out := make([]Pair, len(data))
	for i, b := range data {
		t := pattern[i%len(pattern)]
		lex, err := ls.For(t)
		if err != nil {
			return nil, err
		}
		out[i] = Pair{Tongue: t, Token: lex.Encode(b)}
	}
	return out, nil
}

// Unblend reconstructs the original bytes from interleaved pairs,
// verifying that each pair's tongue matches the pattern at that index.
func Unblend(ls *tongue.Lexicons, pattern []tongue.Tongue, pairs []Pair) ([]byte, error) {
	if len(pattern) == 0 {
		return nil, fmt.Errorf("blend: empty pattern")
	}
	out := make([]byte, len(pairs))
	for i, p := range pairs {
		want := pattern[i%len(pattern)]
		if p.Tongue != want {
			return nil, &ErrPatternMismatch{Index: i, Expected: want, Got: p.Tongue}
		}
		lex, err := ls.For(want)
		if err != nil {
			return nil, err
		}
		b, ok := lex.Decode(p.Token)
		if !ok {
			return nil, fmt.Errorf("blend: %w", fmt.Errorf("unknown token %q at index %d", p.Token, i))
		}
		out[i] = b
	}
	return out, nil
}
