// Package tokenizer implements the bytes<->token-stream codec (C2) over a
// single tongue's lexicon.
package tokenizer

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/issdandavis/SCBE-AETHERMOORE-sub001/pkg/tongue"
)

// ErrUnknownToken is returned by Decode when a token is absent from the
// tongue's inverse map. The offending token and its position in the
// input slice are carried on the error so callers can report both
// verbatim for triage (spec.md section 4.10: "raises on the first
// unknown token with that token's string and position").
type ErrUnknownToken struct {
	Token string
	Index int
}

func (e *ErrUnknownToken) Error() string {
	return fmt.Sprintf("tokenizer: unknown token %q at position %d", e.Token, e.Index)
}

// Encode maps each byte of data through tongue t's forward table.
func Encode(ls *tongue.Lexicons, t tongue.Tongue, data []byte) ([]string, error) {
	lex, err := ls.For(t)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(data))
	for i, b := range data {
		out[i] = lex.Encode(b)
	}
	return out, nil
}

// Decode maps each token through tongue t's inverse table. It fails with
// *ErrUnknownToken on the first token absent from the tongue, reporting
// that token's string.
func Decode(ls *tongue.Lexicons, t tongue.Tongue, tokens []string) ([]byte, error) {
	lex, err := ls.For(t)
	if err != nil {
		return nil, err
	}
	out := make([]byte, len(tokens))
	for i, tok := range tokens {
		b, ok := lex.Decode(tok)
		if !ok {
			return nil, &ErrUnknownToken{Token: tok, Index: i}
		}
		out[i] = b
	}
	return out, nil
}

// Normalize splits a token-stream wire string on whitespace and commas,
// dropping empty fields. No case folding or Unicode normalization is
// applied: tokens are compared as opaque strings.
func Normalize(streamText string) []string {
	fields := strings.FieldsFunc(streamText, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if f != "" {
			out = append(out, f)
		}
	}
	return out
}

// Join renders a token slice as the space-separated wire format.
func Join(tokens []string) string {
	return strings.Join(tokens, " ")
}
