// Package tongue implements the six-tongue lexicon layer (C1): disjoint
// byte<->token bijections, one per named channel, each carrying a fixed
// phase angle and a fixed golden-ratio weight.
package tongue

import (
	"errors"
	"fmt"
	"math"
)

// Tongue is one of the six named channels, totally ordered by declaration.
type Tongue int

const (
	KO Tongue = iota
	AV
	RU
	CA
	UM
	DR
	numTongues
)

var tongueNames = [numTongues]string{"KO", "AV", "RU", "CA", "UM", "DR"}

// String returns the canonical upper-case name of the tongue.
func (t Tongue) String() string {
	if t < 0 || int(t) >= len(tongueNames) {
		return "UNKNOWN"
	}
	return tongueNames[t]
}

// ParseTongue resolves a canonical tongue name back to its Tongue value.
func ParseTongue(name string) (Tongue, error) {
	for i, n := range tongueNames {
		if n == name {
			return Tongue(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownTongue, name)
}

// phi is the golden ratio, base of the tongue weight progression.
const phi = 1.618033988749895

// Phase returns the tongue's fixed phase angle in radians: multiples of
// pi/3 starting at zero, in declaration order.
func (t Tongue) Phase() float64 {
	return float64(t) * math.Pi / 3.0
}

// Weight returns the tongue's fixed weight: phi raised to the tongue's
// declaration index.
func (t Tongue) Weight() float64 {
	return math.Pow(phi, float64(t))
}

// All returns the six tongues in declaration order.
func All() []Tongue {
	out := make([]Tongue, numTongues)
	for i := range out {
		out[i] = Tongue(i)
	}
	return out
}

// Error kinds for lexicon construction (spec.md error taxonomy item 1,
// LexiconError).
var (
	ErrIncomplete     = errors.New("tongue: lexicon incomplete, a byte has no token")
	ErrDuplicateToken = errors.New("tongue: duplicate token within a lexicon")
	ErrUnknownTongue  = errors.New("tongue: unknown tongue channel")
)

// Lexicon is a per-tongue bijection between bytes and tokens.
type Lexicon struct {
	tongue  Tongue
	toToken [256]string
	toByte  map[string]byte
}

// Tongue returns the channel this lexicon belongs to.
func (l *Lexicon) Tongue() Tongue { return l.tongue }

// Encode returns the token for a single byte.
func (l *Lexicon) Encode(b byte) string {
	return l.toToken[b]
}

// Decode returns the byte for a token and true, or false if the token
// is absent from this lexicon.
func (l *Lexicon) Decode(token string) (byte, bool) {
	b, ok := l.toByte[token]
	return b, ok
}

// newLexicon builds and validates a lexicon from a 256-entry index->token
// table for a single tongue.
func newLexicon(t Tongue, table [256]string) (*Lexicon, error) {
	lex := &Lexicon{tongue: t, toToken: table, toByte: make(map[string]byte, 256)}
	for b, tok := range table {
		if tok == "" {
			return nil, fmt.Errorf("%w: tongue %s byte %d", ErrIncomplete, t, b)
		}
		if _, dup := lex.toByte[tok]; dup {
			return nil, fmt.Errorf("%w: tongue %s token %q", ErrDuplicateToken, t, tok)
		}
		lex.toByte[tok] = byte(b)
	}
	return lex, nil
}

// Lexicons holds all six tongues' lexicons.
type Lexicons struct {
	byTongue [numTongues]*Lexicon

	// Version pins the lexicon generation used to build this set, so an
	// upper layer that wraps the core with versioned snapshots has a
	// field to record in its own attestation (see spec.md Design Notes
	// on the excluded "evolving lexicon" variant).
	Version string
}

// DefaultVersion is the version id of the built-in deterministic generator.
const DefaultVersion = "demo-v1"

// For looks up the lexicon for a tongue.
func (ls *Lexicons) For(t Tongue) (*Lexicon, error) {
	if t < 0 || int(t) >= len(ls.byTongue) {
		return nil, fmt.Errorf("%w: index %d", ErrUnknownTongue, int(t))
	}
	lex := ls.byTongue[t]
	if lex == nil {
		return nil, fmt.Errorf("%w: %s not built", ErrUnknownTongue, t)
	}
	return lex, nil
}

// Table is a full custom lexicon table: one 256-entry index->token slice
// per tongue, keyed by canonical tongue name.
type Table map[string][256]string

// Build constructs a Lexicons value. With table == nil, the default
// deterministic generator is used. A custom table must cover exactly the
// six declared tongues and satisfy totality and injectivity per tongue.
func Build(table Table) (*Lexicons, error) {
	if table == nil {
		return buildDefault()
	}
	ls := &Lexicons{Version: "custom"}
	seen := make(map[Tongue]bool, numTongues)
	for name, entries := range table {
		t, err := ParseTongue(name)
		if err != nil {
			return nil, err
		}
		lex, err := newLexicon(t, entries)
		if err != nil {
			return nil, err
		}
		ls.byTongue[t] = lex
		seen[t] = true
	}
	for _, t := range All() {
		if !seen[t] {
			return nil, fmt.Errorf("%w: %s missing from custom table", ErrIncomplete, t)
		}
	}
	return ls, nil
}

// hi and lo are the fixed 16-element syllable tables whose product gives
// the default generator's 256 tokens per tongue (spec.md section 4.1).
var hi = [16]string{
	"ka", "ke", "ki", "ko", "ku",
	"ta", "te", "ti", "to", "tu",
	"pa", "pe", "pi", "po", "pu",
	"sa",
}

var lo = [16]string{
	"na", "ne", "ni", "no", "nu",
	"ma", "me", "mi", "mo", "mu",
	"ra", "re", "ri", "ro", "ru",
	"la",
}

// buildDefault produces, for each tongue T, the tokens t_hi'_lo where hi
// and lo are drawn from the fixed syllable tables, giving 16x16 = 256
// distinct tokens per tongue. The generator is injective by construction:
// distinct (hi, lo) pairs cannot collide within a tongue.
func buildDefault() (*Lexicons, error) {
	ls := &Lexicons{Version: DefaultVersion}
	for _, t := range All() {
		var table [256]string
		prefix := lowerTongue(t)
		for b := 0; b < 256; b++ {
			h := (b >> 4) & 0xF
			l := b & 0xF
			table[b] = fmt.Sprintf("%s:%s'%s", prefix, hi[h], lo[l])
		}
		lex, err := newLexicon(t, table)
		if err != nil {
			return nil, err
		}
		ls.byTongue[t] = lex
	}
	return ls, nil
}

func lowerTongue(t Tongue) string {
	switch t {
	case KO:
		return "ko"
	case AV:
		return "av"
	case RU:
		return "ru"
	case CA:
		return "ca"
	case UM:
		return "um"
	case DR:
		return "dr"
	default:
		return "??"
	}
}
