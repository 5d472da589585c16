// Package geoseal implements the context-bound authenticated envelope
// (C7 sealer / C8 opener): plaintext is masked with a keystream derived
// from a KEM shared secret bound to a projection of the caller's context
// vector, then the bound envelope is signed.
package geoseal

import (
	"encoding/json"
	"errors"
)

// Error taxonomy entries owned by this package (spec.md section 7).
var (
	ErrSignatureInvalid = errors.New("geoseal: signature invalid")
	ErrEncoding         = errors.New("geoseal: malformed envelope encoding")
)

// Attest is the signed attestation record embedded in an envelope,
// exactly the field set and JSON shape spec.md section 6 pins. P and
// Margin are json.Number, not string: spec.md section 6 declares them
// as JSON numbers ("P": float6, "margin": float6), and json.Number
// marshals as a bare numeric literal while still carrying the exact
// six-decimal text Float6 produces, so the wire format is a number and
// pkg/commitment's canonicalization still signs the precise digits.
type Attest struct {
	H       string      `json:"h"`
	Z       string      `json:"z"`
	LSphere int         `json:"L_s"`
	LCube   int         `json:"L_c"`
	P       json.Number `json:"P"`
	Margin  json.Number `json:"margin"`
	TS      int64       `json:"ts"`
	Path    string      `json:"path"`
}

// Envelope is the sealed record spec.md section 3/6 defines. Binary
// fields marshal to base64 automatically: encoding/json encodes []byte
// fields as standard-encoding base64 strings.
type Envelope struct {
	CtK    []byte `json:"ct_k"`
	CtSpec []byte `json:"ct_spec"`
	Attest Attest `json:"attest"`
	Sig    []byte `json:"sig"`
}
