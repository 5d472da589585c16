// Package ring implements the ring policy (C6): classification of a
// scalar into ordered trust bands, each carrying fixed policy
// attributes.
package ring

import (
	"fmt"
	"time"
)

// Band is one of the ordered trust rings.
type Band string

const (
	Core    Band = "core"
	Inner   Band = "inner"
	Middle  Band = "middle"
	Outer   Band = "outer"
	Edge    Band = "edge"
	Beyond  Band = "beyond"
)

// Action is the policy action attached to a classification.
type Action string

const (
	ActionAllow  Action = "ALLOW"
	ActionReject Action = "REJECT"
)

// Policy holds the per-band attributes bound at classification time.
// These numeric thresholds and attributes are fixed constants of the
// system, not tunables exposed to callers of the core (spec.md section
// 4.6); the exact values below are this implementation's authoritative
// choice.
type Policy struct {
	Band               Band
	Action             Action
	MaxLatency         time.Duration
	RequiredSignatures int
	PowBits            int
	TrustDecayRate     float64
}

type band struct {
	name     Band
	ceiling  float64 // half-open upper bound: [floor, ceiling)
	policy   Policy
}

// bands is the total, disjoint, ordered partition of [0,1). r >= 1 maps
// to Beyond/REJECT outside this table.
var bands = []band{
	{Core, 0.2, Policy{Core, ActionAllow, 50 * time.Millisecond, 1, 0, 0.01}},
	{Inner, 0.4, Policy{Inner, ActionAllow, 150 * time.Millisecond, 2, 4, 0.05}},
	{Middle, 0.6, Policy{Middle, ActionAllow, 400 * time.Millisecond, 3, 8, 0.10}},
	{Outer, 0.8, Policy{Outer, ActionAllow, 900 * time.Millisecond, 4, 12, 0.20}},
	{Edge, 1.0, Policy{Edge, ActionAllow, 2000 * time.Millisecond, 5, 16, 0.35}},
}

var beyondPolicy = Policy{Beyond, ActionReject, 0, 0, 0, 1.0}

// Classify maps r into exactly one band. For r in [0,1) it returns one
// of {core, inner, middle, outer, edge} with ActionAllow; for r >= 1 it
// returns beyond/REJECT.
func Classify(r float64) Policy {
	if r >= 1 {
		return beyondPolicy
	}
	if r < 0 {
		r = 0
	}
	for _, b := range bands {
		if r < b.ceiling {
			return b.policy
		}
	}
	return beyondPolicy
}

// String renders a Policy for logging.
func (p Policy) String() string {
	return fmt.Sprintf("%s(action=%s, signatures=%d, pow_bits=%d, decay=%.2f, max_latency=%s)",
		p.Band, p.Action, p.RequiredSignatures, p.PowBits, p.TrustDecayRate, p.MaxLatency)
}
