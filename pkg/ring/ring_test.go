package ring

import "testing"

func TestRingTotality(t *testing.T) {
	valid := map[Band]bool{Core: true, Inner: true, Middle: true, Outer: true, Edge: true}
	for r := 0.0; r < 1.0; r += 0.001 {
		p := Classify(r)
		if !valid[p.Band] {
			t.Fatalf("Classify(%v) returned unexpected band %s", r, p.Band)
		}
		if p.Action != ActionAllow {
			t.Fatalf("Classify(%v) in [0,1) should ALLOW, got %s", r, p.Action)
		}
	}
}

func TestRingBeyond(t *testing.T) {
	for _, r := range []float64{1.0, 1.5, 100.0} {
		p := Classify(r)
		if p.Band != Beyond || p.Action != ActionReject {
			t.Fatalf("Classify(%v) = %+v, want beyond/REJECT", r, p)
		}
	}
}

func TestRingBandsOrdered(t *testing.T) {
	order := []Band{Core, Inner, Middle, Outer, Edge}
	probes := []float64{0.0, 0.25, 0.45, 0.65, 0.85}
	for i, r := range probes {
		p := Classify(r)
		if p.Band != order[i] {
			t.Fatalf("Classify(%v) = %s, want %s", r, p.Band, order[i])
		}
	}
}
