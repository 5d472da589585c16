package geoproj

import (
	"math"
	"strings"
	"testing"
)

func TestValidateRejectsEmptyContext(t *testing.T) {
	if err := Validate(nil); err == nil {
		t.Fatal("expected error for empty context")
	}
}

func TestValidateRejectsNonFinite(t *testing.T) {
	cases := [][]float64{
		{math.NaN(), 1, 2},
		{math.Inf(1), 1, 2},
		{1, 2, math.Inf(-1)},
	}
	for _, c := range cases {
		if err := Validate(c); err == nil {
			t.Fatalf("expected error for context %v", c)
		}
	}
}

func TestValidateAcceptsShortContext(t *testing.T) {
	if err := Validate([]float64{1.0}); err != nil {
		t.Fatalf("unexpected error for short context: %v", err)
	}
}

func TestProjectSphereUnitNorm(t *testing.T) {
	u := ProjectSphere([]float64{1, 2, 3})
	var sumSq float64
	for _, c := range u {
		sumSq += c * c
	}
	if math.Abs(math.Sqrt(sumSq)-1) > 1e-9 {
		t.Fatalf("sphere projection is not unit norm: %v", u)
	}
}

func TestProjectCubeClampsToUnitInterval(t *testing.T) {
	v := ProjectCube([]float64{-1000, 0, 1000, 5, -5, 0.001}, 6)
	for i, c := range v {
		if c < 0 || c > 1 {
			t.Fatalf("cube component %d = %v out of [0,1]", i, c)
		}
	}
}

func TestPathLabelFormat(t *testing.T) {
	proj, err := Project([]float64{0.2, -0.3, 0.7, 1.0, -2.0, 0.5, 3.1, -9.9, 0.0}, 0, 0, DefaultCubeArity)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(proj.H, "S0:(") {
		t.Fatalf("unexpected sphere id format: %s", proj.H)
	}
	if !strings.HasPrefix(proj.Z, "C0:(") {
		t.Fatalf("unexpected cube id format: %s", proj.Z)
	}
	if proj.Path != "interior" && proj.Path != "exterior" {
		t.Fatalf("unexpected path label: %s", proj.Path)
	}
}

func TestProjectDeterministic(t *testing.T) {
	ctx := []float64{0.2, -0.3, 0.7, 1.0, -2.0, 0.5}
	p1, err := Project(ctx, 1, 2, DefaultCubeArity)
	if err != nil {
		t.Fatal(err)
	}
	p2, err := Project(ctx, 1, 2, DefaultCubeArity)
	if err != nil {
		t.Fatal(err)
	}
	if p1.H != p2.H || p1.Z != p2.Z || p1.Potentials != p2.Potentials {
		t.Fatal("projection is not deterministic for identical inputs")
	}
}
