package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNewRegistersCollectorsAndCounts(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.EncodeTotal.WithLabelValues("KO").Inc()
	m.SealTotal.Inc()
	m.SignatureInvalid.Inc()

	if got := testutil.ToFloat64(m.EncodeTotal.WithLabelValues("KO")); got != 1 {
		t.Fatalf("expected encode counter 1, got %v", got)
	}
	if got := testutil.ToFloat64(m.SealTotal); got != 1 {
		t.Fatalf("expected seal counter 1, got %v", got)
	}
	if got := testutil.ToFloat64(m.SignatureInvalid); got != 1 {
		t.Fatalf("expected signature invalid counter 1, got %v", got)
	}

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	if len(families) == 0 {
		t.Fatal("expected at least one registered metric family")
	}
}
