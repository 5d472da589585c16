// Package metrics exposes Prometheus instrumentation for the tokenizer
// and envelope operations, registered against a caller-supplied
// registry rather than the global default (main.go owns the listener
// and registry lifecycle, following the teacher's dependency-injected
// service construction rather than package-level globals).
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Metrics bundles the counters and histograms for pkg/tokenizer,
// pkg/xlate, and pkg/geoseal operations; main.go updates them around its
// calls into those packages. New populates every field; a zero-value
// Metrics has nil collectors, and calling into them panics.
type Metrics struct {
	EncodeTotal      *prometheus.CounterVec
	DecodeTotal      *prometheus.CounterVec
	RetokenizeTotal  *prometheus.CounterVec
	SealTotal        prometheus.Counter
	OpenTotal        prometheus.Counter
	SignatureInvalid prometheus.Counter
	SealLatency      prometheus.Histogram
	OpenLatency      prometheus.Histogram
}

// New registers and returns a Metrics bundle against reg. Each call
// registers a fresh set of collectors: callers must not call New twice
// against the same registry.
func New(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		EncodeTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "scbe_tokenizer_encode_total",
			Help: "Total bytes-to-tokens encode calls, labeled by tongue.",
		}, []string{"tongue"}),
		DecodeTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "scbe_tokenizer_decode_total",
			Help: "Total tokens-to-bytes decode calls, labeled by tongue.",
		}, []string{"tongue"}),
		RetokenizeTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "scbe_xlate_retokenize_total",
			Help: "Total cross-tongue retokenizations, labeled by src_dst pair.",
		}, []string{"pair"}),
		SealTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "scbe_geoseal_seal_total",
			Help: "Total envelopes sealed.",
		}),
		OpenTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "scbe_geoseal_open_total",
			Help: "Total envelope open attempts, successful or not.",
		}),
		SignatureInvalid: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "scbe_geoseal_signature_invalid_total",
			Help: "Total envelope opens rejected for signature verification failure.",
		}),
		SealLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "scbe_geoseal_seal_seconds",
			Help:    "Seal call latency in seconds.",
			Buckets: prometheus.DefBuckets,
		}),
		OpenLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "scbe_geoseal_open_seconds",
			Help:    "Open call latency in seconds.",
			Buckets: prometheus.DefBuckets,
		}),
	}
	reg.MustRegister(
		m.EncodeTotal, m.DecodeTotal, m.RetokenizeTotal,
		m.SealTotal, m.OpenTotal, m.SignatureInvalid,
		m.SealLatency, m.OpenLatency,
	)
	return m
}
