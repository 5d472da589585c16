package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SCBE_KEM_KEY_PATH", "")
	t.Setenv("SCBE_DSA_KEY_PATH", "")
	t.Setenv("SCBE_DEFAULT_L_SPHERE", "")
	t.Setenv("SCBE_DEFAULT_L_CUBE", "")
	t.Setenv("SCBE_METRICS_ADDR", "")
	t.Setenv("SCBE_SIGNATURE_PROVIDER", "")

	cfg := Load()
	if cfg.SignatureProvider != "placeholder" {
		t.Fatalf("expected placeholder default, got %q", cfg.SignatureProvider)
	}
	if cfg.DefaultLSphere != 0 || cfg.DefaultLCube != 0 {
		t.Fatalf("expected zero-level defaults, got %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate, got %v", err)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SCBE_DEFAULT_L_SPHERE", "2")
	t.Setenv("SCBE_DEFAULT_L_CUBE", "1")
	t.Setenv("SCBE_SIGNATURE_PROVIDER", "mldsa65")
	t.Setenv("SCBE_METRICS_ADDR", ":9090")

	cfg := Load()
	if cfg.DefaultLSphere != 2 || cfg.DefaultLCube != 1 {
		t.Fatalf("expected overridden levels, got %+v", cfg)
	}
	if cfg.SignatureProvider != "mldsa65" {
		t.Fatalf("expected mldsa65, got %q", cfg.SignatureProvider)
	}
	if cfg.MetricsAddr != ":9090" {
		t.Fatalf("expected metrics addr override, got %q", cfg.MetricsAddr)
	}
}

func TestValidateRejectsUnknownProvider(t *testing.T) {
	cfg := Config{SignatureProvider: "quantum-vibes"}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unknown signature provider")
	}
}

func TestValidateRejectsNegativeLevels(t *testing.T) {
	cfg := Config{SignatureProvider: "placeholder", DefaultLSphere: -1}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for negative projection level")
	}
}
