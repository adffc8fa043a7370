package market_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	market "folio-api/pkg/market"
	_ "folio-api/pkg/market/sim"
	_ "folio-api/pkg/market/yahoo"
)

func TestLoadMarketConfig(t *testing.T) {
	dir := t.TempDir()
	configYAML := `
default: yahoo
providers:
  yahoo:
    type: yahoo
    base_url: https://yfapi.net
    region: US
    lang: en
    timeout: 6s
    http_timeout: 12s
    max_retries: 4
  sim:
    type: sim
    seed: 42
`
	path := filepath.Join(dir, "market.yaml")
	if err := os.WriteFile(path, []byte(configYAML), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := market.LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}
	if cfg.Default != "yahoo" {
		t.Fatalf("unexpected default: %s", cfg.Default)
	}
	if cfg.Providers["yahoo"].Timeout.String() != "6s" {
		t.Fatalf("timeout not parsed: %s", cfg.Providers["yahoo"].Timeout)
	}
	if cfg.Providers["sim"].Seed != 42 {
		t.Fatalf("seed not parsed: %d", cfg.Providers["sim"].Seed)
	}

	providers, err := cfg.BuildProviders()
	if err != nil {
		t.Fatalf("BuildProviders error: %v", err)
	}
	if len(providers) != 2 {
		t.Fatalf("expected 2 providers, got %d", len(providers))
	}
	if _, ok := providers["yahoo"]; !ok {
		t.Fatalf("provider map missing yahoo")
	}
	if _, ok := providers["sim"]; !ok {
		t.Fatalf("provider map missing sim")
	}
}

func TestMarketConfigInvalidType(t *testing.T) {
	dir := t.TempDir()
	configYAML := `
providers:
  demo:
    type: foobar
`
	path := filepath.Join(dir, "market.yaml")
	if err := os.WriteFile(path, []byte(configYAML), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	_, err := market.LoadConfig(path)
	if err == nil || !strings.Contains(err.Error(), "unsupported") {
		t.Fatalf("expected unsupported type error, got %v", err)
	}
}

func TestMarketConfigUnknownDefault(t *testing.T) {
	dir := t.TempDir()
	configYAML := `
default: nope
providers:
  sim:
    type: sim
`
	path := filepath.Join(dir, "market.yaml")
	if err := os.WriteFile(path, []byte(configYAML), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	_, err := market.LoadConfig(path)
	if err == nil || !strings.Contains(err.Error(), "not defined") {
		t.Fatalf("expected default-not-defined error, got %v", err)
	}
}

// Ensures env placeholders are expanded and durations parsed.
func TestMarketConfig_EnvExpansionAndDurations(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("BASE_URL_VAR", "https://quotes.example.test")
	t.Setenv("API_KEY_VAR", "secret-key")
	t.Setenv("TOUT", "9s")
	t.Setenv("HTTP_TOUT", "13s")

	yaml := []byte(`
default: yf
providers:
  yf:
    type: yahoo
    base_url: ${BASE_URL_VAR}
    api_key: ${API_KEY_VAR}
    timeout: ${TOUT}
    http_timeout: ${HTTP_TOUT}
`)
	path := filepath.Join(dir, "market.yaml")
	if err := os.WriteFile(path, yaml, 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := market.LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	p := cfg.Providers["yf"]
	if p == nil {
		t.Fatalf("provider yf missing")
	}
	if p.BaseURL != "https://quotes.example.test" {
		t.Fatalf("BaseURL not expanded, got %q", p.BaseURL)
	}
	if p.APIKey != "secret-key" {
		t.Fatalf("APIKey not expanded, got %q", p.APIKey)
	}
	if p.Timeout.String() != "9s" || p.HTTPTimeout.String() != "13s" {
		t.Fatalf("durations not parsed, timeout=%s http_timeout=%s", p.Timeout, p.HTTPTimeout)
	}
}
