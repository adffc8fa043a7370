package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"folio-api/internal/config"
	_ "folio-api/pkg/market/sim"
)

func writeConfig(t *testing.T, yaml string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "folio.yaml")
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, `
Name: folio-test
Host: 0.0.0.0
Port: 8888
`)

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Env != "test" {
		t.Fatalf("expected env test, got %q", cfg.Env)
	}
	if !cfg.IsTestEnv() {
		t.Fatal("expected IsTestEnv true")
	}
	if cfg.Store.Type != "file" || cfg.Store.Format != "json" {
		t.Fatalf("unexpected store defaults: %+v", cfg.Store)
	}
	if cfg.Refresh.QuoteInterval != 300 || cfg.Refresh.MarketInterval != 30 {
		t.Fatalf("unexpected refresh defaults: %+v", cfg.Refresh)
	}
	if cfg.TTL.Short != 10 || cfg.TTL.Medium != 60 || cfg.TTL.Long != 300 {
		t.Fatalf("unexpected ttl defaults: %+v", cfg.TTL)
	}
	if cfg.BaseDir() != filepath.Dir(cfg.MainPath()) {
		t.Fatal("BaseDir should be the main config directory")
	}
}

func TestLoadInvalidEnv(t *testing.T) {
	path := writeConfig(t, `
Name: folio-test
Host: 0.0.0.0
Port: 8888
Env: staging
`)

	_, err := config.Load(path)
	if err == nil || !strings.Contains(err.Error(), "env must be one of") {
		t.Fatalf("expected env error, got %v", err)
	}
}

func TestLoadStoreValidation(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name: "unknown store type",
			yaml: `
Name: folio-test
Host: 0.0.0.0
Port: 8888
Store:
  Type: s3
`,
			wantErr: "store.type",
		},
		{
			name: "postgres without dsn",
			yaml: `
Name: folio-test
Host: 0.0.0.0
Port: 8888
Store:
  Type: postgres
`,
			wantErr: "requires postgres.dsn",
		},
		{
			name: "unknown format",
			yaml: `
Name: folio-test
Host: 0.0.0.0
Port: 8888
Store:
  Format: xml
`,
			wantErr: "store.format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.yaml)
			_, err := config.Load(path)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestLoadHydratesMarketSection(t *testing.T) {
	dir := t.TempDir()
	marketYAML := `
default: sim
providers:
  sim:
    type: sim
    seed: 7
`
	if err := os.WriteFile(filepath.Join(dir, "market.yaml"), []byte(marketYAML), 0o600); err != nil {
		t.Fatalf("write market config: %v", err)
	}
	appYAML := `
Name: folio-test
Host: 0.0.0.0
Port: 8888
Market:
  File: market.yaml
`
	path := filepath.Join(dir, "folio.yaml")
	if err := os.WriteFile(path, []byte(appYAML), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Market.Value == nil {
		t.Fatal("market section not hydrated")
	}
	if cfg.Market.Value.Default != "sim" {
		t.Fatalf("unexpected market default: %s", cfg.Market.Value.Default)
	}
	if cfg.Market.Value.Providers["sim"].Seed != 7 {
		t.Fatalf("seed not loaded: %+v", cfg.Market.Value.Providers["sim"])
	}
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("FOLIO_ENV_TEST", "prod")
	path := writeConfig(t, `
Name: folio-test
Host: 0.0.0.0
Port: 8888
Env: ${FOLIO_ENV_TEST}
`)

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Env != "prod" {
		t.Fatalf("expected env prod, got %q", cfg.Env)
	}
	if cfg.IsTestEnv() {
		t.Fatal("prod should not be test env")
	}
}
