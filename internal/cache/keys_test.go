package cache

import (
	"testing"
	"time"

	"folio-api/internal/config"
)

func TestKeyBuilders(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"quote", QuoteKey("aapl"), "folio:quote:AAPL"},
		{"quote batch", QuoteBatchKey(), "folio:quotes"},
		{"summary", MarketSummaryKey(), "folio:market:summary"},
		{"history", HistoryKey("msft", "1mo", "1d"), "folio:history:MSFT:1mo:1d"},
		{"search", SearchKey("  Apple "), "folio:search:apple"},
		{"metrics", MetricsKey(), "folio:metrics"},
		{"dynamic", FormatCacheKey("a", " ", "b"), "folio:a:b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Fatalf("got %q, want %q", tt.got, tt.want)
			}
		})
	}
}

func TestNewTTLSet(t *testing.T) {
	ttl := NewTTLSet(config.CacheTTL{Short: 5, Medium: 30, Long: 600})
	if ttl.Short != 5*time.Second || ttl.Medium != 30*time.Second || ttl.Long != 10*time.Minute {
		t.Fatalf("unexpected ttl set: %+v", ttl)
	}

	defaults := NewTTLSet(config.CacheTTL{})
	if defaults.Short != 10*time.Second || defaults.Medium != time.Minute || defaults.Long != 5*time.Minute {
		t.Fatalf("unexpected defaults: %+v", defaults)
	}
}

func TestTTLSetScaled(t *testing.T) {
	ttl := NewTTLSet(config.CacheTTL{Short: 10, Medium: 60, Long: 300})
	if got := ttl.Scaled(TTLShort, 0.5); got != 5*time.Second {
		t.Fatalf("scaled short: %s", got)
	}
	if got := ttl.Scaled(TTLLong, 2); got != 10*time.Minute {
		t.Fatalf("scaled long: %s", got)
	}
	if got := ttl.Duration(TTLClass("bogus")); got != 0 {
		t.Fatalf("unknown class should be zero, got %s", got)
	}
}
