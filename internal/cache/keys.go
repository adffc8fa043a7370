package cache

import (
	"strings"
	"time"

	"folio-api/internal/config"
)

// Namespace is the Redis key prefix for the folio application.
const Namespace = "folio"

// TTLClass represents a config-driven TTL bucket.
type TTLClass string

const (
	TTLShort  TTLClass = "short"
	TTLMedium TTLClass = "medium"
	TTLLong   TTLClass = "long"
)

// TTLSet normalises cache TTLs from config into time.Duration values.
type TTLSet struct {
	Short  time.Duration
	Medium time.Duration
	Long   time.Duration
}

// NewTTLSet converts config TTLs (in seconds) into durations.
func NewTTLSet(cfg config.CacheTTL) TTLSet {
	return TTLSet{
		Short:  durationOrDefault(cfg.Short, 10*time.Second),
		Medium: durationOrDefault(cfg.Medium, time.Minute),
		Long:   durationOrDefault(cfg.Long, 5*time.Minute),
	}
}

func durationOrDefault(seconds int, fallback time.Duration) time.Duration {
	if seconds < 0 {
		return 0
	}
	if seconds == 0 {
		return fallback
	}
	return time.Duration(seconds) * time.Second
}

// Duration returns the configured duration for the given TTL class.
func (t TTLSet) Duration(class TTLClass) time.Duration {
	switch class {
	case TTLShort:
		return t.Short
	case TTLMedium:
		return t.Medium
	case TTLLong:
		return t.Long
	default:
		return 0
	}
}

// Scaled applies a multiplier to a TTL class, useful for half/double TTL variants.
func (t TTLSet) Scaled(class TTLClass, factor float64) time.Duration {
	base := t.Duration(class)
	if base <= 0 || factor <= 0 {
		return base
	}
	return time.Duration(float64(base) * factor)
}

func formatKey(parts ...string) string {
	values := make([]string, 0, len(parts)+1)
	values = append(values, Namespace)
	for _, part := range parts {
		clean := strings.TrimSpace(part)
		if clean == "" {
			continue
		}
		values = append(values, clean)
	}
	return strings.Join(values, ":")
}

// --- Quote Keys -------------------------------------------------------------

// QuoteKey stores the latest quote for a single symbol.
func QuoteKey(symbol string) string {
	return formatKey("quote", strings.ToUpper(symbol))
}

// QuoteBatchKey stores the aggregated quote map for the whole portfolio.
func QuoteBatchKey() string {
	return formatKey("quotes")
}

// --- Market Keys ------------------------------------------------------------

// MarketSummaryKey stores the filtered index summary payload.
func MarketSummaryKey() string {
	return formatKey("market", "summary")
}

// HistoryKey stores a chart series for one symbol/range/interval tuple.
func HistoryKey(symbol, rng, interval string) string {
	return formatKey("history", strings.ToUpper(symbol), rng, interval)
}

// SearchKey stores autocomplete results for a normalised query.
func SearchKey(query string) string {
	return formatKey("search", strings.ToLower(strings.TrimSpace(query)))
}

// --- Portfolio Keys ---------------------------------------------------------

// MetricsKey stores the computed portfolio metrics payload.
func MetricsKey() string {
	return formatKey("metrics")
}

// --- TTL Helpers ------------------------------------------------------------

// QuoteTTL returns the short-lived TTL for quote payloads.
func QuoteTTL(ttl TTLSet) time.Duration {
	return ttl.Duration(TTLShort)
}

// MarketSummaryTTL returns the TTL for the index summary.
func MarketSummaryTTL(ttl TTLSet) time.Duration {
	return ttl.Duration(TTLShort)
}

// HistoryTTL returns the TTL for chart series payloads.
func HistoryTTL(ttl TTLSet) time.Duration {
	return ttl.Duration(TTLLong)
}

// SearchTTL returns the TTL for autocomplete results.
func SearchTTL(ttl TTLSet) time.Duration {
	return ttl.Duration(TTLMedium)
}

// MetricsTTL returns the TTL for computed metrics snapshots.
func MetricsTTL(ttl TTLSet) time.Duration {
	return ttl.Scaled(TTLShort, 0.5) // target ~5s when short=10s
}

// FormatCacheKey is exported for dynamic key construction when patterns
// are not covered by helpers.
func FormatCacheKey(parts ...string) string {
	return formatKey(parts...)
}
