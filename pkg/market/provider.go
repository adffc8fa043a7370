// Package market defines the market-data contract consumed by the portfolio
// service: live quotes, historical series, index summaries and symbol search.
// Concrete providers register themselves by type name and are built from
// configuration.
package market

import (
	"context"

	"folio-api/pkg/portfolio"
)

// Provider exposes vendor-agnostic market data.
type Provider interface {
	// Quotes returns the latest quotes for the given symbols. The call is
	// best effort: a symbol absent from the result means "no live data"
	// and is not an error.
	Quotes(ctx context.Context, symbols []string) ([]portfolio.Quote, error)
	// History returns a price series for charting.
	History(ctx context.Context, symbol string, rng Range, interval Interval) (*Series, error)
	// MarketSummary returns quotes for the major market indices.
	MarketSummary(ctx context.Context) ([]IndexQuote, error)
	// Search resolves a free-text query to candidate symbols.
	Search(ctx context.Context, query string) ([]SearchResult, error)
}

// QuoteMap keys a quote batch by symbol for the engine's fallback rule.
func QuoteMap(quotes []portfolio.Quote) map[string]portfolio.Quote {
	m := make(map[string]portfolio.Quote, len(quotes))
	for _, q := range quotes {
		if q.Symbol == "" {
			continue
		}
		m[q.Symbol] = q
	}
	return m
}
