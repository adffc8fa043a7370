// Package sim provides a deterministic synthetic market-data provider for
// development and tests. Prices are generated from a seeded random walk, so
// the same seed always yields the same quotes and series.
package sim

import (
	"context"
	"hash/fnv"
	"math/rand"
	"strings"
	"time"

	"folio-api/pkg/market"
	"folio-api/pkg/portfolio"
)

const maxHistoryPoints = 100

type listing struct {
	symbol   string
	name     string
	exchange string
	kind     string
	base     float64
}

// The built-in universe. Enough variety to exercise search, quotes and
// charts without any network access.
var listings = []listing{
	{"AAPL", "Apple Inc.", "NASDAQ", "Equity", 195.50},
	{"MSFT", "Microsoft Corporation", "NASDAQ", "Equity", 420.00},
	{"GOOGL", "Alphabet Inc.", "NASDAQ", "Equity", 165.30},
	{"AMZN", "Amazon.com, Inc.", "NASDAQ", "Equity", 178.25},
	{"TSLA", "Tesla, Inc.", "NASDAQ", "Equity", 214.10},
	{"NVDA", "NVIDIA Corporation", "NASDAQ", "Equity", 118.75},
	{"META", "Meta Platforms, Inc.", "NASDAQ", "Equity", 521.30},
	{"JPM", "JPMorgan Chase & Co.", "NYSE", "Equity", 224.80},
	{"V", "Visa Inc.", "NYSE", "Equity", 276.40},
	{"KO", "The Coca-Cola Company", "NYSE", "Equity", 71.95},
}

type index struct {
	symbol string
	name   string
	base   float64
}

var indices = []index{
	{"^GSPC", "S&P 500", 5648.40},
	{"^DJI", "Dow 30", 41563.08},
	{"^IXIC", "Nasdaq", 17713.62},
	{"^RUT", "Russell 2000", 2217.63},
	{"^VIX", "VIX", 15.00},
	{"^FTSE", "FTSE 100", 8376.63},
	{"^N225", "Nikkei 225", 38647.75},
}

// Provider serves synthetic market data.
type Provider struct {
	seed int64
}

// NewProvider builds a synthetic provider. A zero seed still yields a fixed,
// reproducible walk.
func NewProvider(seed int64) *Provider {
	return &Provider{seed: seed}
}

func (p *Provider) rngFor(symbol string) *rand.Rand {
	h := fnv.New64a()
	h.Write([]byte(strings.ToUpper(symbol)))
	return rand.New(rand.NewSource(p.seed ^ int64(h.Sum64())))
}

func (p *Provider) basePrice(symbol string) float64 {
	upper := strings.ToUpper(symbol)
	for _, l := range listings {
		if l.symbol == upper {
			return l.base
		}
	}
	// Unknown symbols get a stable pseudo-price derived from their name.
	rng := p.rngFor(symbol)
	return 10 + rng.Float64()*490
}

func (p *Provider) quoteFor(symbol string) portfolio.Quote {
	rng := p.rngFor(symbol)
	base := p.basePrice(symbol)
	previous := base * (1 + (rng.Float64()-0.5)*0.04)
	price := previous * (1 + (rng.Float64()-0.5)*0.04)
	change := price - previous
	changePercent := 0.0
	if previous != 0 {
		changePercent = change / previous * 100
	}
	high := price
	low := price
	if previous > high {
		high = previous
	}
	if previous < low {
		low = previous
	}
	return portfolio.Quote{
		Symbol:        strings.ToUpper(symbol),
		Price:         price,
		Change:        change,
		ChangePercent: changePercent,
		Open:          previous * (1 + (rng.Float64()-0.5)*0.01),
		DayHigh:       high * 1.005,
		DayLow:        low * 0.995,
		PreviousClose: previous,
		Volume:        int64(1_000_000 + rng.Intn(50_000_000)),
	}
}

func (p *Provider) Quotes(_ context.Context, symbols []string) ([]portfolio.Quote, error) {
	quotes := make([]portfolio.Quote, 0, len(symbols))
	for _, symbol := range symbols {
		if strings.TrimSpace(symbol) == "" {
			continue
		}
		quotes = append(quotes, p.quoteFor(symbol))
	}
	return quotes, nil
}

var intervalStep = map[market.Interval]time.Duration{
	market.Interval1Min:  time.Minute,
	market.Interval5Min:  5 * time.Minute,
	market.Interval15Min: 15 * time.Minute,
	market.Interval1H:    time.Hour,
	market.Interval1D:    24 * time.Hour,
	market.Interval1W:    7 * 24 * time.Hour,
	market.Interval1Mo:   30 * 24 * time.Hour,
}

func (p *Provider) History(_ context.Context, symbol string, rng market.Range, interval market.Interval) (*market.Series, error) {
	step, ok := intervalStep[interval]
	if !ok {
		step = 24 * time.Hour
		interval = market.Interval1D
	}
	span := time.Duration(rng.Days()) * 24 * time.Hour
	count := int(span / step)
	if count < 2 {
		count = 2
	}
	if count > maxHistoryPoints {
		count = maxHistoryPoints
	}

	random := p.rngFor(symbol)
	price := p.basePrice(symbol)
	end := time.Now().UTC().Truncate(step)
	series := &market.Series{
		Symbol:   strings.ToUpper(symbol),
		Range:    rng,
		Interval: interval,
		Points:   make([]market.Point, count),
	}
	// Walk backwards from the base price so the series ends near it.
	closes := make([]float64, count)
	closes[count-1] = price
	for i := count - 2; i >= 0; i-- {
		closes[i] = closes[i+1] * (1 + (random.Float64()-0.5)*0.02)
	}
	for i := 0; i < count; i++ {
		series.Points[i] = market.Point{
			Time:   end.Add(-time.Duration(count-1-i) * step),
			Close:  closes[i],
			Volume: int64(500_000 + random.Intn(10_000_000)),
		}
	}
	return series, nil
}

func (p *Provider) MarketSummary(_ context.Context) ([]market.IndexQuote, error) {
	out := make([]market.IndexQuote, 0, len(indices))
	for _, idx := range indices {
		rng := p.rngFor(idx.symbol)
		previous := idx.base * (1 + (rng.Float64()-0.5)*0.02)
		price := previous * (1 + (rng.Float64()-0.5)*0.02)
		change := price - previous
		changePercent := 0.0
		if previous != 0 {
			changePercent = change / previous * 100
		}
		out = append(out, market.IndexQuote{
			Symbol:        idx.symbol,
			ShortName:     idx.name,
			Price:         price,
			Change:        change,
			ChangePercent: changePercent,
			DayHigh:       price * 1.004,
			DayLow:        price * 0.996,
		})
	}
	return out, nil
}

func (p *Provider) Search(_ context.Context, query string) ([]market.SearchResult, error) {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil, nil
	}
	var out []market.SearchResult
	for _, l := range listings {
		if strings.Contains(strings.ToLower(l.symbol), query) ||
			strings.Contains(strings.ToLower(l.name), query) {
			out = append(out, market.SearchResult{
				Symbol:   l.symbol,
				Name:     l.name,
				Exchange: l.exchange,
				Type:     l.kind,
			})
		}
	}
	return out, nil
}

var _ market.Provider = (*Provider)(nil)

func init() {
	market.RegisterProvider("sim", func(name string, cfg *market.ProviderConfig) (market.Provider, error) {
		return NewProvider(cfg.Seed), nil
	})
}
