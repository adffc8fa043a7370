package portfolio

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeMetrics_Empty(t *testing.T) {
	m := ComputeMetrics(nil, nil)
	assert.Zero(t, m.TotalValue, "empty portfolio should have zero value")
	assert.Zero(t, m.TotalCost, "empty portfolio should have zero cost")
	assert.Zero(t, m.TotalGain, "empty portfolio should have zero gain")
	assert.Zero(t, m.TotalGainPercent, "zero cost should not divide")
	assert.Zero(t, m.HoldingCount)
}

func TestComputeMetrics_FallbackPrice(t *testing.T) {
	holdings := []Holding{
		{ID: "1", Symbol: "AAPL", Name: "Apple Inc.", Shares: 10, Price: 100, TotalCost: 900},
	}

	// No live quote: the stored price is the effective price.
	m := ComputeMetrics(holdings, map[string]Quote{})
	assert.InDelta(t, 1000.0, m.TotalValue, 1e-9)
	assert.InDelta(t, 900.0, m.TotalCost, 1e-9)
	assert.InDelta(t, 100.0, m.TotalGain, 1e-9)
	assert.InDelta(t, 11.11, m.TotalGainPercent, 0.01)
	assert.Equal(t, 1, m.HoldingCount)
}

func TestComputeMetrics_LiveQuoteOverridesStoredPrice(t *testing.T) {
	holdings := []Holding{
		{ID: "1", Symbol: "AAPL", Name: "Apple Inc.", Shares: 10, Price: 100, TotalCost: 900},
		{ID: "2", Symbol: "MSFT", Name: "Microsoft", Shares: 2, Price: 50, TotalCost: 80},
	}
	quotes := map[string]Quote{
		"AAPL": {Symbol: "AAPL", Price: 120},
	}

	m := ComputeMetrics(holdings, quotes)
	// AAPL uses the live 120, MSFT falls back to its stored 50.
	assert.InDelta(t, 120*10+50*2, m.TotalValue, 1e-9)
	assert.InDelta(t, 980.0, m.TotalCost, 1e-9)
}

func TestHoldingGain_ZeroCostBasis(t *testing.T) {
	h := Holding{Symbol: "FREE", Shares: 5, TotalCost: 0}
	gain, pct := HoldingGain(h, 10)
	assert.InDelta(t, 50.0, gain, 1e-9)
	assert.Zero(t, pct, "zero cost basis must yield zero percent, not NaN")
}

func TestBestAndWorst(t *testing.T) {
	holdings := []Holding{
		{ID: "1", Symbol: "A", Name: "A", Shares: 1, Price: 110, TotalCost: 100}, // +10%
		{ID: "2", Symbol: "B", Name: "B", Shares: 1, Price: 80, TotalCost: 100},  // -20%
		{ID: "3", Symbol: "C", Name: "C", Shares: 1, Price: 150, TotalCost: 100}, // +50%
	}

	best, worst, ok := BestAndWorst(holdings, nil)
	if !ok {
		t.Fatalf("expected a result for a non-empty portfolio")
	}
	assert.Equal(t, "C", best.Holding.Symbol)
	assert.Equal(t, "B", worst.Holding.Symbol)
	assert.InDelta(t, 50.0, best.GainPercent, 1e-9)
	assert.InDelta(t, -20.0, worst.GainPercent, 1e-9)
}

func TestBestAndWorst_TieKeepsFirst(t *testing.T) {
	holdings := []Holding{
		{ID: "1", Symbol: "A", Name: "A", Shares: 1, Price: 110, TotalCost: 100},
		{ID: "2", Symbol: "B", Name: "B", Shares: 2, Price: 55, TotalCost: 100}, // also +10%
	}

	best, worst, ok := BestAndWorst(holdings, nil)
	if !ok {
		t.Fatalf("expected a result for a non-empty portfolio")
	}
	// Stable selection: the first holding wins both slots on a tie.
	assert.Equal(t, "A", best.Holding.Symbol)
	assert.Equal(t, "A", worst.Holding.Symbol)
}

func TestBestAndWorst_Empty(t *testing.T) {
	_, _, ok := BestAndWorst(nil, nil)
	assert.False(t, ok, "empty portfolio has no best or worst")
}

func TestBestAndWorst_UsesEffectivePrices(t *testing.T) {
	holdings := []Holding{
		{ID: "1", Symbol: "A", Name: "A", Shares: 1, Price: 100, TotalCost: 100},
		{ID: "2", Symbol: "B", Name: "B", Shares: 1, Price: 100, TotalCost: 100},
	}
	quotes := map[string]Quote{"B": {Symbol: "B", Price: 200}}

	best, _, ok := BestAndWorst(holdings, quotes)
	if !ok {
		t.Fatalf("expected a result")
	}
	assert.Equal(t, "B", best.Holding.Symbol, "live quote should drive the ranking")
}
