package portfolio

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTopByValue_StableTieBreak(t *testing.T) {
	holdings := []Holding{
		{ID: "a", Symbol: "A", Name: "A", Shares: 3, Price: 100, TotalCost: 100}, // 300
		{ID: "b", Symbol: "B", Name: "B", Shares: 1, Price: 100, TotalCost: 100}, // 100
		{ID: "c", Symbol: "C", Name: "C", Shares: 3, Price: 100, TotalCost: 100}, // 300
	}

	top := TopByValue(holdings, nil, 2)
	if len(top) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(top))
	}
	// A and C tie at 300; A entered first so it stays first.
	assert.Equal(t, "A", top[0].Holding.Symbol)
	assert.Equal(t, "C", top[1].Holding.Symbol)
}

func TestTopByValue_DefaultLimit(t *testing.T) {
	var holdings []Holding
	for _, sym := range []string{"A", "B", "C", "D", "E", "F", "G"} {
		holdings = append(holdings, Holding{ID: sym, Symbol: sym, Name: sym, Shares: 1, Price: 10, TotalCost: 10})
	}
	top := TopByValue(holdings, nil, 0)
	assert.Len(t, top, DefaultTopLimit)
}

func TestTopByValue_UsesLiveQuotes(t *testing.T) {
	holdings := []Holding{
		{ID: "a", Symbol: "A", Name: "A", Shares: 1, Price: 10, TotalCost: 10},
		{ID: "b", Symbol: "B", Name: "B", Shares: 1, Price: 20, TotalCost: 20},
	}
	quotes := map[string]Quote{"A": {Symbol: "A", Price: 100}}

	top := TopByValue(holdings, quotes, 5)
	assert.Equal(t, "A", top[0].Holding.Symbol)
	assert.InDelta(t, 100.0, top[0].MarketValue, 1e-9)
}

func TestAllocations(t *testing.T) {
	holdings := []Holding{
		{ID: "a", Symbol: "A", Name: "A", Shares: 3, Price: 100, TotalCost: 100}, // 300
		{ID: "b", Symbol: "B", Name: "B", Shares: 1, Price: 100, TotalCost: 100}, // 100
	}

	alloc := Allocations(holdings, nil)
	assert.InDelta(t, 75.0, alloc["A"], 1e-9)
	assert.InDelta(t, 25.0, alloc["B"], 1e-9)
}

func TestAllocations_ZeroTotalValue(t *testing.T) {
	holdings := []Holding{
		{ID: "a", Symbol: "A", Name: "A", Shares: 1, Price: 0, TotalCost: 100},
		{ID: "b", Symbol: "B", Name: "B", Shares: 1, Price: 0, TotalCost: 100},
	}

	alloc := Allocations(holdings, nil)
	if len(alloc) != 2 {
		t.Fatalf("expected an entry per symbol, got %d", len(alloc))
	}
	for sym, pct := range alloc {
		assert.Zerof(t, pct, "allocation for %s must be zero, not NaN", sym)
	}
}

func TestAllocations_Empty(t *testing.T) {
	alloc := Allocations(nil, nil)
	assert.Empty(t, alloc)
}
