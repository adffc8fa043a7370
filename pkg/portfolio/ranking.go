package portfolio

import "sort"

// DefaultTopLimit is the number of holdings returned by TopByValue when the
// caller passes a non-positive limit.
const DefaultTopLimit = 5

// TopByValue returns the holdings ranked by market value, highest first,
// truncated to limit entries. Equal values keep their original input order,
// so the result is deterministic.
func TopByValue(holdings []Holding, quotes map[string]Quote, limit int) []Performance {
	if limit <= 0 {
		limit = DefaultTopLimit
	}
	ranked := make([]Performance, 0, len(holdings))
	for _, h := range holdings {
		ranked = append(ranked, performanceOf(h, quotes))
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].MarketValue > ranked[j].MarketValue
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// Allocations returns each holding's market value as a percentage of total
// portfolio value, keyed by symbol. When the total is zero every allocation
// is zero, never NaN. Percentages are not renormalized after rounding, so
// consumers must not assert the sum is exactly 100 once formatted to fixed
// decimals.
func Allocations(holdings []Holding, quotes map[string]Quote) map[string]float64 {
	total := 0.0
	values := make(map[string]float64, len(holdings))
	for _, h := range holdings {
		v := h.MarketValue(EffectivePrice(h, quotes))
		values[h.Symbol] = v
		total += v
	}
	out := make(map[string]float64, len(values))
	for sym, v := range values {
		if total > 0 {
			out[sym] = v / total * 100
		} else {
			out[sym] = 0
		}
	}
	return out
}
