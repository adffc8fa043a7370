package portfolio

// Metrics is the aggregate valuation of a portfolio.
type Metrics struct {
	TotalValue       float64 `json:"totalValue"`
	TotalCost        float64 `json:"totalCost"`
	TotalGain        float64 `json:"totalGain"`
	TotalGainPercent float64 `json:"totalGainPercent"`
	HoldingCount     int     `json:"holdingCount"`
}

// ComputeMetrics derives the aggregate valuation from a holdings list and an
// optional quote map (possibly empty or partial). A portfolio with zero
// holdings yields the canonical zero Metrics, not an error.
func ComputeMetrics(holdings []Holding, quotes map[string]Quote) Metrics {
	m := Metrics{HoldingCount: len(holdings)}
	for _, h := range holdings {
		m.TotalValue += h.MarketValue(EffectivePrice(h, quotes))
		m.TotalCost += h.TotalCost
	}
	m.TotalGain = m.TotalValue - m.TotalCost
	if m.TotalCost > 0 {
		m.TotalGainPercent = m.TotalGain / m.TotalCost * 100
	}
	return m
}

// HoldingGain returns the unrealized gain and gain percentage for a single
// holding at the given effective price. A zero cost basis yields a zero
// percentage rather than a division error.
func HoldingGain(h Holding, effectivePrice float64) (gain, gainPercent float64) {
	gain = h.MarketValue(effectivePrice) - h.TotalCost
	if h.TotalCost > 0 {
		gainPercent = gain / h.TotalCost * 100
	}
	return gain, gainPercent
}

// Performance pairs a holding with its derived gain figures.
type Performance struct {
	Holding     Holding `json:"holding"`
	MarketValue float64 `json:"marketValue"`
	Gain        float64 `json:"gain"`
	GainPercent float64 `json:"gainPercent"`
}

func performanceOf(h Holding, quotes map[string]Quote) Performance {
	price := EffectivePrice(h, quotes)
	gain, pct := HoldingGain(h, price)
	return Performance{
		Holding:     h,
		MarketValue: h.MarketValue(price),
		Gain:        gain,
		GainPercent: pct,
	}
}

// BestAndWorst selects the holdings with the maximum and minimum gain
// percentage. Ties go to the first holding in input order. ok is false when
// the portfolio is empty; callers must check it rather than assume a value.
func BestAndWorst(holdings []Holding, quotes map[string]Quote) (best, worst Performance, ok bool) {
	for i, h := range holdings {
		p := performanceOf(h, quotes)
		if i == 0 {
			best, worst = p, p
			continue
		}
		if p.GainPercent > best.GainPercent {
			best = p
		}
		if p.GainPercent < worst.GainPercent {
			worst = p
		}
	}
	return best, worst, len(holdings) > 0
}
