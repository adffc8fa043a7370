package portfolio

import "time"

// AddOrMerge adds a position to the portfolio. The incoming holding carries
// the purchase price in Price and the purchased quantity in Shares.
//
// When no holding exists for the symbol a new one is appended with a fresh
// ID and TotalCost = price × shares. When one exists the buy is merged into
// it: shares are summed and the purchase amount is added to TotalCost (a
// weighted-average cost basis), while the original ID and stored price are
// preserved.
//
// Returns a *ValidationError and the input unchanged when symbol, name,
// shares or price is missing or non-positive.
func AddOrMerge(holdings []Holding, incoming Holding) ([]Holding, error) {
	if err := validateIncoming(incoming); err != nil {
		return holdings, err
	}
	now := time.Now().UTC()
	cost := incoming.Price * incoming.Shares

	for i, h := range holdings {
		if h.Symbol != incoming.Symbol {
			continue
		}
		out := append([]Holding(nil), holdings...)
		merged := h
		merged.Shares += incoming.Shares
		merged.TotalCost += cost
		merged.LastUpdated = now
		out[i] = merged
		return out, nil
	}

	added := incoming
	added.ID = newID()
	added.TotalCost = cost
	added.PriceChange = 0
	added.LastUpdated = now
	out := append(append([]Holding(nil), holdings...), added)
	return out, nil
}

// UpdatePrice records a new market price for the holding with the given
// symbol and recomputes PriceChange relative to the previous price, guarding
// a zero previous price. Shares and TotalCost are never altered here.
// Unknown symbols are a no-op, not an error: quote responses for symbols
// removed mid-flight are silently discarded.
func UpdatePrice(holdings []Holding, symbol string, newPrice float64) []Holding {
	for i, h := range holdings {
		if h.Symbol != symbol {
			continue
		}
		out := append([]Holding(nil), holdings...)
		updated := h
		if h.Price > 0 {
			updated.PriceChange = (newPrice - h.Price) / h.Price * 100
		} else {
			updated.PriceChange = 0
		}
		updated.Price = newPrice
		updated.LastUpdated = time.Now().UTC()
		out[i] = updated
		return out
	}
	return holdings
}

// Remove deletes the holding whose ID matches, preserving the order of the
// rest. A missing ID returns the list unchanged.
func Remove(holdings []Holding, id string) []Holding {
	for i, h := range holdings {
		if h.ID != id {
			continue
		}
		out := make([]Holding, 0, len(holdings)-1)
		out = append(out, holdings[:i]...)
		out = append(out, holdings[i+1:]...)
		return out
	}
	return holdings
}
