// Package portfolio implements the valuation and aggregation engine for a
// stock portfolio: pure functions that turn a holdings list plus the latest
// quotes into derived metrics (total value, gain/loss, best/worst performer,
// allocation percentages, top holdings).
//
// The engine is stateless and reentrant. Every function treats its inputs as
// frozen snapshots and returns fresh outputs; the holdings slice is owned by
// the caller and never mutated in place.
package portfolio

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Holding is a position in one security. Symbol is the merge key: the engine
// maintains exactly one Holding per distinct symbol. ID is an opaque
// identifier assigned at creation, stable for the holding's lifetime, and is
// the removal key. The two keys are deliberately distinct.
type Holding struct {
	ID     string  `json:"id"`
	Symbol string  `json:"symbol"`
	Name   string  `json:"name"`
	Shares float64 `json:"shares"`
	// TotalCost is the cumulative amount paid for all shares currently
	// held, accumulated across every buy merged into this holding. Price
	// refreshes never touch it.
	TotalCost float64 `json:"totalCost"`
	// Price is the most recently known market price, used as the fallback
	// whenever no live quote is available for the symbol.
	Price float64 `json:"price"`
	// PriceChange is the percentage change of Price relative to the prior
	// recorded price. Informational only.
	PriceChange float64   `json:"priceChange"`
	LastUpdated time.Time `json:"lastUpdated"`
}

// MarketValue returns the holding's value at the given price.
func (h Holding) MarketValue(price float64) float64 {
	return price * h.Shares
}

// Quote is the latest market data for one symbol, sourced externally and held
// in memory for the current refresh cycle only. Absence of a quote for a
// symbol means "use the holding's stored price".
type Quote struct {
	Symbol        string  `json:"symbol"`
	Price         float64 `json:"price"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"changePercent"`
	Open          float64 `json:"open"`
	DayHigh       float64 `json:"dayHigh"`
	DayLow        float64 `json:"dayLow"`
	PreviousClose float64 `json:"previousClose"`
	Volume        int64   `json:"volume"`
}

// EffectivePrice resolves the current price for a holding: the live quote
// price when one exists for the symbol, the stored price otherwise. This rule
// is applied uniformly everywhere a current price is needed.
func EffectivePrice(h Holding, quotes map[string]Quote) float64 {
	if q, ok := quotes[h.Symbol]; ok {
		return q.Price
	}
	return h.Price
}

// ValidationError reports a malformed holding input. The holdings list is
// left untouched when one is returned.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("portfolio: invalid holding: %s %s", e.Field, e.Reason)
}

func validateIncoming(in Holding) error {
	if strings.TrimSpace(in.Symbol) == "" {
		return &ValidationError{Field: "symbol", Reason: "is required"}
	}
	if strings.TrimSpace(in.Name) == "" {
		return &ValidationError{Field: "name", Reason: "is required"}
	}
	if in.Shares <= 0 {
		return &ValidationError{Field: "shares", Reason: "must be positive"}
	}
	if in.Price <= 0 {
		return &ValidationError{Field: "price", Reason: "must be positive"}
	}
	return nil
}

func newID() string { return uuid.NewString() }
