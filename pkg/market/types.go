package market

import "time"

// Range is a chart time span accepted by History.
type Range string

// Interval is the candle width accepted by History.
type Interval string

const (
	Range1D  Range = "1d"
	Range5D  Range = "5d"
	Range1M  Range = "1mo"
	Range3M  Range = "3mo"
	Range6M  Range = "6mo"
	Range1Y  Range = "1y"
	Range5Y  Range = "5y"
	RangeMax Range = "max"

	Interval1Min  Interval = "1m"
	Interval5Min  Interval = "5m"
	Interval15Min Interval = "15m"
	Interval1H    Interval = "1h"
	Interval1D    Interval = "1d"
	Interval1W    Interval = "1wk"
	Interval1Mo   Interval = "1mo"
)

// DefaultRange and DefaultInterval match the chart view's initial state.
const (
	DefaultRange    = Range1M
	DefaultInterval = Interval1D
)

var rangeDays = map[Range]int{
	Range1D:  1,
	Range5D:  5,
	Range1M:  30,
	Range3M:  90,
	Range6M:  180,
	Range1Y:  365,
	Range5Y:  365 * 5,
	RangeMax: 365 * 10,
}

var validIntervals = map[Interval]struct{}{
	Interval1Min: {}, Interval5Min: {}, Interval15Min: {},
	Interval1H: {}, Interval1D: {}, Interval1W: {}, Interval1Mo: {},
}

// ValidRange reports whether r is an accepted chart range.
func ValidRange(r Range) bool {
	_, ok := rangeDays[r]
	return ok
}

// ValidInterval reports whether i is an accepted candle interval.
func ValidInterval(i Interval) bool {
	_, ok := validIntervals[i]
	return ok
}

// Days returns the approximate calendar span of a range, defaulting to a
// month for unknown values.
func (r Range) Days() int {
	if d, ok := rangeDays[r]; ok {
		return d
	}
	return 30
}

// Point is one candle in a price series. Candles without a close are
// stripped by providers before the series is returned.
type Point struct {
	Time   time.Time `json:"time"`
	Close  float64   `json:"close"`
	Volume int64     `json:"volume"`
}

// Series is an ordered (oldest first) price history for one symbol.
type Series struct {
	Symbol   string   `json:"symbol"`
	Range    Range    `json:"range"`
	Interval Interval `json:"interval"`
	Points   []Point  `json:"points"`
}

// IndexQuote is a market-summary entry for one index.
type IndexQuote struct {
	Symbol        string  `json:"symbol"`
	ShortName     string  `json:"shortName"`
	Price         float64 `json:"price"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"changePercent"`
	DayHigh       float64 `json:"dayHigh"`
	DayLow        float64 `json:"dayLow"`
}

// MajorIndices is the set of index short names surfaced on the dashboard.
var MajorIndices = []string{"S&P 500", "Dow 30", "Nasdaq", "Russell 2000", "VIX"}

// FilterMajorIndices keeps only the dashboard's index set, preserving input
// order.
func FilterMajorIndices(all []IndexQuote) []IndexQuote {
	keep := make(map[string]struct{}, len(MajorIndices))
	for _, name := range MajorIndices {
		keep[name] = struct{}{}
	}
	out := make([]IndexQuote, 0, len(MajorIndices))
	for _, q := range all {
		if _, ok := keep[q.ShortName]; ok {
			out = append(out, q)
		}
	}
	return out
}

// SearchResult is one symbol-search match.
type SearchResult struct {
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Exchange string `json:"exchange,omitempty"`
	Type     string `json:"type,omitempty"`
}
