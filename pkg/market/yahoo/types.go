package yahoo

// Wire structures for the Yahoo Finance v6/v8 endpoints. Field sets are
// trimmed to what the service consumes.

type quoteResponseEnvelope struct {
	QuoteResponse struct {
		Result []quoteResult `json:"result"`
		Error  *apiError     `json:"error"`
	} `json:"quoteResponse"`
}

type quoteResult struct {
	Symbol                     string  `json:"symbol"`
	ShortName                  string  `json:"shortName"`
	LongName                   string  `json:"longName"`
	RegularMarketPrice         float64 `json:"regularMarketPrice"`
	RegularMarketChange        float64 `json:"regularMarketChange"`
	RegularMarketChangePercent float64 `json:"regularMarketChangePercent"`
	RegularMarketOpen          float64 `json:"regularMarketOpen"`
	RegularMarketDayHigh       float64 `json:"regularMarketDayHigh"`
	RegularMarketDayLow        float64 `json:"regularMarketDayLow"`
	RegularMarketPreviousClose float64 `json:"regularMarketPreviousClose"`
	RegularMarketVolume        int64   `json:"regularMarketVolume"`
}

type chartEnvelope struct {
	Chart struct {
		Result []chartResult `json:"result"`
		Error  *apiError     `json:"error"`
	} `json:"chart"`
}

type chartResult struct {
	Timestamp  []int64 `json:"timestamp"`
	Indicators struct {
		Quote []chartQuote `json:"quote"`
	} `json:"indicators"`
}

type chartQuote struct {
	Close  []*float64 `json:"close"`
	Volume []*int64   `json:"volume"`
}

type marketSummaryEnvelope struct {
	MarketSummaryResponse struct {
		Result []quoteResult `json:"result"`
		Error  *apiError     `json:"error"`
	} `json:"marketSummaryResponse"`
}

type autocompleteEnvelope struct {
	ResultSet struct {
		Query  string               `json:"Query"`
		Result []autocompleteResult `json:"Result"`
	} `json:"ResultSet"`
}

type autocompleteResult struct {
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Exch     string `json:"exch"`
	Type     string `json:"type"`
	ExchDisp string `json:"exchDisp"`
	TypeDisp string `json:"typeDisp"`
}

type apiError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

func (e *apiError) Error() string {
	return "yahoo: api error " + e.Code + ": " + e.Description
}
