package yahoo

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"folio-api/pkg/market"
	"folio-api/pkg/portfolio"
)

// FetchQuotes returns the latest quotes for the given symbols. Symbols the
// API does not know are simply missing from the result.
func (c *Client) FetchQuotes(ctx context.Context, symbols []string) ([]portfolio.Quote, error) {
	if len(symbols) == 0 {
		return nil, nil
	}
	q := c.regionQuery()
	q.Set("symbols", strings.Join(symbols, ","))

	var envelope quoteResponseEnvelope
	if err := c.doGet(ctx, "/v6/finance/quote", q, &envelope); err != nil {
		return nil, err
	}
	if envelope.QuoteResponse.Error != nil {
		return nil, envelope.QuoteResponse.Error
	}

	quotes := make([]portfolio.Quote, 0, len(envelope.QuoteResponse.Result))
	for _, r := range envelope.QuoteResponse.Result {
		quotes = append(quotes, portfolio.Quote{
			Symbol:        r.Symbol,
			Price:         r.RegularMarketPrice,
			Change:        r.RegularMarketChange,
			ChangePercent: r.RegularMarketChangePercent,
			Open:          r.RegularMarketOpen,
			DayHigh:       r.RegularMarketDayHigh,
			DayLow:        r.RegularMarketDayLow,
			PreviousClose: r.RegularMarketPreviousClose,
			Volume:        r.RegularMarketVolume,
		})
	}
	return quotes, nil
}

// FetchHistory returns the candle series for one symbol. Candles without a
// close are dropped, matching the chart's expectations.
func (c *Client) FetchHistory(ctx context.Context, symbol string, rng market.Range, interval market.Interval) (*market.Series, error) {
	if strings.TrimSpace(symbol) == "" {
		return nil, fmt.Errorf("yahoo: symbol is required")
	}
	q := url.Values{}
	q.Set("range", string(rng))
	q.Set("interval", string(interval))
	q.Set("includePrePost", "true")

	var envelope chartEnvelope
	if err := c.doGet(ctx, "/v8/finance/chart/"+url.PathEscape(symbol), q, &envelope); err != nil {
		return nil, err
	}
	if envelope.Chart.Error != nil {
		return nil, envelope.Chart.Error
	}
	if len(envelope.Chart.Result) == 0 || len(envelope.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, ErrNoData
	}

	result := envelope.Chart.Result[0]
	candles := result.Indicators.Quote[0]
	series := &market.Series{
		Symbol:   symbol,
		Range:    rng,
		Interval: interval,
		Points:   make([]market.Point, 0, len(result.Timestamp)),
	}
	for i, ts := range result.Timestamp {
		if i >= len(candles.Close) || candles.Close[i] == nil {
			continue
		}
		point := market.Point{
			Time:  time.Unix(ts, 0).UTC(),
			Close: *candles.Close[i],
		}
		if i < len(candles.Volume) && candles.Volume[i] != nil {
			point.Volume = *candles.Volume[i]
		}
		series.Points = append(series.Points, point)
	}
	return series, nil
}

// FetchMarketSummary returns quotes for the market indices.
func (c *Client) FetchMarketSummary(ctx context.Context) ([]market.IndexQuote, error) {
	var envelope marketSummaryEnvelope
	if err := c.doGet(ctx, "/v6/finance/quote/marketSummary", c.regionQuery(), &envelope); err != nil {
		return nil, err
	}
	if envelope.MarketSummaryResponse.Error != nil {
		return nil, envelope.MarketSummaryResponse.Error
	}

	indices := make([]market.IndexQuote, 0, len(envelope.MarketSummaryResponse.Result))
	for _, r := range envelope.MarketSummaryResponse.Result {
		indices = append(indices, market.IndexQuote{
			Symbol:        r.Symbol,
			ShortName:     r.ShortName,
			Price:         r.RegularMarketPrice,
			Change:        r.RegularMarketChange,
			ChangePercent: r.RegularMarketChangePercent,
			DayHigh:       r.RegularMarketDayHigh,
			DayLow:        r.RegularMarketDayLow,
		})
	}
	return indices, nil
}

// FetchSearch resolves a free-text query to candidate symbols.
func (c *Client) FetchSearch(ctx context.Context, query string) ([]market.SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}
	q := c.regionQuery()
	q.Set("query", query)

	var envelope autocompleteEnvelope
	if err := c.doGet(ctx, "/v6/finance/autocomplete", q, &envelope); err != nil {
		return nil, err
	}

	results := make([]market.SearchResult, 0, len(envelope.ResultSet.Result))
	for _, r := range envelope.ResultSet.Result {
		results = append(results, market.SearchResult{
			Symbol:   r.Symbol,
			Name:     r.Name,
			Exchange: r.ExchDisp,
			Type:     r.TypeDisp,
		})
	}
	return results, nil
}
