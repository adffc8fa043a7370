package market

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"folio-api/pkg/portfolio"
)

type stubProvider struct {
	quotes  []portfolio.Quote
	series  *Series
	summary []IndexQuote
	results []SearchResult
	err     error
	calls   int
}

func (s *stubProvider) Quotes(context.Context, []string) ([]portfolio.Quote, error) {
	s.calls++
	return s.quotes, s.err
}

func (s *stubProvider) History(context.Context, string, Range, Interval) (*Series, error) {
	s.calls++
	return s.series, s.err
}

func (s *stubProvider) MarketSummary(context.Context) ([]IndexQuote, error) {
	s.calls++
	return s.summary, s.err
}

func (s *stubProvider) Search(context.Context, string) ([]SearchResult, error) {
	s.calls++
	return s.results, s.err
}

func TestFallbackPrefersPrimary(t *testing.T) {
	primary := &stubProvider{quotes: []portfolio.Quote{{Symbol: "AAPL", Price: 195.5}}}
	standby := &stubProvider{quotes: []portfolio.Quote{{Symbol: "AAPL", Price: 1.0}}}
	fb := NewFallback(primary, standby)

	quotes, err := fb.Quotes(context.Background(), []string{"AAPL"})
	require.NoError(t, err)
	require.InDelta(t, 195.5, quotes[0].Price, 1e-9)
	require.Equal(t, 0, standby.calls)
}

func TestFallbackDegradesOnError(t *testing.T) {
	primary := &stubProvider{err: errors.New("upstream down")}
	standby := &stubProvider{
		quotes:  []portfolio.Quote{{Symbol: "AAPL", Price: 100}},
		series:  &Series{Symbol: "AAPL"},
		summary: []IndexQuote{{Symbol: "^GSPC", ShortName: "S&P 500"}},
		results: []SearchResult{{Symbol: "AAPL"}},
	}
	fb := NewFallback(primary, standby)
	ctx := context.Background()

	quotes, err := fb.Quotes(ctx, []string{"AAPL"})
	require.NoError(t, err)
	require.Len(t, quotes, 1)

	series, err := fb.History(ctx, "AAPL", Range1M, Interval1D)
	require.NoError(t, err)
	require.Equal(t, "AAPL", series.Symbol)

	summary, err := fb.MarketSummary(ctx)
	require.NoError(t, err)
	require.Len(t, summary, 1)

	results, err := fb.Search(ctx, "apple")
	require.NoError(t, err)
	require.Len(t, results, 1)
}

func TestFallbackNilStandbyPassesErrorThrough(t *testing.T) {
	primary := &stubProvider{err: errors.New("upstream down")}
	fb := NewFallback(primary, nil)

	_, err := fb.Quotes(context.Background(), []string{"AAPL"})
	require.Error(t, err)
}

func TestQuoteMapSkipsEmptySymbols(t *testing.T) {
	m := QuoteMap([]portfolio.Quote{
		{Symbol: "AAPL", Price: 1},
		{Symbol: "", Price: 2},
		{Symbol: "MSFT", Price: 3},
	})
	require.Len(t, m, 2)
	require.InDelta(t, 1.0, m["AAPL"].Price, 1e-9)
}

func TestFilterMajorIndices(t *testing.T) {
	all := []IndexQuote{
		{ShortName: "S&P 500"},
		{ShortName: "FTSE 100"},
		{ShortName: "Dow 30"},
		{ShortName: "Nikkei 225"},
		{ShortName: "VIX"},
	}
	major := FilterMajorIndices(all)
	require.Len(t, major, 3)
	require.Equal(t, "S&P 500", major[0].ShortName)
	require.Equal(t, "Dow 30", major[1].ShortName)
	require.Equal(t, "VIX", major[2].ShortName)
}

func TestRangeHelpers(t *testing.T) {
	require.True(t, ValidRange(Range1M))
	require.False(t, ValidRange(Range("2w")))
	require.True(t, ValidInterval(Interval5Min))
	require.False(t, ValidInterval(Interval("2h")))
	require.Equal(t, 30, Range1M.Days())
	require.Equal(t, 30, Range("bogus").Days())
}
