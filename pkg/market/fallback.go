package market

import (
	"context"

	"github.com/zeromicro/go-zero/core/logx"

	"folio-api/pkg/portfolio"
)

// Fallback wraps a primary provider with a standby that answers whenever the
// primary fails. The presentation layer therefore never observes an error
// from routine connectivity issues; it just receives locally generated data.
type Fallback struct {
	primary Provider
	standby Provider
}

// NewFallback builds the degradation wrapper. A nil standby disables the
// fallback and errors pass through.
func NewFallback(primary, standby Provider) *Fallback {
	return &Fallback{primary: primary, standby: standby}
}

// Primary returns the wrapped primary provider. Callers that persist market
// data use it to bypass the standby: standby quotes are for presentation
// only and must never reach durable state.
func (f *Fallback) Primary() Provider {
	return f.primary
}

func (f *Fallback) Quotes(ctx context.Context, symbols []string) ([]portfolio.Quote, error) {
	quotes, err := f.primary.Quotes(ctx, symbols)
	if err == nil || f.standby == nil {
		return quotes, err
	}
	logx.WithContext(ctx).Errorf("market: quotes degraded to standby: %v", err)
	return f.standby.Quotes(ctx, symbols)
}

func (f *Fallback) History(ctx context.Context, symbol string, rng Range, interval Interval) (*Series, error) {
	series, err := f.primary.History(ctx, symbol, rng, interval)
	if err == nil || f.standby == nil {
		return series, err
	}
	logx.WithContext(ctx).Errorf("market: history degraded to standby for %s: %v", symbol, err)
	return f.standby.History(ctx, symbol, rng, interval)
}

func (f *Fallback) MarketSummary(ctx context.Context) ([]IndexQuote, error) {
	summary, err := f.primary.MarketSummary(ctx)
	if err == nil || f.standby == nil {
		return summary, err
	}
	logx.WithContext(ctx).Errorf("market: summary degraded to standby: %v", err)
	return f.standby.MarketSummary(ctx)
}

func (f *Fallback) Search(ctx context.Context, query string) ([]SearchResult, error) {
	results, err := f.primary.Search(ctx, query)
	if err == nil || f.standby == nil {
		return results, err
	}
	logx.WithContext(ctx).Errorf("market: search degraded to standby: %v", err)
	return f.standby.Search(ctx, query)
}

var _ Provider = (*Fallback)(nil)
