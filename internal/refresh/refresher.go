// Package refresh runs the background price maintenance loops: a slow cycle
// that folds live quotes back into the stored holdings, and a fast cycle
// that keeps the index summary cache warm.
package refresh

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/core/stores/redis"

	cachekeys "folio-api/internal/cache"
	"folio-api/internal/persistence/holdings"
	"folio-api/pkg/market"
	"folio-api/pkg/portfolio"
)

const (
	DefaultQuoteInterval  = 5 * time.Minute
	DefaultMarketInterval = 30 * time.Second
)

// Refresher drives the periodic refresh cycles.
type Refresher struct {
	store    holdings.Store
	provider market.Provider
	cache    *redis.Redis // optional; summary caching is skipped when nil
	ttl      cachekeys.TTLSet

	quoteInterval  time.Duration
	marketInterval time.Duration
}

// New builds a refresher. Zero intervals fall back to the defaults.
//
// A Fallback provider is unwrapped to its primary: stored prices are the
// last known real market prices, so a primary outage skips the cycle
// rather than folding standby data into durable state.
func New(store holdings.Store, provider market.Provider, cache *redis.Redis, ttl cachekeys.TTLSet, quoteInterval, marketInterval time.Duration) *Refresher {
	if fb, ok := provider.(*market.Fallback); ok {
		provider = fb.Primary()
	}
	if quoteInterval <= 0 {
		quoteInterval = DefaultQuoteInterval
	}
	if marketInterval <= 0 {
		marketInterval = DefaultMarketInterval
	}
	return &Refresher{
		store:          store,
		provider:       provider,
		cache:          cache,
		ttl:            ttl,
		quoteInterval:  quoteInterval,
		marketInterval: marketInterval,
	}
}

// RefreshQuotes fetches live quotes for every held symbol and folds the new
// prices into the stored holdings. The holdings list is reloaded after the
// fetch so mutations made while the fetch was in flight are preserved:
// updates land as per-symbol price patches, and a patch for a symbol that
// was removed in the meantime is a no-op.
func (r *Refresher) RefreshQuotes(ctx context.Context) error {
	list, err := r.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("refresh: load holdings: %w", err)
	}
	if len(list) == 0 {
		return nil
	}

	symbols := make([]string, 0, len(list))
	for _, h := range list {
		symbols = append(symbols, h.Symbol)
	}

	quotes, err := r.provider.Quotes(ctx, symbols)
	if err != nil {
		return fmt.Errorf("refresh: fetch quotes: %w", err)
	}
	if len(quotes) == 0 {
		return nil
	}

	current, err := r.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("refresh: reload holdings: %w", err)
	}
	for _, q := range quotes {
		if q.Price <= 0 {
			continue
		}
		current = portfolio.UpdatePrice(current, q.Symbol, q.Price)
	}
	if err := r.store.Save(ctx, current); err != nil {
		return fmt.Errorf("refresh: save holdings: %w", err)
	}
	r.primeQuoteCache(ctx, quotes)

	logx.WithContext(ctx).Infof("refresh: applied %d quotes across %d holdings", len(quotes), len(current))
	return nil
}

// primeQuoteCache writes the fetched quotes where the API reads them: one
// entry per symbol plus the aggregated portfolio batch. The metrics snapshot
// is dropped since the new prices just invalidated it.
func (r *Refresher) primeQuoteCache(ctx context.Context, quotes []portfolio.Quote) {
	if r.cache == nil {
		return
	}
	ttl := int(cachekeys.QuoteTTL(r.ttl) / time.Second)
	for _, q := range quotes {
		if q.Symbol == "" || q.Price <= 0 {
			continue
		}
		payload, err := json.Marshal(q)
		if err != nil {
			continue
		}
		if err := r.cache.SetexCtx(ctx, cachekeys.QuoteKey(q.Symbol), string(payload), ttl); err != nil {
			logx.WithContext(ctx).Errorf("refresh: cache quote %s: %v", q.Symbol, err)
		}
	}
	if batch, err := json.Marshal(market.QuoteMap(quotes)); err == nil {
		if err := r.cache.SetexCtx(ctx, cachekeys.QuoteBatchKey(), string(batch), ttl); err != nil {
			logx.WithContext(ctx).Errorf("refresh: cache quote batch: %v", err)
		}
	}
	if _, err := r.cache.DelCtx(ctx, cachekeys.MetricsKey()); err != nil {
		logx.WithContext(ctx).Errorf("refresh: invalidate metrics cache: %v", err)
	}
}

// RefreshMarketSummary fetches index quotes and caches the filtered major
// indices payload for the API to serve.
func (r *Refresher) RefreshMarketSummary(ctx context.Context) error {
	all, err := r.provider.MarketSummary(ctx)
	if err != nil {
		return fmt.Errorf("refresh: fetch market summary: %w", err)
	}
	major := market.FilterMajorIndices(all)
	if r.cache == nil {
		return nil
	}

	payload, err := json.Marshal(major)
	if err != nil {
		return fmt.Errorf("refresh: encode market summary: %w", err)
	}
	ttl := int(cachekeys.MarketSummaryTTL(r.ttl) / time.Second)
	if err := r.cache.SetexCtx(ctx, cachekeys.MarketSummaryKey(), string(payload), ttl); err != nil {
		return fmt.Errorf("refresh: cache market summary: %w", err)
	}
	return nil
}

// Run executes both cycles until ctx is cancelled. Each cycle runs once
// immediately, then on its ticker.
func (r *Refresher) Run(ctx context.Context) {
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		r.runLoop(ctx, "quotes", r.quoteInterval, r.RefreshQuotes)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		r.runLoop(ctx, "market", r.marketInterval, r.RefreshMarketSummary)
	}()

	wg.Wait()
}

func (r *Refresher) runLoop(ctx context.Context, name string, interval time.Duration, fn func(context.Context) error) {
	run := func() {
		if err := fn(ctx); err != nil {
			if ctx.Err() != nil {
				return
			}
			logx.WithContext(ctx).Errorf("refresh: %s cycle failed: %v", name, err)
		}
	}

	run()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			run()
		}
	}
}
