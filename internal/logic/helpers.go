package logic

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/zeromicro/go-zero/core/logx"

	cachekeys "folio-api/internal/cache"
	"folio-api/internal/svc"
	"folio-api/internal/types"
	"folio-api/pkg/portfolio"
)

// ErrHoldingNotFound maps to HTTP 404 in the error handler.
var ErrHoldingNotFound = errors.New("holding not found")

// loadHoldings reads the stored list. A failing store is logged and treated
// as empty so read endpoints keep working.
func loadHoldings(ctx context.Context, svcCtx *svc.ServiceContext) []portfolio.Holding {
	list, err := svcCtx.Store.Load(ctx)
	if err != nil {
		logx.WithContext(ctx).Errorf("load holdings: %v", err)
		return nil
	}
	return list
}

// fetchQuotes resolves live quotes for the held symbols, preferring the
// entries the refresh daemon keeps warm in Redis. Quotes are best effort: on
// failure the holdings' stored prices carry the response.
func fetchQuotes(ctx context.Context, svcCtx *svc.ServiceContext, list []portfolio.Holding) map[string]portfolio.Quote {
	if len(list) == 0 {
		return nil
	}
	symbols := make([]string, 0, len(list))
	for _, h := range list {
		symbols = append(symbols, h.Symbol)
	}

	quotes, missing := cachedQuotes(ctx, svcCtx, symbols)
	if len(missing) == 0 {
		return quotes
	}

	fetched, err := svcCtx.Market.Quotes(ctx, missing)
	if err != nil {
		logx.WithContext(ctx).Errorf("fetch quotes: %v", err)
		return quotes
	}
	ttl := cachekeys.QuoteTTL(svcCtx.TTL)
	for _, q := range fetched {
		if q.Symbol == "" {
			continue
		}
		quotes[q.Symbol] = q
		cacheJSON(ctx, svcCtx, cachekeys.QuoteKey(q.Symbol), q, ttl)
	}
	return quotes
}

// cachedQuotes collects warm quote entries: the whole-portfolio batch first,
// then per-symbol keys for whatever the batch does not cover. It returns the
// hits plus the symbols that still need a live fetch.
func cachedQuotes(ctx context.Context, svcCtx *svc.ServiceContext, symbols []string) (map[string]portfolio.Quote, []string) {
	quotes := make(map[string]portfolio.Quote, len(symbols))
	if svcCtx.Cache == nil {
		return quotes, symbols
	}

	batch, _ := cachedJSON[map[string]portfolio.Quote](ctx, svcCtx, cachekeys.QuoteBatchKey())

	missing := make([]string, 0, len(symbols))
	for _, s := range symbols {
		if q, ok := batch[s]; ok {
			quotes[s] = q
			continue
		}
		if q, ok := cachedJSON[portfolio.Quote](ctx, svcCtx, cachekeys.QuoteKey(s)); ok {
			quotes[s] = q
			continue
		}
		missing = append(missing, s)
	}
	return quotes, missing
}

// cachedJSON reads and decodes one cache entry. ok reports a usable hit; a
// nil cache, a miss and a corrupt payload all read as misses.
func cachedJSON[T any](ctx context.Context, svcCtx *svc.ServiceContext, key string) (T, bool) {
	var out T
	if svcCtx.Cache == nil {
		return out, false
	}
	raw, err := svcCtx.Cache.GetCtx(ctx, key)
	if err != nil || raw == "" {
		return out, false
	}
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		logx.WithContext(ctx).Errorf("decode cached %s: %v", key, err)
		return out, false
	}
	return out, true
}

// cacheJSON best-effort writes one cache entry. Failures are logged, never
// surfaced.
func cacheJSON(ctx context.Context, svcCtx *svc.ServiceContext, key string, value any, ttl time.Duration) {
	if svcCtx.Cache == nil || ttl <= 0 {
		return
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := svcCtx.Cache.SetexCtx(ctx, key, string(payload), int(ttl/time.Second)); err != nil {
		logx.WithContext(ctx).Errorf("cache %s: %v", key, err)
	}
}

// invalidateMetrics drops the cached metrics snapshot after a holdings
// mutation so the next read recomputes from the new state.
func invalidateMetrics(ctx context.Context, svcCtx *svc.ServiceContext) {
	if svcCtx.Cache == nil {
		return
	}
	if _, err := svcCtx.Cache.DelCtx(ctx, cachekeys.MetricsKey()); err != nil {
		logx.WithContext(ctx).Errorf("invalidate metrics cache: %v", err)
	}
}

func holdingView(h portfolio.Holding, quotes map[string]portfolio.Quote, allocations map[string]float64) types.HoldingView {
	price := portfolio.EffectivePrice(h, quotes)
	gain, gainPercent := portfolio.HoldingGain(h, price)
	return types.HoldingView{
		ID:          h.ID,
		Symbol:      h.Symbol,
		Name:        h.Name,
		Shares:      h.Shares,
		TotalCost:   h.TotalCost,
		Price:       price,
		PriceChange: h.PriceChange,
		LastUpdated: h.LastUpdated,
		MarketValue: h.MarketValue(price),
		Gain:        gain,
		GainPercent: gainPercent,
		Allocation:  allocations[h.Symbol],
	}
}

func performerView(p portfolio.Performance) types.PerformerView {
	return types.PerformerView{
		Symbol:      p.Holding.Symbol,
		Name:        p.Holding.Name,
		MarketValue: p.MarketValue,
		Gain:        p.Gain,
		GainPercent: p.GainPercent,
	}
}
