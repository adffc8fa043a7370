package logic

import (
	"context"
	"encoding/json"
	"time"

	"github.com/zeromicro/go-zero/core/logx"

	cachekeys "folio-api/internal/cache"
	"folio-api/internal/svc"
	"folio-api/internal/types"
	"folio-api/pkg/market"
)

type MarketSummaryLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewMarketSummaryLogic(ctx context.Context, svcCtx *svc.ServiceContext) *MarketSummaryLogic {
	return &MarketSummaryLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

// MarketSummary serves the filtered major indices, preferring the payload
// the refresh daemon keeps warm in Redis.
func (l *MarketSummaryLogic) MarketSummary() (*types.MarketSummaryResponse, error) {
	if cached := l.fromCache(); cached != nil {
		return &types.MarketSummaryResponse{Indices: cached}, nil
	}

	all, err := l.svcCtx.Market.MarketSummary(l.ctx)
	if err != nil {
		return nil, err
	}
	major := market.FilterMajorIndices(all)
	l.toCache(major)
	return &types.MarketSummaryResponse{Indices: major}, nil
}

func (l *MarketSummaryLogic) fromCache() []market.IndexQuote {
	if l.svcCtx.Cache == nil {
		return nil
	}
	raw, err := l.svcCtx.Cache.GetCtx(l.ctx, cachekeys.MarketSummaryKey())
	if err != nil || raw == "" {
		return nil
	}
	var indices []market.IndexQuote
	if err := json.Unmarshal([]byte(raw), &indices); err != nil {
		l.Errorf("decode cached summary: %v", err)
		return nil
	}
	return indices
}

func (l *MarketSummaryLogic) toCache(indices []market.IndexQuote) {
	if l.svcCtx.Cache == nil {
		return
	}
	payload, err := json.Marshal(indices)
	if err != nil {
		return
	}
	ttl := int(cachekeys.MarketSummaryTTL(l.svcCtx.TTL) / time.Second)
	if err := l.svcCtx.Cache.SetexCtx(l.ctx, cachekeys.MarketSummaryKey(), string(payload), ttl); err != nil {
		l.Errorf("cache summary: %v", err)
	}
}
