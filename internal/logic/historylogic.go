package logic

import (
	"context"
	"strings"

	"github.com/zeromicro/go-zero/core/logx"

	cachekeys "folio-api/internal/cache"
	"folio-api/internal/svc"
	"folio-api/internal/types"
	"folio-api/pkg/market"
	"folio-api/pkg/portfolio"
)

type HistoryLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewHistoryLogic(ctx context.Context, svcCtx *svc.ServiceContext) *HistoryLogic {
	return &HistoryLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *HistoryLogic) History(req *types.HistoryRequest) (*market.Series, error) {
	symbol := strings.ToUpper(strings.TrimSpace(req.Symbol))
	if symbol == "" {
		return nil, &portfolio.ValidationError{Field: "symbol", Reason: "must not be empty"}
	}

	rng := market.DefaultRange
	if req.Range != "" {
		rng = market.Range(req.Range)
		if !market.ValidRange(rng) {
			return nil, &portfolio.ValidationError{Field: "range", Reason: "is not a valid chart range"}
		}
	}
	interval := market.DefaultInterval
	if req.Interval != "" {
		interval = market.Interval(req.Interval)
		if !market.ValidInterval(interval) {
			return nil, &portfolio.ValidationError{Field: "interval", Reason: "is not a valid candle interval"}
		}
	}

	key := cachekeys.HistoryKey(symbol, string(rng), string(interval))
	if series, ok := cachedJSON[*market.Series](l.ctx, l.svcCtx, key); ok && series != nil {
		return series, nil
	}

	series, err := l.svcCtx.Market.History(l.ctx, symbol, rng, interval)
	if err != nil {
		return nil, err
	}
	cacheJSON(l.ctx, l.svcCtx, key, series, cachekeys.HistoryTTL(l.svcCtx.TTL))
	return series, nil
}
