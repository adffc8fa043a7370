package logic

import (
	"context"
	"strconv"

	"github.com/zeromicro/go-zero/core/logx"

	cachekeys "folio-api/internal/cache"
	"folio-api/internal/svc"
	"folio-api/internal/types"
	"folio-api/pkg/portfolio"
)

type GetMetricsLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewGetMetricsLogic(ctx context.Context, svcCtx *svc.ServiceContext) *GetMetricsLogic {
	return &GetMetricsLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

// GetMetrics computes the aggregate portfolio view. Snapshots are cached
// briefly; a holdings mutation drops the default snapshot immediately and
// non-default limits just age out.
func (l *GetMetricsLogic) GetMetrics(req *types.MetricsRequest) (*types.MetricsResponse, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = portfolio.DefaultTopLimit
	}

	key := cachekeys.MetricsKey()
	if limit != portfolio.DefaultTopLimit {
		key = cachekeys.FormatCacheKey("metrics", "top", strconv.Itoa(limit))
	}
	if cached, ok := cachedJSON[*types.MetricsResponse](l.ctx, l.svcCtx, key); ok && cached != nil {
		return cached, nil
	}

	list := loadHoldings(l.ctx, l.svcCtx)
	quotes := fetchQuotes(l.ctx, l.svcCtx, list)

	resp := &types.MetricsResponse{
		Metrics:     portfolio.ComputeMetrics(list, quotes),
		Allocations: portfolio.Allocations(list, quotes),
	}

	if best, worst, ok := portfolio.BestAndWorst(list, quotes); ok {
		b, w := performerView(best), performerView(worst)
		resp.Best, resp.Worst = &b, &w
	}

	top := portfolio.TopByValue(list, quotes, limit)
	resp.Top = make([]types.PerformerView, 0, len(top))
	for _, p := range top {
		resp.Top = append(resp.Top, performerView(p))
	}
	cacheJSON(l.ctx, l.svcCtx, key, resp, cachekeys.MetricsTTL(l.svcCtx.TTL))
	return resp, nil
}
