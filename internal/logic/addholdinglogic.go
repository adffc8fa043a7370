package logic

import (
	"context"
	"strings"
	"time"

	"github.com/zeromicro/go-zero/core/logx"

	"folio-api/internal/svc"
	"folio-api/internal/types"
	"folio-api/pkg/portfolio"
)

type AddHoldingLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewAddHoldingLogic(ctx context.Context, svcCtx *svc.ServiceContext) *AddHoldingLogic {
	return &AddHoldingLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

// AddHolding validates the incoming position and merges it into the
// portfolio: an existing symbol accumulates shares and cost, a new symbol
// appends a fresh holding.
func (l *AddHoldingLogic) AddHolding(req *types.AddHoldingRequest) (*types.PortfolioResponse, error) {
	list, err := l.svcCtx.Store.Load(l.ctx)
	if err != nil {
		return nil, err
	}

	updated, err := portfolio.AddOrMerge(list, portfolio.Holding{
		Symbol:      strings.ToUpper(strings.TrimSpace(req.Symbol)),
		Name:        strings.TrimSpace(req.Name),
		Shares:      req.Shares,
		Price:       req.Price,
		LastUpdated: time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	if err := l.svcCtx.Store.Save(l.ctx, updated); err != nil {
		l.Errorf("save holdings: %v", err)
		return nil, err
	}
	invalidateMetrics(l.ctx, l.svcCtx)

	quotes := fetchQuotes(l.ctx, l.svcCtx, updated)
	allocations := portfolio.Allocations(updated, quotes)
	views := make([]types.HoldingView, 0, len(updated))
	for _, h := range updated {
		views = append(views, holdingView(h, quotes, allocations))
	}
	return &types.PortfolioResponse{Holdings: views}, nil
}
