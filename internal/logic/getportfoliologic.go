package logic

import (
	"context"

	"github.com/zeromicro/go-zero/core/logx"

	"folio-api/internal/svc"
	"folio-api/internal/types"
	"folio-api/pkg/portfolio"
)

type GetPortfolioLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewGetPortfolioLogic(ctx context.Context, svcCtx *svc.ServiceContext) *GetPortfolioLogic {
	return &GetPortfolioLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *GetPortfolioLogic) GetPortfolio() (*types.PortfolioResponse, error) {
	list := loadHoldings(l.ctx, l.svcCtx)
	quotes := fetchQuotes(l.ctx, l.svcCtx, list)
	allocations := portfolio.Allocations(list, quotes)

	views := make([]types.HoldingView, 0, len(list))
	for _, h := range list {
		views = append(views, holdingView(h, quotes, allocations))
	}
	return &types.PortfolioResponse{Holdings: views}, nil
}
