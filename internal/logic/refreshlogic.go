package logic

import (
	"context"

	"github.com/zeromicro/go-zero/core/logx"

	"folio-api/internal/svc"
	"folio-api/internal/types"
)

type RefreshLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewRefreshLogic(ctx context.Context, svcCtx *svc.ServiceContext) *RefreshLogic {
	return &RefreshLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

// Refresh forces an immediate quote refresh cycle instead of waiting for
// the next scheduled tick.
func (l *RefreshLogic) Refresh() (*types.MessageResponse, error) {
	if err := l.svcCtx.Refresher.RefreshQuotes(l.ctx); err != nil {
		return nil, err
	}
	return &types.MessageResponse{Message: "refresh complete"}, nil
}
