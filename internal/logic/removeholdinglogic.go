package logic

import (
	"context"

	"github.com/zeromicro/go-zero/core/logx"

	"folio-api/internal/svc"
	"folio-api/internal/types"
	"folio-api/pkg/portfolio"
)

type RemoveHoldingLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewRemoveHoldingLogic(ctx context.Context, svcCtx *svc.ServiceContext) *RemoveHoldingLogic {
	return &RemoveHoldingLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *RemoveHoldingLogic) RemoveHolding(req *types.RemoveHoldingRequest) (*types.MessageResponse, error) {
	list, err := l.svcCtx.Store.Load(l.ctx)
	if err != nil {
		return nil, err
	}

	updated := portfolio.Remove(list, req.ID)
	if len(updated) == len(list) {
		return nil, ErrHoldingNotFound
	}

	if err := l.svcCtx.Store.Save(l.ctx, updated); err != nil {
		l.Errorf("save holdings: %v", err)
		return nil, err
	}
	invalidateMetrics(l.ctx, l.svcCtx)
	return &types.MessageResponse{Message: "holding removed"}, nil
}
