package logic

import (
	"context"
	"strings"

	"github.com/zeromicro/go-zero/core/logx"

	"folio-api/internal/svc"
	"folio-api/internal/types"
	"folio-api/pkg/portfolio"
)

type UpdatePriceLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewUpdatePriceLogic(ctx context.Context, svcCtx *svc.ServiceContext) *UpdatePriceLogic {
	return &UpdatePriceLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

// UpdatePrice records a manual price for one held symbol. Shares and cost
// basis are untouched; only the stored price and its change percentage move.
func (l *UpdatePriceLogic) UpdatePrice(req *types.UpdatePriceRequest) (*types.MessageResponse, error) {
	if req.Price <= 0 {
		return nil, &portfolio.ValidationError{Field: "price", Reason: "must be positive"}
	}
	symbol := strings.ToUpper(strings.TrimSpace(req.Symbol))
	if symbol == "" {
		return nil, &portfolio.ValidationError{Field: "symbol", Reason: "must not be empty"}
	}

	list, err := l.svcCtx.Store.Load(l.ctx)
	if err != nil {
		return nil, err
	}
	held := false
	for _, h := range list {
		if h.Symbol == symbol {
			held = true
			break
		}
	}
	if !held {
		return nil, ErrHoldingNotFound
	}

	updated := portfolio.UpdatePrice(list, symbol, req.Price)
	if err := l.svcCtx.Store.Save(l.ctx, updated); err != nil {
		l.Errorf("save holdings: %v", err)
		return nil, err
	}
	invalidateMetrics(l.ctx, l.svcCtx)
	return &types.MessageResponse{Message: "price updated"}, nil
}
