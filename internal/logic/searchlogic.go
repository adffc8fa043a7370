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

type SearchLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

func NewSearchLogic(ctx context.Context, svcCtx *svc.ServiceContext) *SearchLogic {
	return &SearchLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *SearchLogic) Search(req *types.SearchRequest) (*types.SearchResponse, error) {
	query := strings.TrimSpace(req.Query)
	if query == "" {
		return nil, &portfolio.ValidationError{Field: "query", Reason: "must not be empty"}
	}

	key := cachekeys.SearchKey(query)
	if results, ok := cachedJSON[[]market.SearchResult](l.ctx, l.svcCtx, key); ok {
		return &types.SearchResponse{Results: results}, nil
	}

	results, err := l.svcCtx.Market.Search(l.ctx, query)
	if err != nil {
		return nil, err
	}
	cacheJSON(l.ctx, l.svcCtx, key, results, cachekeys.SearchTTL(l.svcCtx.TTL))
	return &types.SearchResponse{Results: results}, nil
}
