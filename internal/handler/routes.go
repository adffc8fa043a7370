package handler

import (
	"net/http"

	"github.com/zeromicro/go-zero/rest"

	"folio-api/internal/svc"
)

func RegisterHandlers(server *rest.Server, serverCtx *svc.ServiceContext) {
	server.AddRoutes(
		[]rest.Route{
			{
				Method:  http.MethodGet,
				Path:    "/api/portfolio",
				Handler: GetPortfolioHandler(serverCtx),
			},
			{
				Method:  http.MethodGet,
				Path:    "/api/portfolio/metrics",
				Handler: GetMetricsHandler(serverCtx),
			},
			{
				Method:  http.MethodPost,
				Path:    "/api/portfolio/holdings",
				Handler: AddHoldingHandler(serverCtx),
			},
			{
				Method:  http.MethodPut,
				Path:    "/api/portfolio/holdings/:symbol/price",
				Handler: UpdatePriceHandler(serverCtx),
			},
			{
				Method:  http.MethodDelete,
				Path:    "/api/portfolio/holdings/:id",
				Handler: RemoveHoldingHandler(serverCtx),
			},
			{
				Method:  http.MethodPost,
				Path:    "/api/portfolio/refresh",
				Handler: RefreshHandler(serverCtx),
			},
			{
				Method:  http.MethodGet,
				Path:    "/api/market/summary",
				Handler: MarketSummaryHandler(serverCtx),
			},
			{
				Method:  http.MethodGet,
				Path:    "/api/market/search",
				Handler: SearchHandler(serverCtx),
			},
			{
				Method:  http.MethodGet,
				Path:    "/api/market/history/:symbol",
				Handler: HistoryHandler(serverCtx),
			},
		},
	)
}
