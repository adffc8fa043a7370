// Code scaffolded by goctl. Safe to edit.
// goctl 1.9.2

package main

import (
	"context"
	"flag"
	"fmt"

	"folio-api/internal/config"
	"folio-api/internal/handler"
	"folio-api/internal/svc"

	"github.com/zeromicro/go-zero/core/proc"
	"github.com/zeromicro/go-zero/rest"
	"github.com/zeromicro/go-zero/rest/httpx"
)

var configFile = flag.String("f", "etc/folio.yaml", "the config file")

func main() {
	flag.Parse()

	cfg := config.MustLoad(*configFile)

	server := rest.MustNewServer(cfg.RestConf)
	defer server.Stop()

	ctx := svc.NewServiceContext(*cfg)
	handler.RegisterHandlers(server, ctx)
	httpx.SetErrorHandlerCtx(handler.ErrorHandler)

	// The refresh loops share the server's lifetime.
	refreshCtx, stopRefresh := context.WithCancel(context.Background())
	go ctx.Refresher.Run(refreshCtx)
	proc.AddShutdownListener(stopRefresh)

	fmt.Printf("Starting server at %s:%d...\n", cfg.Host, cfg.Port)
	server.Start()
}
