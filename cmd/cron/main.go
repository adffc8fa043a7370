package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/zeromicro/go-zero/core/stores/redis"
	"github.com/zeromicro/go-zero/core/stores/sqlx"

	cachekeys "folio-api/internal/cache"
	"folio-api/internal/config"
	"folio-api/internal/persistence/holdings"
	"folio-api/internal/refresh"
	marketpkg "folio-api/pkg/market"
	"folio-api/pkg/market/sim"

	// Import for side-effects: registers the yahoo provider
	_ "folio-api/pkg/market/yahoo"
)

const shutdownTimeout = 10 * time.Second // Grace period for shutdown

var configFile = flag.String("f", "etc/folio.yaml", "the config file")

func main() {
	flag.Parse()
	log.SetFlags(log.Ldate | log.Ltime | log.Lmicroseconds)
	log.Println("[main] Starting quote refresh daemon...")

	// Load application configuration
	appCfg, err := config.Load(*configFile)
	if err != nil {
		log.Printf("[main] Warning: Failed to load app config: %v", err)
		log.Printf("[main] Using default configuration")
		appCfg = &config.Config{
			Env:     "test",
			Store:   config.StoreConf{Type: "file", Path: "data/holdings.json", Format: "json"},
			Refresh: config.RefreshConf{QuoteInterval: 300, MarketInterval: 30},
			TTL:     config.CacheTTL{Short: 10, Medium: 60, Long: 300},
		}
	}

	log.Printf("[main] Configuration loaded:")
	log.Printf("  - Environment: %s", appCfg.Env)
	log.Printf("  - Store: %s (%s)", appCfg.Store.Type, appCfg.Store.Path)
	log.Printf("  - Refresh Intervals: quotes=%ds, market=%ds", appCfg.Refresh.QuoteInterval, appCfg.Refresh.MarketInterval)

	// Build the holdings store
	var conn sqlx.SqlConn
	if appCfg.Postgres.DSN != "" {
		conn = sqlx.NewSqlConn("pgx", appCfg.Postgres.DSN)
	}
	store, err := holdings.New(appCfg.Store, conn)
	if err != nil {
		log.Fatalf("[main] Failed to build holdings store: %v", err)
	}

	// Build the market provider, degrading to synthetic data on failure
	standby := sim.NewProvider(0)
	var provider marketpkg.Provider = standby
	if appCfg.Market.Value != nil && !appCfg.IsTestEnv() {
		providers, err := appCfg.Market.Value.BuildProviders()
		if err != nil {
			log.Fatalf("[main] Failed to build market providers: %v", err)
		}
		primary, ok := providers[appCfg.Market.Value.Default]
		if !ok {
			log.Fatalf("[main] Default market provider %q not found", appCfg.Market.Value.Default)
		}
		provider = marketpkg.NewFallback(primary, standby)
		log.Printf("  - Market Provider: %s (with synthetic standby)", appCfg.Market.Value.Default)
	} else {
		log.Printf("  - Market Provider: sim (synthetic)")
	}

	// Optional Redis cache for the market summary payload
	var cache *redis.Redis
	if appCfg.Redis.Host != "" {
		cache, err = redis.NewRedis(appCfg.Redis)
		if err != nil {
			log.Fatalf("[main] Failed to connect redis: %v", err)
		}
		log.Printf("  - Redis: %s", appCfg.Redis.Host)
	}

	refresher := refresh.New(
		store,
		provider,
		cache,
		cachekeys.NewTTLSet(appCfg.TTL),
		time.Duration(appCfg.Refresh.QuoteInterval)*time.Second,
		time.Duration(appCfg.Refresh.MarketInterval)*time.Second,
	)

	// Create context for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		refresher.Run(ctx)
	}()

	log.Println("[main] Refresh daemon started. Press Ctrl+C to stop.")

	// Wait for signal
	<-ctx.Done()
	log.Println("[main] Shutdown signal received, stopping tasks...")

	// Give tasks time to complete current work
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		log.Println("[main] All tasks stopped cleanly")
	case <-shutdownCtx.Done():
		log.Println("[main] Shutdown timeout exceeded, forcing exit")
	}

	log.Println("[main] Refresh daemon stopped")
}
