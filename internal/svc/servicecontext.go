package svc

import (
	"log"
	"time"

	"github.com/zeromicro/go-zero/core/stores/redis"
	"github.com/zeromicro/go-zero/core/stores/sqlx"

	cachekeys "folio-api/internal/cache"
	"folio-api/internal/config"
	"folio-api/internal/persistence/holdings"
	"folio-api/internal/refresh"
	marketpkg "folio-api/pkg/market"
	"folio-api/pkg/market/sim"
	_ "folio-api/pkg/market/yahoo" // register yahoo provider
)

type ServiceContext struct {
	Config config.Config

	Store holdings.Store

	MarketConfig    *marketpkg.Config
	MarketProviders map[string]marketpkg.Provider
	// Market is the provider handed to logic: the configured default
	// wrapped with a synthetic standby so quote failures degrade instead
	// of erroring.
	Market marketpkg.Provider

	Cache *redis.Redis
	TTL   cachekeys.TTLSet

	Refresher *refresh.Refresher

	DBConn sqlx.SqlConn
}

func NewServiceContext(c config.Config) *ServiceContext {
	svc := &ServiceContext{
		Config: c,
		TTL:    cachekeys.NewTTLSet(c.TTL),
	}

	if c.Postgres.DSN != "" {
		svc.DBConn = sqlx.NewSqlConn("pgx", c.Postgres.DSN)
	}

	store, err := holdings.New(c.Store, svc.DBConn)
	if err != nil {
		log.Fatalf("failed to build holdings store: %v", err)
	}
	svc.Store = store

	standby := sim.NewProvider(0)

	marketCfg := c.Market.Value
	if marketCfg == nil || c.IsTestEnv() {
		// No market config, or test environment: synthetic data only.
		svc.Market = standby
	} else {
		providers, err := marketCfg.BuildProviders()
		if err != nil {
			log.Fatalf("failed to build market providers: %v", err)
		}
		svc.MarketConfig = marketCfg
		svc.MarketProviders = providers
		primary, ok := providers[marketCfg.Default]
		if !ok {
			log.Fatalf("default market provider %q not found", marketCfg.Default)
		}
		svc.Market = marketpkg.NewFallback(primary, standby)
	}

	if c.Redis.Host != "" {
		cache, err := redis.NewRedis(c.Redis)
		if err != nil {
			log.Fatalf("failed to connect redis: %v", err)
		}
		svc.Cache = cache
	}

	svc.Refresher = refresh.New(
		svc.Store,
		svc.Market,
		svc.Cache,
		svc.TTL,
		time.Duration(c.Refresh.QuoteInterval)*time.Second,
		time.Duration(c.Refresh.MarketInterval)*time.Second,
	)

	return svc
}
