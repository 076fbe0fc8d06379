package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/medibook/appointment-registry/internal/api"
	"github.com/medibook/appointment-registry/internal/config"
	"github.com/medibook/appointment-registry/internal/db"
	"github.com/medibook/appointment-registry/internal/document"
	"github.com/medibook/appointment-registry/internal/observability/metrics"
	redisclient "github.com/medibook/appointment-registry/internal/redis"
	"github.com/medibook/appointment-registry/internal/registry"
)

const version = "0.1.0"

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("api-server starting up")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	log.Printf("running in env=%s http_port=%s store=%s", cfg.Env, cfg.HTTPPort, cfg.StoreDriver)

	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	routerCfg := api.RouterConfig{
		Env:     cfg.Env,
		Version: version,
	}

	var store registry.Store
	var alloc registry.Allocator
	var locker registry.Locker = registry.NewMutexLocker()

	switch cfg.StoreDriver {
	case config.StorePostgres:
		pgCtx, cancelPg := context.WithTimeout(rootCtx, 10*time.Second)
		pgPool, err := db.ConnectPostgres(pgCtx, cfg.PostgresDSN)
		cancelPg()
		if err != nil {
			log.Fatalf("postgres connection error: %v", err)
		}
		defer pgPool.Close()
		log.Println("connected to Postgres")

		pgAlloc := registry.NewPgAllocator(pgPool)
		syncCtx, cancelSync := context.WithTimeout(rootCtx, 5*time.Second)
		err = pgAlloc.Sync(syncCtx)
		cancelSync()
		if err != nil {
			log.Fatalf("allocator sync error: %v", err)
		}

		store = registry.NewPgStore(pgPool)
		alloc = pgAlloc
		routerCfg.PgPool = pgPool

		if cfg.RedisAddr != "" {
			rdb, err := redisclient.NewRedisClient(cfg.RedisAddr, cfg.RedisUsername, cfg.RedisPassword)
			if err != nil {
				log.Fatalf("redis connection error: %v", err)
			}
			defer func() {
				if err := rdb.Close(); err != nil {
					log.Printf("error closing redis: %v", err)
				}
			}()
			log.Println("connected to Redis, cross-instance booking lock enabled")

			locker = redisclient.NewBookingLocker(rdb, cfg.LockTTL)
			routerCfg.Redis = rdb
		}

	case config.StoreMemory:
		log.Println("using in-memory store, state will not survive restart")
		store = registry.NewMemStore()
		alloc = registry.NewCounterAllocator(0)
	}

	promReg := prometheus.NewRegistry()
	promReg.MustRegister(collectors.NewGoCollector())
	bookingMetrics := metrics.NewBookingMetrics(promReg)

	routerCfg.Registry = registry.NewRegistry(store, alloc, locker)
	routerCfg.Renderer = document.NewPDFRenderer(cfg.DocumentDir)
	routerCfg.Metrics = bookingMetrics
	routerCfg.MetricsHandler = promhttp.HandlerFor(promReg, promhttp.HandlerOpts{})

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           api.NewRouter(routerCfg),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Printf("listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http server error: %v", err)
		}
	}()

	<-rootCtx.Done()
	log.Println("shutting down api-server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("http shutdown error: %v", err)
	}
}
