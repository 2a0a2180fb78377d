package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"dayzero/internal/platform/config"
	"dayzero/internal/platform/httpserver"
	"dayzero/internal/platform/logger"
	"dayzero/internal/platform/metrics"
	"dayzero/internal/platform/postgres"
	platformredis "dayzero/internal/platform/redis"
	"dayzero/internal/recommend/cache"
	"dayzero/internal/recommend/engine"
	"dayzero/internal/recommend/handler"
	"dayzero/internal/recommend/service"
	"dayzero/internal/recommend/store/catalog"
)

// main wires high-level dependencies and keeps the server lifecycle
// small. Business logic lives in the internal packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()
	m := metrics.New()

	var handlerOpts []handler.Option

	// Catalog store: Postgres when configured, otherwise seeded memory
	// for local development.
	var catalogStore catalog.Store
	db, err := postgres.Open(cfg.PostgresURL)
	if err != nil {
		log.Error("postgres connection failed", "error", err)
		os.Exit(1)
	}
	if db != nil {
		pg := catalog.NewPostgres(db)
		catalogStore = pg
		handlerOpts = append(handlerOpts, handler.WithHealthCheck("postgres", pg))
		defer db.Close()
		log.Info("catalog store: postgres")
	} else {
		mem := catalog.NewInMemory()
		catalog.Seed(mem)
		catalogStore = mem
		log.Info("catalog store: in-memory (seeded)")
	}

	// Response cache: Redis when configured, otherwise process-local.
	var responseCache cache.Cache
	redisClient, err := platformredis.New(cfg.Redis)
	if err != nil {
		log.Error("redis connection failed", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		responseCache = cache.NewRedis(redisClient.Client)
		handlerOpts = append(handlerOpts, handler.WithHealthCheck("redis", redisClient))
		defer redisClient.Close()
		log.Info("response cache: redis")
	} else {
		responseCache = cache.NewInMemory()
		log.Info("response cache: in-memory")
	}

	svc := service.New(catalogStore, responseCache, engine.NewDefault(), log,
		service.WithMetrics(m),
		service.WithTTLs(cfg.MissingItemsTTL, cfg.ReorderTTL),
	)

	router := chi.NewRouter()
	handler.New(svc, log, m, handlerOpts...).Register(router)
	router.Handle("/metrics", promhttp.Handler())

	srv := httpserver.New(cfg.Addr, router)
	log.Info("starting day0 recommendation service", "addr", cfg.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
}
