package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/lavida77-ai/currency-converter/internal/adapter/cache"
	httpRouter "github.com/lavida77-ai/currency-converter/internal/adapter/http"
	"github.com/lavida77-ai/currency-converter/internal/adapter/repository"
	"github.com/lavida77-ai/currency-converter/internal/adapter/store"
	"github.com/lavida77-ai/currency-converter/internal/config"
	"github.com/lavida77-ai/currency-converter/internal/domain/model"
	"github.com/lavida77-ai/currency-converter/internal/domain/ports"
	"github.com/lavida77-ai/currency-converter/internal/metrics"
	"github.com/lavida77-ai/currency-converter/internal/service"
	"github.com/lavida77-ai/currency-converter/pkg/logger"
)

const redisConnectTimeout = 10 * time.Second

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewLogger(cfg.Log.Level, cfg.Log.Format)
	defer log.Sync()
	log.Info("Starting currency converter", "store", cfg.Store.Driver)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	appMetrics := metrics.NewMetrics(registry)

	kv, closeStore, err := newStore(cfg.Store, log)
	if err != nil {
		log.Error("Failed to initialise rate store", "error", err)
		os.Exit(1)
	}
	defer closeStore()

	rateCache := cache.NewRateCache(kv, log, cache.WithMetrics(appMetrics))

	rateRepo := repository.NewExchangeAPI(
		cfg.ExchangeAPI.BaseURL,
		model.ParseCurrency(cfg.ExchangeAPI.BaseCurrency),
		cfg.ExchangeAPI.Timeout,
		log,
	)

	resolver := service.NewRateResolver(rateRepo, rateCache, appMetrics, log)
	exchangeService := service.NewExchangeService(resolver, log)
	handler := httpRouter.NewHandler(exchangeService, log, appMetrics)

	router := httpRouter.NewRouter(handler, log, appMetrics)
	routes := router.SetupRoutes()

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      routes,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	if cfg.ExchangeAPI.WarmOnStart {
		warmCtx, cancelWarm := context.WithTimeout(context.Background(), cfg.ExchangeAPI.Timeout)
		warmRates(warmCtx, resolver, log)
		cancelWarm()
	}

	go func() {
		log.Info("Starting HTTP server", "port", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", "error", err)
		return
	}

	log.Info("Server exited")
}

func newStore(cfg config.StoreConfig, log *logger.Logger) (ports.KeyValueStore, func(), error) {
	noop := func() {}

	switch cfg.Driver {
	case config.StoreFile:
		s, err := store.NewFileStore(cfg.FilePath, log)
		if err != nil {
			return nil, noop, err
		}
		return s, noop, nil

	case config.StoreRedis:
		ctx, cancel := context.WithTimeout(context.Background(), redisConnectTimeout)
		defer cancel()

		client, err := store.ConnectRedis(ctx, cfg.RedisURL)
		if err != nil {
			return nil, noop, err
		}
		log.Info("Redis connected", "prefix", cfg.RedisPrefix)

		closeClient := func() {
			if err := client.Close(); err != nil {
				log.Error("Redis close error", "error", err)
			}
		}
		return store.NewRedisStore(client, cfg.RedisPrefix, log), closeClient, nil

	default:
		return store.NewMemoryStore(log), noop, nil
	}
}

// warmRates primes the cache so the first conversion does not wait on the
// provider. Failure is logged only; requests will fetch on demand.
func warmRates(ctx context.Context, resolver ports.RateResolver, log *logger.Logger) {
	snapshot, err := resolver.Resolve(ctx)
	if err != nil {
		log.Error("Failed to warm rate cache at startup", "error", err)
		return
	}
	log.Info("Rate cache warmed", "currencies", len(snapshot))
}
