// API server entry point for the agricultural decision-support engine.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/agriconnect/agrointel/internal/application/advisory"
	"github.com/agriconnect/agrointel/internal/config"
	"github.com/agriconnect/agrointel/internal/domain/catalog"
	"github.com/agriconnect/agrointel/internal/domain/recommend"
	rediscache "github.com/agriconnect/agrointel/internal/infrastructure/cache/redis"
	"github.com/agriconnect/agrointel/internal/infrastructure/monitoring/logging"
	"github.com/agriconnect/agrointel/internal/infrastructure/monitoring/prometheus"
	httpserver "github.com/agriconnect/agrointel/internal/interfaces/http"
	"github.com/agriconnect/agrointel/internal/interfaces/http/handlers"
)

// Build-time variables injected via ldflags.
var (
	version = "dev"
)

const defaultConfigPath = "configs/config.yaml"

func main() {
	configPath := flag.String("config", defaultConfigPath, "path to configuration file")
	port := flag.Int("port", 0, "HTTP server port (overrides config)")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if *port > 0 {
		cfg.Server.Port = *port
	}

	logger, err := logging.NewLogger(logging.LogConfig{
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
		OutputPaths: []string{cfg.Log.Output},
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	logger.Info("starting agrointel API server",
		logging.String("version", version),
		logging.Int("port", cfg.Server.Port),
	)

	cat, err := catalog.Default()
	if err != nil {
		logger.Error("catalog initialization failed", logging.Err(err))
		os.Exit(1)
	}

	metrics := prometheus.New()

	svcOpts := []advisory.Option{
		advisory.WithMetrics(metrics),
		advisory.WithPriceHorizon(cfg.Engine.PriceHorizonDays),
		advisory.WithScorerOptions(
			recommend.WithWeights(cfg.Engine.Weights),
			recommend.WithCalibration(cfg.Engine.Calibration),
		),
	}

	// Redis is optional: when disabled the forecast cache is skipped and
	// every request simulates fresh.
	var cachePinger handlers.Pinger
	if cfg.Redis.Enabled {
		client, err := rediscache.NewClient(&rediscache.Config{
			Addr:         cfg.Redis.Addr,
			Username:     cfg.Redis.Username,
			Password:     cfg.Redis.Password,
			DB:           cfg.Redis.DB,
			PoolSize:     cfg.Redis.PoolSize,
			MinIdleConns: cfg.Redis.MinIdleConns,
			DialTimeout:  cfg.Redis.DialTimeout,
			ReadTimeout:  cfg.Redis.ReadTimeout,
			WriteTimeout: cfg.Redis.WriteTimeout,
		}, logger)
		if err != nil {
			logger.Error("redis connection failed", logging.Err(err))
			os.Exit(1)
		}
		defer client.Close()

		cache := rediscache.NewCache(client, logger,
			rediscache.WithPrefix(cfg.Redis.KeyPrefix),
			rediscache.WithDefaultTTL(cfg.Redis.DefaultTTL),
		)
		svcOpts = append(svcOpts, advisory.WithCache(cache, cfg.Engine.ForecastCacheTTL))
		cachePinger = client
	}

	svc, err := advisory.New(cat, logger, svcOpts...)
	if err != nil {
		logger.Error("engine initialization failed", logging.Err(err))
		os.Exit(1)
	}

	router := httpserver.NewRouter(httpserver.RouterDeps{
		Service: svc,
		Catalog: cat,
		Logger:  logger,
		Metrics: metrics,
		Cache:   cachePinger,
		Version: version,
		Mode:    cfg.Server.Mode,
	})
	srv := httpserver.NewServer(cfg.Server, router, logger)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server failed", logging.Err(err))
			os.Exit(1)
		}
	case sig := <-quit:
		logger.Info("received signal", logging.String("signal", sig.String()))
		if err := srv.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown failed", logging.Err(err))
			os.Exit(1)
		}
	}

	logger.Info("server stopped")
}

// loadConfig reads the config file when present, falling back to
// environment variables and defaults when it is not.
func loadConfig(path string) (*config.Config, error) {
	if _, err := os.Stat(path); err == nil {
		return config.Load(path)
	}
	fmt.Fprintf(os.Stderr, "config file %s not found, using environment and defaults\n", path)
	return config.LoadFromEnv()
}
