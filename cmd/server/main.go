package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/cropyield/advisor-service/config"
	"github.com/cropyield/advisor-service/internal/advisory"
	"github.com/cropyield/advisor-service/internal/catalog"
	"github.com/cropyield/advisor-service/internal/engine"
	"github.com/cropyield/advisor-service/internal/handlers"
	"github.com/cropyield/advisor-service/internal/httpx"
	"github.com/cropyield/advisor-service/internal/httpx/ratelimit"
	"github.com/cropyield/advisor-service/internal/middleware"
	"github.com/cropyield/advisor-service/internal/requestid"
	"github.com/cropyield/advisor-service/internal/telemetry"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger := initLogger(cfg.Logging)

	logger.Info().Msg("Starting advisor service")

	ctx := context.Background()

	telemetryCleanup, err := telemetry.Init(ctx, telemetry.GetConfigFromEnv())
	if err != nil {
		logger.Warn().Err(err).Msg("Telemetry init failed, continuing without it")
		telemetryCleanup = func(context.Context) error { return nil }
	}

	source, closeCatalog, err := buildCatalog(ctx, cfg.Catalog, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to build market catalog")
	}
	defer closeCatalog()

	eng := engine.NewEngine(&engine.EngineConfig{
		TransportRatePerKm: cfg.Engine.TransportRatePerKm,
		MinTransportCost:   cfg.Engine.MinTransportCost,
		SpreadThreshold:    cfg.Engine.SpreadThreshold,
		LongHaulDistanceKm: cfg.Engine.LongHaulDistanceKm,
		MaxQuotes:          cfg.Engine.MaxQuotes,
	})

	narrative := advisory.NewClient(advisory.ClientConfig{
		BaseURL: cfg.Advisory.BaseURL,
		Model:   cfg.Advisory.Model,
		APIKey:  cfg.Advisory.APIKey,
		Timeout: cfg.Advisory.Timeout,
	}, httpx.NewClient(ratelimit.Config{
		RequestsPerSecond: float64(cfg.RateLimit.RequestsPerSecond),
		Burst:             cfg.RateLimit.RequestsPerSecond,
		MaxRetries:        cfg.RateLimit.MaxRetries,
		InitialBackoffMs:  cfg.RateLimit.InitialBackoffMs,
		MaxBackoffMs:      cfg.RateLimit.MaxBackoffMs,
	}, cfg.Advisory.Timeout))

	orchestrator := advisory.NewOrchestrator(eng, source, narrative, advisory.OrchestratorConfig{
		BranchTimeout: cfg.Advisory.BranchTimeout,
	})

	handlers.Init(eng, source, orchestrator)

	if cfg.Logging.Level == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	limiterCtx, stopLimiter := context.WithCancel(ctx)
	defer stopLimiter()

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RateLimit(limiterCtx, middleware.DefaultRateLimiterConfig()))
	setupMiddleware(router, logger)

	router.GET("/health", handlers.HealthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	internal := router.Group("/internal")
	internal.Use(middleware.InternalAuth(cfg.Server.InternalAPIKey))
	internal.Use(middleware.ServiceRateLimit(50, 100))
	{
		internal.GET("/health", handlers.HealthCheck)
		internal.GET("/crops", handlers.ListCrops)

		market := internal.Group("/market")
		{
			market.POST("/compare", handlers.Compare)
		}

		suitability := internal.Group("/suitability")
		{
			suitability.POST("/check", handlers.CheckSuitability)
		}

		yield := internal.Group("/yield")
		{
			yield.POST("/estimate", handlers.EstimateYield)
		}

		internal.POST("/advice", handlers.Advise)
	}

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Info().Str("addr", addr).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Server forced to shutdown")
	}
	if err := telemetryCleanup(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Telemetry shutdown failed")
	}

	logger.Info().Msg("Server exited")
}

// buildCatalog constructs the configured market dataset source. The returned
// close function is a no-op for the in-memory sources.
func buildCatalog(ctx context.Context, cfg config.CatalogConfig, logger *zerolog.Logger) (catalog.Source, func(), error) {
	noop := func() {}

	switch cfg.Source {
	case "", "static":
		logger.Info().Msg("Using built-in market dataset")
		return catalog.NewStatic(), noop, nil

	case "file":
		if cfg.FilePath == "" {
			return nil, noop, fmt.Errorf("catalog source is 'file' but no file path configured")
		}
		source, err := catalog.NewFile(cfg.FilePath)
		if err != nil {
			return nil, noop, err
		}
		logger.Info().Str("path", cfg.FilePath).Msg("Loaded market dataset from file")
		return source, noop, nil

	case "postgres":
		dbURL := config.GetDatabaseURL()
		if dbURL == "" {
			return nil, noop, fmt.Errorf("catalog source is 'postgres' but DATABASE_URL not set")
		}
		source, err := catalog.NewPostgres(ctx, dbURL, catalog.PoolConfig{
			MaxConns:        cfg.MaxConnections,
			MinConns:        cfg.MinConnections,
			MaxConnLifetime: cfg.MaxConnLifetime,
			MaxConnIdleTime: cfg.MaxConnIdleTime,
		})
		if err != nil {
			return nil, noop, err
		}
		logger.Info().Msg("Connected to market dataset database")
		return source, source.Close, nil

	default:
		return nil, noop, fmt.Errorf("unknown catalog source %q", cfg.Source)
	}
}

func initLogger(cfg config.LoggingConfig) *zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}

	var output io.Writer
	if cfg.Format == "json" {
		output = os.Stdout
	} else {
		output = zerolog.ConsoleWriter{Out: os.Stdout, NoColor: cfg.NoColor}
	}

	logger := zerolog.New(output).Level(level).With().Timestamp().Str("service", "advisor-service").Logger()
	return &logger
}

func setupMiddleware(router *gin.Engine, logger *zerolog.Logger) {
	router.Use(func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		reqID := c.GetHeader("X-Request-ID")
		if reqID == "" {
			reqID = requestid.New()
		}
		c.Writer.Header().Set("X-Request-ID", reqID)

		c.Next()

		latency := time.Since(start)

		logger.Info().
			Str("request_id", reqID).
			Str("method", c.Request.Method).
			Str("path", path).
			Str("query", query).
			Int("status", c.Writer.Status()).
			Dur("latency", latency).
			Str("ip", c.ClientIP()).
			Msg("HTTP request")
	})
}
