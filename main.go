package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/phuslu/log"
	"github.com/ternarybob/banner"

	"github.com/seo-optimizer/content-optimizer/analyzer"
	"github.com/seo-optimizer/content-optimizer/config"
	"github.com/seo-optimizer/content-optimizer/enrichment"
	"github.com/seo-optimizer/content-optimizer/handler"
	"github.com/seo-optimizer/content-optimizer/inserter"
	"github.com/seo-optimizer/content-optimizer/logging"
	"github.com/seo-optimizer/content-optimizer/middleware"
	"github.com/seo-optimizer/content-optimizer/stats"
	"github.com/seo-optimizer/content-optimizer/storage"
)

const version = "1.0.0"

func main() {
	configPath := flag.String("config", os.Getenv("CONFIG_PATH"), "path to a TOML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	logging.Setup(cfg.Logging)
	gin.SetMode(cfg.Server.GinMode)
	banner.Print("SEO Content Optimizer", version)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		log.Fatal().Err(err).Msg("Server stopped with error")
	}
	log.Info().Msg("Server stopped")
}

func run(ctx context.Context, cfg *config.Config) error {
	monthly, err := stats.NewStorage(cfg.Storage.DataDir)
	if err != nil {
		return err
	}
	defer func() {
		if err := monthly.Shutdown(); err != nil {
			log.Error().Err(err).Msg("Failed to save monthly stats")
		}
	}()

	statistics := logging.NewStatistics(cfg.Storage.DataDir)
	defer func() {
		if err := statistics.Save(); err != nil {
			log.Error().Err(err).Msg("Failed to save statistics")
		}
	}()

	cache, err := newCache(ctx, cfg)
	if err != nil {
		return err
	}

	enricher, err := enrichment.New(ctx, cfg.EnrichmentProvider())
	if err != nil {
		return err
	}
	if enricher != nil {
		log.Info().Str("provider", enricher.Name()).Msg("Keyword enrichment enabled")
	}

	seoAnalyzer := analyzer.New(analyzer.Options{
		Cache:             cache,
		Stats:             monthly,
		Enricher:          enricher,
		EnrichmentTimeout: cfg.EnrichmentProvider().Timeout,
	})
	defer seoAnalyzer.Shutdown()

	store, err := newStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := handler.RegisterValidators(); err != nil {
		return err
	}

	rateLimiter := middleware.NewRateLimiter(cfg.Server.RateLimit, cfg.Server.RateBurst)

	scheduler, err := newScheduler(cfg.Maintenance, maintenanceJobs{
		monthly:      monthly,
		statistics:   statistics,
		rateLimiter:  rateLimiter,
		retainMonths: cfg.Storage.RetainStatsFor,
	})
	if err != nil {
		return err
	}
	scheduler.Start()
	defer func() { <-scheduler.Stop().Done() }()

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.CORS())
	r.Use(rateLimiter.RateLimit())
	r.Use(middleware.Stats(statistics))

	handler.New(handler.Deps{
		Analyzer:   seoAnalyzer,
		Inserter:   inserter.New(),
		Store:      store,
		Monthly:    monthly,
		Statistics: statistics,
		DevMode:    cfg.Server.DevMode,
	}).Register(r)

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", "http://localhost:"+cfg.Server.Port).Msg("Server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout())
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func newCache(ctx context.Context, cfg *config.Config) (analyzer.Cache, error) {
	if cfg.Cache.RedisURL != "" {
		return analyzer.NewRedisCache(ctx, cfg.Cache.RedisURL, cfg.CacheTTL())
	}
	return analyzer.NewMemoryCache(cfg.CacheTTL(), cfg.Cache.MaxEntries), nil
}

func newStore(cfg *config.Config) (storage.Store, error) {
	if cfg.Storage.Driver == config.DriverBadger {
		return storage.NewBadgerStore(filepath.Join(cfg.Storage.DataDir, "analyses"))
	}
	return storage.NewMemoryStore(), nil
}
