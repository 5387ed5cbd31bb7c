package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/user/seo-report/internal/adapter/chromedp_crawler"
	"github.com/user/seo-report/internal/adapter/httpcrawler"
	"github.com/user/seo-report/internal/adapter/llm"
	"github.com/user/seo-report/internal/adapter/memory"
	"github.com/user/seo-report/internal/adapter/postgres"
	redis_adapter "github.com/user/seo-report/internal/adapter/redis"
	"github.com/user/seo-report/internal/client"
	"github.com/user/seo-report/internal/delivery/http/handler"
	"github.com/user/seo-report/internal/delivery/http/router"
	"github.com/user/seo-report/internal/delivery/http/server"
	"github.com/user/seo-report/internal/render"
	"github.com/user/seo-report/internal/repository"
	"github.com/user/seo-report/internal/usecase"
	"github.com/user/seo-report/internal/view"
	"github.com/user/seo-report/pkg/config"
	"github.com/user/seo-report/pkg/logger"
	"github.com/user/seo-report/pkg/metrics"
)

const (
	recentURLs    = 100
	sweepInterval = time.Minute
)

func main() {
	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		zap.NewExample().Fatal("could not load config", zap.Error(err))
	}

	// --- Logger ---
	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		zap.NewExample().Fatal("could not build logger", zap.Error(err))
	}
	defer func() { _ = log.Sync() }()

	// --- Metrics ---
	m := metrics.New()

	ctx := context.Background()
	checks := map[string]handler.Checker{}

	// --- Storage ---
	var (
		reports  repository.ReportRepository         = memory.NewReportRepo()
		failures repository.FailedAnalysisRepository = memory.NewFailedAnalysisRepo()
		cache    repository.ReportCache              = memory.NewReportCache()
		recent   repository.RecentRepository         = memory.NewRecentRepo(recentURLs)
	)

	if cfg.PostgresURL != "" {
		pool, err := postgres.Connect(ctx, cfg.PostgresURL)
		if err != nil {
			log.Fatal("failed to connect to postgres", zap.Error(err))
		}
		defer pool.Close()
		reports = postgres.NewReportRepo(pool)
		failures = postgres.NewFailedAnalysisRepo(pool)
		checks["postgres"] = pool
		log.Info("PostgreSQL connection pool established")
	} else {
		log.Warn("POSTGRES_URL not set, reports are kept in memory")
	}

	if cfg.RedisAddr != "" {
		rdb, err := redis_adapter.Connect(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			log.Fatal("failed to connect to redis", zap.Error(err))
		}
		defer rdb.Close()
		cache = redis_adapter.NewReportCache(rdb)
		recent = redis_adapter.NewRecentRepo(rdb)
		checks["redis"] = handler.CheckFunc(func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		})
		log.Info("Redis connection established", zap.String("addr", cfg.RedisAddr))
	} else {
		log.Warn("REDIS_ADDR not set, the report cache is kept in memory")
	}

	// --- Crawler and analyst ---
	var crawler repository.CrawlerRepository
	switch cfg.CrawlMode {
	case config.CrawlModeBrowser:
		browser := chromedp_crawler.NewChromedpCrawler(cfg.BrowserInstances, cfg.CrawlTimeout, cfg.CrawlUserAgent, log)
		defer browser.Close()
		crawler = browser
	default:
		var agents []string
		if cfg.CrawlUserAgent != "" {
			agents = []string{cfg.CrawlUserAgent}
		}
		crawler = httpcrawler.New(cfg.CrawlTimeout, httpcrawler.NewRotator(cfg.CrawlProxies, agents), log)
	}
	log.Info("crawler ready", zap.String("mode", cfg.CrawlMode), zap.Int("proxies", len(cfg.CrawlProxies)))

	if cfg.GeminiAPIKey == "" {
		log.Warn("GEMINI_API_KEY not set, every analysis will fail")
	}
	analyst, err := llm.NewGemini(ctx, cfg.GeminiEndpoint, cfg.GeminiModel, cfg.GeminiAPIKey, &http.Client{Timeout: cfg.RequestTimeout}, log)
	if err != nil {
		log.Fatal("failed to create analyst", zap.Error(err))
	}

	// --- Use case ---
	analyzer := usecase.NewAnalyzer(usecase.Deps{
		Crawler:  crawler,
		Analyst:  analyst,
		Reports:  reports,
		Failures: failures,
		Cache:    cache,
		Recent:   recent,
		CacheTTL: cfg.CacheTTL,
		Timeout:  cfg.RequestTimeout,
		Metrics:  m,
		Logger:   log,
	})

	// --- Report views ---
	registry := render.MustNewRegistry()
	backend := client.New(cfg.BackendURL, &http.Client{})
	viewOpts := view.Options{
		RequestTimeout: cfg.RequestTimeout,
		Countdown: view.CountdownConfig{
			Duration: cfg.ErrorDuration,
			Tick:     cfg.ErrorTick,
			Fade:     cfg.FadeDuration,
		},
	}
	sessions := view.NewSessions(func() *view.ReportView {
		return view.New(backend, registry, log.Named("view"), m, viewOpts)
	})
	defer sessions.Close()

	sweepCtx, stopSweep := context.WithCancel(ctx)
	defer stopSweep()
	go sweepSessions(sweepCtx, sessions, cfg.SessionIdle, log)

	// --- HTTP Server ---
	h := handler.NewHandler(analyzer, sessions, registry, log, handler.Options{Checks: checks})
	srv := server.New(cfg.ServerPort, router.New(h, m, log), cfg.RequestTimeout+30*time.Second, log)

	go func() {
		if err := srv.Start(); err != nil {
			log.Fatal("could not start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", zap.Error(err))
	}

	log.Info("server exiting")
}

func sweepSessions(ctx context.Context, sessions *view.Sessions, maxIdle time.Duration, log *zap.Logger) {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := sessions.Sweep(maxIdle); n > 0 {
				log.Debug("swept idle report views", zap.Int("count", n), zap.Int("live", sessions.Len()))
			}
		}
	}
}
