package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/user/seo-report/internal/entity"
	"github.com/user/seo-report/internal/repository"
	"github.com/user/seo-report/pkg/metrics"
	"github.com/user/seo-report/pkg/utils"
)

// ErrEmptyURL is returned for a blank URL.
var ErrEmptyURL = errors.New("URL is required and must be a non-empty string")

// Analyzer runs crawl plus AI analysis for a URL.
type Analyzer interface {
	Analyze(ctx context.Context, url string, force bool) (*entity.Envelope, error)
	LatestReport(ctx context.Context, url string) (*entity.Report, error)
	Recent(ctx context.Context, limit int64) ([]string, error)
}

type analysisUseCase struct {
	crawler  repository.CrawlerRepository
	analyst  repository.AnalystRepository
	reports  repository.ReportRepository
	failures repository.FailedAnalysisRepository
	cache    repository.ReportCache
	recent   repository.RecentRepository
	cacheTTL time.Duration
	timeout  time.Duration
	metrics  *metrics.Metrics
	logger   *zap.Logger
	group    singleflight.Group
	now      func() time.Time
}

// Deps groups the collaborators of the analysis use case.
type Deps struct {
	Crawler  repository.CrawlerRepository
	Analyst  repository.AnalystRepository
	Reports  repository.ReportRepository
	Failures repository.FailedAnalysisRepository
	Cache    repository.ReportCache
	Recent   repository.RecentRepository
	CacheTTL time.Duration
	// Timeout bounds one crawl plus analysis run.
	Timeout time.Duration
	Metrics *metrics.Metrics
	Logger  *zap.Logger
}

// NewAnalyzer creates the analysis use case.
func NewAnalyzer(d Deps) Analyzer {
	if d.Timeout <= 0 {
		d.Timeout = 2 * time.Minute
	}
	return &analysisUseCase{
		crawler:  d.Crawler,
		analyst:  d.Analyst,
		reports:  d.Reports,
		failures: d.Failures,
		cache:    d.Cache,
		recent:   d.Recent,
		cacheTTL: d.CacheTTL,
		timeout:  d.Timeout,
		metrics:  d.Metrics,
		logger:   d.Logger,
		now:      time.Now,
	}
}

// Analyze returns the envelope for rawURL, from cache unless force is set.
// Concurrent calls for the same URL share one crawl and analysis.
func (uc *analysisUseCase) Analyze(ctx context.Context, rawURL string, force bool) (*entity.Envelope, error) {
	if strings.TrimSpace(rawURL) == "" {
		return nil, &entity.AppError{Kind: entity.InvalidInput, Message: ErrEmptyURL.Error(), Cause: ErrEmptyURL}
	}
	u, err := utils.NormalizeURL(rawURL)
	if err != nil {
		return nil, &entity.AppError{Kind: entity.InvalidInput, Message: "invalid URL", Cause: err}
	}
	target := u.String()

	if force {
		if err := uc.cache.Delete(ctx, target); err != nil {
			uc.logger.Warn("failed to drop cached report for forced analysis", zap.String("url", target), zap.Error(err))
		}
	} else if env := uc.cached(ctx, target); env != nil {
		return env, nil
	}

	ch := uc.group.DoChan(target, func() (any, error) {
		// Detached so one caller giving up does not fail the others.
		return uc.run(context.WithoutCancel(ctx), target)
	})

	select {
	case <-ctx.Done():
		return nil, &entity.AppError{Kind: entity.Timeout, Message: "analysis cancelled", Cause: ctx.Err()}
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*entity.Envelope), nil
	}
}

func (uc *analysisUseCase) cached(ctx context.Context, target string) *entity.Envelope {
	env, err := uc.cache.Get(ctx, target)
	switch {
	case err != nil:
		uc.logger.Warn("report cache lookup failed", zap.String("url", target), zap.Error(err))
		uc.metrics.IncCacheLookup("error")
		return nil
	case env == nil:
		uc.metrics.IncCacheLookup("miss")
		return nil
	default:
		uc.metrics.IncCacheLookup("hit")
		uc.logger.Info("serving cached report", zap.String("url", target))
		return env
	}
}

func (uc *analysisUseCase) run(ctx context.Context, target string) (*entity.Envelope, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()
	logger := uc.logger.With(zap.String("url", target))

	start := uc.now()
	data, err := uc.crawler.Crawl(ctx, target)
	uc.metrics.AnalysisDuration.WithLabelValues("crawl").Observe(time.Since(start).Seconds())
	if err != nil {
		logger.Error("crawl failed", zap.Error(err))
		return nil, uc.fail(ctx, target, fmt.Errorf("crawl %s: %w", target, err))
	}

	start = uc.now()
	analysis, err := uc.analyst.Analyze(ctx, data)
	uc.metrics.AnalysisDuration.WithLabelValues("analyst").Observe(time.Since(start).Seconds())
	if err != nil {
		logger.Error("analyst failed", zap.Error(err))
		return nil, uc.fail(ctx, target, fmt.Errorf("analyse %s: %w", target, err))
	}

	env := &entity.Envelope{
		Success:    true,
		Message:    "Analysis successful",
		Data:       data,
		AIAnalysis: analysis,
	}
	uc.metrics.IncAnalysis("success", "")
	logger.Info("analysis successful", zap.Int("status_code", data.StatusCode))

	uc.persist(ctx, target, env)
	return env, nil
}

// persist stores, caches and records a successful analysis. Failures are
// logged only; the caller already has its report.
func (uc *analysisUseCase) persist(ctx context.Context, target string, env *entity.Envelope) {
	logger := uc.logger.With(zap.String("url", target))

	report := &entity.Report{ID: uuid.NewString(), URL: target, Envelope: env, CreatedAt: uc.now().UTC()}
	if err := uc.reports.Save(ctx, report); err != nil {
		logger.Error("failed to save report", zap.Error(err))
	}
	if err := uc.failures.Delete(ctx, target); err != nil {
		logger.Warn("failed to clear failure record after successful analysis", zap.Error(err))
	}
	if err := uc.cache.Set(ctx, target, env, uc.cacheTTL); err != nil {
		logger.Warn("failed to cache report", zap.Error(err))
	}
	if err := uc.recent.Push(ctx, target); err != nil {
		logger.Warn("failed to record recent URL", zap.Error(err))
	}
}

func (uc *analysisUseCase) fail(ctx context.Context, target string, cause error) error {
	kind := KindOf(cause)
	var appErr *entity.AppError
	status := 0
	if errors.As(cause, &appErr) {
		status = appErr.UpstreamStatus
	}
	uc.metrics.IncAnalysis("failure", kind.String())

	failed := &entity.FailedAnalysis{
		URL:           target,
		Kind:          kind.String(),
		Reason:        cause.Error(),
		StatusCode:    status,
		LastAttemptAt: uc.now().UTC(),
	}
	if err := uc.failures.SaveOrUpdate(ctx, failed); err != nil {
		uc.logger.Error("failed to record analysis failure", zap.String("url", target), zap.Error(err))
	}
	return cause
}

func (uc *analysisUseCase) LatestReport(ctx context.Context, rawURL string) (*entity.Report, error) {
	u, err := utils.NormalizeURL(rawURL)
	if err != nil {
		return nil, &entity.AppError{Kind: entity.InvalidInput, Message: "invalid URL", Cause: err}
	}
	return uc.reports.FindLatestByURL(ctx, u.String())
}

func (uc *analysisUseCase) Recent(ctx context.Context, limit int64) ([]string, error) {
	return uc.recent.List(ctx, limit)
}

// KindOf returns the category of an analysis error.
func KindOf(err error) entity.Kind {
	var appErr *entity.AppError
	switch {
	case errors.As(err, &appErr):
		return appErr.Kind
	case errors.Is(err, context.DeadlineExceeded):
		return entity.Timeout
	default:
		return entity.Unknown
	}
}
