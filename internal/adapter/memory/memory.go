// Package memory provides in-process stores used when PostgreSQL or Redis
// are not configured.
package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/user/seo-report/internal/entity"
	"github.com/user/seo-report/internal/repository"
)

type cacheEntry struct {
	env     *entity.Envelope
	expires time.Time
}

// ReportCache is a TTL map of envelopes.
type ReportCache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry
	now     func() time.Time
}

func NewReportCache() *ReportCache {
	return &ReportCache{entries: make(map[string]cacheEntry), now: time.Now}
}

func (c *ReportCache) Get(_ context.Context, url string) (*entity.Envelope, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[url]
	if !ok {
		return nil, nil
	}
	if !c.now().Before(e.expires) {
		delete(c.entries, url)
		return nil, nil
	}
	return e.env, nil
}

func (c *ReportCache) Set(_ context.Context, url string, env *entity.Envelope, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[url] = cacheEntry{env: env, expires: c.now().Add(ttl)}
	return nil
}

func (c *ReportCache) Delete(_ context.Context, url string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, url)
	return nil
}

// ReportRepo keeps every saved report.
type ReportRepo struct {
	mu      sync.Mutex
	reports []*entity.Report
}

func NewReportRepo() *ReportRepo {
	return &ReportRepo{}
}

func (r *ReportRepo) Save(_ context.Context, report *entity.Report) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reports = append(r.reports, report)
	return nil
}

func (r *ReportRepo) FindLatestByURL(_ context.Context, url string) (*entity.Report, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var latest *entity.Report
	for _, rep := range r.reports {
		if rep.URL == url && (latest == nil || !rep.CreatedAt.Before(latest.CreatedAt)) {
			latest = rep
		}
	}
	if latest == nil {
		return nil, repository.ErrNotFound
	}
	return latest, nil
}

// Len returns the number of saved reports.
func (r *ReportRepo) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.reports)
}

// FailedAnalysisRepo keeps the last failure per URL.
type FailedAnalysisRepo struct {
	mu     sync.Mutex
	failed map[string]*entity.FailedAnalysis
}

func NewFailedAnalysisRepo() *FailedAnalysisRepo {
	return &FailedAnalysisRepo{failed: make(map[string]*entity.FailedAnalysis)}
}

func (r *FailedAnalysisRepo) SaveOrUpdate(_ context.Context, f *entity.FailedAnalysis) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	next := *f
	next.Attempts = 1
	if prev, ok := r.failed[f.URL]; ok {
		next.Attempts = prev.Attempts + 1
	}
	r.failed[f.URL] = &next
	return nil
}

func (r *FailedAnalysisRepo) Delete(_ context.Context, url string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.failed, url)
	return nil
}

// Find returns the failure record for url, if any.
func (r *FailedAnalysisRepo) Find(url string) (*entity.FailedAnalysis, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.failed[url]
	return f, ok
}

// RecentRepo is a bounded most-recent-first URL list.
type RecentRepo struct {
	mu   sync.Mutex
	urls []string
	max  int
}

func NewRecentRepo(maxLen int) *RecentRepo {
	return &RecentRepo{max: maxLen}
}

func (r *RecentRepo) Push(_ context.Context, url string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.urls = slices.DeleteFunc(r.urls, func(u string) bool { return u == url })
	r.urls = slices.Insert(r.urls, 0, url)
	if len(r.urls) > r.max {
		r.urls = r.urls[:r.max]
	}
	return nil
}

func (r *RecentRepo) List(_ context.Context, limit int64) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := min(int(max(limit, 0)), len(r.urls))
	return slices.Clone(r.urls[:n]), nil
}
