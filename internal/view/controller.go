package view

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/user/seo-report/internal/client"
	"github.com/user/seo-report/internal/entity"
	"github.com/user/seo-report/internal/render"
	"github.com/user/seo-report/internal/report"
	"github.com/user/seo-report/internal/structured"
	"github.com/user/seo-report/pkg/metrics"
)

// ErrSuperseded is returned by Submit when a newer submission replaced the
// request before its response could be rendered.
var ErrSuperseded = errors.New("superseded by a newer submission")

// User-facing error banner texts.
const (
	titleError         = "Error"
	titleFetchingError = "Fetching Error"

	msgEmptyURL        = "Please enter a valid URL."
	msgAnalysisMissing = "Could not find SEO analysis data."
	msgAnalysisInvalid = "Could not read the SEO analysis data."
	msgCrawlReport     = "Could not load the crawl report. Please try again later."
	msgUnreachable     = "Could not reach the analysis service. Please try again later."
	msgTimeout         = "The analysis took too long. Please try again later."
)

// Analyzer submits a URL to the analysis backend.
type Analyzer interface {
	Analyze(ctx context.Context, url string) (*entity.Envelope, error)
}

type Options struct {
	RequestTimeout time.Duration
	Countdown      CountdownConfig
}

// ReportView is the per-session controller of the report page.
type ReportView struct {
	mu         sync.Mutex
	analyzer   Analyzer
	page       *Page
	visibility *Visibility
	errors     *ErrorPresenter
	analysis   *report.AnalysisRenderer
	crawl      *report.CrawlRenderer
	logger     *zap.Logger
	metrics    *metrics.Metrics
	timeout    time.Duration

	generation uint64
	cancel     context.CancelFunc
	envelope   *entity.Envelope
	lastSeen   time.Time
}

// New builds a controller with a fresh page. m may be nil.
func New(analyzer Analyzer, registry *render.Registry, logger *zap.Logger, m *metrics.Metrics, opts Options) *ReportView {
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 2 * time.Minute
	}
	if opts.Countdown == (CountdownConfig{}) {
		opts.Countdown = DefaultCountdown
	}

	page := NewPage(logger, report.Regions)
	visibility := NewVisibility(page)
	presenter := NewErrorPresenter(registry, page, visibility, opts.Countdown, logger)
	if m != nil {
		presenter.OnCountdownStart(m.CountdownsStarted.Inc)
	}
	visibility.Set(StateInitial)

	return &ReportView{
		analyzer:   analyzer,
		page:       page,
		visibility: visibility,
		errors:     presenter,
		analysis:   report.NewAnalysisRenderer(registry),
		crawl:      report.NewCrawlRenderer(registry),
		logger:     logger,
		metrics:    m,
		timeout:    opts.RequestTimeout,
		lastSeen:   time.Now(),
	}
}

// Page exposes the regions for rendering and subscriptions.
func (v *ReportView) Page() *Page {
	return v.page
}

// Submit runs one report cycle for rawURL: loading, request, then either the
// error banner or both renderers followed by the content. It blocks until
// the cycle ends. A newer Submit cancels this one's request and its
// response is discarded with ErrSuperseded.
func (v *ReportView) Submit(ctx context.Context, rawURL string) error {
	v.mu.Lock()
	v.generation++
	gen := v.generation
	v.lastSeen = time.Now()
	if v.cancel != nil {
		v.cancel()
		v.cancel = nil
	}
	v.page.SetURL(rawURL)

	if strings.TrimSpace(rawURL) == "" {
		v.failLocked(titleError, msgEmptyURL, 0)
		v.mu.Unlock()
		return client.ErrEmptyURL
	}

	reqCtx, cancel := context.WithTimeout(ctx, v.timeout)
	v.cancel = cancel
	v.errors.Dismiss()
	v.visibility.Set(StateLoading)
	v.mu.Unlock()
	defer cancel()

	logger := v.logger.With(zap.String("url", rawURL), zap.Uint64("generation", gen))
	logger.Info("submitting url")
	env, err := v.analyzer.Analyze(reqCtx, rawURL)

	v.mu.Lock()
	defer v.mu.Unlock()

	if gen != v.generation {
		logger.Info("discarding stale response")
		return ErrSuperseded
	}
	v.cancel = nil

	if err != nil {
		logger.Warn("analysis request failed", zap.Error(err))
		v.presentRequestError(err)
		return err
	}

	return v.renderLocked(env)
}

// Show renders env without contacting the backend.
func (v *ReportView) Show(env *entity.Envelope) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.generation++
	if v.cancel != nil {
		v.cancel()
		v.cancel = nil
	}
	return v.renderLocked(env)
}

func (v *ReportView) renderLocked(env *entity.Envelope) error {
	v.envelope = env

	doc, err := structured.Parse(env.AIAnalysis)
	if err != nil {
		v.failLocked(titleError, msgAnalysisInvalid, 0)
		return err
	}

	if err := v.analysis.Render(doc, v.page); err != nil {
		if errors.Is(err, report.ErrAnalysisMissing) {
			v.failLocked(titleError, msgAnalysisMissing, 0)
		} else {
			v.failLocked(titleError, err.Error(), 0)
		}
		return err
	}

	if _, err := v.crawl.Render(env.Data, v.page); err != nil {
		v.failLocked(titleError, msgCrawlReport, 0)
		return err
	}

	v.visibility.Set(StateContent)
	v.incRender("content")
	return nil
}

func (v *ReportView) presentRequestError(err error) {
	var backendErr *client.BackendError
	switch {
	case errors.As(err, &backendErr):
		v.failLocked(titleFetchingError, backendErr.Message, backendErr.Status)
	case errors.Is(err, context.DeadlineExceeded):
		v.failLocked(titleError, msgTimeout, 0)
	case errors.Is(err, context.Canceled):
		v.visibility.Set(StateInitial)
	default:
		v.failLocked(titleError, msgUnreachable, 0)
	}
}

func (v *ReportView) failLocked(title, message string, code int) {
	v.incRender("error")
	if err := v.errors.Show(title, message, code); err != nil {
		v.logger.Error("failed to render error banner", zap.Error(err))
		v.visibility.Set(StateError)
	}
}

func (v *ReportView) incRender(outcome string) {
	if v.metrics != nil {
		v.metrics.IncRender(outcome)
	}
}

// Snapshot is the JSON view of the controller.
type Snapshot struct {
	State      State             `json:"state"`
	URL        string            `json:"url"`
	Generation uint64            `json:"generation"`
	Envelope   *entity.Envelope  `json:"report,omitempty"`
	Regions    map[string]Region `json:"regions"`
}

// Region is the JSON view of one page region.
type Region struct {
	HTML     string  `json:"html,omitempty"`
	Text     string  `json:"text,omitempty"`
	Visible  bool    `json:"visible"`
	Classes  string  `json:"classes,omitempty"`
	Progress float64 `json:"progress,omitempty"`
}

// Snapshot captures the current state and regions.
func (v *ReportView) Snapshot() Snapshot {
	v.mu.Lock()
	defer v.mu.Unlock()

	page := v.page.Snapshot()
	regions := make(map[string]Region, len(page.Regions))
	for id, r := range page.Regions {
		regions[id] = Region{
			HTML:     string(r.HTML),
			Text:     r.Text,
			Visible:  r.Visible,
			Classes:  r.Classes,
			Progress: r.Progress,
		}
	}
	return Snapshot{
		State:      v.visibility.State(),
		URL:        page.URL,
		Generation: v.generation,
		Envelope:   v.envelope,
		Regions:    regions,
	}
}

// State returns the current visibility state.
func (v *ReportView) State() State {
	return v.visibility.State()
}

// Touch marks the controller as used.
func (v *ReportView) Touch() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.lastSeen = time.Now()
}

func (v *ReportView) idleSince() time.Time {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.lastSeen
}

// Close cancels any in-flight request and stops the error countdown.
func (v *ReportView) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.generation++
	if v.cancel != nil {
		v.cancel()
		v.cancel = nil
	}
	v.errors.Close()
}
