package view

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/user/seo-report/internal/render"
	"github.com/user/seo-report/internal/report"
)

const fadeOutClass = "fade-out"

// ErrorPresenter shows the error banner and dismisses it after a countdown.
// At most one countdown is active; a newer error replaces the running one.
type ErrorPresenter struct {
	mu         sync.Mutex
	registry   *render.Registry
	page       *Page
	visibility *Visibility
	cfg        CountdownConfig
	logger     *zap.Logger
	onStart    func()
	active     *Countdown
}

func NewErrorPresenter(registry *render.Registry, page *Page, visibility *Visibility, cfg CountdownConfig, logger *zap.Logger) *ErrorPresenter {
	return &ErrorPresenter{
		registry:   registry,
		page:       page,
		visibility: visibility,
		cfg:        cfg,
		logger:     logger,
	}
}

// OnCountdownStart registers a hook run each time a countdown begins.
func (p *ErrorPresenter) OnCountdownStart(fn func()) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.onStart = fn
}

// Show renders the error banner. A zero code is not displayed.
func (p *ErrorPresenter) Show(title, message string, code int) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.logger.Error("rendering error", zap.String("title", title), zap.String("message", message), zap.Int("code", code))
	p.stopLocked()

	html, err := p.registry.Error(render.ErrorView{Title: title, Message: message, Code: code, Progress: 100})
	if err != nil {
		return fmt.Errorf("render error banner: %w", err)
	}
	p.page.SetHTML(report.RegionError, html)
	p.page.SetClasses(report.RegionError, "")
	p.visibility.Set(StateError)

	p.page.SetProgress(report.RegionProgress, 100)

	cd := NewCountdown()
	cd.Start(p.cfg, CountdownHooks{
		Progress: func(remaining float64) {
			p.ifCurrent(cd, func() { p.page.SetProgress(report.RegionProgress, remaining) })
		},
		Fade: func() {
			p.ifCurrent(cd, func() { p.page.AddClass(report.RegionError, fadeOutClass) })
		},
		Done: func() {
			p.ifCurrent(cd, func() {
				p.visibility.Leave(StateError)
				p.active = nil
			})
		},
	})
	p.active = cd
	if p.onStart != nil {
		p.onStart()
	}
	return nil
}

// Dismiss stops any running countdown without touching the page.
func (p *ErrorPresenter) Dismiss() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopLocked()
}

// Active returns the running countdown, or nil.
func (p *ErrorPresenter) Active() *Countdown {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.active
}

// Close releases the running countdown.
func (p *ErrorPresenter) Close() {
	p.Dismiss()
}

func (p *ErrorPresenter) stopLocked() {
	if p.active != nil {
		p.active.Close()
		p.active = nil
	}
}

func (p *ErrorPresenter) ifCurrent(cd *Countdown, fn func()) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.active != cd {
		return
	}
	fn()
}
