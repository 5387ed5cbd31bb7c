// Package view drives the report page on the server: it owns the page
// regions, toggles loading/error/content visibility, runs the error
// countdown and publishes every region change to subscribers.
package view

import (
	"html/template"
	"slices"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/user/seo-report/internal/render"
)

const subscriberBuffer = 256

// Update is a single region change as sent to the browser. Only the set
// fields are applied.
type Update struct {
	ID       string   `json:"id"`
	HTML     *string  `json:"html,omitempty"`
	Text     *string  `json:"text,omitempty"`
	Visible  *bool    `json:"visible,omitempty"`
	Classes  *string  `json:"classes,omitempty"`
	Progress *float64 `json:"progress,omitempty"`
}

// Page holds the current state of every region keyed by element id.
type Page struct {
	mu      sync.Mutex
	logger  *zap.Logger
	url     string
	regions map[string]*render.RegionView
	applied map[string]Update
	subs    map[int]chan Update
	nextSub int
}

// NewPage returns a page providing the given element ids, all hidden and empty.
func NewPage(logger *zap.Logger, ids []string) *Page {
	regions := make(map[string]*render.RegionView, len(ids))
	for _, id := range ids {
		regions[id] = &render.RegionView{}
	}
	return &Page{
		logger:  logger,
		regions: regions,
		applied: make(map[string]Update),
		subs:    make(map[int]chan Update),
	}
}

func (p *Page) SetHTML(id string, html template.HTML) {
	p.mutate(id, func(r *render.RegionView) Update {
		r.HTML, r.Text = html, ""
		s := string(html)
		return Update{HTML: &s}
	})
}

func (p *Page) SetText(id string, text string) {
	p.mutate(id, func(r *render.RegionView) Update {
		r.Text, r.HTML = text, ""
		return Update{Text: &text}
	})
}

func (p *Page) SetVisible(id string, visible bool) {
	p.mutate(id, func(r *render.RegionView) Update {
		r.Visible = visible
		return Update{Visible: &visible}
	})
}

func (p *Page) SetClasses(id string, classes string) {
	p.mutate(id, func(r *render.RegionView) Update {
		r.Classes = classes
		return Update{Classes: &classes}
	})
}

// AddClass appends class to the region's class list unless already present.
func (p *Page) AddClass(id string, class string) {
	p.mutate(id, func(r *render.RegionView) Update {
		fields := strings.Fields(r.Classes)
		for _, f := range fields {
			if f == class {
				classes := r.Classes
				return Update{Classes: &classes}
			}
		}
		r.Classes = strings.Join(append(fields, class), " ")
		classes := r.Classes
		return Update{Classes: &classes}
	})
}

// SetProgress sets a progress element's value, clamped to 0..100.
func (p *Page) SetProgress(id string, value float64) {
	value = min(max(value, 0), 100)
	p.mutate(id, func(r *render.RegionView) Update {
		r.Progress = value
		return Update{Progress: &value}
	})
}

// SetURL records the last submitted URL so a reload keeps the form filled.
func (p *Page) SetURL(url string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.url = url
}

// Region returns a copy of the region state.
func (p *Page) Region(id string) (render.RegionView, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	r, ok := p.regions[id]
	if !ok {
		return render.RegionView{}, false
	}
	return *r, true
}

// Snapshot returns a copy of the whole page for the page template.
func (p *Page) Snapshot() render.PageView {
	p.mu.Lock()
	defer p.mu.Unlock()

	regions := make(map[string]render.RegionView, len(p.regions))
	for id, r := range p.regions {
		regions[id] = *r
	}
	return render.PageView{URL: p.url, Regions: regions}
}

// Subscribe registers a listener for region updates. The returned function
// unsubscribes and closes the channel. Updates are dropped for listeners
// that fall behind.
func (p *Page) Subscribe() (<-chan Update, func()) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.subscribeLocked()
}

// Attach is Subscribe that also returns the accumulated state of every
// region written so far, taken atomically with the registration so no
// change falls between the two.
func (p *Page) Attach() ([]Update, <-chan Update, func()) {
	p.mu.Lock()
	defer p.mu.Unlock()

	ids := make([]string, 0, len(p.applied))
	for id := range p.applied {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	state := make([]Update, 0, len(ids))
	for _, id := range ids {
		state = append(state, p.applied[id])
	}
	ch, unsubscribe := p.subscribeLocked()
	return state, ch, unsubscribe
}

func (p *Page) subscribeLocked() (<-chan Update, func()) {
	id := p.nextSub
	p.nextSub++
	ch := make(chan Update, subscriberBuffer)
	p.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			p.mu.Lock()
			defer p.mu.Unlock()
			delete(p.subs, id)
			close(ch)
		})
	}
}

// merge folds u into the accumulated update for its region. HTML and text
// replace each other the way innerHTML and textContent do.
func merge(acc, u Update) Update {
	acc.ID = u.ID
	if u.HTML != nil {
		acc.HTML, acc.Text = u.HTML, nil
	}
	if u.Text != nil {
		acc.Text, acc.HTML = u.Text, nil
	}
	if u.Visible != nil {
		acc.Visible = u.Visible
	}
	if u.Classes != nil {
		acc.Classes = u.Classes
	}
	if u.Progress != nil {
		acc.Progress = u.Progress
	}
	return acc
}

func (p *Page) mutate(id string, apply func(*render.RegionView) Update) {
	p.mu.Lock()
	defer p.mu.Unlock()

	r, ok := p.regions[id]
	if !ok {
		p.logger.Error("target element not found", zap.String("id", id))
		return
	}

	u := apply(r)
	u.ID = id
	p.applied[id] = merge(p.applied[id], u)
	for sub, ch := range p.subs {
		select {
		case ch <- u:
		default:
			p.logger.Warn("dropping region update for slow subscriber",
				zap.Int("subscriber", sub), zap.String("id", id))
		}
	}
}
