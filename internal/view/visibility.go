package view

import (
	"sync"

	"github.com/user/seo-report/internal/report"
)

// State is the visible phase of the report page.
type State int

const (
	StateInitial State = iota
	StateLoading
	StateError
	StateContent
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateError:
		return "error"
	case StateContent:
		return "content"
	default:
		return "initial"
	}
}

// MarshalText lets State appear by name in JSON snapshots.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Visibility decides which of loading, error and main content is shown.
type Visibility struct {
	mu    sync.Mutex
	page  *Page
	state State
}

func NewVisibility(page *Page) *Visibility {
	return &Visibility{page: page}
}

// Set moves to s and shows exactly the region belonging to it.
func (v *Visibility) Set(s State) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.setLocked(s)
}

// Leave returns to the initial state if the page is still in s.
func (v *Visibility) Leave(s State) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.state == s {
		v.setLocked(StateInitial)
	}
}

func (v *Visibility) State() State {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

func (v *Visibility) setLocked(s State) {
	v.state = s
	v.page.SetVisible(report.RegionLoading, s == StateLoading)
	v.page.SetVisible(report.RegionError, s == StateError)
	v.page.SetVisible(report.RegionMain, s == StateContent)
}
