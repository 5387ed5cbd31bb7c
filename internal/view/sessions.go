package view

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Sessions keeps one ReportView per browser session.
type Sessions struct {
	mu      sync.Mutex
	factory func() *ReportView
	views   map[string]*ReportView
}

func NewSessions(factory func() *ReportView) *Sessions {
	return &Sessions{
		factory: factory,
		views:   make(map[string]*ReportView),
	}
}

// NewID returns a fresh session id.
func NewID() string {
	return uuid.NewString()
}

// Get returns the view for id, creating it on first use. Ids that are not
// valid UUIDs are replaced with a new one; the id actually used is returned.
func (s *Sessions) Get(id string) (string, *ReportView) {
	if _, err := uuid.Parse(id); err != nil {
		id = NewID()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.views[id]
	if !ok {
		v = s.factory()
		s.views[id] = v
	}
	v.Touch()
	return id, v
}

// Len returns the number of live sessions.
func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.views)
}

// Sweep closes and drops sessions unused for longer than maxIdle.
func (s *Sessions) Sweep(maxIdle time.Duration) int {
	cutoff := time.Now().Add(-maxIdle)

	s.mu.Lock()
	var stale []*ReportView
	for id, v := range s.views {
		if v.idleSince().Before(cutoff) {
			stale = append(stale, v)
			delete(s.views, id)
		}
	}
	s.mu.Unlock()

	for _, v := range stale {
		v.Close()
	}
	return len(stale)
}

// Close releases every session.
func (s *Sessions) Close() {
	s.mu.Lock()
	views := s.views
	s.views = make(map[string]*ReportView)
	s.mu.Unlock()

	for _, v := range views {
		v.Close()
	}
}
