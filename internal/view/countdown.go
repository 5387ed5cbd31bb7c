package view

import (
	"sync"
	"time"
)

// CountdownConfig sets the error banner timing.
type CountdownConfig struct {
	Duration time.Duration
	Tick     time.Duration
	Fade     time.Duration
}

// DefaultCountdown is 2s in 50ms steps followed by a 500ms fade.
var DefaultCountdown = CountdownConfig{
	Duration: 2000 * time.Millisecond,
	Tick:     50 * time.Millisecond,
	Fade:     500 * time.Millisecond,
}

// CountdownHooks are invoked from the countdown goroutine.
type CountdownHooks struct {
	// Progress receives the remaining fraction as 0..100 after every tick.
	Progress func(remaining float64)
	// Fade runs once the time is up.
	Fade func()
	// Done runs after the fade.
	Done func()
}

// Countdown owns one ticker and one fade timer. Close stops both; hooks
// already running may still finish, so callers that share state with the
// hooks must check they are still current.
type Countdown struct {
	stop chan struct{}
	done chan struct{}
	once sync.Once
}

// NewCountdown returns a countdown that has not started yet.
func NewCountdown() *Countdown {
	return &Countdown{
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}
}

// startCountdown starts ticking immediately.
func startCountdown(cfg CountdownConfig, hooks CountdownHooks) *Countdown {
	c := NewCountdown()
	c.Start(cfg, hooks)
	return c
}

// Start runs the countdown in its own goroutine. It must be called once.
func (c *Countdown) Start(cfg CountdownConfig, hooks CountdownHooks) {
	go c.run(cfg, hooks)
}

func (c *Countdown) run(cfg CountdownConfig, hooks CountdownHooks) {
	defer close(c.done)

	ticker := time.NewTicker(cfg.Tick)
	defer ticker.Stop()

	var elapsed time.Duration
	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
		}

		elapsed += cfg.Tick
		remaining := max(cfg.Duration-elapsed, 0)
		if hooks.Progress != nil {
			hooks.Progress(float64(remaining) / float64(cfg.Duration) * 100)
		}
		if remaining > 0 {
			continue
		}

		ticker.Stop()
		if hooks.Fade != nil {
			hooks.Fade()
		}

		fade := time.NewTimer(cfg.Fade)
		select {
		case <-c.stop:
			fade.Stop()
			return
		case <-fade.C:
		}
		if hooks.Done != nil {
			hooks.Done()
		}
		return
	}
}

// Close stops the countdown. It is safe to call more than once and does not
// wait for the goroutine.
func (c *Countdown) Close() {
	c.once.Do(func() { close(c.stop) })
}

// Done is closed when the countdown goroutine has exited, whether it ran to
// completion or was closed.
func (c *Countdown) Done() <-chan struct{} {
	return c.done
}

// Active reports whether the countdown has neither finished nor been closed.
func (c *Countdown) Active() bool {
	select {
	case <-c.done:
		return false
	case <-c.stop:
		return false
	default:
		return true
	}
}
