package svcinv

import (
	"context"
	"sync"
	"time"
)

// DefaultPollInterval is how often EventLoop.Run polls its registered steps
const DefaultPollInterval = 50 * time.Millisecond

// Scheduler is a single-threaded cooperative loop that polls registered
// steps. A step returns true to be polled again on a later iteration and
// false to be removed. Steps must never block.
type Scheduler interface {
	AddPoll(step func() bool)
}

// EventLoop is a minimal cooperative Scheduler. AddPoll and Post may be
// called from any goroutine; RunOnce and Run must be driven by a single
// goroutine, which is the goroutine every step executes on.
type EventLoop struct {
	// Interval is the delay between iterations in Run
	Interval time.Duration

	mu    sync.Mutex
	steps []func() bool
}

// NewEventLoop creates an EventLoop polling at the given interval.
// A non-positive interval selects DefaultPollInterval.
func NewEventLoop(interval time.Duration) *EventLoop {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &EventLoop{Interval: interval}
}

// AddPoll registers a step to be polled on the next iteration
func (l *EventLoop) AddPoll(step func() bool) {
	l.mu.Lock()
	l.steps = append(l.steps, step)
	l.mu.Unlock()
}

// Post runs fn once on the loop goroutine during the next iteration
func (l *EventLoop) Post(fn func()) {
	l.AddPoll(func() bool {
		fn()
		return false
	})
}

// Pending returns the number of registered steps
func (l *EventLoop) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.steps)
}

// RunOnce polls every registered step once on the calling goroutine and
// returns the number of steps still registered. Steps added while
// iterating are polled on the next call.
func (l *EventLoop) RunOnce() int {
	l.mu.Lock()
	steps := l.steps
	l.steps = nil
	l.mu.Unlock()

	kept := steps[:0]
	for _, step := range steps {
		if step() {
			kept = append(kept, step)
		}
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.steps = append(kept, l.steps...)
	return len(l.steps)
}

// Run iterates until ctx is done and returns ctx.Err()
func (l *EventLoop) Run(ctx context.Context) error {
	interval := l.Interval
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		l.RunOnce()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
