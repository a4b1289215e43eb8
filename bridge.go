package svcinv

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"vawter.tech/stopper"
)

// FetchResult is what an asynchronous fetch delivers to its callback
type FetchResult struct {
	// Generation identifies the fetch that produced this result. FetchAsync
	// numbers fetches per Bridge; RefreshInto uses generations issued by its
	// Inventory. Only RefreshInto results are comparable by Inventory.Replace.
	Generation uint64

	// Services is the fetched collection, empty on failure
	Services Collection

	// Err is ErrConnect, ErrRPC or ErrWorkerDied when Services is empty
	// because of a failure; nil otherwise
	Err error
}

// Bridge runs blocking fetches and control calls on worker goroutines and
// delivers their results through a Scheduler, so callbacks always execute
// on the loop goroutine and the loop never blocks. Every request invokes
// its callback exactly once. Requests are neither cancelled nor
// deduplicated; use RefreshInto with an Inventory to keep stale results out.
type Bridge struct {
	fetcher *Fetcher
	control *Controller
	logger  *slog.Logger

	sctx *stopper.Context
	gen  atomic.Uint64

	mu     sync.Mutex
	closed bool
}

// NewBridge creates a Bridge whose workers run under ctx
func NewBridge(ctx context.Context, f *Fetcher, c *Controller, opts ...Option) *Bridge {
	o := newOptions(opts)
	return &Bridge{
		fetcher: f,
		control: c,
		logger:  o.logger,
		sctx:    stopper.WithContext(ctx),
	}
}

// FetchAsync starts a fetch on a new worker and registers a poll step on
// loop that hands the result to cb. If the worker exits without a result,
// or the bridge is closed or its context stopped, cb receives an empty
// collection and ErrWorkerDied. Result generations come from the bridge's
// own counter; use RefreshInto to feed an Inventory.
func (b *Bridge) FetchAsync(loop Scheduler, cb func(FetchResult)) {
	b.fetchAsync(loop, b.gen.Add(1), cb)
}

// RefreshInto fetches with a generation issued by inv and installs the
// result. onUpdate runs on the loop goroutine only when the result was
// accepted, i.e. no newer fetch has already been installed.
func (b *Bridge) RefreshInto(loop Scheduler, inv *Inventory, onUpdate func(Snapshot)) {
	b.fetchAsync(loop, inv.Begin(), func(res FetchResult) {
		if !inv.Replace(res) {
			b.logger.Debug("dropping stale inventory", "generation", res.Generation)
			return
		}
		if onUpdate != nil {
			onUpdate(inv.Snapshot())
		}
	})
}

// ControlAsync runs a control operation on a new worker and hands its
// outcome to cb on the loop goroutine.
func (b *Bridge) ControlAsync(loop Scheduler, op Operation, name string, cb func(error)) {
	runAsync(b, loop, op.String(), func(ctx context.Context) error {
		return b.control.Do(ctx, op, name)
	}, func(err error, ok bool) {
		if !ok {
			err = &OpError{Op: op, Unit: name, Err: ErrWorkerDied}
		}
		cb(err)
	})
}

// Close stops accepting requests and waits for in-flight workers. Workers
// still running after grace see their context cancelled. Requests made
// after Close deliver ErrWorkerDied.
func (b *Bridge) Close(grace time.Duration) error {
	b.mu.Lock()
	b.closed = true
	b.mu.Unlock()

	b.sctx.Stop(grace)
	return b.sctx.Wait()
}

func (b *Bridge) fetchAsync(loop Scheduler, gen uint64, cb func(FetchResult)) {
	runAsync(b, loop, "fetch", func(ctx context.Context) FetchResult {
		services, err := b.fetcher.FetchResult(ctx)
		return FetchResult{Generation: gen, Services: services, Err: err}
	}, func(res FetchResult, ok bool) {
		if !ok {
			res = FetchResult{Generation: gen, Services: Collection{}, Err: ErrWorkerDied}
		}
		cb(res)
	})
}

// runAsync runs work on one worker goroutine and polls for its result on
// loop. deliver gets ok=false when the worker ended without a value.
func runAsync[T any](b *Bridge, loop Scheduler, task string, work func(context.Context) T, deliver func(v T, ok bool)) {
	ch := make(chan T, 1)

	b.mu.Lock()
	accepted := !b.closed && b.sctx.Go(func(sctx *stopper.Context) error {
		defer close(ch)
		defer func() {
			if r := recover(); r != nil {
				b.logger.Warn("worker exited without result", "task", task, "panic", r)
			}
		}()
		ch <- work(sctx)
		return nil
	})
	if !accepted {
		// no worker will ever close ch
		close(ch)
	}
	b.mu.Unlock()

	loop.AddPoll(func() bool {
		select {
		case v, ok := <-ch:
			deliver(v, ok)
			return false
		default:
			return true
		}
	})
}
