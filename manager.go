package svcinv

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Manager applies control operations to many units concurrently.
// It provides bulk operations with configurable concurrency and timeouts.
// Like Controller, every operation blocks its caller.
type Manager struct {
	// Concurrency is the maximum number of concurrent operations
	Concurrency int
	// Timeout is the per-operation timeout
	Timeout time.Duration

	fetcher *Fetcher
	control *Controller
	logger  *slog.Logger
}

// NewManager creates a Manager dialing through d
func NewManager(d Dialer, opts ...Option) *Manager {
	o := newOptions(opts)
	return &Manager{
		Concurrency: o.concurrency,
		Timeout:     o.timeout,
		fetcher:     NewFetcher(d, opts...),
		control:     NewController(d, opts...),
		logger:      o.logger,
	}
}

func (m *Manager) execute(ctx context.Context, units []string, op Operation) error {
	if len(units) == 0 {
		return nil
	}

	concurrency := m.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}

	// Semaphore for concurrency control
	sem := make(chan struct{}, concurrency)

	var wg sync.WaitGroup
	var mu sync.Mutex
	merr := &MultiError{}

	for _, unit := range units {
		wg.Add(1)
		go func(name string) {
			defer wg.Done()

			// Acquire semaphore slot
			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
				mu.Lock()
				merr.Add(&OpError{Op: op, Unit: name, Err: ctx.Err()})
				mu.Unlock()
				return
			}

			opCtx := ctx
			if m.Timeout > 0 {
				var cancel context.CancelFunc
				opCtx, cancel = context.WithTimeout(ctx, m.Timeout)
				defer cancel()
			}

			if err := m.control.Do(opCtx, op, name); err != nil {
				mu.Lock()
				merr.Add(err)
				mu.Unlock()
			}
		}(unit)
	}

	wg.Wait()

	if err := merr.Err(); err != nil {
		m.logger.Warn("bulk operation incomplete", "op", op.String(), "failed", len(merr.Errors), "total", len(units))
		return err
	}
	return nil
}

// Start starts the specified units
func (m *Manager) Start(ctx context.Context, units ...string) error {
	return m.execute(ctx, units, OpStart)
}

// Stop stops the specified units
func (m *Manager) Stop(ctx context.Context, units ...string) error {
	return m.execute(ctx, units, OpStop)
}

// Enable enables the specified units
func (m *Manager) Enable(ctx context.Context, units ...string) error {
	return m.execute(ctx, units, OpEnable)
}

// Disable disables the specified units
func (m *Manager) Disable(ctx context.Context, units ...string) error {
	return m.execute(ctx, units, OpDisable)
}

// Status fetches the inventory once and returns the records of the named
// units. Units absent from the inventory are reported as ErrUnitNotFound.
func (m *Manager) Status(ctx context.Context, units ...string) (map[string]ServiceRecord, error) {
	results := make(map[string]ServiceRecord, len(units))
	if len(units) == 0 {
		return results, nil
	}

	opCtx := ctx
	if m.Timeout > 0 {
		var cancel context.CancelFunc
		opCtx, cancel = context.WithTimeout(ctx, m.Timeout)
		defer cancel()
	}

	services, err := m.fetcher.FetchResult(opCtx)
	if err != nil {
		return results, err
	}

	merr := &MultiError{}
	for _, name := range units {
		r, ok := services.Lookup(name)
		if !ok {
			merr.Add(&OpError{Op: OpListUnits, Unit: name, Err: ErrUnitNotFound})
			continue
		}
		results[name] = r
	}

	return results, merr.Err()
}
