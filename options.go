package svcinv

import (
	"log/slog"
	"time"
)

// Defaults shared by the constructors in this package
const (
	// DefaultConcurrency is the default number of concurrent bulk operations
	DefaultConcurrency = 4

	// DefaultOpTimeout is the default timeout for each unit in a bulk operation
	DefaultOpTimeout = 30 * time.Second

	// DefaultWatchDebounce coalesces bursts of unit-file events
	DefaultWatchDebounce = 250 * time.Millisecond
)

// options holds the settings applied by Option values
type options struct {
	logger      *slog.Logger
	concurrency int
	timeout     time.Duration
	debounce    time.Duration
}

// Option configures the constructors in this package and WatchUnitFiles
type Option func(*options)

// WithLogger sets the structured logger. A nil logger discards output.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithConcurrency sets the maximum number of concurrent bulk operations
func WithConcurrency(n int) Option {
	return func(o *options) {
		o.concurrency = n
	}
}

// WithTimeout sets the per-operation timeout for bulk operations
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		o.timeout = d
	}
}

// WithDebounce sets the quiet period WatchUnitFiles waits before emitting
func WithDebounce(d time.Duration) Option {
	return func(o *options) {
		o.debounce = d
	}
}

func newOptions(opts []Option) options {
	o := options{
		concurrency: DefaultConcurrency,
		timeout:     DefaultOpTimeout,
		debounce:    DefaultWatchDebounce,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.New(slog.DiscardHandler)
	}
	if o.concurrency < 1 {
		o.concurrency = 1
	}
	if o.debounce <= 0 {
		o.debounce = DefaultWatchDebounce
	}
	return o
}
