//go:build !linux

package svcinv

import (
	"context"
)

// WatchUnitFiles - not supported on this platform
func WatchUnitFiles(_ context.Context, _ []string, _ ...Option) (<-chan WatchEvent, WatchCleanupFunc, error) {
	return nil, nil, ErrUnsupported
}
