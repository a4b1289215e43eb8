//go:build !linux

package svcinv

import (
	"context"
	"fmt"
	"time"
)

// SystemBus dials the service manager (stub - systemd is only supported on Linux)
type SystemBus struct {
	Address string
	Timeout time.Duration
}

// NewSystemBus returns a SystemBus (stub - systemd is only supported on Linux)
func NewSystemBus() *SystemBus {
	return &SystemBus{Timeout: DefaultCallTimeout}
}

// Dial always fails with ErrUnsupported on this platform
func (b *SystemBus) Dial(_ context.Context) (Conn, error) {
	return nil, &OpError{Op: OpConnect, Err: fmt.Errorf("%w: %w", ErrConnect, ErrUnsupported)}
}
