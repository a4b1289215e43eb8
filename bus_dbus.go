//go:build linux

package svcinv

import (
	"context"
	"fmt"
	"time"

	sddbus "github.com/coreos/go-systemd/v22/dbus"
	godbus "github.com/godbus/dbus/v5"
)

// SystemBus dials private connections to the service manager over D-Bus
type SystemBus struct {
	// Address is the bus address to dial. Empty means the system bus.
	Address string

	// Timeout bounds every manager call made on a dialed connection
	Timeout time.Duration
}

// NewSystemBus returns a SystemBus for the system bus with DefaultCallTimeout
func NewSystemBus() *SystemBus {
	return &SystemBus{Timeout: DefaultCallTimeout}
}

// Dial opens a private, authenticated connection. Failures wrap ErrConnect.
func (b *SystemBus) Dial(ctx context.Context) (Conn, error) {
	var (
		conn *godbus.Conn
		err  error
	)
	if b.Address != "" {
		conn, err = godbus.Connect(b.Address, godbus.WithContext(ctx))
	} else {
		conn, err = godbus.ConnectSystemBus(godbus.WithContext(ctx))
	}
	if err != nil {
		return nil, &OpError{Op: OpConnect, Err: fmt.Errorf("%w: %w", ErrConnect, err)}
	}

	return &busConn{
		conn:    conn,
		obj:     conn.Object(ManagerDest, godbus.ObjectPath(ManagerPath)),
		timeout: b.callTimeout(),
	}, nil
}

// callTimeout is Timeout, or DefaultCallTimeout when unset
func (b *SystemBus) callTimeout() time.Duration {
	if b.Timeout <= 0 {
		return DefaultCallTimeout
	}
	return b.Timeout
}

// busConn issues Manager method calls on one connection
type busConn struct {
	conn    *godbus.Conn
	obj     godbus.BusObject
	timeout time.Duration
}

func (c *busConn) call(ctx context.Context, method string, args ...any) *godbus.Call {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	return c.obj.CallWithContext(ctx, ManagerInterface+"."+method, 0, args...)
}

func (c *busConn) ListUnits(ctx context.Context) ([]sddbus.UnitStatus, error) {
	// a(ssssssouso) decodes field by field into UnitStatus
	var units []sddbus.UnitStatus
	if err := c.call(ctx, "ListUnits").Store(&units); err != nil {
		return nil, err
	}
	return units, nil
}

func (c *busConn) GetUnitFileState(ctx context.Context, name string) (string, error) {
	var state string
	if err := c.call(ctx, "GetUnitFileState", name).Store(&state); err != nil {
		return "", err
	}
	return state, nil
}

func (c *busConn) StartUnit(ctx context.Context, name, mode string) (string, error) {
	var job godbus.ObjectPath
	if err := c.call(ctx, "StartUnit", name, mode).Store(&job); err != nil {
		return "", err
	}
	return string(job), nil
}

func (c *busConn) StopUnit(ctx context.Context, name, mode string) (string, error) {
	var job godbus.ObjectPath
	if err := c.call(ctx, "StopUnit", name, mode).Store(&job); err != nil {
		return "", err
	}
	return string(job), nil
}

func (c *busConn) EnableUnitFiles(ctx context.Context, names []string, runtime, force bool) (bool, []sddbus.EnableUnitFileChange, error) {
	var (
		carriesInstallInfo bool
		changes            []sddbus.EnableUnitFileChange
	)
	if err := c.call(ctx, "EnableUnitFiles", names, runtime, force).Store(&carriesInstallInfo, &changes); err != nil {
		return false, nil, err
	}
	return carriesInstallInfo, changes, nil
}

func (c *busConn) DisableUnitFiles(ctx context.Context, names []string, runtime bool) ([]sddbus.DisableUnitFileChange, error) {
	var changes []sddbus.DisableUnitFileChange
	if err := c.call(ctx, "DisableUnitFiles", names, runtime).Store(&changes); err != nil {
		return nil, err
	}
	return changes, nil
}

func (c *busConn) Close() error {
	return c.conn.Close()
}
