package svcinv

import (
	"context"
	"time"

	"github.com/coreos/go-systemd/v22/dbus"
)

// Service manager bus coordinates
const (
	// ManagerDest is the well-known bus name of the service manager
	ManagerDest = "org.freedesktop.systemd1"

	// ManagerPath is the object path exporting the manager interface
	ManagerPath = "/org/freedesktop/systemd1"

	// ManagerInterface is the manager's D-Bus interface
	ManagerInterface = "org.freedesktop.systemd1.Manager"

	// DefaultCallTimeout bounds every single manager call
	DefaultCallTimeout = 5 * time.Second

	// JobModeReplace is the job mode used for start and stop
	JobModeReplace = "replace"
)

// Dialer opens connections to the service manager. Each logical operation
// dials its own connection and closes it when done.
type Dialer interface {
	Dial(ctx context.Context) (Conn, error)
}

// DialerFunc adapts a function to the Dialer interface
type DialerFunc func(ctx context.Context) (Conn, error)

// Dial calls f(ctx)
func (f DialerFunc) Dial(ctx context.Context) (Conn, error) {
	return f(ctx)
}

// Conn is one open connection to the service manager. Implementations apply
// their own per-call timeout on top of ctx.
type Conn interface {
	// ListUnits returns every unit currently loaded by the manager
	ListUnits(ctx context.Context) ([]dbus.UnitStatus, error)

	// GetUnitFileState returns the persistence state of a unit file
	GetUnitFileState(ctx context.Context, name string) (string, error)

	// StartUnit queues a start job and returns its job path
	StartUnit(ctx context.Context, name, mode string) (string, error)

	// StopUnit queues a stop job and returns its job path
	StopUnit(ctx context.Context, name, mode string) (string, error)

	// EnableUnitFiles enables unit files, reporting whether they carry install info
	EnableUnitFiles(ctx context.Context, names []string, runtime, force bool) (bool, []dbus.EnableUnitFileChange, error)

	// DisableUnitFiles disables unit files
	DisableUnitFiles(ctx context.Context, names []string, runtime bool) ([]dbus.DisableUnitFileChange, error)

	// Close releases the connection
	Close() error
}
