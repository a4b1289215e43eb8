package svcinv

import (
	"context"
	"fmt"
	"sync"

	"github.com/coreos/go-systemd/v22/dbus"
)

// busCall records one method invocation on fakeConn
type busCall struct {
	Method string
	Args   []any
}

// fakeConn is an in-memory service manager
type fakeConn struct {
	mu sync.Mutex

	units     []dbus.UnitStatus
	states    map[string]string
	stateErrs map[string]error
	listErr   error
	callErr   error
	listPanic bool

	calls  []busCall
	closed int
}

func (c *fakeConn) record(method string, args ...any) {
	c.calls = append(c.calls, busCall{Method: method, Args: args})
}

func (c *fakeConn) ListUnits(_ context.Context) ([]dbus.UnitStatus, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.record("ListUnits")
	if c.listPanic {
		panic("list units exploded")
	}
	if c.listErr != nil {
		return nil, c.listErr
	}
	return append([]dbus.UnitStatus(nil), c.units...), nil
}

func (c *fakeConn) GetUnitFileState(_ context.Context, name string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.record("GetUnitFileState", name)
	if err := c.stateErrs[name]; err != nil {
		return "", err
	}
	if s, ok := c.states[name]; ok {
		return s, nil
	}
	return EnabledStateEnabled, nil
}

func (c *fakeConn) StartUnit(_ context.Context, name, mode string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.record("StartUnit", name, mode)
	if c.callErr != nil {
		return "", c.callErr
	}
	return "/org/freedesktop/systemd1/job/1", nil
}

func (c *fakeConn) StopUnit(_ context.Context, name, mode string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.record("StopUnit", name, mode)
	if c.callErr != nil {
		return "", c.callErr
	}
	return "/org/freedesktop/systemd1/job/2", nil
}

func (c *fakeConn) EnableUnitFiles(_ context.Context, names []string, runtime, force bool) (bool, []dbus.EnableUnitFileChange, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.record("EnableUnitFiles", names, runtime, force)
	if c.callErr != nil {
		return false, nil, c.callErr
	}
	return true, []dbus.EnableUnitFileChange{{Type: "symlink", Filename: "/etc/systemd/system/multi-user.target.wants/" + names[0]}}, nil
}

func (c *fakeConn) DisableUnitFiles(_ context.Context, names []string, runtime bool) ([]dbus.DisableUnitFileChange, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.record("DisableUnitFiles", names, runtime)
	if c.callErr != nil {
		return nil, c.callErr
	}
	return []dbus.DisableUnitFileChange{{Type: "unlink", Filename: "/etc/systemd/system/multi-user.target.wants/" + names[0]}}, nil
}

func (c *fakeConn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed++
	return nil
}

func (c *fakeConn) callsTo(method string) []busCall {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []busCall
	for _, call := range c.calls {
		if call.Method == method {
			out = append(out, call)
		}
	}
	return out
}

func (c *fakeConn) closeCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// fakeBus dials fakeConn, optionally failing or waiting on gate first
type fakeBus struct {
	mu      sync.Mutex
	conn    *fakeConn
	dialErr error
	gate    chan struct{}
	dials   int
}

func (b *fakeBus) Dial(ctx context.Context) (Conn, error) {
	if b.gate != nil {
		select {
		case <-b.gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.dials++
	if b.dialErr != nil {
		return nil, b.dialErr
	}
	return b.conn, nil
}

func (b *fakeBus) dialCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.dials
}

// unit builds a ListUnits entry
func unit(name, active, sub string) dbus.UnitStatus {
	return dbus.UnitStatus{
		Name:        name,
		Description: "Unit " + name,
		LoadState:   "loaded",
		ActiveState: active,
		SubState:    sub,
	}
}

// manyServices builds n service units named svc-00.service, svc-01.service, ...
func manyServices(n int) []dbus.UnitStatus {
	units := make([]dbus.UnitStatus, 0, n)
	for i := 0; i < n; i++ {
		units = append(units, unit(fmt.Sprintf("svc-%02d.service", i), "active", "running"))
	}
	return units
}

func newFakeBus(units ...dbus.UnitStatus) (*fakeBus, *fakeConn) {
	conn := &fakeConn{
		units:     units,
		states:    make(map[string]string),
		stateErrs: make(map[string]error),
	}
	return &fakeBus{conn: conn}, conn
}
