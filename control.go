package svcinv

import (
	"context"
	"fmt"
	"log/slog"
)

// Controller performs one-shot control operations against the manager.
// Every call dials its own connection and blocks for one round trip.
// Controls never update a ServiceRecord; refetch to observe the effect.
type Controller struct {
	dialer Dialer
	logger *slog.Logger
}

// NewController creates a Controller that dials through d
func NewController(d Dialer, opts ...Option) *Controller {
	o := newOptions(opts)
	return &Controller{
		dialer: d,
		logger: o.logger,
	}
}

// Start starts the unit (StartUnit with mode "replace")
func (c *Controller) Start(ctx context.Context, name string) error {
	return c.run(ctx, OpStart, name, func(conn Conn) error {
		job, err := conn.StartUnit(ctx, name, JobModeReplace)
		if err == nil {
			c.logger.Debug("start job queued", "unit", name, "job", job)
		}
		return err
	})
}

// Stop stops the unit (StopUnit with mode "replace")
func (c *Controller) Stop(ctx context.Context, name string) error {
	return c.run(ctx, OpStop, name, func(conn Conn) error {
		job, err := conn.StopUnit(ctx, name, JobModeReplace)
		if err == nil {
			c.logger.Debug("stop job queued", "unit", name, "job", job)
		}
		return err
	})
}

// Enable enables the unit file persistently, overriding conflicting symlinks
func (c *Controller) Enable(ctx context.Context, name string) error {
	return c.run(ctx, OpEnable, name, func(conn Conn) error {
		_, changes, err := conn.EnableUnitFiles(ctx, []string{name}, false, true)
		if err == nil {
			c.logger.Debug("unit enabled", "unit", name, "changes", len(changes))
		}
		return err
	})
}

// Disable disables the unit file persistently
func (c *Controller) Disable(ctx context.Context, name string) error {
	return c.run(ctx, OpDisable, name, func(conn Conn) error {
		changes, err := conn.DisableUnitFiles(ctx, []string{name}, false)
		if err == nil {
			c.logger.Debug("unit disabled", "unit", name, "changes", len(changes))
		}
		return err
	})
}

// Do dispatches a control operation by value
func (c *Controller) Do(ctx context.Context, op Operation, name string) error {
	switch op {
	case OpStart:
		return c.Start(ctx, name)
	case OpStop:
		return c.Stop(ctx, name)
	case OpEnable:
		return c.Enable(ctx, name)
	case OpDisable:
		return c.Disable(ctx, name)
	default:
		return &OpError{Op: op, Unit: name, Err: fmt.Errorf("unsupported control operation: %v", op)}
	}
}

// ToggleActive stops an active unit and starts any other
func (c *Controller) ToggleActive(ctx context.Context, r ServiceRecord) error {
	return c.Do(ctx, r.ActiveToggle(), r.Name)
}

// ToggleEnabled disables an enabled unit and enables any other,
// including static and unknown ones
func (c *Controller) ToggleEnabled(ctx context.Context, r ServiceRecord) error {
	return c.Do(ctx, r.EnabledToggle(), r.Name)
}

func (c *Controller) run(ctx context.Context, op Operation, name string, fn func(Conn) error) error {
	if name == "" {
		return &OpError{Op: op, Err: ErrInvalidUnit}
	}

	conn, err := c.dialer.Dial(ctx)
	if err != nil {
		return &OpError{Op: op, Unit: name, Err: connectError(err)}
	}
	defer func() {
		if err := conn.Close(); err != nil {
			c.logger.Debug("closing bus connection", "error", err)
		}
	}()

	if err := fn(conn); err != nil {
		c.logger.Warn("control operation failed", "op", op.String(), "unit", name, "error", err)
		return rpcError(op, name, err)
	}
	return nil
}
