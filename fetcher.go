package svcinv

import (
	"context"
	"log/slog"
)

// Fetcher builds a Collection of service units from the manager.
// Its methods block for 1+n round trips and must not run on a
// cooperative loop's goroutine; use Bridge for that.
type Fetcher struct {
	dialer Dialer
	logger *slog.Logger
}

// NewFetcher creates a Fetcher that dials through d
func NewFetcher(d Dialer, opts ...Option) *Fetcher {
	o := newOptions(opts)
	return &Fetcher{
		dialer: d,
		logger: o.logger,
	}
}

// Fetch returns the current service inventory. Connection and listing
// failures yield an empty collection; see FetchResult to tell them apart.
func (f *Fetcher) Fetch(ctx context.Context) Collection {
	services, _ := f.FetchResult(ctx)
	return services
}

// FetchResult returns the current service inventory and, when the
// inventory is empty because the bus or ListUnits failed, the reason.
// Per-unit enabled-state failures never produce an error; the affected
// records carry EnabledUnknown instead.
func (f *Fetcher) FetchResult(ctx context.Context) (Collection, error) {
	conn, err := f.dialer.Dial(ctx)
	if err != nil {
		err = connectError(err)
		f.logger.Warn("service manager unreachable", "error", err)
		return Collection{}, err
	}
	defer func() {
		if err := conn.Close(); err != nil {
			f.logger.Debug("closing bus connection", "error", err)
		}
	}()

	units, err := conn.ListUnits(ctx)
	if err != nil {
		f.logger.Warn("listing units failed", "error", err)
		return Collection{}, rpcError(OpListUnits, "", err)
	}
	f.logger.Debug("received units", "count", len(units))

	services := make(Collection, 0, len(units))
	for _, u := range units {
		if !IsServiceUnit(u.Name) {
			continue
		}

		enabled, err := conn.GetUnitFileState(ctx, u.Name)
		if err != nil {
			f.logger.Debug("unit file state lookup failed", "unit", u.Name, "error", err)
			enabled = EnabledUnknown
		}

		services = append(services, ServiceRecord{
			Name:         u.Name,
			Description:  u.Description,
			LoadState:    u.LoadState,
			ActiveState:  u.ActiveState,
			SubState:     u.SubState,
			EnabledState: enabled,
		})
	}
	f.logger.Debug("filtered service units", "count", len(services), "degraded", services.DegradedCount())

	return services, nil
}
