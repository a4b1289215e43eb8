// Package svcinv inventories and controls systemd service units over the
// system D-Bus without blocking a caller's single-threaded event loop.
//
// The Fetcher lists every loaded unit, keeps the ".service" ones and looks
// up each unit's enabled state:
//
//	fetcher := svcinv.NewFetcher(svcinv.NewSystemBus())
//	for _, svc := range fetcher.Fetch(ctx) {
//	    fmt.Println(svc.Name, svc.ActiveState, svc.EnabledState)
//	}
//
// A unit whose enabled-state lookup failed carries EnabledUnknown; one bad
// unit never discards the collection. An unreachable bus yields an empty
// collection; FetchResult also returns the reason.
//
// # Non-blocking use
//
// Fetch blocks for one ListUnits call plus one GetUnitFileState call per
// service. A cooperative loop hands the work to a Bridge, which runs it on
// a worker goroutine and delivers the result through a poll step on the
// loop, so the callback always runs on the loop goroutine:
//
//	loop := svcinv.NewEventLoop(0)
//	bridge := svcinv.NewBridge(ctx, fetcher, controller)
//	inv := svcinv.NewInventory()
//
//	bridge.RefreshInto(loop, inv, func(s svcinv.Snapshot) {
//	    render(s.Services)
//	})
//	_ = loop.Run(ctx)
//
// RefreshInto installs results in an Inventory, which drops a result when
// a newer fetch has already been installed. FetchAsync delivers every
// result and leaves ordering to the caller.
//
// # Control
//
// Controller starts, stops, enables and disables units, one bus connection
// per call. Controls do not update records; refetch to observe the change.
// ServiceRecord.ActiveToggle and EnabledToggle encode the toggle policy:
// active units stop and everything else starts; enabled units disable and
// everything else, static units included, enables.
//
// Manager runs the same operations across many units concurrently, and
// WatchUnitFiles reports unit-file changes that usually warrant a refetch.
package svcinv
