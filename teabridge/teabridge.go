// Package teabridge adapts svcinv to bubbletea programs.
//
// bubbletea runs each tea.Cmd on its own goroutine and hands the returned
// message to Update on the program goroutine, so the commands here give the
// same guarantee as svcinv.Bridge: blocking bus calls never run inside
// Update, and results are only ever handled there.
//
//	func (m model) Init() tea.Cmd {
//	    return teabridge.FetchCmd(ctx, fetcher, m.inv.Begin())
//	}
//
//	func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
//	    switch msg := msg.(type) {
//	    case teabridge.InventoryMsg:
//	        m.inv.Replace(svcinv.FetchResult(msg))
//	    case teabridge.ControlMsg:
//	        return m, teabridge.FetchCmd(ctx, fetcher, m.inv.Begin())
//	    }
//	    return m, nil
//	}
package teabridge

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/axondata/go-svcinv"
)

// InventoryMsg carries the result of FetchCmd
type InventoryMsg svcinv.FetchResult

// ControlMsg carries the outcome of ControlCmd
type ControlMsg struct {
	Op   svcinv.Operation
	Unit string
	Err  error
}

// FetchCmd fetches the inventory and reports it as an InventoryMsg tagged
// with gen, typically issued by svcinv.Inventory.Begin.
func FetchCmd(ctx context.Context, f *svcinv.Fetcher, gen uint64) tea.Cmd {
	return func() tea.Msg {
		services, err := f.FetchResult(ctx)
		return InventoryMsg{Generation: gen, Services: services, Err: err}
	}
}

// ControlCmd performs op on the unit and reports it as a ControlMsg
func ControlCmd(ctx context.Context, c *svcinv.Controller, op svcinv.Operation, unit string) tea.Cmd {
	return func() tea.Msg {
		return ControlMsg{Op: op, Unit: unit, Err: c.Do(ctx, op, unit)}
	}
}

// RefreshAfter runs op on the unit and, when it succeeds, fetches a fresh
// inventory. Both messages are delivered in order.
func RefreshAfter(ctx context.Context, c *svcinv.Controller, f *svcinv.Fetcher, inv *svcinv.Inventory, op svcinv.Operation, unit string) tea.Cmd {
	control, fetch := refreshSteps(ctx, c, f, inv, op, unit)
	return tea.Sequence(control, fetch)
}

// refreshSteps returns the two commands RefreshAfter runs in order. fetch
// yields nil when control failed.
func refreshSteps(ctx context.Context, c *svcinv.Controller, f *svcinv.Fetcher, inv *svcinv.Inventory, op svcinv.Operation, unit string) (control, fetch tea.Cmd) {
	var controlErr error
	control = func() tea.Msg {
		controlErr = c.Do(ctx, op, unit)
		return ControlMsg{Op: op, Unit: unit, Err: controlErr}
	}
	fetch = func() tea.Msg {
		if controlErr != nil {
			return nil
		}
		return FetchCmd(ctx, f, inv.Begin())()
	}
	return control, fetch
}
