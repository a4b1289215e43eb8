package svcinv

import (
	"errors"
	"fmt"
)

// Common errors returned by svcinv operations
var (
	// ErrConnect indicates the system bus could not be reached
	ErrConnect = errors.New("svcinv: bus connection failed")

	// ErrRPC indicates a call reached the service manager but failed or timed out
	ErrRPC = errors.New("svcinv: manager call failed")

	// ErrInvalidUnit indicates an empty or malformed unit name
	ErrInvalidUnit = errors.New("svcinv: invalid unit name")

	// ErrUnitNotFound indicates a unit is absent from the inventory
	ErrUnitNotFound = errors.New("svcinv: unit not found")

	// ErrWorkerDied indicates a worker goroutine exited without a result
	ErrWorkerDied = errors.New("svcinv: worker exited without result")

	// ErrUnsupported indicates the platform has no systemd bus
	ErrUnsupported = errors.New("svcinv: systemd is only supported on Linux")
)

// OpError represents an error from an operation against a single unit
type OpError struct {
	// Op is the operation that failed
	Op Operation
	// Unit is the unit name involved in the operation, empty for manager-wide calls
	Unit string
	// Err is the underlying error
	Err error
}

// Error returns a formatted error message
func (e *OpError) Error() string {
	if e.Unit == "" {
		return fmt.Sprintf("svcinv %s: %v", e.Op.String(), e.Err)
	}
	return fmt.Sprintf("svcinv %s %q: %v", e.Op.String(), e.Unit, e.Err)
}

// Unwrap returns the underlying error for error chain inspection
func (e *OpError) Unwrap() error {
	return e.Err
}

// MultiError aggregates multiple errors from bulk operations
type MultiError struct {
	// Errors contains all accumulated errors
	Errors []error
}

// Error returns a summary of the accumulated errors
func (m *MultiError) Error() string {
	if len(m.Errors) == 0 {
		return "no errors"
	}
	if len(m.Errors) == 1 {
		return m.Errors[0].Error()
	}
	return fmt.Sprintf("%d errors occurred", len(m.Errors))
}

// Add appends an error to the collection if it's not nil
func (m *MultiError) Add(err error) {
	if err != nil {
		m.Errors = append(m.Errors, err)
	}
}

// Unwrap exposes the accumulated errors to errors.Is and errors.As
func (m *MultiError) Unwrap() []error {
	return m.Errors
}

// Err returns nil if no errors occurred, otherwise returns the MultiError itself
func (m *MultiError) Err() error {
	if len(m.Errors) == 0 {
		return nil
	}
	return m
}

func rpcError(op Operation, unit string, err error) error {
	return &OpError{Op: op, Unit: unit, Err: fmt.Errorf("%w: %w", ErrRPC, err)}
}

// connectError makes sure a dial failure matches ErrConnect
func connectError(err error) error {
	if errors.Is(err, ErrConnect) {
		return err
	}
	return &OpError{Op: OpConnect, Err: fmt.Errorf("%w: %w", ErrConnect, err)}
}
