package svcinv

import "strings"

// ServiceSuffix is the unit-type suffix kept by the inventory
const ServiceSuffix = ".service"

// Runtime and persistence states referenced by the toggle policy
const (
	// ActiveStateActive is the ActiveState of a running unit
	ActiveStateActive = "active"

	// EnabledStateEnabled is the UnitFileState of an enabled unit
	EnabledStateEnabled = "enabled"

	// EnabledStateDisabled is the UnitFileState of a disabled unit
	EnabledStateDisabled = "disabled"

	// EnabledStateStatic is the UnitFileState of a unit without an install section
	EnabledStateStatic = "static"

	// EnabledUnknown replaces EnabledState when the lookup for a unit failed.
	// It marks a degraded record, not a persistence state.
	EnabledUnknown = "unknown"
)

// ServiceRecord describes one service unit as reported by the manager
type ServiceRecord struct {
	// Name is the unit name, always ending in ".service"
	Name string `yaml:"name"`

	// Description is the human-readable unit description
	Description string `yaml:"description"`

	// LoadState is loaded, not-found, error, masked, etc.
	LoadState string `yaml:"load_state"`

	// ActiveState is active, inactive, failed, activating, deactivating, etc.
	ActiveState string `yaml:"active_state"`

	// SubState refines ActiveState (running, dead, exited, etc.)
	SubState string `yaml:"sub_state"`

	// EnabledState is enabled, disabled, static, ... or EnabledUnknown
	EnabledState string `yaml:"enabled_state"`
}

// Degraded reports whether the enabled-state lookup failed for this unit
func (r ServiceRecord) Degraded() bool {
	return r.EnabledState == EnabledUnknown
}

// Active reports whether the unit is currently active
func (r ServiceRecord) Active() bool {
	return r.ActiveState == ActiveStateActive
}

// ActiveToggle returns the control operation a start/stop toggle performs
// for this record: stop when active, start otherwise.
func (r ServiceRecord) ActiveToggle() Operation {
	if r.ActiveState == ActiveStateActive {
		return OpStop
	}
	return OpStart
}

// EnabledToggle returns the control operation an enable/disable toggle
// performs for this record: disable when enabled, enable otherwise.
// Static and unknown units map to enable.
func (r ServiceRecord) EnabledToggle() Operation {
	if r.EnabledState == EnabledStateEnabled {
		return OpDisable
	}
	return OpEnable
}

// IsServiceUnit reports whether name is a non-empty service unit name
func IsServiceUnit(name string) bool {
	return len(name) > len(ServiceSuffix) && strings.HasSuffix(name, ServiceSuffix)
}

// Collection is an ordered set of service records in manager enumeration order
type Collection []ServiceRecord

// Names returns the unit names in collection order
func (c Collection) Names() []string {
	names := make([]string, len(c))
	for i := range c {
		names[i] = c[i].Name
	}
	return names
}

// Lookup returns the record with the given unit name
func (c Collection) Lookup(name string) (ServiceRecord, bool) {
	for _, r := range c {
		if r.Name == name {
			return r, true
		}
	}
	return ServiceRecord{}, false
}

// DegradedCount returns how many records carry EnabledUnknown
func (c Collection) DegradedCount() int {
	n := 0
	for _, r := range c {
		if r.Degraded() {
			n++
		}
	}
	return n
}
