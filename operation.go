package svcinv

// Operation represents a call made against the service manager
type Operation int

const (
	// OpUnknown represents an unknown operation
	OpUnknown Operation = iota
	// OpConnect opens a bus connection
	OpConnect
	// OpListUnits enumerates loaded units
	OpListUnits
	// OpUnitFileState looks up the persistence state of one unit
	OpUnitFileState
	// OpStart starts a unit
	OpStart
	// OpStop stops a unit
	OpStop
	// OpEnable enables a unit's install section
	OpEnable
	// OpDisable disables a unit's install section
	OpDisable
)

// Operation string constants
const (
	opUnknownStr       = "unknown"
	opConnectStr       = "connect"
	opListUnitsStr     = "list-units"
	opUnitFileStateStr = "unit-file-state"
	opStartStr         = "start"
	opStopStr          = "stop"
	opEnableStr        = "enable"
	opDisableStr       = "disable"
)

// String returns the string representation of the operation
func (op Operation) String() string {
	switch op {
	case OpConnect:
		return opConnectStr
	case OpListUnits:
		return opListUnitsStr
	case OpUnitFileState:
		return opUnitFileStateStr
	case OpStart:
		return opStartStr
	case OpStop:
		return opStopStr
	case OpEnable:
		return opEnableStr
	case OpDisable:
		return opDisableStr
	case OpUnknown:
		fallthrough
	default:
		return opUnknownStr
	}
}

// IsControl reports whether the operation mutates manager state
func (op Operation) IsControl() bool {
	switch op {
	case OpStart, OpStop, OpEnable, OpDisable:
		return true
	default:
		return false
	}
}

// ParseOperation maps a control name such as "start" to its Operation.
// Non-control names return OpUnknown.
func ParseOperation(s string) Operation {
	switch s {
	case opStartStr:
		return OpStart
	case opStopStr:
		return OpStop
	case opEnableStr:
		return OpEnable
	case opDisableStr:
		return OpDisable
	default:
		return OpUnknown
	}
}
