package svcinv

// Version is the current version of the go-svcinv library
const Version = "1.0.0"

// VersionInfo contains detailed version information
type VersionInfo struct {
	// Version is the semantic version
	Version string
	// Interface is the D-Bus interface the library speaks to
	Interface string
}

// GetVersion returns the current version information
func GetVersion() VersionInfo {
	return VersionInfo{
		Version:   Version,
		Interface: ManagerInterface,
	}
}
