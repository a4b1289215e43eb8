package svcinv

import (
	"path/filepath"
	"strings"
)

// DefaultUnitDirs are the unit directories watched when none are given
var DefaultUnitDirs = []string{
	"/etc/systemd/system",
	"/run/systemd/system",
	"/usr/lib/systemd/system",
}

// WatchEvent reports a burst of unit-file changes, or a watcher error
type WatchEvent struct {
	// Paths lists the changed files and directories, sorted
	Paths []string
	Err   error
}

// WatchCleanupFunc stops a watch and waits for it to exit. It is safe to
// call more than once.
type WatchCleanupFunc func() error

// isUnitPath reports whether a change to path can affect service state:
// service unit files, their drop-in directories and dependency links.
func isUnitPath(path string) bool {
	base := filepath.Base(path)
	switch {
	case strings.HasSuffix(base, ServiceSuffix):
		return true
	case strings.HasSuffix(base, ServiceSuffix+".d"):
		return true
	case isLinkDir(base):
		return true
	default:
		return false
	}
}

// isLinkDir reports whether base names a .wants or .requires directory
func isLinkDir(base string) bool {
	return strings.HasSuffix(base, ".wants") || strings.HasSuffix(base, ".requires")
}
