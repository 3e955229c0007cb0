// Package platform wraps the OS-specific pieces of writing a destination
// file: permission propagation and space preallocation. Both are advisory;
// callers treat failures as non-fatal.
package platform

import (
	"errors"
	"os"
)

// ErrUnsupported is returned when the running platform has no equivalent of
// the requested operation.
var ErrUnsupported = errors.New("not supported on this platform")

// Supported reports whether err signals a capability the platform lacks
// rather than a real failure.
func Supported(err error) bool {
	return !errors.Is(err, ErrUnsupported)
}

// OSFile extracts the *os.File behind f, if there is one.
func OSFile(f any) (*os.File, bool) {
	osf, ok := f.(*os.File)
	return osf, ok
}
