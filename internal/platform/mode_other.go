//go:build !unix

package platform

import "os"

// SetMode is a no-op where POSIX permission bits do not exist.
func SetMode(_ *os.File, _ os.FileMode) error {
	return ErrUnsupported
}
