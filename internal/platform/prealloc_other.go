//go:build !linux

package platform

import "os"

// Preallocate is unavailable outside Linux.
func Preallocate(_ *os.File, _ int64) error {
	return ErrUnsupported
}
