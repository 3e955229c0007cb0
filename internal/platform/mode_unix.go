//go:build unix

package platform

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// SetMode copies POSIX permission bits onto an open file.
//
//nolint:gosec // G115: fd values are small non-negative integers
func SetMode(f *os.File, mode os.FileMode) error {
	if err := unix.Fchmod(int(f.Fd()), uint32(mode.Perm())); err != nil {
		return fmt.Errorf("fchmod %s: %w", f.Name(), err)
	}
	return nil
}
