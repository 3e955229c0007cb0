package engine

import (
	"errors"
	"fmt"
)

// ErrArgumentsMissing is returned when no source or no destination was given.
var ErrArgumentsMissing = errors.New("arguments missing: need at least one source and a destination")

// DirOverFileError reports an attempt to copy a directory onto an existing
// regular file.
type DirOverFileError struct {
	Src  string
	Dest string
}

func (e *DirOverFileError) Error() string {
	return fmt.Sprintf("cannot copy directory %s to file %s", e.Src, e.Dest)
}
