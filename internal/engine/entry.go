package engine

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Entry is one regular file or symlink found under a source root.
type Entry struct {
	Root    string      // canonical source root the entry descends from
	Path    string      // absolute path of the entry
	Size    int64       // content size; link length for symlinks
	Mode    os.FileMode // permission bits only
	Symlink bool        // copy as a link, not by content
}

// DestPath maps e into destDir. A root that is itself a file lands directly
// in destDir under its own name; entries below a directory root keep their
// relative path beneath a directory named after the root.
func (e Entry) DestPath(destDir string) (string, error) {
	if e.Path == e.Root {
		return filepath.Join(destDir, filepath.Base(e.Path)), nil
	}
	rel, err := filepath.Rel(e.Root, e.Path)
	if err != nil {
		return "", fmt.Errorf("rel path for %s: %w", e.Path, err)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%s is outside root %s", e.Path, e.Root)
	}
	return filepath.Join(destDir, filepath.Base(e.Root), rel), nil
}
