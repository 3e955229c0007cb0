package engine

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// Plan is the outcome of destination resolution: the sources to walk and the
// directory every source is copied into.
type Plan struct {
	Sources []string
	DestDir string // canonical
}

// Resolve applies the destination policy:
//
//   - dest missing: it becomes a directory and sources are copied into it;
//   - dest is a directory: sources are copied into it;
//   - dest is a regular file: only non-directory sources are allowed, and they
//     are copied into the file's parent directory.
//
// All checks run before anything is created, so a DirOverFileError leaves the
// filesystem untouched. The parent chain of dest is created if absent.
func Resolve(fs afero.Fs, sources []string, dest string) (Plan, error) {
	if len(sources) == 0 || dest == "" {
		return Plan{}, ErrArgumentsMissing
	}
	for _, src := range sources {
		if src == "" {
			return Plan{}, ErrArgumentsMissing
		}
	}

	infos := make([]os.FileInfo, len(sources))
	for i, src := range sources {
		info, err := lstat(fs, src)
		if err != nil {
			return Plan{}, fmt.Errorf("source %s: %w", src, err)
		}
		infos[i] = info
	}

	destIsFile := false
	destDir := dest
	info, err := fs.Stat(dest)
	switch {
	case err == nil && info.Mode().IsRegular():
		destIsFile = true
		destDir = filepath.Dir(dest)
	case err == nil, errors.Is(err, os.ErrNotExist):
	default:
		return Plan{}, fmt.Errorf("destination %s: %w", dest, err)
	}

	if destIsFile {
		for i, info := range infos {
			if info.IsDir() || (info.Mode()&os.ModeSymlink != 0 && isDir(fs, sources[i])) {
				return Plan{}, &DirOverFileError{Src: sources[i], Dest: dest}
			}
		}
	}

	if err := fs.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return Plan{}, fmt.Errorf("create parent of %s: %w", dest, err)
	}
	if !destIsFile {
		if err := fs.MkdirAll(destDir, 0o755); err != nil {
			return Plan{}, fmt.Errorf("create destination %s: %w", destDir, err)
		}
	}

	canonical, err := canonicalize(fs, destDir)
	if err != nil {
		return Plan{}, fmt.Errorf("resolve destination %s: %w", destDir, err)
	}
	return Plan{Sources: sources, DestDir: canonical}, nil
}

// canonicalize makes p absolute and, on the OS filesystem, resolves every
// symlink along it. Other filesystems have no links to resolve, so p only has
// to exist there.
func canonicalize(fs afero.Fs, p string) (string, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", err
	}
	if _, ok := fs.(*afero.OsFs); ok {
		return filepath.EvalSymlinks(abs)
	}
	if _, err := fs.Stat(abs); err != nil {
		return "", err
	}
	return abs, nil
}

// canonicalRoot canonicalizes a source root. A root that is itself a symlink
// to anything but a directory keeps its own name, so it is copied as a link;
// only the directories above it are resolved.
func canonicalRoot(fs afero.Fs, root string) (string, error) {
	info, err := lstat(fs, root)
	if err != nil {
		return "", err
	}
	if info.Mode()&os.ModeSymlink == 0 || isDir(fs, root) {
		return canonicalize(fs, root)
	}
	dir, err := canonicalize(fs, filepath.Dir(root))
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, filepath.Base(root)), nil
}

// isDir reports whether p exists and resolves to a directory.
func isDir(fs afero.Fs, p string) bool {
	info, err := fs.Stat(p)
	return err == nil && info.IsDir()
}

func lstat(fs afero.Fs, p string) (os.FileInfo, error) {
	if l, ok := fs.(afero.Lstater); ok {
		info, _, err := l.LstatIfPossible(p)
		return info, err
	}
	return fs.Stat(p)
}
