package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/bamsammich/ppcp/internal/event"
	"github.com/bamsammich/ppcp/internal/platform"
)

// DefaultBufferSize is the chunk size used when WorkerConfig.BufferSize is 0.
const DefaultBufferSize = 10_000_000

// WorkerConfig configures a CopyWorker.
type WorkerConfig struct {
	SrcFs       afero.Fs // nil selects the OS filesystem
	DstFs       afero.Fs // nil selects SrcFs
	DestDir     string   // canonical destination directory from Resolve
	BufferSize  int
	Preallocate bool
	Events      chan<- event.Event
}

// CopyWorker copies entries one at a time, in arrival order.
type CopyWorker struct {
	cfg  WorkerConfig
	buf  []byte
	made map[string]struct{} // destination dirs known to exist
}

// NewCopyWorker creates a CopyWorker with its transfer buffer allocated.
func NewCopyWorker(cfg WorkerConfig) *CopyWorker {
	if cfg.SrcFs == nil {
		cfg.SrcFs = afero.NewOsFs()
	}
	if cfg.DstFs == nil {
		cfg.DstFs = cfg.SrcFs
	}
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = DefaultBufferSize
	}
	return &CopyWorker{
		cfg:  cfg,
		buf:  make([]byte, cfg.BufferSize),
		made: make(map[string]struct{}),
	}
}

// Run copies entries until the channel closes or ctx is cancelled. A failing
// entry is reported as FileFailed and the worker moves on to the next one.
func (w *CopyWorker) Run(ctx context.Context, entries <-chan Entry) {
	for {
		select {
		case <-ctx.Done():
			return
		case e, ok := <-entries:
			if !ok {
				return
			}
			if err := w.copyEntry(ctx, e); err != nil {
				if ctx.Err() != nil {
					return
				}
				slog.Debug("copy failed", "path", e.Path, "error", err)
				w.emit(ctx, event.Event{Type: event.FileFailed, Path: e.Path, Size: e.Size, Error: err})
			}
		}
	}
}

func (w *CopyWorker) copyEntry(ctx context.Context, e Entry) error {
	dst, err := e.DestPath(w.cfg.DestDir)
	if err != nil {
		return err
	}
	if err := w.ensureDir(filepath.Dir(dst)); err != nil {
		return err
	}
	if e.Symlink {
		w.copySymlink(ctx, e, dst)
		return nil
	}
	return w.copyFile(ctx, e, dst)
}

// ensureDir creates dir once per worker. Ancestors up to the destination
// root are recorded too, since MkdirAll has made them.
func (w *CopyWorker) ensureDir(dir string) error {
	dir = filepath.Clean(dir)
	if _, ok := w.made[dir]; ok {
		return nil
	}
	if err := w.cfg.DstFs.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create dir %s: %w", dir, err)
	}
	for d := dir; ; d = filepath.Dir(d) {
		if _, ok := w.made[d]; ok {
			break
		}
		w.made[d] = struct{}{}
		if d == w.cfg.DestDir || d == filepath.Dir(d) {
			break
		}
	}
	return nil
}

// copySymlink recreates the link at dst. A failure is a diagnostic only: the
// entry is still accounted as done so totals add up.
func (w *CopyWorker) copySymlink(ctx context.Context, e Entry, dst string) {
	if err := w.link(e.Path, dst); err != nil {
		slog.Debug("symlink failed", "path", e.Path, "dst", dst, "error", err)
		w.emit(ctx, event.Event{Type: event.LinkFailed, Path: e.Path, Size: e.Size, Error: err})
	}
	w.emit(ctx, event.Event{Type: event.FileProgress, Path: e.Path, Chunk: e.Size, Done: e.Size, Size: e.Size})
	w.emit(ctx, event.Event{Type: event.FileCompleted, Path: e.Path, Size: e.Size})
}

func (w *CopyWorker) link(src, dst string) error {
	reader, ok := w.cfg.SrcFs.(afero.LinkReader)
	if !ok {
		return fmt.Errorf("readlink %s: %w", src, afero.ErrNoReadlink)
	}
	target, err := reader.ReadlinkIfPossible(src)
	if err != nil {
		return fmt.Errorf("readlink %s: %w", src, err)
	}
	linker, ok := w.cfg.DstFs.(afero.Linker)
	if !ok {
		return fmt.Errorf("symlink %s: %w", dst, afero.ErrNoSymlink)
	}
	if err := w.cfg.DstFs.Remove(dst); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("replace %s: %w", dst, err)
	}
	if err := linker.SymlinkIfPossible(target, dst); err != nil {
		return fmt.Errorf("symlink %s -> %s: %w", dst, target, err)
	}
	return nil
}

func (w *CopyWorker) copyFile(ctx context.Context, e Entry, dst string) error {
	src, err := w.cfg.SrcFs.Open(e.Path)
	if err != nil {
		return fmt.Errorf("open %s: %w", e.Path, err)
	}
	defer src.Close()

	out, err := w.cfg.DstFs.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("create %s: %w", dst, err)
	}
	closed := false
	defer func() {
		if closed {
			return
		}
		out.Close()
		if ctx.Err() != nil {
			if err := w.cfg.DstFs.Remove(dst); err != nil {
				slog.Debug("remove partial file", "path", dst, "error", err)
			}
		}
	}()

	w.setMode(out, dst, e.Mode)
	if w.cfg.Preallocate {
		w.preallocate(out, dst, e.Size)
	}

	var done int64
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		n, rerr := src.Read(w.buf)
		if n > 0 {
			if _, err := out.Write(w.buf[:n]); err != nil {
				return fmt.Errorf("write %s: %w", dst, err)
			}
			done += int64(n)
			w.emit(ctx, event.Event{Type: event.FileProgress, Path: e.Path, Chunk: int64(n), Done: done, Size: e.Size})
		}
		if errors.Is(rerr, io.EOF) {
			break
		}
		if rerr != nil {
			return fmt.Errorf("read %s: %w", e.Path, rerr)
		}
	}

	closed = true
	if err := out.Close(); err != nil {
		return fmt.Errorf("close %s: %w", dst, err)
	}
	w.emit(ctx, event.Event{Type: event.FileCompleted, Path: e.Path, Size: e.Size})
	return nil
}

func (w *CopyWorker) setMode(f afero.File, dst string, mode os.FileMode) {
	var err error
	if osf, ok := platform.OSFile(f); ok {
		err = platform.SetMode(osf, mode)
	} else {
		err = w.cfg.DstFs.Chmod(dst, mode.Perm())
	}
	if err != nil && platform.Supported(err) {
		slog.Debug("permissions not propagated", "path", dst, "error", err)
	}
}

func (w *CopyWorker) preallocate(f afero.File, dst string, size int64) {
	osf, ok := platform.OSFile(f)
	if !ok {
		return
	}
	if err := platform.Preallocate(osf, size); err != nil && platform.Supported(err) {
		slog.Debug("preallocate failed", "path", dst, "size", size, "error", err)
	}
}

func (w *CopyWorker) emit(ctx context.Context, ev event.Event) {
	emit(ctx, w.cfg.Events, ev)
}
