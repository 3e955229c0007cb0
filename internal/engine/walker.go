package engine

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/afero"

	"github.com/bamsammich/ppcp/internal/event"
)

// WalkerConfig configures a Walker.
type WalkerConfig struct {
	Fs         afero.Fs           // nil selects the OS filesystem
	Events     chan<- event.Event // receives WalkFailed diagnostics; may be nil
	QueueDepth int                // output buffer; defaults to DefaultQueueDepth
}

// Walker enumerates source trees.
type Walker struct {
	cfg WalkerConfig
}

// NewWalker creates a Walker.
func NewWalker(cfg WalkerConfig) *Walker {
	if cfg.Fs == nil {
		cfg.Fs = afero.NewOsFs()
	}
	if cfg.QueueDepth <= 0 {
		cfg.QueueDepth = DefaultQueueDepth
	}
	return &Walker{cfg: cfg}
}

// Walk enumerates roots in argument order, sending one Entry per regular file
// or symlink. Directories are descended but not emitted. The returned channel
// is closed when every root is exhausted or ctx is cancelled.
func (w *Walker) Walk(ctx context.Context, roots []string) <-chan Entry {
	out := make(chan Entry, w.cfg.QueueDepth)
	go func() {
		defer close(out)
		for _, root := range roots {
			if err := w.walkRoot(ctx, root, out); err != nil {
				return
			}
		}
	}()
	return out
}

// walkRoot returns an error only when ctx is done.
func (w *Walker) walkRoot(ctx context.Context, root string, out chan<- Entry) error {
	canon, err := canonicalRoot(w.cfg.Fs, root)
	if err != nil {
		w.report(ctx, root, fmt.Errorf("resolve root: %w", err))
		return ctx.Err()
	}

	return afero.Walk(w.cfg.Fs, canon, func(path string, info os.FileInfo, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			w.report(ctx, path, err)
			return nil
		}

		mode := info.Mode()
		symlink := mode&os.ModeSymlink != 0
		if !mode.IsRegular() && !symlink {
			return nil
		}

		entry := Entry{
			Root:    canon,
			Path:    path,
			Size:    info.Size(),
			Mode:    mode.Perm(),
			Symlink: symlink,
		}
		select {
		case out <- entry:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	})
}

func (w *Walker) report(ctx context.Context, path string, err error) {
	slog.Debug("walk: skipping node", "path", path, "error", err)
	emit(ctx, w.cfg.Events, event.Event{Type: event.WalkFailed, Path: path, Error: err})
}
