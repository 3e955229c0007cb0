// Package engine runs the copy pipeline: a tree walker feeds a dispatcher,
// the dispatcher feeds a single copy worker, and all three report through
// one shared event channel.
package engine

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/spf13/afero"

	"github.com/bamsammich/ppcp/internal/event"
)

// DefaultQueueDepth bounds every channel in the pipeline.
const DefaultQueueDepth = 256

// Config configures a copy run.
type Config struct {
	Sources     []string
	Dst         string
	BufferSize  int  // chunk size; defaults to DefaultBufferSize
	QueueDepth  int  // defaults to DefaultQueueDepth
	Preallocate bool // reserve destination space before writing
	Fs          afero.Fs
}

// Start resolves the destination and launches the pipeline. An error means
// nothing was copied. The returned channel carries every accounting,
// progress and diagnostic event and is closed once all stages have
// returned, which is also the case after ctx is cancelled.
func Start(ctx context.Context, cfg Config) (Plan, <-chan event.Event, error) {
	fs := cfg.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}
	depth := cfg.QueueDepth
	if depth <= 0 {
		depth = DefaultQueueDepth
	}

	plan, err := Resolve(fs, cfg.Sources, cfg.Dst)
	if err != nil {
		return Plan{}, nil, err
	}
	slog.Debug("destination resolved", "sources", plan.Sources, "dest_dir", plan.DestDir)

	events := make(chan event.Event, depth)

	walker := NewWalker(WalkerConfig{Fs: fs, Events: events, QueueDepth: depth})
	queue := Dispatch(ctx, walker.Walk(ctx, plan.Sources), events, depth)
	worker := NewCopyWorker(WorkerConfig{
		SrcFs:       fs,
		DstFs:       fs,
		DestDir:     plan.DestDir,
		BufferSize:  cfg.BufferSize,
		Preallocate: cfg.Preallocate,
		Events:      events,
	})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		worker.Run(ctx, queue)
		// queue closes only after the dispatcher and walker are done.
		for range queue {
		}
	}()
	go func() {
		wg.Wait()
		close(events)
	}()

	return plan, events, nil
}

// emit sends ev unless ctx is done first. A nil channel discards the event.
func emit(ctx context.Context, events chan<- event.Event, ev event.Event) bool {
	if events == nil {
		return true
	}
	if ev.Timestamp.IsZero() {
		ev.Timestamp = time.Now()
	}
	select {
	case events <- ev:
		return true
	case <-ctx.Done():
		return false
	}
}
