package engine

import (
	"context"

	"github.com/bamsammich/ppcp/internal/event"
)

// Dispatch sends a BytesDiscovered event for every entry read from in, then
// forwards the entry unchanged on the returned channel. The accounting event
// is always on events before the worker can see the entry.
//
// The returned channel closes once in has closed, even after ctx is
// cancelled, so a closed output means every upstream sender has returned.
func Dispatch(ctx context.Context, in <-chan Entry, events chan<- event.Event, depth int) <-chan Entry {
	if depth <= 0 {
		depth = DefaultQueueDepth
	}
	out := make(chan Entry, depth)
	go func() {
		defer close(out)
		defer drain(in)

		for {
			var (
				e  Entry
				ok bool
			)
			select {
			case e, ok = <-in:
				if !ok {
					return
				}
			case <-ctx.Done():
				return
			}

			if !emit(ctx, events, event.Event{Type: event.BytesDiscovered, Path: e.Path, Size: e.Size}) {
				return
			}
			select {
			case out <- e:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

func drain(in <-chan Entry) {
	for range in {
	}
}
