package stats

import (
	"fmt"
	"time"

	"github.com/bamsammich/ppcp/internal/event"
)

// Operation holds the running totals of one copy invocation. It is owned by
// a single goroutine (the aggregator) and is not safe for concurrent use.
type Operation struct {
	FilesDone   int64
	FilesFailed int64
	BytesDone   int64 // every byte written, including files that later failed
	BytesFailed int64 // part of BytesDone belonging to failed files
	CurrentDone int64

	FilesTotal   Tracked[int64]
	BytesTotal   Tracked[int64]
	CurrentPath  Tracked[string]
	CurrentTotal Tracked[int64]

	startTime time.Time
	now       func() time.Time
}

// NewOperation creates an Operation whose elapsed clock starts now.
func NewOperation() *Operation {
	return NewOperationWithClock(time.Now)
}

// NewOperationWithClock is NewOperation with an injectable clock.
func NewOperationWithClock(now func() time.Time) *Operation {
	return &Operation{startTime: now(), now: now}
}

// Apply folds one pipeline event into the totals.
func (o *Operation) Apply(ev event.Event) {
	switch ev.Type {
	case event.FilesDiscovered:
		o.FilesTotal.Set(o.FilesTotal.Get() + 1)

	case event.BytesDiscovered:
		// One accounting event per discovered entry carries both counts.
		o.BytesTotal.Set(o.BytesTotal.Get() + ev.Size)
		o.FilesTotal.Set(o.FilesTotal.Get() + 1)

	case event.FileProgress:
		o.CurrentPath.Set(ev.Path)
		o.CurrentTotal.Set(ev.Size)
		o.CurrentDone = ev.Done
		o.BytesDone += ev.Chunk

	case event.FileCompleted:
		o.FilesDone++

	case event.FileFailed:
		o.FilesFailed++
		if ev.Path == o.CurrentPath.Get() {
			o.BytesFailed += o.CurrentDone
			o.CurrentDone = 0
		}

	case event.LinkFailed, event.WalkFailed:
		// diagnostics only
	}
}

// Elapsed returns time since the operation started.
func (o *Operation) Elapsed() time.Duration {
	return o.now().Sub(o.startTime)
}

// Snapshot is a point-in-time copy of the counters.
type Snapshot struct {
	FilesDone   int64
	FilesFailed int64
	FilesTotal  int64
	BytesDone   int64
	BytesTotal  int64
	Elapsed     time.Duration
}

// Snapshot returns the current counters without clearing any change flags.
// Its BytesDone counts completed files only.
func (o *Operation) Snapshot() Snapshot {
	return Snapshot{
		FilesDone:   o.FilesDone,
		FilesFailed: o.FilesFailed,
		FilesTotal:  o.FilesTotal.Get(),
		BytesDone:   o.BytesDone - o.BytesFailed,
		BytesTotal:  o.BytesTotal.Get(),
		Elapsed:     o.Elapsed(),
	}
}

// AvgRate is the whole-run average throughput in bytes per second.
func (s Snapshot) AvgRate() uint64 {
	if s.BytesDone <= 0 || s.Elapsed <= 0 {
		return 0
	}
	return Rate(uint64(s.BytesDone), s.Elapsed)
}

func (s Snapshot) String() string {
	return fmt.Sprintf(
		"files=%d/%d failed=%d bytes=%d/%d",
		s.FilesDone, s.FilesTotal, s.FilesFailed, s.BytesDone, s.BytesTotal,
	)
}

// FormatBytes returns a human-readable byte count.
func FormatBytes(b int64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := int64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(b)/float64(div), "KMGTPE"[exp])
}
