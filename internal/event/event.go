package event

import "time"

// Type identifies the kind of event.
type Type int

const (
	FilesDiscovered Type = iota + 1
	BytesDiscovered
	FileProgress
	FileCompleted
	FileFailed
	LinkFailed
	WalkFailed
)

var typeNames = [...]string{
	FilesDiscovered: "FilesDiscovered",
	BytesDiscovered: "BytesDiscovered",
	FileProgress:    "FileProgress",
	FileCompleted:   "FileCompleted",
	FileFailed:      "FileFailed",
	LinkFailed:      "LinkFailed",
	WalkFailed:      "WalkFailed",
}

func (t Type) String() string {
	if t > 0 && int(t) < len(typeNames) {
		return typeNames[t]
	}
	return "Unknown"
}

// Event is a single accounting or progress record flowing from the copy
// pipeline to the aggregator.
type Event struct {
	Type      Type
	Timestamp time.Time
	Path      string // absolute source path
	Chunk     int64  // bytes moved by this event (FileProgress)
	Done      int64  // bytes done for Path so far (FileProgress)
	Size      int64  // entry size
	Error     error
}

// Diagnostic reports whether the event carries an error that should be
// shown to the user without aborting the run.
func (e Event) Diagnostic() bool {
	switch e.Type {
	case FileFailed, LinkFailed, WalkFailed:
		return true
	default:
		return false
	}
}
