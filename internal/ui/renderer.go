package ui

import "time"

// Renderer draws progress frames. The aggregator is its only caller, so
// implementations need no locking for the setters.
type Renderer interface {
	Tick()
	SetLabel(path string)
	ResetCurrent(total int64) // new current entry; restarts its clock
	SetCurrent(done int64)
	SetSpeed(bytesPerSec uint64)
	SetFilesLength(n int64)
	SetFiles(n int64)
	SetBytesLength(n int64)
	SetBytes(n int64)
	Draw()
	Println(line string)
	// Finish blocks until the renderer has released the terminal.
	Finish()
}

// Frame is everything a renderer displays.
type Frame struct {
	Ticks        int
	Label        string
	CurrentDone  int64
	CurrentTotal int64
	CurrentStart time.Time
	Speed        uint64
	History      []uint64 // recent speeds, oldest first
	FilesDone    int64
	FilesTotal   int64
	BytesDone    int64
	BytesTotal   int64
	Now          time.Time
}

// CurrentElapsed is the time spent on the current entry.
func (f Frame) CurrentElapsed() time.Duration {
	if f.CurrentStart.IsZero() {
		return 0
	}
	return f.Now.Sub(f.CurrentStart)
}

// CurrentETA extrapolates the remaining time for the current entry from its
// progress so far. It is 0 when there is nothing to extrapolate from.
func (f Frame) CurrentETA() time.Duration {
	if f.CurrentDone <= 0 || f.CurrentDone >= f.CurrentTotal {
		return 0
	}
	elapsed := f.CurrentElapsed()
	remaining := f.CurrentTotal - f.CurrentDone
	return time.Duration(float64(elapsed) * float64(remaining) / float64(f.CurrentDone))
}

// Fraction returns done/total clamped to [0, 1].
func Fraction(done, total int64) float64 {
	if total <= 0 {
		return 0
	}
	f := float64(done) / float64(total)
	switch {
	case f < 0:
		return 0
	case f > 1:
		return 1
	}
	return f
}

const historyLen = 20

// FrameState implements the setter half of Renderer. Renderers embed it and
// supply Draw, Println and Finish.
type FrameState struct {
	Frame Frame
	Clock func() time.Time // nil means time.Now
}

func (s *FrameState) now() time.Time {
	if s.Clock != nil {
		return s.Clock()
	}
	return time.Now()
}

func (s *FrameState) Tick() {
	s.Frame.Ticks++
	s.Frame.Now = s.now()
}

func (s *FrameState) SetLabel(path string) { s.Frame.Label = path }

func (s *FrameState) ResetCurrent(total int64) {
	s.Frame.CurrentTotal = total
	s.Frame.CurrentDone = 0
	s.Frame.CurrentStart = s.now()
}

func (s *FrameState) SetCurrent(done int64) { s.Frame.CurrentDone = done }

func (s *FrameState) SetSpeed(bytesPerSec uint64) {
	s.Frame.Speed = bytesPerSec
	s.Frame.History = append(s.Frame.History, bytesPerSec)
	if len(s.Frame.History) > historyLen {
		s.Frame.History = s.Frame.History[len(s.Frame.History)-historyLen:]
	}
}

func (s *FrameState) SetFilesLength(n int64) { s.Frame.FilesTotal = n }
func (s *FrameState) SetFiles(n int64)       { s.Frame.FilesDone = n }
func (s *FrameState) SetBytesLength(n int64) { s.Frame.BytesTotal = n }
func (s *FrameState) SetBytes(n int64)       { s.Frame.BytesDone = n }
