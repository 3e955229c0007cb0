package ui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFrameStateSetters(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1000, 0)}
	s := &FrameState{Clock: clock.now}

	s.Tick()
	s.SetLabel("/src/a")
	s.ResetCurrent(100)
	s.SetCurrent(40)
	s.SetFilesLength(5)
	s.SetFiles(2)
	s.SetBytesLength(500)
	s.SetBytes(140)

	f := s.Frame
	assert.Equal(t, 1, f.Ticks)
	assert.Equal(t, "/src/a", f.Label)
	assert.Equal(t, int64(100), f.CurrentTotal)
	assert.Equal(t, int64(40), f.CurrentDone)
	assert.Equal(t, clock.t, f.CurrentStart)
	assert.Equal(t, int64(5), f.FilesTotal)
	assert.Equal(t, int64(2), f.FilesDone)
	assert.Equal(t, int64(500), f.BytesTotal)
	assert.Equal(t, int64(140), f.BytesDone)
}

func TestFrameStateResetCurrentClearsDone(t *testing.T) {
	s := &FrameState{}
	s.ResetCurrent(10)
	s.SetCurrent(10)
	s.ResetCurrent(20)
	assert.Zero(t, s.Frame.CurrentDone)
	assert.Equal(t, int64(20), s.Frame.CurrentTotal)
}

func TestFrameStateSpeedHistoryBounded(t *testing.T) {
	s := &FrameState{}
	for i := range historyLen + 5 {
		s.SetSpeed(uint64(i))
	}
	assert.Len(t, s.Frame.History, historyLen)
	assert.Equal(t, uint64(5), s.Frame.History[0])
	assert.Equal(t, uint64(historyLen+4), s.Frame.Speed)
}

func TestFrameCurrentETA(t *testing.T) {
	start := time.Unix(1000, 0)
	f := Frame{CurrentStart: start, Now: start.Add(2 * time.Second), CurrentDone: 25, CurrentTotal: 100}
	assert.Equal(t, 2*time.Second, f.CurrentElapsed())
	assert.Equal(t, 6*time.Second, f.CurrentETA())

	f.CurrentDone = 0
	assert.Zero(t, f.CurrentETA())
	f.CurrentDone = 100
	assert.Zero(t, f.CurrentETA())
	assert.Zero(t, Frame{}.CurrentElapsed())
}

func TestFraction(t *testing.T) {
	assert.Zero(t, Fraction(5, 0))
	assert.InDelta(t, 0.5, Fraction(5, 10), 1e-9)
	assert.InDelta(t, 1.0, Fraction(15, 10), 1e-9)
	assert.Zero(t, Fraction(-1, 10))
}
