package stats

import (
	"math"
	"time"
)

const (
	nsPerSec = uint64(time.Second / time.Nanosecond)
	usPerSec = uint64(time.Second / time.Microsecond)
	msPerSec = uint64(time.Second / time.Millisecond)
)

// Rate converts n bytes moved in elapsed time into bytes per second.
//
// It uses the finest unit (ns, µs, ms, s) for which elapsed spans at least one
// unit and n scaled by that unit still fits in a uint64. When no unit applies
// the rate is unmeasurable and math.MaxUint64 is returned.
func Rate(n uint64, elapsed time.Duration) uint64 {
	switch {
	case elapsed >= time.Nanosecond && n < math.MaxUint64/nsPerSec:
		return n * nsPerSec / uint64(elapsed.Nanoseconds())
	case elapsed >= time.Microsecond && n < math.MaxUint64/usPerSec:
		return n * usPerSec / uint64(elapsed.Microseconds())
	case elapsed >= time.Millisecond && n < math.MaxUint64/msPerSec:
		return n * msPerSec / uint64(elapsed.Milliseconds())
	case elapsed >= time.Second:
		return n / uint64(elapsed/time.Second)
	default:
		return math.MaxUint64
	}
}

// Speed is a rolling throughput estimator. Each Add turns the growth of a
// cumulative byte counter since the previous Add into a rate sample.
type Speed struct {
	window *Window
	prev   uint64
	last   time.Time
	now    func() time.Time
}

// NewSpeed creates an estimator averaging over the last size samples.
// now may be nil, in which case time.Now is used.
func NewSpeed(size int, now func() time.Time) *Speed {
	if now == nil {
		now = time.Now
	}
	return &Speed{
		window: NewWindow(size),
		last:   now(),
		now:    now,
	}
}

// Add records the cumulative byte count total.
//
// An interval too short to measure is not recorded; its bytes roll into the
// next sample.
func (s *Speed) Add(total uint64) {
	var delta uint64
	if total > s.prev {
		delta = total - s.prev
	}
	now := s.now()
	r := Rate(delta, now.Sub(s.last))
	if r == math.MaxUint64 {
		return
	}
	s.window.Add(r)
	s.prev = total
	s.last = now
}

// Get returns the mean of the sampled rates in bytes per second.
func (s *Speed) Get() uint64 {
	return s.window.Mean()
}

// Samples returns the recorded rates, oldest first.
func (s *Speed) Samples() []uint64 {
	return s.window.Samples()
}
