package stats

// DefaultWindow is the number of samples the throughput window keeps.
const DefaultWindow = 100

// Window is a fixed-capacity FIFO of samples with a running sum.
// Adding to a full window evicts the oldest sample.
type Window struct {
	samples []uint64
	head    int // next write position; oldest sample once full
	n       int
	sum     uint64
}

// NewWindow creates a window holding at most size samples. A non-positive
// size selects DefaultWindow.
func NewWindow(size int) *Window {
	if size <= 0 {
		size = DefaultWindow
	}
	return &Window{samples: make([]uint64, size)}
}

// Add pushes v, evicting the oldest sample if the window is full.
func (w *Window) Add(v uint64) {
	if w.n == len(w.samples) {
		w.sum -= w.samples[w.head]
	} else {
		w.n++
	}
	w.samples[w.head] = v
	w.sum += v
	w.head = (w.head + 1) % len(w.samples)
}

// Mean returns the integer mean of the samples, or 0 for an empty window.
func (w *Window) Mean() uint64 {
	if w.n == 0 {
		return 0
	}
	return w.sum / uint64(w.n)
}

func (w *Window) Len() int    { return w.n }
func (w *Window) Cap() int    { return len(w.samples) }
func (w *Window) Sum() uint64 { return w.sum }

// Samples returns a copy of the samples, oldest first.
func (w *Window) Samples() []uint64 {
	out := make([]uint64, w.n)
	start := (w.head - w.n + len(w.samples)) % len(w.samples)
	for i := range w.n {
		out[i] = w.samples[(start+i)%len(w.samples)]
	}
	return out
}
