package ui

import (
	"fmt"
	"io"
	"time"
)

const plainInterval = 5 * time.Second

// plainRenderer prints diagnostics as they arrive and a progress line at
// most every plainInterval. Used when stderr is not a terminal.
type plainRenderer struct {
	FrameState
	w        io.Writer
	interval time.Duration
	last     time.Time
}

func newPlainRenderer(w io.Writer) *plainRenderer {
	return &plainRenderer{w: w, interval: plainInterval}
}

func (r *plainRenderer) Draw() {
	now := r.now()
	if !r.last.IsZero() && now.Sub(r.last) < r.interval {
		return
	}
	r.last = now
	r.printProgress()
}

func (r *plainRenderer) printProgress() {
	f := r.Frame
	if f.BytesTotal > 0 {
		fmt.Fprintf(r.w, "progress: %.0f%% %s/%s %s/%s files %s\n",
			Fraction(f.BytesDone, f.BytesTotal)*100,
			FormatBytes(f.BytesDone), FormatBytes(f.BytesTotal),
			FormatCount(f.FilesDone), FormatCount(f.FilesTotal),
			FormatRate(float64(f.Speed)),
		)
		return
	}
	fmt.Fprintf(r.w, "progress: %s copied %s/%s files\n",
		FormatBytes(f.BytesDone),
		FormatCount(f.FilesDone), FormatCount(f.FilesTotal),
	)
}

func (r *plainRenderer) Println(line string) {
	fmt.Fprintln(r.w, line)
}

func (r *plainRenderer) Finish() {}
