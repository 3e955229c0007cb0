package ui

import (
	"fmt"
	"io"
	"strings"
)

// ANSI escape sequences.
const (
	ansiDim   = "\033[2m"
	ansiBold  = "\033[1m"
	ansiReset = "\033[0m"
)

const (
	sparklineWidth   = 20
	progressBarWidth = 20
	hudLines         = 4
)

// hudRenderer redraws a four-line display in place on a terminal:
//
//	⠹ /src/photos/2019/img_0042.jpg
//	  ▪▪▪▪▪▪▪▪□□□□□□□□□□□□  41%  4.1 MiB / 10.0 MiB  2s  eta 3s  12.3 MB/s
//	  files ▪▪▪▪□□□□□□□□□□□□□□□□  1,204 / 5,310
//	  bytes ▪▪▪▪▪□□□□□□□□□□□□□□□  1.2 GiB / 4.8 GiB  ▁▂▄▆█▇▆
type hudRenderer struct {
	FrameState
	w     io.Writer
	width int
	drawn bool
}

func newHUDRenderer(w io.Writer, width int) *hudRenderer {
	if width <= 0 {
		width = 80
	}
	return &hudRenderer{w: w, width: width}
}

func (r *hudRenderer) Draw() {
	var b strings.Builder
	r.clear(&b)
	f := r.Frame

	label := truncPath(f.Label, r.width-3)
	fmt.Fprintf(&b, "%s %s\n", Spinner(f.Ticks), label)

	fmt.Fprintf(&b, "  %s %3.0f%%  %s / %s  %s  eta %s  %s\n",
		ProgressBar(Fraction(f.CurrentDone, f.CurrentTotal), progressBarWidth),
		Fraction(f.CurrentDone, f.CurrentTotal)*100,
		FormatBytes(f.CurrentDone), FormatBytes(f.CurrentTotal),
		FormatDuration(f.CurrentElapsed()),
		FormatETA(f.CurrentETA()),
		FormatRate(float64(f.Speed)),
	)

	fmt.Fprintf(&b, "  %sfiles%s %s  %s / %s\n",
		ansiDim, ansiReset,
		ProgressBar(Fraction(f.FilesDone, f.FilesTotal), progressBarWidth),
		FormatCount(f.FilesDone), FormatCount(f.FilesTotal),
	)

	fmt.Fprintf(&b, "  %sbytes%s %s  %s / %s  %s\n",
		ansiDim, ansiReset,
		ProgressBar(Fraction(f.BytesDone, f.BytesTotal), progressBarWidth),
		FormatBytes(f.BytesDone), FormatBytes(f.BytesTotal),
		Sparkline(f.History, sparklineWidth),
	)

	io.WriteString(r.w, b.String())
	r.drawn = true
}

// Println prints line above the HUD and redraws it underneath.
func (r *hudRenderer) Println(line string) {
	redraw := r.drawn
	var b strings.Builder
	r.clear(&b)
	fmt.Fprintf(&b, "%s%s%s\n", ansiBold, line, ansiReset)
	io.WriteString(r.w, b.String())
	if redraw {
		r.Draw()
	}
}

// Finish leaves the last frame on screen.
func (r *hudRenderer) Finish() {
	r.drawn = false
}

// clear erases the previous frame, if any.
func (r *hudRenderer) clear(b *strings.Builder) {
	if !r.drawn {
		return
	}
	fmt.Fprintf(b, "\033[%dA\033[J", hudLines)
	r.drawn = false
}
