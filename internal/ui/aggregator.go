package ui

import (
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"github.com/bamsammich/ppcp/internal/event"
	"github.com/bamsammich/ppcp/internal/stats"
)

// DefaultRenderInterval is the minimum time between render passes.
const DefaultRenderInterval = 97 * time.Millisecond

// AggregatorConfig configures an Aggregator.
type AggregatorConfig struct {
	Renderer       Renderer
	RenderInterval time.Duration    // defaults to DefaultRenderInterval
	Window         int              // throughput samples; defaults to stats.DefaultWindow
	Now            func() time.Time // nil means time.Now
	StripPrefix    string           // removed from paths in diagnostic lines
}

// Aggregator is the single consumer of pipeline events. It owns the run's
// statistics and is the only caller of its Renderer.
type Aggregator struct {
	cfg      AggregatorConfig
	op       *stats.Operation
	speed    *stats.Speed
	throttle *rate.Limiter // one render pass per RenderInterval, on cfg.Now
}

// NewAggregator creates an Aggregator. The run clock starts now.
func NewAggregator(cfg AggregatorConfig) *Aggregator {
	if cfg.Renderer == nil {
		cfg.Renderer = &quietRenderer{}
	}
	if cfg.RenderInterval <= 0 {
		cfg.RenderInterval = DefaultRenderInterval
	}
	if cfg.Window <= 0 {
		cfg.Window = stats.DefaultWindow
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Aggregator{
		cfg:      cfg,
		op:       stats.NewOperationWithClock(cfg.Now),
		speed:    stats.NewSpeed(cfg.Window, cfg.Now),
		throttle: rate.NewLimiter(rate.Every(cfg.RenderInterval), 1),
	}
}

// Run consumes events until the channel closes, then draws a final frame and
// waits for the renderer to finish.
func (a *Aggregator) Run(events <-chan event.Event) error {
	for ev := range events {
		a.handle(ev)
	}
	a.render()
	a.cfg.Renderer.Finish()
	return nil
}

func (a *Aggregator) handle(ev event.Event) {
	a.op.Apply(ev)
	if ev.Diagnostic() {
		a.cfg.Renderer.Println(a.diagnostic(ev))
	}
	if a.throttle.AllowN(a.cfg.Now(), 1) {
		a.render()
	}
}

func (a *Aggregator) render() {
	r := a.cfg.Renderer
	op := a.op

	r.Tick()
	if op.CurrentPath.Changed() {
		r.SetLabel(op.CurrentPath.Get())
		r.ResetCurrent(op.CurrentTotal.Get())
	}
	r.SetCurrent(op.CurrentDone)

	a.speed.Add(uint64(op.BytesDone))
	r.SetSpeed(a.speed.Get())

	if op.FilesTotal.Changed() {
		r.SetFilesLength(op.FilesTotal.Get())
	}
	r.SetFiles(op.FilesDone)
	if op.BytesTotal.Changed() {
		r.SetBytesLength(op.BytesTotal.Get())
	}
	r.SetBytes(op.BytesDone)
	r.Draw()
}

func (a *Aggregator) diagnostic(ev event.Event) string {
	path := StripRoot(a.cfg.StripPrefix, ev.Path)
	switch ev.Type {
	case event.FileFailed:
		return fmt.Sprintf("✗  %s  %v", path, ev.Error)
	case event.LinkFailed:
		return fmt.Sprintf("!  %s  symlink not copied: %v", path, ev.Error)
	default:
		return fmt.Sprintf("?  %s  skipped: %v", path, ev.Error)
	}
}

// Snapshot returns the current counters.
func (a *Aggregator) Snapshot() stats.Snapshot {
	return a.op.Snapshot()
}

// Summary returns the one-line completion summary.
func (a *Aggregator) Summary() string {
	return CompletionSummary(a.op.Snapshot())
}
