package ui

import (
	"io"
	"time"

	"github.com/bamsammich/ppcp/internal/event"
	"github.com/bamsammich/ppcp/internal/stats"
)

// Presenter consumes events and displays progress.
type Presenter interface {
	// Run consumes events until the channel closes. Blocks until done.
	Run(events <-chan event.Event) error
	// Summary returns the final summary line.
	Summary() string
	// Snapshot returns the counters accumulated so far.
	Snapshot() stats.Snapshot
}

// Config configures a Presenter.
type Config struct {
	Writer         io.Writer // progress and diagnostics; normally stderr
	Width          int       // terminal columns for the HUD; 0 means 80
	StripPrefix    string    // removed from paths in diagnostic lines
	IsTTY          bool
	Quiet          bool
	NoProgress     bool
	RenderInterval time.Duration
	Window         int
	// Renderer overrides the built-in selection (used for the TUI).
	Renderer Renderer
}

// NewPresenter creates the appropriate presenter based on configuration.
//
//nolint:ireturn // factory function returns interface by design
func NewPresenter(
	cfg Config,
) Presenter {
	return NewAggregator(AggregatorConfig{
		Renderer:       NewRenderer(cfg),
		RenderInterval: cfg.RenderInterval,
		Window:         cfg.Window,
		StripPrefix:    cfg.StripPrefix,
	})
}

// NewRenderer picks the renderer for cfg: the override if set, nothing when
// quiet, periodic lines off a TTY, and the in-place HUD otherwise.
//
//nolint:ireturn // factory function returns interface by design
func NewRenderer(cfg Config) Renderer {
	switch {
	case cfg.Renderer != nil:
		return cfg.Renderer
	case cfg.Quiet:
		return &quietRenderer{}
	case !cfg.IsTTY || cfg.NoProgress:
		return newPlainRenderer(cfg.Writer)
	default:
		return newHUDRenderer(cfg.Writer, cfg.Width)
	}
}
