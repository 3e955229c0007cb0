package tui

import (
	"context"
	"io"
	"os"
	"slices"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/bamsammich/ppcp/internal/config"
	"github.com/bamsammich/ppcp/internal/ui"
)

// Config configures the TUI renderer.
type Config struct {
	Output  io.Writer // nil means stderr
	NoInput bool      // do not read keys (tests, non-interactive stdin)
	Theme   config.ThemeConfig
	Cancel  context.CancelFunc
}

// Renderer runs a Bubble Tea program and implements ui.Renderer. Frames are
// forwarded to the program with Send, so the aggregator never blocks on
// terminal output.
type Renderer struct {
	ui.FrameState
	prog *tea.Program
	done chan struct{}
	err  error
}

// NewRenderer applies the theme and starts the program.
func NewRenderer(cfg Config) *Renderer {
	ApplyTheme(cfg.Theme)

	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	opts := []tea.ProgramOption{
		tea.WithOutput(out),
		tea.WithoutSignalHandler(),
	}
	if cfg.NoInput {
		opts = append(opts, tea.WithInput(nil))
	}

	r := &Renderer{
		prog: tea.NewProgram(NewModel(cfg.Cancel), opts...),
		done: make(chan struct{}),
	}
	go func() {
		defer close(r.done)
		_, r.err = r.prog.Run()
	}()
	return r
}

func (r *Renderer) Draw() {
	f := r.Frame
	f.History = slices.Clone(f.History)
	r.prog.Send(frameMsg(f))
}

// Println prints line above the program. Send returns once the program has
// exited, so a user quit never blocks the caller.
func (r *Renderer) Println(line string) {
	r.prog.Send(printMsg(line))
}

// Finish tells the program the run is over and waits for it to restore the
// terminal.
func (r *Renderer) Finish() {
	r.prog.Send(doneMsg{})
	<-r.done
}

// Err returns the error the program exited with. Valid after Finish.
func (r *Renderer) Err() error {
	return r.err
}
