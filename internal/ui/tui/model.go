package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bamsammich/ppcp/internal/ui"
)

// Bubble Tea messages.
type (
	frameMsg   ui.Frame
	doneMsg    struct{}
	printMsg   string
	printedMsg struct{}
)

const (
	minBarWidth = 10
	maxBarWidth = 40
)

// Model is the root Bubble Tea model. It only displays frames pushed by the
// renderer; all accounting happens in the aggregator.
type Model struct {
	frame   ui.Frame
	current progress.Model
	files   progress.Model
	bytes   progress.Model
	width   int

	cancel     context.CancelFunc
	cancelling bool
	done       bool
	printing   int // diagnostic lines not yet handed to the terminal
}

// NewModel creates a model. cancel is invoked on the first ctrl+c or q and may
// be nil.
func NewModel(cancel context.CancelFunc) Model {
	m := Model{
		current: newBar(ColorBlue, ColorTeal),
		files:   newBar(ColorMauve, ColorBlue),
		bytes:   newBar(ColorGreen, ColorTeal),
		width:   80,
		cancel:  cancel,
	}
	m.resize(m.width)
	return m
}

func newBar(from, to lipgloss.Color) progress.Model {
	return progress.New(
		progress.WithGradient(string(from), string(to)),
		progress.WithoutPercentage(),
		progress.WithFillCharacters('▪', '□'),
	)
}

func (m *Model) resize(width int) {
	m.width = width
	bar := min(max(width/3, minBarWidth), maxBarWidth)
	m.current.Width = bar
	m.files.Width = bar
	m.bytes.Width = bar
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.resize(msg.Width)
		return m, nil

	case frameMsg:
		m.frame = ui.Frame(msg)
		return m, nil

	case printMsg:
		// printedMsg follows the line through the event loop, so quitting
		// waits until the line has been queued for output.
		m.printing++
		return m, tea.Sequence(
			tea.Println(diagnosticLine(string(msg))),
			func() tea.Msg { return printedMsg{} },
		)

	case printedMsg:
		m.printing--
		if m.done && m.printing == 0 {
			return m, tea.Quit
		}
		return m, nil

	case doneMsg:
		m.done = true
		if m.printing > 0 {
			return m, nil
		}
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		if m.cancelling {
			// Second request: stop waiting for the pipeline to drain.
			return m, tea.Quit
		}
		m.cancelling = true
		if m.cancel != nil {
			m.cancel()
		}
	}
	return m, nil
}

func (m Model) View() string {
	f := m.frame
	var b strings.Builder

	label := f.Label
	if room := m.width - 12; room > 3 {
		if r := []rune(label); len(r) > room {
			label = "..." + string(r[len(r)-room+3:])
		}
	}
	head := styleSpinner.Render(ui.Spinner(f.Ticks))
	if m.done {
		head = styleDone.Render("done")
	}
	fmt.Fprintf(&b, "  %s  %s %s\n", styleTitle.Render("ppcp"), head, stylePath.Render(label))

	fmt.Fprintf(&b, "  %s%s  %s  %s\n",
		styleRowLabel.Render("current"),
		m.current.ViewAs(ui.Fraction(f.CurrentDone, f.CurrentTotal)),
		styleNumbers.Render(fmt.Sprintf("%s / %s", ui.FormatBytes(f.CurrentDone), ui.FormatBytes(f.CurrentTotal))),
		"eta "+ui.FormatETA(f.CurrentETA()),
	)
	fmt.Fprintf(&b, "  %s%s  %s\n",
		styleRowLabel.Render("files"),
		m.files.ViewAs(ui.Fraction(f.FilesDone, f.FilesTotal)),
		styleNumbers.Render(fmt.Sprintf("%s / %s", ui.FormatCount(f.FilesDone), ui.FormatCount(f.FilesTotal))),
	)
	fmt.Fprintf(&b, "  %s%s  %s  %s %s\n",
		styleRowLabel.Render("bytes"),
		m.bytes.ViewAs(ui.Fraction(f.BytesDone, f.BytesTotal)),
		styleNumbers.Render(fmt.Sprintf("%s / %s", ui.FormatBytes(f.BytesDone), ui.FormatBytes(f.BytesTotal))),
		styleSpeed.Render(ui.FormatRate(float64(f.Speed))),
		styleSparkline.Render(ui.Sparkline(f.History, 12)),
	)

	switch {
	case m.done:
	case m.cancelling:
		b.WriteString(styleStatus.Render("  cancelling, waiting for the current file..."))
		b.WriteByte('\n')
	default:
		b.WriteString("  " + styleKeybindKey.Render("q") + " " + styleKeybindLabel.Render("cancel"))
		b.WriteByte('\n')
	}
	return b.String()
}

// diagnosticLine styles a line printed above the program.
func diagnosticLine(line string) string {
	return styleDiagnostic.Render(line)
}
