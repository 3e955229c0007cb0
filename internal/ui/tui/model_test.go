package tui

import (
	"bytes"
	"sync/atomic"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bamsammich/ppcp/internal/config"
	"github.com/bamsammich/ppcp/internal/ui"
)

func newTestModel() (Model, *atomic.Int32) {
	var cancels atomic.Int32
	return NewModel(func() { cancels.Add(1) }), &cancels
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(msg)
	model, ok := updated.(Model)
	require.True(t, ok)
	return model, cmd
}

func TestModel_Init(t *testing.T) {
	m, _ := newTestModel()
	assert.Nil(t, m.Init())
}

func TestModel_KeyQ_CancelsThenQuits(t *testing.T) {
	m, cancels := newTestModel()

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	assert.True(t, m.cancelling)
	assert.Nil(t, cmd)
	assert.Equal(t, int32(1), cancels.Load())
	assert.Contains(t, m.View(), "cancelling")

	_, cmd = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	assert.NotNil(t, cmd) // tea.Quit
	assert.Equal(t, int32(1), cancels.Load())
}

func TestModel_CtrlC_NilCancel(t *testing.T) {
	m := NewModel(nil)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	assert.True(t, m.cancelling)
}

func TestModel_OtherKeysIgnored(t *testing.T) {
	m, cancels := newTestModel()
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
	assert.Nil(t, cmd)
	assert.False(t, m.cancelling)
	assert.Zero(t, cancels.Load())
}

func TestModel_FrameRendered(t *testing.T) {
	m, _ := newTestModel()
	m, _ = update(t, m, frameMsg(ui.Frame{
		Label:        "/src/photos/img_0042.jpg",
		CurrentDone:  1024,
		CurrentTotal: 2048,
		FilesDone:    1204,
		FilesTotal:   5310,
		BytesDone:    1024 * 1024,
		BytesTotal:   4 * 1024 * 1024,
		Speed:        1024,
		History:      []uint64{1, 2, 3},
	}))

	view := m.View()
	assert.Contains(t, view, "ppcp")
	assert.Contains(t, view, "img_0042.jpg")
	assert.Contains(t, view, "1,204 / 5,310")
	assert.Contains(t, view, "1.0 MiB / 4.0 MiB")
	assert.Contains(t, view, "1.00 KB/s")
	assert.Contains(t, view, "cancel")
}

func TestModel_LongLabelTruncated(t *testing.T) {
	m, _ := newTestModel()
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 40, Height: 10})
	m, _ = update(t, m, frameMsg(ui.Frame{Label: "/a/really/long/path/that/keeps/going/and/going/file.bin"}))

	view := m.View()
	assert.Contains(t, view, "...")
	assert.Contains(t, view, "file.bin")
	assert.NotContains(t, view, "/a/really")
}

func TestModel_Done(t *testing.T) {
	m, _ := newTestModel()
	m, cmd := update(t, m, doneMsg{})
	assert.True(t, m.done)
	assert.NotNil(t, cmd)
	assert.Contains(t, m.View(), "done")
	assert.NotContains(t, m.View(), "cancel")
}

func TestModel_DoneWaitsForPendingLines(t *testing.T) {
	m, _ := newTestModel()

	m, cmd := update(t, m, printMsg("✗  a.txt  denied"))
	require.NotNil(t, cmd)
	assert.Equal(t, 1, m.printing)

	m, cmd = update(t, m, doneMsg{})
	assert.True(t, m.done)
	assert.Nil(t, cmd, "quit must wait for the queued line")

	m, cmd = update(t, m, printedMsg{})
	assert.Zero(t, m.printing)
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestModel_PrintedBeforeDoneDoesNotQuit(t *testing.T) {
	m, _ := newTestModel()
	m, _ = update(t, m, printMsg("line"))
	m, cmd := update(t, m, printedMsg{})
	assert.Nil(t, cmd)
	assert.False(t, m.done)
}

func TestModel_WindowSizeClampsBars(t *testing.T) {
	m, _ := newTestModel()

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 12, Height: 10})
	assert.Equal(t, minBarWidth, m.files.Width)

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 300, Height: 10})
	assert.Equal(t, maxBarWidth, m.bytes.Width)
	assert.Equal(t, 300, m.width)
}

func TestApplyTheme(t *testing.T) {
	orig := ColorRed
	t.Cleanup(func() {
		ColorRed = orig
		rebuildStyles()
	})

	red := "#ff0000"
	ApplyTheme(config.ThemeConfig{Red: &red})
	assert.Equal(t, lipgloss.Color("#ff0000"), ColorRed)
	assert.Equal(t, lipgloss.Color("#89b4fa"), ColorBlue)
}

func TestRenderer_FinishWaitsForProgram(t *testing.T) {
	var out bytes.Buffer
	r := NewRenderer(Config{Output: &out, NoInput: true})

	r.SetLabel("/src/file.txt")
	r.SetFilesLength(1)
	r.SetFiles(1)
	r.Draw()
	r.Println("✗  other.txt  denied")

	finished := make(chan struct{})
	go func() {
		r.Finish()
		close(finished)
	}()
	select {
	case <-finished:
	case <-time.After(5 * time.Second):
		t.Fatal("Finish did not return")
	}

	require.NoError(t, r.Err())
	assert.Contains(t, out.String(), "other.txt")
}

func TestRenderer_PrintlnAfterUserQuit(t *testing.T) {
	var out bytes.Buffer
	r := NewRenderer(Config{Output: &out, NoInput: true})

	// The user pressed q twice: the program is gone while events still flow.
	r.prog.Quit()
	select {
	case <-r.done:
	case <-time.After(5 * time.Second):
		t.Fatal("program did not exit")
	}

	returned := make(chan struct{})
	go func() {
		r.Println("✗  late.txt  denied")
		r.Draw()
		r.Finish()
		close(returned)
	}()
	select {
	case <-returned:
	case <-time.After(5 * time.Second):
		t.Fatal("renderer blocked after the program exited")
	}
}
