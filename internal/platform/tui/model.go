package tui

import (
	"context"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/overlay-arena/internal/core"
	"github.com/vovakirdan/overlay-arena/internal/frame"
	"github.com/vovakirdan/overlay-arena/internal/pipeline"
	"github.com/vovakirdan/overlay-arena/internal/session"
)

// ModelOptions tune a Model for its host.
type ModelOptions struct {
	// Renderer styles output for a specific terminal; nil uses the default.
	Renderer *lipgloss.Renderer

	// Clipboard enables copying the latest frame. Disabled over SSH since
	// the clipboard belongs to the server.
	Clipboard bool

	// ScreenshotDir receives saved frames. Empty disables saving.
	ScreenshotDir string

	// Width and Height are the initial terminal size, if known.
	Width, Height int
}

// Model is the Bubble Tea surface of one arena run.
type Model struct {
	run  *session.Run
	opts ModelOptions
	keys KeyMap
	help help.Model

	img    image.Image
	last   frame.Frame
	width  int
	height int

	status   string
	ended    bool
	result   pipeline.Result
	quitting bool
}

// NewModel creates a model showing run. The run must be started separately.
func NewModel(run *session.Run, opts ModelOptions) Model {
	h := help.New()
	h.Width = opts.Width
	return Model{
		run:    run,
		opts:   opts,
		keys:   DefaultKeyMap(),
		help:   h,
		width:  opts.Width,
		height: opts.Height,
	}
}

// Init starts waiting for frames and for the end of the run.
func (m Model) Init() tea.Cmd {
	return tea.Batch(waitForFrame(m.run), waitForEnd(m.run))
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil

	case FrameMsg:
		return m.handleFrame(frame.Frame(msg))

	case RunEndedMsg:
		return m.handleEnd(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Copy):
		m.status = m.copyFrame()
		return m, nil
	case key.Matches(msg, m.keys.Save):
		m.status = m.saveFrame()
		return m, nil
	}

	if m.ended {
		// Any key leaves the final screen
		m.quitting = true
		return m, tea.Quit
	}

	cmd := m.keys.Command(msg)
	if cmd == core.CommandNone {
		return m, nil
	}
	m.run.Send(cmd, msg.String())
	return m, nil
}

func (m Model) handleFrame(f frame.Frame) (tea.Model, tea.Cmd) {
	img, err := frame.Decode(f)
	if err != nil {
		m.status = fmt.Sprintf("bad frame %d: %v", f.Seq, err)
	} else {
		m.img = img
		m.last = f
	}
	return m, waitForFrame(m.run)
}

func (m Model) handleEnd(msg RunEndedMsg) (tea.Model, tea.Cmd) {
	m.ended = true
	m.result = msg.Result
	if msg.Err != nil {
		m.status = "error: " + msg.Err.Error()
		return m, nil
	}
	if msg.Result.Reason == pipeline.ReasonExit {
		m.quitting = true
		return m, tea.Quit
	}
	m.status = session.Summary(msg.Result) + " · press any key"
	return m, nil
}

func (m Model) copyFrame() string {
	if !m.opts.Clipboard {
		return "clipboard unavailable"
	}
	if len(m.last.Payload) == 0 {
		return "no frame yet"
	}
	if err := clipboard.WriteAll(m.last.Payload); err != nil {
		return "copy failed: " + err.Error()
	}
	return fmt.Sprintf("copied frame %d", m.last.Seq)
}

func (m Model) saveFrame() string {
	if m.opts.ScreenshotDir == "" {
		return "saving disabled"
	}
	if len(m.last.Payload) == 0 {
		return "no frame yet"
	}
	path, err := WriteFrame(m.opts.ScreenshotDir, m.last)
	if err != nil {
		return "save failed: " + err.Error()
	}
	return "saved " + path
}

// WriteFrame stores the decoded image file of f in dir, named after its
// sequence number and format.
func WriteFrame(dir string, f frame.Frame) (string, error) {
	raw, err := f.Bytes()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	name := fmt.Sprintf("frame_%s_%06d.%s", time.Now().Format("20060102_150405"), f.Seq, f.Format)
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		return "", err
	}
	return path, nil
}

// View renders the latest frame, the status line and the key help.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	footer := m.footer()
	rows := m.height - lipgloss.Height(footer)
	cols := m.width
	if rows < 1 || cols < 1 {
		return footer
	}

	var b strings.Builder
	if m.img == nil {
		b.WriteString(m.style().Foreground(lipgloss.Color("241")).Render("waiting for the first frame..."))
	} else {
		b.WriteString(RenderImage(m.opts.Renderer, m.img, cols, rows))
	}
	b.WriteString("\n")
	b.WriteString(footer)
	return b.String()
}

func (m Model) footer() string {
	statusStyle := m.style().Bold(true).Foreground(lipgloss.Color("229"))
	helpStyle := m.style().Foreground(lipgloss.Color("241"))

	status := m.status
	if status == "" {
		status = fmt.Sprintf("frame %d", m.last.Seq)
	}
	return statusStyle.Render(status) + "\n" + helpStyle.Render(m.help.View(m.keys))
}

func (m Model) style() lipgloss.Style {
	if m.opts.Renderer != nil {
		return m.opts.Renderer.NewStyle()
	}
	return lipgloss.NewStyle()
}

// Play runs an arena session in the current terminal until it ends or the
// player quits, then returns the run outcome.
func Play(ctx context.Context, run *session.Run, opts ModelOptions) (pipeline.Result, error) {
	run.Start(ctx)

	p := tea.NewProgram(NewModel(run, opts), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()

	// The program may exit before the run noticed
	run.Stop()
	res, runErr := run.Wait()
	if err != nil {
		return res, err
	}
	return res, runErr
}
