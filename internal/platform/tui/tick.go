// Package tui provides the Bubble Tea display surface for arena runs,
// locally and over SSH.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/overlay-arena/internal/frame"
	"github.com/vovakirdan/overlay-arena/internal/pipeline"
	"github.com/vovakirdan/overlay-arena/internal/session"
)

// FrameMsg delivers a frame from the pipeline surface.
type FrameMsg frame.Frame

// RunEndedMsg is sent once the pipeline has returned.
type RunEndedMsg struct {
	Result pipeline.Result
	Err    error
}

// waitForFrame returns a command that blocks until the next frame arrives.
// Once the run is over it yields any frame still queued, then nil.
func waitForFrame(run *session.Run) tea.Cmd {
	return func() tea.Msg {
		frames := run.Surface().Frames()
		select {
		case f := <-frames:
			return FrameMsg(f)
		case <-run.Done():
			select {
			case f := <-frames:
				return FrameMsg(f)
			default:
				return nil
			}
		}
	}
}

// waitForEnd returns a command that blocks until the run is over.
func waitForEnd(run *session.Run) tea.Cmd {
	return func() tea.Msg {
		<-run.Done()
		res, err := run.Outcome()
		return RunEndedMsg{Result: res, Err: err}
	}
}
