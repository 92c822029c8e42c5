package views

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/timely-planner/timely-tui/internal/api"
)

// ViewHandler defines the contract for a TUI view.
// Each route (all, work, home, ..., login) is served by one handler.
type ViewHandler interface {
	// Name returns the route the view is registered under.
	Name() string

	// Title returns the heading shown above the view.
	Title() string

	// Protected reports whether the view needs a valid session.
	Protected() bool

	// OnEnter is called when switching to this view. gen identifies the
	// mount; results carrying an older gen are dropped by the coordinator.
	OnEnter(gen int) tea.Cmd

	// OnExit is called when leaving this view.
	OnExit()

	// HandleAction processes a resolved key action (see state.KeyState).
	HandleAction(action string) tea.Cmd

	// HandleInput receives raw messages while Capturing is true.
	HandleInput(msg tea.Msg) tea.Cmd

	// HandleResult applies the outcome of a request started by this mount.
	HandleResult(msg Result) tea.Cmd

	// Capturing reports whether a text input owns the keyboard.
	Capturing() bool

	// Loading reports whether a request is in flight.
	Loading() bool

	// SelectedTask returns the task under the cursor, if any.
	SelectedTask() *api.Task

	// Render returns the view's content.
	Render(width, height int) string
}
