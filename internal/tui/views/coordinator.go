package views

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"github.com/timely-planner/timely-tui/internal/api"
	"github.com/timely-planner/timely-tui/internal/tui/state"
)

// Coordinator manages view lifecycle and delegates to the active view.
// Each Navigate starts a new mount generation; results from older
// generations are dropped.
type Coordinator struct {
	registry    *Registry
	state       *state.State
	currentView ViewHandler
	gen         int
}

// NewCoordinator creates a new view coordinator.
func NewCoordinator(s *state.State) *Coordinator {
	reg := DefaultRegistry(s)
	s.SidebarComp.SetItems(reg.MenuItems())
	return &Coordinator{
		registry: reg,
		state:    s,
	}
}

// Registry returns the registry.
func (c *Coordinator) Registry() *Registry {
	return c.registry
}

// Current returns the active view, nil before the first Navigate.
func (c *Coordinator) Current() ViewHandler {
	return c.currentView
}

// Generation returns the generation of the current mount.
func (c *Coordinator) Generation() int {
	return c.gen
}

// Navigate unmounts the active view and mounts the view for route.
// Unknown routes mount login.
func (c *Coordinator) Navigate(route string) tea.Cmd {
	view := c.registry.Resolve(route)

	if c.currentView != nil {
		c.currentView.OnExit()
	}

	c.gen++
	c.currentView = view
	c.state.CurrentView = view.Name()
	c.state.KeyState.Reset()
	if view.Protected() {
		c.state.SidebarComp.SetActive(view.Name())
	}

	c.state.Log.WithFields(logrus.Fields{
		"view": view.Name(),
		"gen":  c.gen,
	}).Debug("navigate")

	return view.OnEnter(c.gen)
}

// HandleAction delegates a key action to the current view.
func (c *Coordinator) HandleAction(action string) tea.Cmd {
	if c.currentView == nil {
		return nil
	}
	return c.currentView.HandleAction(action)
}

// HandleInput delegates raw input to the current view.
func (c *Coordinator) HandleInput(msg tea.Msg) tea.Cmd {
	if c.currentView == nil {
		return nil
	}
	return c.currentView.HandleInput(msg)
}

// HandleResult delivers msg to the view that started the request, if that
// mount is still active.
func (c *Coordinator) HandleResult(msg Result) tea.Cmd {
	target := msg.Target()
	if c.currentView == nil || target.View != c.currentView.Name() || target.Gen != c.gen {
		c.state.Log.WithFields(logrus.Fields{
			"view": target.View,
			"gen":  target.Gen,
		}).Debug("dropping result for inactive view")
		return nil
	}
	return c.currentView.HandleResult(msg)
}

// Capturing reports whether the current view owns the keyboard.
func (c *Coordinator) Capturing() bool {
	return c.currentView != nil && c.currentView.Capturing()
}

// SelectedTask returns the task under the cursor of the current view.
func (c *Coordinator) SelectedTask() *api.Task {
	if c.currentView == nil {
		return nil
	}
	return c.currentView.SelectedTask()
}
