// Package tui provides the terminal user interface for Timely.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"github.com/timely-planner/timely-tui/internal/config"
	"github.com/timely-planner/timely-tui/internal/tui/logic"
	"github.com/timely-planner/timely-tui/internal/tui/state"
	"github.com/timely-planner/timely-tui/internal/tui/ui"
)

// App is the main Bubble Tea model for the application.
type App struct {
	handler  *logic.Handler
	renderer *ui.Renderer
}

// NewApp creates a new App that mounts startView first. sessionErr is
// the error from restoring the stored session, if any.
func NewApp(sess state.Session, client state.Client, cfg *config.Config, log logrus.FieldLogger, startView string, sessionErr error) *App {
	s := state.New(sess, client, cfg, log)
	h := logic.NewHandler(s, startView, sessionErr)
	return &App{
		handler:  h,
		renderer: ui.NewRenderer(s, h.Coordinator()),
	}
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return a.handler.Init()
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	return a, a.handler.Update(msg)
}

// View implements tea.Model.
func (a *App) View() string {
	return a.renderer.View()
}
