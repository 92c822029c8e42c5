package views

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"github.com/timely-planner/timely-tui/internal/api"
	"github.com/timely-planner/timely-tui/internal/session"
	"github.com/timely-planner/timely-tui/internal/tui/components"
	"github.com/timely-planner/timely-tui/internal/tui/state"
)

// BaseView provides common functionality for all views.
// Views embed this struct to get shared helpers.
type BaseView struct {
	State *state.State

	name  string
	title string
	gen   int
	log   logrus.FieldLogger
}

// NewBaseView creates a new BaseView for route.
func NewBaseView(s *state.State, name, title string) *BaseView {
	return &BaseView{
		State: s,
		name:  name,
		title: title,
		log:   s.Log.WithField("view", name),
	}
}

// Name implements ViewHandler.
func (b *BaseView) Name() string {
	return b.name
}

// Title implements ViewHandler.
func (b *BaseView) Title() string {
	return b.title
}

// Protected implements ViewHandler.
func (b *BaseView) Protected() bool {
	return true
}

// OnExit implements ViewHandler.
func (b *BaseView) OnExit() {}

// HandleInput implements ViewHandler.
func (b *BaseView) HandleInput(tea.Msg) tea.Cmd {
	return nil
}

// Capturing implements ViewHandler.
func (b *BaseView) Capturing() bool {
	return false
}

// SelectedTask implements ViewHandler.
func (b *BaseView) SelectedTask() *api.Task {
	return nil
}

// mount records the generation of the current mount.
func (b *BaseView) mount(gen int) {
	b.gen = gen
	b.log.WithField("gen", gen).Debug("view mounted")
}

func (b *BaseView) origin() Origin {
	return Origin{View: b.name, Gen: b.gen}
}

// Guard re-validates the session. When it is not valid the returned
// command reports the failure, which routes to login.
func (b *BaseView) Guard() (session.Result, tea.Cmd) {
	res := b.State.Session.Check()
	if !res.Valid() {
		b.log.WithField("status", res.Status.String()).Info("session check failed")
		return res, Fail(res.Err)
	}
	return res, nil
}

// requestContext bounds a single request by the configured timeout.
func (b *BaseView) requestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), b.State.Config.API.Timeout)
}

// Fail reports err to the handler.
func Fail(err error) tea.Cmd {
	return func() tea.Msg {
		return components.FailedMsg{Err: err}
	}
}

// Notify shows a transient notice.
func Notify(text string, kind components.NoticeKind) tea.Cmd {
	return func() tea.Msg {
		return components.NoticeMsg{Text: text, Kind: kind}
	}
}

// Navigate requests a route change.
func Navigate(route string) tea.Cmd {
	return func() tea.Msg {
		return components.NavigateMsg{View: route}
	}
}
