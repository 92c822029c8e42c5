package state

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/sirupsen/logrus"
	"github.com/timely-planner/timely-tui/internal/auth"
	"github.com/timely-planner/timely-tui/internal/config"
	"github.com/timely-planner/timely-tui/internal/tasks"
	"github.com/timely-planner/timely-tui/internal/tui/components"
	"github.com/timely-planner/timely-tui/internal/tui/styles"
)

// Pane aliases the component pane type so callers need one import.
type Pane = components.Pane

const (
	PaneSidebar = components.PaneSidebar
	PaneMain    = components.PaneMain
)

// Session is the session context the views need. *session.Session implements it.
type Session interface {
	tasks.Session
	auth.Establisher
	Email() string
}

// Client is the remote API. *api.Client implements it.
type Client interface {
	tasks.Gateway
	auth.Authenticator
}

// Notice is the transient message shown in the status bar.
type Notice struct {
	ID   int
	Text string
	Kind components.NoticeKind
}

// State holds the application state.
// All fields are exported to allow access from logic, views and ui packages.
type State struct {
	// Dependencies
	Session Session
	Client  Client
	Config  *config.Config
	Log     logrus.FieldLogger

	// View state
	CurrentView string
	FocusedPane Pane
	ShowHelp    bool

	// UI state
	Width  int
	Height int
	Notice *Notice

	noticeSeq int

	// Components
	Spinner     spinner.Model
	Keymap      KeymapData
	KeyState    *KeyState
	SidebarComp *components.SidebarModel
	HelpComp    *components.HelpModel
}

// New creates the state shared by the handler, views and renderer.
func New(sess Session, client Client, cfg *config.Config, log logrus.FieldLogger) *State {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if log == nil {
		log = logrus.StandardLogger()
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Spinner

	s := &State{
		Session:     sess,
		Client:      client,
		Config:      cfg,
		Log:         log,
		FocusedPane: PaneMain,
		Spinner:     sp,
		Keymap:      DefaultKeymap(),
		KeyState:    &KeyState{},
		SidebarComp: components.NewSidebar(),
		HelpComp:    components.NewHelp(),
	}
	s.HelpComp.SetKeymap(s.Keymap.HelpItems())
	return s
}

// SetNotice replaces the current notice and returns its id.
func (s *State) SetNotice(text string, kind components.NoticeKind) int {
	s.noticeSeq++
	s.Notice = &Notice{ID: s.noticeSeq, Text: text, Kind: kind}
	return s.noticeSeq
}

// ExpireNotice clears the notice if it is still the one with id.
func (s *State) ExpireNotice(id int) {
	if s.Notice != nil && s.Notice.ID == id {
		s.Notice = nil
	}
}
