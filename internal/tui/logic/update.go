package logic

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/timely-planner/timely-tui/internal/tui/components"
	"github.com/timely-planner/timely-tui/internal/tui/state"
	"github.com/timely-planner/timely-tui/internal/tui/views"
)

// Handler routes messages between the shell and the mounted view.
type Handler struct {
	*state.State
	coordinator *views.Coordinator
	start       string
	startErr    error
}

// NewHandler creates a handler that mounts start on Init. A non-nil
// startErr is the result of restoring the stored session; it is shown
// on Init and replaces start with login.
func NewHandler(s *state.State, start string, startErr error) *Handler {
	return &Handler{
		State:       s,
		coordinator: views.NewCoordinator(s),
		start:       start,
		startErr:    startErr,
	}
}

// Coordinator returns the view coordinator.
func (h *Handler) Coordinator() *views.Coordinator {
	return h.coordinator
}

func (h *Handler) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return h.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		return h.handleWindowSizeMsg(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		h.Spinner, cmd = h.Spinner.Update(msg)
		return cmd

	case components.NavigateMsg:
		return h.navigate(msg.View)

	case components.NoticeMsg:
		return h.showNotice(msg.Text, msg.Kind)

	case noticeExpiredMsg:
		h.ExpireNotice(int(msg))
		return nil

	case components.FailedMsg:
		return h.handleFailure(msg.Err)

	case components.LogoutRequestMsg:
		return h.logout()

	case components.FocusPaneMsg:
		h.focusPane(msg.Pane)
		return nil

	case components.HelpClosedMsg:
		h.ShowHelp = false
		return nil

	case views.Result:
		return h.coordinator.HandleResult(msg)
	}

	// Forward non-key messages (like blink) to active inputs
	if h.coordinator.Capturing() {
		return h.coordinator.HandleInput(msg)
	}
	return nil
}

func (h *Handler) handleKeyMsg(msg tea.KeyMsg) tea.Cmd {
	if msg.String() == "ctrl+c" {
		return tea.Quit
	}

	if h.ShowHelp {
		_, cmd := h.HelpComp.Update(msg)
		return cmd
	}

	// Forms own the keyboard.
	if h.coordinator.Capturing() {
		return h.coordinator.HandleInput(msg)
	}

	action, ok := h.KeyState.HandleKey(msg, h.Keymap)
	if !ok || action == "" {
		return nil
	}
	return h.handleAction(action)
}

func (h *Handler) handleAction(action string) tea.Cmd {
	switch action {
	case "quit":
		return tea.Quit
	case "help":
		h.ShowHelp = true
		return nil
	case "switch_pane":
		if h.FocusedPane == state.PaneMain {
			h.focusPane(state.PaneSidebar)
		} else {
			h.focusPane(state.PaneMain)
		}
		return nil
	case "logout":
		return h.logout()
	case "copy":
		return h.copySelected()
	}

	if n, ok := strings.CutPrefix(action, "view_"); ok {
		pos, _ := strconv.Atoi(n)
		if route, ok := h.coordinator.Registry().RouteForShortcut(pos); ok {
			h.focusPane(state.PaneMain)
			return h.navigate(route)
		}
		return nil
	}

	if h.FocusedPane == state.PaneSidebar {
		switch action {
		case "up":
			h.SidebarComp.MoveCursor(-1)
			return nil
		case "down":
			h.SidebarComp.MoveCursor(1)
			return nil
		case "top":
			h.SidebarComp.MoveToTop()
			return nil
		case "bottom":
			h.SidebarComp.MoveToBottom()
			return nil
		case "select":
			return h.SidebarComp.Select()
		case "back":
			h.focusPane(state.PaneMain)
			return nil
		}
	}

	return h.coordinator.HandleAction(action)
}

func (h *Handler) handleWindowSizeMsg(msg tea.WindowSizeMsg) tea.Cmd {
	h.Width = msg.Width
	h.Height = msg.Height
	h.HelpComp.SetSize(msg.Width, msg.Height)
	return nil
}

// navigate mounts route. Login always takes the whole screen.
func (h *Handler) navigate(route string) tea.Cmd {
	h.ShowHelp = false
	cmd := h.coordinator.Navigate(route)
	if h.CurrentView == views.RouteLogin {
		h.focusPane(state.PaneMain)
	}
	return cmd
}

func (h *Handler) focusPane(p state.Pane) {
	h.FocusedPane = p
	if p == state.PaneSidebar {
		h.SidebarComp.Focus()
	} else {
		h.SidebarComp.Blur()
	}
}
