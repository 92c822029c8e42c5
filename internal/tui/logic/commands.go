package logic

import (
	"errors"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/timely-planner/timely-tui/internal/session"
	"github.com/timely-planner/timely-tui/internal/tui/components"
	"github.com/timely-planner/timely-tui/internal/tui/views"
)

var writeClipboard = clipboard.WriteAll

// handleFailure shows err and sends the user to login when the session
// is gone.
func (h *Handler) handleFailure(err error) tea.Cmd {
	h.Log.WithError(err).WithField("view", h.CurrentView).Debug("operation failed")

	cmds := []tea.Cmd{h.showNotice(NoticeFor(err), components.NoticeError)}
	if errors.Is(err, session.ErrAuthRequired) || errors.Is(err, session.ErrSessionExpired) {
		h.Session.Invalidate("session error")
		h.SidebarComp.SetUser("")
		if h.CurrentView != views.RouteLogin {
			cmds = append(cmds, h.navigate(views.RouteLogin))
		}
	}
	return tea.Batch(cmds...)
}

func (h *Handler) logout() tea.Cmd {
	h.Session.Invalidate("logout")
	h.SidebarComp.SetUser("")
	return tea.Batch(
		h.showNotice("Signed out", components.NoticeInfo),
		h.navigate(views.RouteLogin),
	)
}

// copySelected copies the selected task's title and description.
func (h *Handler) copySelected() tea.Cmd {
	task := h.coordinator.SelectedTask()
	if task == nil {
		return nil
	}

	title := task.Title
	content := task.Title
	if task.Description != "" {
		content += "\n" + task.Description
	}
	return func() tea.Msg {
		if err := writeClipboard(content); err != nil {
			return components.NoticeMsg{Text: "Failed to copy: " + err.Error(), Kind: components.NoticeError}
		}
		return components.NoticeMsg{Text: "Copied: " + title, Kind: components.NoticeSuccess}
	}
}
