package logic

import (
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gen2brain/beeep"
	"github.com/timely-planner/timely-tui/internal/api"
	"github.com/timely-planner/timely-tui/internal/session"
	"github.com/timely-planner/timely-tui/internal/tasks"
	"github.com/timely-planner/timely-tui/internal/tui/components"
)

type noticeExpiredMsg int

var desktopNotify = func(title, message string) error {
	return beeep.Notify(title, message, "")
}

// showNotice sets the status bar notice and schedules its expiry. With
// desktop notifications enabled, success and error notices are also sent
// to the OS.
func (h *Handler) showNotice(text string, kind components.NoticeKind) tea.Cmd {
	id := h.SetNotice(text, kind)

	cmds := []tea.Cmd{
		tea.Tick(h.Config.UI.NoticeDuration, func(time.Time) tea.Msg {
			return noticeExpiredMsg(id)
		}),
	}

	if h.Config.UI.DesktopNotifications && kind != components.NoticeInfo {
		log := h.Log
		cmds = append(cmds, func() tea.Msg {
			if err := desktopNotify("Timely", text); err != nil {
				log.WithError(err).Warn("failed to send desktop notification")
			}
			return nil
		})
	}

	return tea.Batch(cmds...)
}

// NoticeFor returns the user-facing text for err.
func NoticeFor(err error) string {
	var (
		validationErr *api.ValidationError
		apiErr        *api.APIError
		connErr       *api.ConnectivityError
		malformedErr  *api.MalformedResponseError
	)

	switch {
	case errors.Is(err, session.ErrSessionExpired):
		return "Session expired. Please sign in again."
	case errors.Is(err, session.ErrAuthRequired):
		return "Please sign in"
	case errors.As(err, &validationErr):
		return validationErr.Message
	case errors.As(err, &apiErr):
		if apiErr.Message == "" {
			return fmt.Sprintf("Request failed (status %d)", apiErr.StatusCode)
		}
		return apiErr.Message
	case errors.As(err, &connErr):
		return "Could not reach the server. Check that it is running."
	case errors.As(err, &malformedErr):
		if malformedErr.StatusCode == 0 {
			return "Unexpected response from server"
		}
		return fmt.Sprintf("Unexpected response from server (status %d)", malformedErr.StatusCode)
	case errors.Is(err, tasks.ErrBusy):
		return "Please wait for the current request to finish"
	default:
		return err.Error()
	}
}
