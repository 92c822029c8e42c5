package logic

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Init starts the spinner and mounts the start view, or login with the
// reason when the stored session could not be restored.
func (h *Handler) Init() tea.Cmd {
	if h.startErr != nil {
		return tea.Batch(
			h.Spinner.Tick,
			h.handleFailure(h.startErr),
		)
	}

	h.SidebarComp.SetUser(h.Session.Email())
	return tea.Batch(
		h.Spinner.Tick,
		h.navigate(h.start),
	)
}
