package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/timely-planner/timely-tui/internal/tui/components"
	"github.com/timely-planner/timely-tui/internal/tui/state"
	"github.com/timely-planner/timely-tui/internal/tui/styles"
	"github.com/timely-planner/timely-tui/internal/tui/utils"
	"github.com/timely-planner/timely-tui/internal/tui/views"
)

type Renderer struct {
	*state.State
	coordinator *views.Coordinator
}

func NewRenderer(s *state.State, c *views.Coordinator) *Renderer {
	return &Renderer{State: s, coordinator: c}
}

func (r *Renderer) View() string {
	if r.Width == 0 {
		return "Loading..."
	}

	if r.ShowHelp {
		r.HelpComp.SetSize(r.Width, r.Height)
		return r.HelpComp.View()
	}

	view := r.coordinator.Current()
	if view == nil {
		return "Loading..."
	}
	if !view.Protected() {
		return r.renderFullscreen(view)
	}
	return r.renderMainView(view)
}

// renderFullscreen centers an unprotected view (login) without the menu.
func (r *Renderer) renderFullscreen(view views.ViewHandler) string {
	bottomBar := r.renderStatusBar(view)
	contentHeight := r.Height - lipgloss.Height(bottomBar)

	content := view.Render(r.Width, contentHeight)
	content = lipgloss.Place(r.Width, contentHeight, lipgloss.Center, lipgloss.Center, content)

	return lipgloss.JoinVertical(lipgloss.Left, content, bottomBar)
}

// renderMainView renders the menu, the mounted view and the status bar.
func (r *Renderer) renderMainView(view views.ViewHandler) string {
	bottomBar := r.renderStatusBar(view)
	contentHeight := r.Height - lipgloss.Height(bottomBar)

	sidebarWidth := 24
	if r.Width < 80 {
		sidebarWidth = 18
	}
	r.SidebarComp.SetSize(sidebarWidth, contentHeight)
	sidebarPane := r.SidebarComp.View()

	containerStyle := styles.MainContent
	if r.FocusedPane == state.PaneMain {
		containerStyle = styles.MainContentFocused
	}
	// Width of the sidebar plus its border, and one space between panes.
	mainWidth := r.Width - sidebarWidth - 3
	frameW, frameH := containerStyle.GetFrameSize()
	innerWidth := utils.Clamp(mainWidth-frameW, 10, mainWidth)
	innerHeight := utils.Clamp(contentHeight-frameH, 3, contentHeight)

	content := view.Render(innerWidth, innerHeight)
	mainPane := containerStyle.
		Width(mainWidth - 2). // Border is drawn outside the width
		Height(innerHeight).
		MaxHeight(contentHeight).
		Render(content)

	sidebarPane = lipgloss.Place(sidebarWidth+2, contentHeight, lipgloss.Left, lipgloss.Top, sidebarPane)
	mainContent := lipgloss.JoinHorizontal(lipgloss.Top, sidebarPane, " ", mainPane)

	return lipgloss.JoinVertical(lipgloss.Left, mainContent, bottomBar)
}

// renderStatusBar renders the bottom status bar: the notice on the left,
// key hints on the right.
func (r *Renderer) renderStatusBar(view views.ViewHandler) string {
	left := ""
	if r.Notice != nil {
		text := strings.ReplaceAll(r.Notice.Text, "\n", " ")
		switch r.Notice.Kind {
		case components.NoticeError:
			left = styles.StatusBarError.Render(text)
		case components.NoticeSuccess:
			left = styles.StatusBarSuccess.Render(text)
		default:
			left = styles.StatusBarText.Render(text)
		}
	} else if view.Loading() {
		left = styles.StatusBarText.Render(r.Spinner.View() + " Loading...")
	}

	right := strings.Join(r.contextualHints(view), " ")

	leftWidth := lipgloss.Width(left)
	rightWidth := lipgloss.Width(right)
	padding := styles.StatusBar.GetHorizontalFrameSize()

	// Ensure left doesn't overwhelm right
	maxLeftWidth := r.Width - rightWidth - padding - 4
	if leftWidth > maxLeftWidth && maxLeftWidth > 10 {
		left = utils.TruncateString(left, maxLeftWidth)
		leftWidth = lipgloss.Width(left)
	}

	spacing := r.Width - leftWidth - rightWidth - padding
	if spacing < 0 {
		spacing = 0
	}

	return styles.StatusBar.Width(r.Width - padding).Render(left + strings.Repeat(" ", spacing) + right)
}

func (r *Renderer) contextualHints(view views.ViewHandler) []string {
	hint := func(key, desc string) string {
		return styles.StatusBarKey.Render(key) + styles.StatusBarText.Render(":"+desc)
	}

	switch {
	case view.Name() == views.RouteLogin:
		return []string{hint("enter", "submit"), hint("ctrl+r", "mode"), hint("ctrl+c", "quit")}
	case view.Capturing():
		return []string{hint("tab", "next"), hint("ctrl+s", "save"), hint("esc", "cancel")}
	case view.Name() == views.RouteAll:
		return []string{hint("enter", "expand"), hint("s", "sort"), hint("r", "refresh"), hint("?", "help")}
	default:
		return []string{hint("a", "add"), hint("dd", "delete"), hint("r", "refresh"), hint("?", "help")}
	}
}
