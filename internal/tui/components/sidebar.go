package components

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/timely-planner/timely-tui/internal/tui/styles"
	"github.com/timely-planner/timely-tui/internal/tui/utils"
)

// SidebarModel manages the category menu.
type SidebarModel struct {
	items         []SidebarItem
	cursor        int
	width, height int
	focused       bool
	active        string // Route of the mounted view
	user          string
}

// NewSidebar creates a new SidebarModel.
func NewSidebar() *SidebarModel {
	return &SidebarModel{
		items: []SidebarItem{},
	}
}

// Init implements Component.
func (s *SidebarModel) Init() tea.Cmd {
	return nil
}

// Update implements Component.
func (s *SidebarModel) Update(msg tea.Msg) (Component, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return s.handleKeyMsg(msg)
	}
	return s, nil
}

// handleKeyMsg processes keyboard input for the sidebar.
func (s *SidebarModel) handleKeyMsg(msg tea.KeyMsg) (Component, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		s.MoveCursor(1)
	case "k", "up":
		s.MoveCursor(-1)
	case "g":
		// 'gg' is resolved by the key state; a single g jumps here.
		s.MoveToTop()
	case "G":
		s.MoveToBottom()
	case "enter", " ":
		return s, s.Select()
	}
	return s, nil
}

// Select emits the message for the item under the cursor.
func (s *SidebarModel) Select() tea.Cmd {
	item := s.CurrentItem()
	if item == nil {
		return nil
	}

	switch item.Type {
	case "logout":
		return func() tea.Msg { return LogoutRequestMsg{} }
	case "view":
		route := item.ID
		return tea.Batch(
			func() tea.Msg { return NavigateMsg{View: route} },
			func() tea.Msg { return FocusPaneMsg{Pane: PaneMain} },
		)
	}
	return nil
}

// View implements Component.
func (s *SidebarModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Timely"))
	b.WriteString("\n\n")

	// Border takes 2 lines, title block 2, footer 2.
	innerHeight := s.height - 2
	listHeight := innerHeight - 4
	if listHeight < 1 {
		listHeight = 1
	}

	// Max name length (accounting for cursor, icon, shortcut and padding)
	maxNameLen := s.width - 12

	rendered := 0
	for i, item := range s.items {
		if rendered >= listHeight {
			break
		}
		rendered++

		if item.Type == "separator" {
			sepWidth := s.width - 6
			if sepWidth < 1 {
				sepWidth = 1
			}
			b.WriteString(styles.SidebarSeparator.Render("  " + strings.Repeat("─", sepWidth)))
			b.WriteString("\n")
			continue
		}

		cursor := "  "
		style := styles.SidebarItem
		if i == s.cursor && s.focused {
			cursor = "> "
			style = styles.SidebarSelected
		} else if item.Type == "view" && item.ID == s.active {
			style = styles.SidebarActive
		}

		name := utils.TruncateString(item.Name, maxNameLen)
		shortcut := ""
		if item.Shortcut != "" {
			shortcut = styles.HelpDesc.Render(" " + item.Shortcut)
		}

		line := fmt.Sprintf("%s%s %s", cursor, item.Icon, name)
		b.WriteString(style.MaxWidth(s.width-2).Render(line) + shortcut)
		b.WriteString("\n")
	}

	if rendered < listHeight {
		b.WriteString(strings.Repeat("\n", listHeight-rendered))
	}

	b.WriteString("\n")
	if s.user != "" {
		b.WriteString(styles.HelpDesc.Render(utils.TruncateString(s.user, s.width-4)))
	}

	if innerHeight < 3 {
		innerHeight = 3
	}
	containerStyle := styles.Sidebar
	if s.focused {
		containerStyle = styles.SidebarFocused
	}

	return containerStyle.Width(s.width).Height(innerHeight).Render(b.String())
}

// SetSize implements Component.
func (s *SidebarModel) SetSize(width, height int) {
	s.width = width
	s.height = height
}

// Focus sets the sidebar as focused.
func (s *SidebarModel) Focus() {
	s.focused = true
}

// Blur removes focus from the sidebar.
func (s *SidebarModel) Blur() {
	s.focused = false
}

// Focused returns whether the sidebar is focused.
func (s *SidebarModel) Focused() bool {
	return s.focused
}

// SetItems sets the menu entries.
func (s *SidebarModel) SetItems(items []SidebarItem) {
	s.items = items
	s.cursor = 0
	s.skipSeparator(1)
}

// Items returns the menu entries.
func (s *SidebarModel) Items() []SidebarItem {
	return s.items
}

// SetActive marks route as the mounted view and moves the cursor onto it.
func (s *SidebarModel) SetActive(route string) {
	s.active = route
	for i, item := range s.items {
		if item.Type == "view" && item.ID == route {
			s.cursor = i
			return
		}
	}
}

// Active returns the route of the mounted view.
func (s *SidebarModel) Active() string {
	return s.active
}

// SetUser sets the account line shown under the menu.
func (s *SidebarModel) SetUser(email string) {
	s.user = email
}

// MoveCursor moves the cursor by delta, skipping separators.
func (s *SidebarModel) MoveCursor(delta int) {
	if len(s.items) == 0 {
		return
	}
	pos := utils.Clamp(s.cursor+delta, 0, len(s.items)-1)
	if s.items[pos].Type == "separator" {
		next := pos + delta
		if next < 0 || next >= len(s.items) {
			return
		}
		pos = next
	}
	s.cursor = pos
}

// MoveToTop moves the cursor to the first item.
func (s *SidebarModel) MoveToTop() {
	s.cursor = 0
	s.skipSeparator(1)
}

// MoveToBottom moves the cursor to the last item.
func (s *SidebarModel) MoveToBottom() {
	if len(s.items) > 0 {
		s.cursor = len(s.items) - 1
		s.skipSeparator(-1)
	}
}

func (s *SidebarModel) skipSeparator(dir int) {
	for s.cursor >= 0 && s.cursor < len(s.items) && s.items[s.cursor].Type == "separator" {
		s.cursor += dir
	}
	s.cursor = utils.Clamp(s.cursor, 0, len(s.items)-1)
}

// Cursor returns the current cursor position.
func (s *SidebarModel) Cursor() int {
	return s.cursor
}

// CurrentItem returns the item at the current cursor position.
func (s *SidebarModel) CurrentItem() *SidebarItem {
	if s.cursor >= 0 && s.cursor < len(s.items) {
		return &s.items[s.cursor]
	}
	return nil
}
