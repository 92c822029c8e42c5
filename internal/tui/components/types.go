package components

// Pane represents which pane is currently focused.
type Pane int

const (
	PaneSidebar Pane = iota
	PaneMain
)

// NoticeKind selects the status bar styling of a notice.
type NoticeKind int

const (
	NoticeInfo NoticeKind = iota
	NoticeSuccess
	NoticeError
)

// SidebarItem represents an entry of the navigation menu.
type SidebarItem struct {
	Type     string // "view", "separator", "logout"
	ID       string // Route name for views
	Name     string
	Icon     string
	Shortcut string
}

// LineInfo is one rendered row of a task list.
type LineInfo struct {
	Content   string
	TaskIndex int // -1 for non-task lines (headers, descriptions)
}
