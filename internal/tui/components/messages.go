package components

// NavigateMsg requests a route change. Unknown routes resolve to login.
type NavigateMsg struct {
	View string
}

// NoticeMsg shows a transient notice in the status bar.
type NoticeMsg struct {
	Text string
	Kind NoticeKind
}

// FailedMsg reports an operation failure to be turned into a notice.
// Session errors also route to login.
type FailedMsg struct {
	Err error
}

// LogoutRequestMsg is emitted when the logout entry is chosen.
type LogoutRequestMsg struct{}

// FocusPaneMsg is emitted to request focus change between panes.
type FocusPaneMsg struct {
	Pane Pane
}

// HelpClosedMsg is emitted when the help screen is dismissed.
type HelpClosedMsg struct{}
