package state

import tea "github.com/charmbracelet/bubbletea"

// Key represents a key binding.
type Key struct {
	Key  string
	Help string
}

// KeymapData contains all key bindings for the application.
type KeymapData struct {
	// Navigation
	Up       Key
	Down     Key
	Top      Key
	Bottom   Key
	HalfUp   Key
	HalfDown Key

	// Actions
	Select  Key
	Back    Key
	Quit    Key
	Help    Key
	Refresh Key

	// Task actions
	AddTask    Key
	DeleteTask Key
	CopyTask   Key
	ToggleSort Key

	// Shell
	SwitchPane Key
	Logout     Key
}

// DefaultKeymap returns the default Vim-style key bindings.
func DefaultKeymap() KeymapData {
	return KeymapData{
		// Navigation
		Up:       Key{Key: "k", Help: "up"},
		Down:     Key{Key: "j", Help: "down"},
		Top:      Key{Key: "g", Help: "top (gg)"},
		Bottom:   Key{Key: "G", Help: "bottom"},
		HalfUp:   Key{Key: "ctrl+u", Help: "half page up"},
		HalfDown: Key{Key: "ctrl+d", Help: "half page down"},

		// Actions
		Select:  Key{Key: "enter", Help: "select / expand"},
		Back:    Key{Key: "esc", Help: "back"},
		Quit:    Key{Key: "q", Help: "quit"},
		Help:    Key{Key: "?", Help: "help"},
		Refresh: Key{Key: "r", Help: "refresh"},

		// Task actions
		AddTask:    Key{Key: "a", Help: "add task"},
		DeleteTask: Key{Key: "d", Help: "delete (dd)"},
		CopyTask:   Key{Key: "y", Help: "copy (yy)"},
		ToggleSort: Key{Key: "s", Help: "sort by date/title"},

		// Shell
		SwitchPane: Key{Key: "tab", Help: "switch pane"},
		Logout:     Key{Key: "O", Help: "log out"},
	}
}

// KeyState tracks multi-key sequences (like 'gg' or 'dd' or 'yy').
type KeyState struct {
	LastKey  string
	WaitingG bool // Waiting for second 'g' in 'gg'
	WaitingD bool // Waiting for second 'd' in 'dd'
	WaitingY bool // Waiting for second 'y' in 'yy'
}

// HandleKey processes a key press and returns the action to take.
// Returns the action name and whether the key was consumed.
func (ks *KeyState) HandleKey(msg tea.KeyMsg, keymap KeymapData) (string, bool) {
	key := msg.String()

	// Handle 'gg' sequence (go to top)
	if ks.WaitingG {
		ks.WaitingG = false
		if key == keymap.Top.Key {
			return "top", true
		}
	}

	// Handle 'dd' sequence (delete)
	if ks.WaitingD {
		ks.WaitingD = false
		if key == keymap.DeleteTask.Key {
			return "delete", true
		}
	}

	// Handle 'yy' sequence (copy)
	if ks.WaitingY {
		ks.WaitingY = false
		if key == keymap.CopyTask.Key {
			return "copy", true
		}
	}

	// Check for multi-key sequence starts
	switch key {
	case keymap.Top.Key:
		ks.WaitingG = true
		ks.LastKey = key
		return "", true
	case keymap.DeleteTask.Key:
		ks.WaitingD = true
		ks.LastKey = key
		return "", true
	case keymap.CopyTask.Key:
		ks.WaitingY = true
		ks.LastKey = key
		return "", true
	}

	// Single key mappings
	switch key {
	case keymap.Up.Key, "up":
		return "up", true
	case keymap.Down.Key, "down":
		return "down", true
	case keymap.Bottom.Key, "end":
		return "bottom", true
	case "home":
		return "top", true
	case keymap.HalfUp.Key, "pgup":
		return "half_up", true
	case keymap.HalfDown.Key, "pgdown":
		return "half_down", true
	case keymap.Select.Key, " ":
		return "select", true
	case keymap.Back.Key:
		return "back", true
	case keymap.Quit.Key:
		return "quit", true
	case keymap.Help.Key:
		return "help", true
	case keymap.Refresh.Key:
		return "refresh", true
	case keymap.AddTask.Key:
		return "add", true
	case keymap.ToggleSort.Key:
		return "sort", true
	case keymap.SwitchPane.Key:
		return "switch_pane", true
	case keymap.Logout.Key:
		return "logout", true

	// View shortcuts follow the menu order.
	case "1", "2", "3", "4", "5", "6":
		return "view_" + key, true
	}

	return "", false
}

// Reset clears any pending multi-key sequences.
func (ks *KeyState) Reset() {
	ks.WaitingG = false
	ks.WaitingD = false
	ks.WaitingY = false
	ks.LastKey = ""
}

// HelpItems returns a slice of key-description pairs for the help view.
func (k KeymapData) HelpItems() [][]string {
	return [][]string{
		{"Navigation", ""},
		{k.Up.Key + "/" + k.Down.Key, "Move up/down"},
		{"gg/G", "Go to top/bottom"},
		{k.HalfUp.Key + "/" + k.HalfDown.Key, "Half page up/down"},
		{k.SwitchPane.Key, "Switch pane (menu/tasks)"},
		{"1-6", "All, Work, Home, Personal, Study, Weekly"},
		{"", ""},
		{"General", ""},
		{k.Refresh.Key, "Reload tasks"},
		{k.Logout.Key, "Log out"},
		{k.Help.Key, "Toggle help"},
		{k.Back.Key, "Close form / go back"},
		{k.Quit.Key + "/ctrl+c", "Quit"},
		{"", ""},
		{"Task Actions", ""},
		{k.AddTask.Key, "Add task (category views)"},
		{"dd", "Delete task"},
		{"yy", "Copy task title"},
		{"ctrl+s", "Save the new task"},
		{"", ""},
		{"All View", ""},
		{k.ToggleSort.Key, "Sort by date / title"},
		{k.Select.Key + "/space", "Expand or collapse group"},
		{"", ""},
		{"Login", ""},
		{"ctrl+r", "Switch login / register"},
		{"tab", "Next field"},
		{"enter", "Submit"},
	}
}
