package state

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/timely-planner/timely-tui/internal/api"
	"github.com/timely-planner/timely-tui/internal/auth"
)

// LoginForm holds the sign-in and registration inputs.
type LoginForm struct {
	Mode     auth.Mode
	Username textinput.Model
	Email    textinput.Model
	Password textinput.Model

	focus int
}

// NewLoginForm creates an empty form in login mode.
func NewLoginForm() *LoginForm {
	username := textinput.New()
	username.Placeholder = "Username"
	username.CharLimit = 64
	username.Width = 40

	email := textinput.New()
	email.Placeholder = "you@example.com"
	email.CharLimit = 254
	email.Width = 40

	password := textinput.New()
	password.Placeholder = "Password"
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'
	password.CharLimit = 128
	password.Width = 40

	f := &LoginForm{
		Mode:     auth.ModeLogin,
		Username: username,
		Email:    email,
		Password: password,
	}
	f.focusField(0)
	return f
}

// fields returns the visible inputs in tab order.
func (f *LoginForm) fields() []*textinput.Model {
	if f.Mode == auth.ModeRegister {
		return []*textinput.Model{&f.Username, &f.Email, &f.Password}
	}
	return []*textinput.Model{&f.Email, &f.Password}
}

// Update forwards msg to the focused input and handles field navigation.
func (f *LoginForm) Update(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "tab", "down":
			f.NextField()
			return nil
		case "shift+tab", "up":
			f.PrevField()
			return nil
		}
	}

	fields := f.fields()
	var cmd tea.Cmd
	*fields[f.focus], cmd = fields[f.focus].Update(msg)
	return cmd
}

// ToggleMode switches between login and registration, keeping typed values.
func (f *LoginForm) ToggleMode() {
	f.Mode = f.Mode.Toggle()
	f.focusField(0)
}

// NextField moves focus to the next visible input.
func (f *LoginForm) NextField() {
	f.focusField((f.focus + 1) % len(f.fields()))
}

// PrevField moves focus to the previous visible input.
func (f *LoginForm) PrevField() {
	n := len(f.fields())
	f.focusField((f.focus - 1 + n) % n)
}

// IsLastField reports whether the password input is focused.
func (f *LoginForm) IsLastField() bool {
	return f.focus == len(f.fields())-1
}

// Focused returns the index of the focused input among the visible ones.
func (f *LoginForm) Focused() int {
	return f.focus
}

func (f *LoginForm) focusField(index int) {
	f.Username.Blur()
	f.Email.Blur()
	f.Password.Blur()

	f.focus = index
	f.fields()[index].Focus()
}

// Credentials returns the request body for the current mode.
func (f *LoginForm) Credentials() api.Credentials {
	creds := api.Credentials{
		Email:    f.Email.Value(),
		Password: f.Password.Value(),
	}
	if f.Mode == auth.ModeRegister {
		creds.Username = f.Username.Value()
	}
	return creds
}
