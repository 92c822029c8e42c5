package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/timely-planner/timely-tui/internal/auth"
	"github.com/timely-planner/timely-tui/internal/tui/components"
	"github.com/timely-planner/timely-tui/internal/tui/state"
	"github.com/timely-planner/timely-tui/internal/tui/styles"
)

// LoginView signs in or registers. It owns the keyboard while mounted.
type LoginView struct {
	*BaseView
	form    *state.LoginForm
	loading bool
}

// NewLoginView creates the view served at RouteLogin.
func NewLoginView(s *state.State) *LoginView {
	return &LoginView{
		BaseView: NewBaseView(s, RouteLogin, "Sign in"),
		form:     state.NewLoginForm(),
	}
}

// Form returns the credentials form.
func (v *LoginView) Form() *state.LoginForm {
	return v.form
}

// Protected implements ViewHandler.
func (v *LoginView) Protected() bool {
	return false
}

// Title implements ViewHandler.
func (v *LoginView) Title() string {
	if v.form.Mode == auth.ModeRegister {
		return "Create account"
	}
	return "Sign in"
}

// OnEnter implements ViewHandler.
func (v *LoginView) OnEnter(gen int) tea.Cmd {
	v.mount(gen)
	v.form = state.NewLoginForm()
	v.loading = false
	return textinput.Blink
}

// HandleAction implements ViewHandler.
func (v *LoginView) HandleAction(string) tea.Cmd {
	return nil
}

// HandleInput implements ViewHandler.
func (v *LoginView) HandleInput(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "ctrl+r":
			if !v.loading {
				v.form.ToggleMode()
			}
			return nil
		case "enter":
			if v.form.IsLastField() {
				return v.submit()
			}
			v.form.NextField()
			return nil
		}
	}
	return v.form.Update(msg)
}

func (v *LoginView) submit() tea.Cmd {
	if v.loading {
		return nil
	}
	mode, creds := v.form.Mode, v.form.Credentials()
	if err := auth.Validate(mode, creds); err != nil {
		return Fail(err)
	}
	v.loading = true

	origin := v.origin()
	client, sess := v.State.Client, v.State.Session
	ctx, cancel := v.requestContext()
	return func() tea.Msg {
		defer cancel()
		res, err := auth.SignIn(ctx, client, sess, mode, creds)
		return signedInMsg{Origin: origin, result: res, err: err}
	}
}

// HandleResult implements ViewHandler.
func (v *LoginView) HandleResult(msg Result) tea.Cmd {
	signed, ok := msg.(signedInMsg)
	if !ok {
		return nil
	}
	v.loading = false
	if signed.err != nil {
		v.form.Password.SetValue("")
		return Fail(signed.err)
	}

	v.log.WithField("mode", v.form.Mode.String()).Info("signed in")
	v.State.SidebarComp.SetUser(signed.result.Email)
	return tea.Batch(
		Notify("Signed in as "+signed.result.Email, components.NoticeSuccess),
		Navigate(RouteAll),
	)
}

// Capturing implements ViewHandler.
func (v *LoginView) Capturing() bool {
	return true
}

// Loading reports whether a sign-in request is in flight.
func (v *LoginView) Loading() bool {
	return v.loading
}

// Render implements ViewHandler.
func (v *LoginView) Render(width, height int) string {
	f := v.form

	field := func(label string, input textinput.Model) string {
		style := styles.Input
		if input.Focused() {
			style = styles.InputFocused
		}
		return styles.InputLabel.Render(label) + "\n" + style.Render(input.View())
	}

	var b strings.Builder
	b.WriteString(styles.DialogTitle.Render("Timely · " + v.Title()))
	if v.loading {
		b.WriteString(" " + v.State.Spinner.View())
	}
	b.WriteString("\n\n")
	if f.Mode == auth.ModeRegister {
		b.WriteString(field("Username", f.Username))
		b.WriteString("\n")
	}
	b.WriteString(field("Email", f.Email))
	b.WriteString("\n")
	b.WriteString(field("Password", f.Password))
	b.WriteString("\n\n")

	toggle := "ctrl+r: create an account"
	if f.Mode == auth.ModeRegister {
		toggle = "ctrl+r: I already have an account"
	}
	b.WriteString(styles.HelpDesc.Render("tab: next field • enter: submit • " + toggle))

	return styles.Dialog.Render(b.String())
}
