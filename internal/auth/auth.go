// Package auth handles sign-in and registration against the task API.
package auth

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	"github.com/timely-planner/timely-tui/internal/api"
	"github.com/timely-planner/timely-tui/internal/session"
)

// Mode selects between signing in and creating an account.
type Mode int

const (
	ModeLogin Mode = iota
	ModeRegister
)

// Toggle returns the other mode.
func (m Mode) Toggle() Mode {
	if m == ModeRegister {
		return ModeLogin
	}
	return ModeRegister
}

func (m Mode) String() string {
	if m == ModeRegister {
		return "register"
	}
	return "login"
}

// Authenticator exchanges credentials for a token. *api.Client implements it.
type Authenticator interface {
	Login(ctx context.Context, creds api.Credentials) (string, error)
	Register(ctx context.Context, creds api.Credentials) (string, error)
}

// Establisher persists a freshly issued token. *session.Session implements it.
type Establisher interface {
	Establish(token string) (session.Result, error)
}

// Validate checks the form before any request is made.
// Registration additionally requires a username.
func Validate(mode Mode, creds api.Credentials) error {
	email := strings.TrimSpace(creds.Email)
	if email == "" || creds.Password == "" {
		return &api.ValidationError{Field: "email", Message: "Email and password are required"}
	}
	if mode == ModeRegister && strings.TrimSpace(creds.Username) == "" {
		return &api.ValidationError{Field: "username", Message: "Username is required"}
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return &api.ValidationError{Field: "email", Message: "Enter a valid email address"}
	}
	return nil
}

// SignIn validates creds, authenticates with the server and stores the
// returned token in the session.
func SignIn(ctx context.Context, a Authenticator, s Establisher, mode Mode, creds api.Credentials) (session.Result, error) {
	if err := Validate(mode, creds); err != nil {
		return session.Result{}, err
	}

	creds.Email = strings.TrimSpace(creds.Email)
	creds.Username = strings.TrimSpace(creds.Username)

	var (
		token string
		err   error
	)
	switch mode {
	case ModeRegister:
		token, err = a.Register(ctx, creds)
	default:
		creds.Username = ""
		token, err = a.Login(ctx, creds)
	}
	if err != nil {
		return session.Result{}, err
	}

	res, err := s.Establish(token)
	if err != nil {
		return res, fmt.Errorf("failed to establish session: %w", err)
	}
	return res, nil
}
