package views

import (
	"github.com/timely-planner/timely-tui/internal/api"
	"github.com/timely-planner/timely-tui/internal/session"
)

// Origin identifies the mount that started a request.
type Origin struct {
	View string
	Gen  int
}

// Target implements Result.
func (o Origin) Target() Origin {
	return o
}

// Result is implemented by every message that reports a request outcome.
type Result interface {
	Target() Origin
}

type tasksLoadedMsg struct {
	Origin
	items []api.Task
	err   error
}

type taskCreatedMsg struct {
	Origin
	task *api.Task
	err  error
}

type taskDeletedMsg struct {
	Origin
	id  string
	err error
}

type signedInMsg struct {
	Origin
	result session.Result
	err    error
}
