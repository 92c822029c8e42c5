// Package tasks implements the category task list shared by every view.
//
// A List is configured with one category (or none, for the All view) and
// exposes the guarded network operations plus the local mutations that
// apply their results. Network methods only read the list's fixed
// configuration, so they may run on a command goroutine while the UI
// goroutine owns Items, Begin and End.
package tasks

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/timely-planner/timely-tui/internal/api"
	"github.com/timely-planner/timely-tui/internal/session"
)

// ErrBusy is returned by Begin while a request is already in flight.
var ErrBusy = errors.New("a request is already in progress")

// Gateway is the remote task capability. *api.Client implements it.
type Gateway interface {
	ListTasks(ctx context.Context, category api.Category) ([]api.Task, error)
	CreateTask(ctx context.Context, req api.CreateTaskRequest) (*api.Task, error)
	DeleteTask(ctx context.Context, id string) error
}

// Session is the part of *session.Session a List needs.
type Session interface {
	Check() session.Result
	Invalidate(reason string)
}

// List is the task collection of one category view.
type List struct {
	category api.Category
	gateway  Gateway
	session  Session
	log      logrus.FieldLogger

	items   []api.Task
	loading bool
}

// NewList creates a list bound to category. An empty category lists every task.
func NewList(gateway Gateway, s Session, category api.Category, log logrus.FieldLogger) *List {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &List{
		category: category,
		gateway:  gateway,
		session:  s,
		log:      log.WithField("category", category.Label()),
	}
}

// Category returns the category the list is bound to.
func (l *List) Category() api.Category {
	return l.category
}

// Items returns the cached tasks in server order.
func (l *List) Items() []api.Task {
	return l.items
}

// Loading reports whether a request is in flight.
func (l *List) Loading() bool {
	return l.loading
}

// Begin marks a request as in flight.
func (l *List) Begin() error {
	if l.loading {
		return ErrBusy
	}
	l.loading = true
	return nil
}

// End clears the in-flight mark.
func (l *List) End() {
	l.loading = false
}

// Reset drops the cached tasks and the in-flight mark.
func (l *List) Reset() {
	l.items = nil
	l.loading = false
}

// Replace sets the cached tasks to the server response.
func (l *List) Replace(items []api.Task) {
	l.items = items
}

// Append adds a created task to the end of the list.
func (l *List) Append(task api.Task) {
	l.items = append(l.items, task)
}

// RemoveByID drops every task with the given id and returns how many were removed.
func (l *List) RemoveByID(id string) int {
	kept := l.items[:0:0]
	removed := 0
	for _, t := range l.items {
		if t.ID == id {
			removed++
			continue
		}
		kept = append(kept, t)
	}
	l.items = kept
	return removed
}

// Fetch reads the tasks of the list's category from the server.
func (l *List) Fetch(ctx context.Context) ([]api.Task, error) {
	if _, err := l.guard(); err != nil {
		return nil, err
	}

	items, err := l.gateway.ListTasks(ctx, l.category)
	if err != nil {
		return nil, l.handleErr("list", err)
	}
	l.log.WithField("count", len(items)).Debug("tasks loaded")
	return items, nil
}

// Create validates the draft locally and creates the task on the server.
// An invalid draft never reaches the network.
func (l *List) Create(ctx context.Context, d Draft) (*api.Task, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}

	res, err := l.guard()
	if err != nil {
		return nil, err
	}

	task, err := l.gateway.CreateTask(ctx, d.Request(l.category, res.Email))
	if err != nil {
		return nil, l.handleErr("create", err)
	}
	l.log.WithField("task_id", task.ID).Info("task created")
	return task, nil
}

// Delete removes the task on the server.
func (l *List) Delete(ctx context.Context, id string) error {
	if _, err := l.guard(); err != nil {
		return err
	}

	if err := l.gateway.DeleteTask(ctx, id); err != nil {
		return l.handleErr("delete", err)
	}
	l.log.WithField("task_id", id).Info("task deleted")
	return nil
}

func (l *List) guard() (session.Result, error) {
	res := l.session.Check()
	if !res.Valid() {
		return res, res.Err
	}
	return res, nil
}

// handleErr turns a 401 into a session expiry, whichever operation got it.
func (l *List) handleErr(op string, err error) error {
	if api.IsUnauthorized(err) {
		l.log.WithField("op", op).Warn("server rejected the session")
		l.session.Invalidate("unauthorized")
		return fmt.Errorf("%s: %w", op, session.ErrSessionExpired)
	}
	l.log.WithError(err).WithField("op", op).Warn("request failed")
	return err
}
