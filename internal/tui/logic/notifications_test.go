package logic

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/timely-planner/timely-tui/internal/api"
	"github.com/timely-planner/timely-tui/internal/session"
	"github.com/timely-planner/timely-tui/internal/tasks"
	"github.com/timely-planner/timely-tui/internal/tui/components"
)

func TestNoticeFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"auth required", session.ErrAuthRequired, "Please sign in"},
		{"expired", fmt.Errorf("list: %w", session.ErrSessionExpired), "Session expired. Please sign in again."},
		{"validation", &api.ValidationError{Field: "title", Message: "Title and due date are required"}, "Title and due date are required"},
		{"api error", &api.APIError{StatusCode: 400, Message: "Task already exists"}, "Task already exists"},
		{"api error without message", &api.APIError{StatusCode: 502}, "Request failed (status 502)"},
		{"connectivity", &api.ConnectivityError{Op: "list tasks", Err: errors.New("connection refused")}, "Could not reach the server. Check that it is running."},
		{"malformed", &api.MalformedResponseError{StatusCode: 500, Reason: "missing error"}, "Unexpected response from server (status 500)"},
		{"malformed without status", &api.MalformedResponseError{Reason: "bad json"}, "Unexpected response from server"},
		{"busy", tasks.ErrBusy, "Please wait for the current request to finish"},
		{"other", errors.New("boom"), "boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NoticeFor(tt.err); got != tt.want {
				t.Errorf("NoticeFor() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNoticeExpiry(t *testing.T) {
	h, _ := newTestHandler(t, true, "all")

	h.showNotice("first", components.NoticeInfo)
	first := h.Notice.ID
	h.showNotice("second", components.NoticeSuccess)

	// An older expiry must not clear a newer notice.
	h.Update(noticeExpiredMsg(first))
	if h.Notice == nil || h.Notice.Text != "second" {
		t.Fatalf("expected the second notice to remain, got %+v", h.Notice)
	}

	h.Update(noticeExpiredMsg(h.Notice.ID))
	if h.Notice != nil {
		t.Errorf("expected the notice to expire, got %+v", h.Notice)
	}
}

func TestDesktopNotifications(t *testing.T) {
	var sent []string
	orig := desktopNotify
	desktopNotify = func(title, message string) error {
		sent = append(sent, message)
		return nil
	}
	defer func() { desktopNotify = orig }()

	h, _ := newTestHandler(t, true, "all")
	h.Config.UI.DesktopNotifications = true
	h.Config.UI.NoticeDuration = time.Millisecond

	collect(h.showNotice("Task added", components.NoticeSuccess))
	collect(h.showNotice("Sorted by title", components.NoticeInfo))

	if len(sent) != 1 || sent[0] != "Task added" {
		t.Errorf("expected one desktop notification, got %v", sent)
	}
}
