package tasks

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/timely-planner/timely-tui/internal/api"
	"github.com/timely-planner/timely-tui/internal/session"
)

type memoryStore struct{ token string }

func (m *memoryStore) Load() (string, error)   { return m.token, nil }
func (m *memoryStore) Save(token string) error { m.token = token; return nil }
func (m *memoryStore) Clear() error            { m.token = ""; return nil }

// fakeGateway records calls and returns canned results.
type fakeGateway struct {
	listed   []api.Category
	created  []api.CreateTaskRequest
	deleted  []string
	items    []api.Task
	newTask  *api.Task
	err      error
	requests int32
}

func (f *fakeGateway) ListTasks(_ context.Context, c api.Category) ([]api.Task, error) {
	atomic.AddInt32(&f.requests, 1)
	f.listed = append(f.listed, c)
	return f.items, f.err
}

func (f *fakeGateway) CreateTask(_ context.Context, req api.CreateTaskRequest) (*api.Task, error) {
	atomic.AddInt32(&f.requests, 1)
	f.created = append(f.created, req)
	if f.err != nil {
		return nil, f.err
	}
	return f.newTask, nil
}

func (f *fakeGateway) DeleteTask(_ context.Context, id string) error {
	atomic.AddInt32(&f.requests, 1)
	f.deleted = append(f.deleted, id)
	return f.err
}

// validSession returns an initialised session whose token expires after exp.
// Advancing *now simulates the clock moving past the expiry.
func validSession(t *testing.T, exp time.Duration) (*session.Session, *memoryStore) {
	s, store, _ := sessionWithClock(t, exp)
	return s, store
}

func sessionWithClock(t *testing.T, exp time.Duration) (*session.Session, *memoryStore, *time.Time) {
	t.Helper()
	now := time.Unix(1_700_000_000, 0)
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email": "user@example.com",
		"exp":   now.Add(exp).Unix(),
	}).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatal(err)
	}
	store := &memoryStore{token: token}
	s := session.New(store, session.WithClock(func() time.Time { return now }))
	s.Init()
	return s, store, &now
}

func TestFetch(t *testing.T) {
	s, _ := validSession(t, time.Hour)
	gw := &fakeGateway{items: []api.Task{{ID: "1", Title: "A"}, {ID: "2", Title: "B"}}}
	l := NewList(gw, s, api.CategoryWork, nil)

	items, err := l.Fetch(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	l.Replace(items)

	if len(l.Items()) != 2 || l.Items()[0].ID != "1" {
		t.Errorf("expected server order, got %+v", l.Items())
	}
	if len(gw.listed) != 1 || gw.listed[0] != api.CategoryWork {
		t.Errorf("expected one list call filtered by category, got %v", gw.listed)
	}
}

func TestFetchRequiresSession(t *testing.T) {
	tests := []struct {
		name    string
		advance time.Duration
		clear   bool
		wantErr error
	}{
		{name: "missing token", clear: true, wantErr: session.ErrAuthRequired},
		{name: "expired token", advance: 2 * time.Hour, wantErr: session.ErrSessionExpired},
		{name: "expires exactly now", advance: time.Hour, wantErr: session.ErrSessionExpired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, store, now := sessionWithClock(t, time.Hour)
			if tt.clear {
				s.Invalidate("test")
			}
			*now = now.Add(tt.advance)
			gw := &fakeGateway{}
			l := NewList(gw, s, api.CategoryHome, nil)

			_, err := l.Fetch(context.Background())

			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
			if gw.requests != 0 {
				t.Error("no request may be made without a valid session")
			}
			if store.token != "" {
				t.Error("expected stored token to be cleared")
			}
		})
	}
}

func TestFetchServerErrorKeepsItems(t *testing.T) {
	s, _ := validSession(t, time.Hour)
	gw := &fakeGateway{err: &api.APIError{StatusCode: 500, Message: "db down"}}
	l := NewList(gw, s, "", nil)
	l.Replace([]api.Task{{ID: "old"}})

	_, err := l.Fetch(context.Background())

	apiErr, ok := api.IsAPIError(err)
	if !ok || apiErr.Message != "db down" {
		t.Fatalf("expected server message, got %v", err)
	}
	if len(l.Items()) != 1 || l.Items()[0].ID != "old" {
		t.Error("a failed fetch must leave the list unchanged")
	}
	if s.Token() == "" {
		t.Error("a 500 must not end the session")
	}
}

func TestUnauthorizedInvalidatesSession(t *testing.T) {
	ops := map[string]func(*List) error{
		"list": func(l *List) error {
			_, err := l.Fetch(context.Background())
			return err
		},
		"create": func(l *List) error {
			_, err := l.Create(context.Background(), Draft{Title: "x", DueDate: "2025-01-01"})
			return err
		},
		"delete": func(l *List) error {
			return l.Delete(context.Background(), "1")
		},
	}

	for name, op := range ops {
		t.Run(name, func(t *testing.T) {
			s, store := validSession(t, time.Hour)
			gw := &fakeGateway{err: &api.APIError{StatusCode: 401, Message: "Unauthorized"}}
			l := NewList(gw, s, api.CategoryStudy, nil)

			err := op(l)

			if !errors.Is(err, session.ErrSessionExpired) {
				t.Errorf("expected session expiry, got %v", err)
			}
			if store.token != "" || s.Token() != "" {
				t.Error("expected token to be cleared after 401")
			}
		})
	}
}

func TestCreate(t *testing.T) {
	s, _ := validSession(t, time.Hour)
	created := &api.Task{ID: "new", Title: "Buy milk", DueDate: "2025-01-01", Category: string(api.CategoryWork)}
	gw := &fakeGateway{newTask: created}
	l := NewList(gw, s, api.CategoryWork, nil)
	l.Replace([]api.Task{{ID: "a"}, {ID: "b"}})

	task, err := l.Create(context.Background(), Draft{Title: "Buy milk", DueDate: "2025-01-01", Description: ""})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	l.Append(*task)

	if len(gw.created) != 1 {
		t.Fatalf("expected exactly one create call, got %d", len(gw.created))
	}
	req := gw.created[0]
	if req.Category != api.CategoryWork {
		t.Errorf("expected category fixed to the list, got %q", req.Category)
	}
	if req.UserEmail != "user@example.com" {
		t.Errorf("expected user email from the session, got %q", req.UserEmail)
	}
	if len(l.Items()) != 3 || l.Items()[2].ID != "new" {
		t.Errorf("expected list to grow by the server task, got %+v", l.Items())
	}
}

func TestCreateValidationSkipsNetwork(t *testing.T) {
	drafts := []Draft{
		{Title: "", DueDate: "2025-01-01"},
		{Title: "Buy milk", DueDate: ""},
		{Title: "   ", DueDate: "  "},
		{Title: "Buy milk", DueDate: "tomorrow"},
	}

	for _, d := range drafts {
		s, _ := validSession(t, time.Hour)
		gw := &fakeGateway{}
		l := NewList(gw, s, api.CategoryPersonal, nil)
		l.Replace([]api.Task{{ID: "a"}})

		_, err := l.Create(context.Background(), d)

		var verr *api.ValidationError
		if !errors.As(err, &verr) {
			t.Errorf("draft %+v: expected validation error, got %v", d, err)
		}
		if gw.requests != 0 {
			t.Errorf("draft %+v: validation failure must not call the server", d)
		}
		if len(l.Items()) != 1 {
			t.Errorf("draft %+v: list must be unchanged", d)
		}
	}
}

func TestDeleteAndRemoveByID(t *testing.T) {
	s, _ := validSession(t, time.Hour)
	gw := &fakeGateway{}
	l := NewList(gw, s, api.CategoryWeekly, nil)
	l.Replace([]api.Task{{ID: "a"}, {ID: "b"}, {ID: "c"}})

	if err := l.Delete(context.Background(), "b"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if removed := l.RemoveByID("b"); removed != 1 {
		t.Errorf("expected one removal, got %d", removed)
	}

	got := l.Items()
	if len(got) != 2 || got[0].ID != "a" || got[1].ID != "c" {
		t.Errorf("expected only b removed, got %+v", got)
	}
	if removed := l.RemoveByID("zzz"); removed != 0 || len(l.Items()) != 2 {
		t.Error("removing an unknown id must not change the list")
	}
}

func TestDeleteFailureKeepsItems(t *testing.T) {
	s, _ := validSession(t, time.Hour)
	gw := &fakeGateway{err: &api.ConnectivityError{Op: "DELETE /tasks/a", Err: errors.New("refused")}}
	l := NewList(gw, s, api.CategoryWork, nil)
	l.Replace([]api.Task{{ID: "a"}})

	err := l.Delete(context.Background(), "a")
	if !api.IsConnectivity(err) {
		t.Fatalf("expected connectivity error, got %v", err)
	}
	if len(l.Items()) != 1 {
		t.Error("no optimistic removal before confirmation")
	}
}

func TestBeginEnd(t *testing.T) {
	l := NewList(&fakeGateway{}, nil, api.CategoryWork, nil)

	if err := l.Begin(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !l.Loading() {
		t.Error("expected loading after Begin")
	}
	if err := l.Begin(); !errors.Is(err, ErrBusy) {
		t.Errorf("expected ErrBusy, got %v", err)
	}
	l.End()
	if l.Loading() {
		t.Error("expected not loading after End")
	}
}

// TestAgainstHTTPServer runs the whole flow against a fake API.
func TestAgainstHTTPServer(t *testing.T) {
	var posts int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"error":"db down"}`))
		case http.MethodPost:
			atomic.AddInt32(&posts, 1)
			w.Write([]byte(`{"task":{"_id":"t1","title":"Buy milk","dueDate":"2025-01-01","category":"Работа"}}`))
		}
	}))
	defer server.Close()

	s, _ := validSession(t, time.Hour)
	client := api.NewClient(server.URL, s)
	l := NewList(client, s, api.CategoryWork, nil)

	if _, err := l.Fetch(context.Background()); err == nil {
		t.Fatal("expected fetch error")
	} else if apiErr, ok := api.IsAPIError(err); !ok || apiErr.Message != "db down" {
		t.Fatalf("expected \"db down\", got %v", err)
	}
	if len(l.Items()) != 0 {
		t.Error("expected empty list after failed first load")
	}

	task, err := l.Create(context.Background(), Draft{Title: "Buy milk", DueDate: "2025-01-01"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	l.Append(*task)

	if posts != 1 || len(l.Items()) != 1 || l.Items()[0].ID != "t1" {
		t.Errorf("expected one POST and one item, got %d posts, %+v", posts, l.Items())
	}
}
