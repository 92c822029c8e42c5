package views

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"github.com/timely-planner/timely-tui/internal/api"
	"github.com/timely-planner/timely-tui/internal/session"
	"github.com/timely-planner/timely-tui/internal/tui/components"
	"github.com/timely-planner/timely-tui/internal/tui/state"
)

type memoryStore struct{ token string }

func (m *memoryStore) Load() (string, error)   { return m.token, nil }
func (m *memoryStore) Save(token string) error { m.token = token; return nil }
func (m *memoryStore) Clear() error            { m.token = ""; return nil }

// fakeClient serves canned tasks and tokens and counts requests.
type fakeClient struct {
	mu       sync.Mutex
	items    []api.Task
	newTask  *api.Task
	token    string
	err      error
	requests int
	listed   []api.Category
	created  []api.CreateTaskRequest
	deleted  []string
}

func (f *fakeClient) ListTasks(_ context.Context, c api.Category) ([]api.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests++
	f.listed = append(f.listed, c)
	return f.items, f.err
}

func (f *fakeClient) CreateTask(_ context.Context, req api.CreateTaskRequest) (*api.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests++
	f.created = append(f.created, req)
	if f.err != nil {
		return nil, f.err
	}
	return f.newTask, nil
}

func (f *fakeClient) DeleteTask(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests++
	f.deleted = append(f.deleted, id)
	return f.err
}

func (f *fakeClient) Login(context.Context, api.Credentials) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests++
	return f.token, f.err
}

func (f *fakeClient) Register(ctx context.Context, creds api.Credentials) (string, error) {
	return f.Login(ctx, creds)
}

func signedToken(t *testing.T, email string, exp time.Time) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email": email,
		"exp":   exp.Unix(),
	}).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatal(err)
	}
	return token
}

func newTestState(t *testing.T, signedIn bool) (*state.State, *fakeClient) {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)

	store := &memoryStore{}
	if signedIn {
		store.token = signedToken(t, "user@example.com", time.Now().Add(time.Hour))
	}
	sess := session.New(store, session.WithLogger(log))
	sess.Init()

	client := &fakeClient{}
	return state.New(sess, client, nil, log), client
}

// collect runs cmd and flattens batches into their messages.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var msgs []tea.Msg
		for _, c := range batch {
			msgs = append(msgs, collect(c)...)
		}
		return msgs
	}
	return []tea.Msg{msg}
}

func run(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	msgs := collect(cmd)
	if len(msgs) != 1 {
		t.Fatalf("expected one message, got %d: %#v", len(msgs), msgs)
	}
	return msgs[0]
}

func result(t *testing.T, cmd tea.Cmd) Result {
	t.Helper()
	res, ok := run(t, cmd).(Result)
	if !ok {
		t.Fatal("expected a request result")
	}
	return res
}

func failure(t *testing.T, cmd tea.Cmd) error {
	t.Helper()
	failed, ok := run(t, cmd).(components.FailedMsg)
	if !ok {
		t.Fatal("expected a failure message")
	}
	return failed.Err
}

func typeText(v ViewHandler, text string) {
	for _, r := range text {
		v.HandleInput(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func TestResolve(t *testing.T) {
	s, _ := newTestState(t, true)
	r := DefaultRegistry(s)

	tests := []struct {
		name string
		want string
	}{
		{"all", RouteAll},
		{"Work", RouteWork},
		{"Домашний", RouteHome},
		{"Учеба", RouteStudy},
		{"", RouteLogin},
		{"settings", RouteLogin},
	}
	for _, tt := range tests {
		if got := r.Resolve(tt.name).Name(); got != tt.want {
			t.Errorf("Resolve(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}

	if route, ok := r.RouteForShortcut(3); !ok || route != RouteHome {
		t.Errorf("expected shortcut 3 to be home, got %q", route)
	}
	if _, ok := r.RouteForShortcut(7); ok {
		t.Error("expected no route for shortcut 7")
	}

	items := r.MenuItems()
	if len(items) != 8 || items[6].Type != "separator" || items[7].Type != "logout" {
		t.Errorf("unexpected menu: %+v", items)
	}
}

func TestNavigateWithoutSession(t *testing.T) {
	s, client := newTestState(t, false)
	c := NewCoordinator(s)

	err := failure(t, c.Navigate(RouteWork))

	if !errors.Is(err, session.ErrAuthRequired) {
		t.Errorf("expected ErrAuthRequired, got %v", err)
	}
	if client.requests != 0 {
		t.Errorf("expected no requests, got %d", client.requests)
	}
}

func TestCoordinatorDropsStaleResults(t *testing.T) {
	s, client := newTestState(t, true)
	client.items = []api.Task{{ID: "1", Title: "Report", DueDate: "2025-01-01"}}
	c := NewCoordinator(s)

	stale := result(t, c.Navigate(RouteWork))
	c.Navigate(RouteHome)

	if cmd := c.HandleResult(stale); cmd != nil {
		t.Error("expected no command for a stale result")
	}

	// Remounting the same view is a new generation too.
	c.Navigate(RouteWork)
	c.HandleResult(stale)
	work, _ := c.Registry().GetView(RouteWork)
	if got := len(work.(*CategoryView).List().Items()); got != 0 {
		t.Errorf("stale result leaked into the view: %d items", got)
	}
	if s.CurrentView != RouteWork || c.Generation() != 3 {
		t.Errorf("unexpected coordinator state: view=%s gen=%d", s.CurrentView, c.Generation())
	}
}

func TestCategoryViewLoads(t *testing.T) {
	s, client := newTestState(t, true)
	client.items = []api.Task{
		{ID: "1", Title: "Report", DueDate: "2025-01-01"},
		{ID: "2", Title: "Review", DueDate: "2025-01-02"},
	}
	c := NewCoordinator(s)

	c.HandleResult(result(t, c.Navigate(RouteWork)))

	if got := c.Current().Title(); got != "Work · Работа" {
		t.Errorf("unexpected title %q", got)
	}
	if len(client.listed) != 1 || client.listed[0] != api.CategoryWork {
		t.Errorf("expected a list filtered by Работа, got %v", client.listed)
	}
	if c.Current().Loading() {
		t.Error("expected loading to clear")
	}
	c.HandleAction("down")
	if task := c.SelectedTask(); task == nil || task.ID != "2" {
		t.Errorf("expected second task selected, got %+v", task)
	}
}

func TestCategoryViewAddTask(t *testing.T) {
	s, client := newTestState(t, true)
	client.newTask = &api.Task{ID: "new", Title: "Buy milk", DueDate: "2025-03-01", Category: string(api.CategoryHome)}
	c := NewCoordinator(s)
	c.HandleResult(result(t, c.Navigate(RouteHome)))

	c.HandleAction("add")
	if !c.Capturing() {
		t.Fatal("expected the form to capture input")
	}
	v := c.Current()
	typeText(v, "Buy milk")
	v.HandleInput(tea.KeyMsg{Type: tea.KeyEnter})
	v.HandleInput(tea.KeyMsg{Type: tea.KeyEnter})
	typeText(v, "2025-03-01")

	msgs := collect(c.HandleResult(result(t, v.HandleInput(tea.KeyMsg{Type: tea.KeyEnter}))))

	if len(client.created) != 1 {
		t.Fatalf("expected one create request, got %d", len(client.created))
	}
	req := client.created[0]
	if req.Category != api.CategoryHome || req.UserEmail != "user@example.com" || req.Title != "Buy milk" {
		t.Errorf("unexpected request: %+v", req)
	}
	if len(msgs) != 1 || msgs[0].(components.NoticeMsg).Text != "Task added" {
		t.Errorf("expected a Task added notice, got %#v", msgs)
	}

	view := v.(*CategoryView)
	if items := view.List().Items(); len(items) != 1 || items[0].ID != "new" {
		t.Errorf("expected the created task appended, got %+v", items)
	}
	if !view.FormOpen() || !view.form.Draft().IsEmpty() {
		t.Error("expected the form to stay open with empty fields")
	}

	v.HandleInput(tea.KeyMsg{Type: tea.KeyEsc})
	if c.Capturing() {
		t.Error("esc should close the form")
	}
}

func TestCategoryViewInvalidDraft(t *testing.T) {
	s, client := newTestState(t, true)
	c := NewCoordinator(s)
	c.HandleResult(result(t, c.Navigate(RouteStudy)))
	before := client.requests

	c.HandleAction("add")
	typeText(c.Current(), "No date")
	err := failure(t, c.Current().HandleInput(tea.KeyMsg{Type: tea.KeyCtrlS}))

	var verr *api.ValidationError
	if !errors.As(err, &verr) || verr.Message != "Title and due date are required" {
		t.Errorf("expected a validation error, got %v", err)
	}
	if client.requests != before {
		t.Error("invalid draft must not reach the server")
	}
}

func TestCategoryViewDelete(t *testing.T) {
	s, client := newTestState(t, true)
	client.items = []api.Task{{ID: "1", Title: "A"}, {ID: "2", Title: "B"}}
	c := NewCoordinator(s)
	c.HandleResult(result(t, c.Navigate(RoutePersonal)))

	c.HandleAction("bottom")
	cmd := c.HandleAction("delete")
	if c.HandleAction("delete") != nil {
		t.Error("expected a second delete to be ignored while loading")
	}
	msgs := collect(c.HandleResult(result(t, cmd)))

	if len(client.deleted) != 1 || client.deleted[0] != "2" {
		t.Errorf("expected task 2 deleted, got %v", client.deleted)
	}
	if len(msgs) != 1 || msgs[0].(components.NoticeMsg).Text != "Task deleted" {
		t.Errorf("expected a Task deleted notice, got %#v", msgs)
	}
	items := c.Current().(*CategoryView).List().Items()
	if len(items) != 1 || items[0].ID != "1" {
		t.Errorf("expected only task 1 left, got %+v", items)
	}
}

func TestCategoryViewUnauthorized(t *testing.T) {
	s, client := newTestState(t, true)
	client.err = &api.APIError{StatusCode: 401, Message: "Invalid token"}
	c := NewCoordinator(s)

	err := failure(t, c.HandleResult(result(t, c.Navigate(RouteWeekly))))

	if !errors.Is(err, session.ErrSessionExpired) {
		t.Errorf("expected ErrSessionExpired, got %v", err)
	}
	if s.Session.Check().Valid() {
		t.Error("expected the session to be invalidated")
	}
}

func TestAllViewGroups(t *testing.T) {
	s, client := newTestState(t, true)
	client.items = []api.Task{
		{ID: "1", Title: "Laundry", DueDate: "2025-01-03", Category: "Домашний"},
		{ID: "2", Title: "Report", DueDate: "2025-01-02", Category: "Работа"},
		{ID: "3", Title: "Misc", DueDate: "2025-01-01"},
		{ID: "4", Title: "Budget", DueDate: "2025-01-01", Category: "Работа"},
	}
	c := NewCoordinator(s)
	c.HandleResult(result(t, c.Navigate(RouteAll)))

	if len(client.listed) != 1 || client.listed[0] != "" {
		t.Errorf("expected an unfiltered list, got %v", client.listed)
	}

	all := c.Current().(*AllView)
	rows := all.Rows()
	want := []string{"#Работа", "4", "2", "#Дом", "1", "#Без категории", "3"}
	if len(rows) != len(want) {
		t.Fatalf("expected %d rows, got %d", len(want), len(rows))
	}
	for i, row := range rows {
		got := row.Task.ID
		if row.Kind == components.RowGroup {
			got = "#" + string(row.Group)
		}
		if got != want[i] {
			t.Errorf("row %d = %s, want %s", i, got, want[i])
		}
	}

	// Collapse the first group.
	c.HandleAction("select")
	if rows := all.Rows(); len(rows) != 5 || rows[0].Expanded {
		t.Errorf("expected Работа collapsed, got %d rows", len(rows))
	}

	msgs := collect(c.HandleAction("sort"))
	if all.SortBy() != "title" || len(msgs) != 1 {
		t.Errorf("expected sort by title with a notice, got %s", all.SortBy())
	}

	c.HandleAction("select")
	if rows := all.Rows(); rows[1].Task.ID != "4" || rows[2].Task.ID != "2" {
		t.Error("expected Budget before Report when sorted by title")
	}

	if c.Capturing() {
		t.Error("the All view never captures input")
	}
}

func TestLoginViewSignIn(t *testing.T) {
	s, client := newTestState(t, false)
	client.token = signedToken(t, "new@example.com", time.Now().Add(time.Hour))
	c := NewCoordinator(s)
	c.Navigate("anything")

	if c.Current().Name() != RouteLogin || !c.Capturing() {
		t.Fatal("expected the login view to capture input")
	}
	v := c.Current()
	typeText(v, "new@example.com")
	v.HandleInput(tea.KeyMsg{Type: tea.KeyEnter})
	typeText(v, "secret")

	msgs := collect(c.HandleResult(result(t, v.HandleInput(tea.KeyMsg{Type: tea.KeyEnter}))))

	var notice, nav bool
	for _, msg := range msgs {
		switch msg := msg.(type) {
		case components.NoticeMsg:
			notice = msg.Text == "Signed in as new@example.com"
		case components.NavigateMsg:
			nav = msg.View == RouteAll
		}
	}
	if !notice || !nav {
		t.Errorf("expected a notice and navigation to all, got %#v", msgs)
	}
	if s.Session.Email() != "new@example.com" {
		t.Errorf("expected session for new@example.com, got %q", s.Session.Email())
	}
}

func TestLoginViewValidation(t *testing.T) {
	s, client := newTestState(t, false)
	c := NewCoordinator(s)
	c.Navigate(RouteLogin)

	c.Current().HandleInput(tea.KeyMsg{Type: tea.KeyEnter})
	err := failure(t, c.Current().HandleInput(tea.KeyMsg{Type: tea.KeyEnter}))

	var verr *api.ValidationError
	if !errors.As(err, &verr) {
		t.Errorf("expected a validation error, got %v", err)
	}
	if client.requests != 0 {
		t.Error("invalid credentials must not reach the server")
	}

	c.Current().HandleInput(tea.KeyMsg{Type: tea.KeyCtrlR})
	if c.Current().Title() != "Create account" {
		t.Error("ctrl+r should switch to registration")
	}
}
