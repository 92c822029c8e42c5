package views

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/timely-planner/timely-tui/internal/api"
	"github.com/timely-planner/timely-tui/internal/tasks"
	"github.com/timely-planner/timely-tui/internal/tui/components"
	"github.com/timely-planner/timely-tui/internal/tui/state"
)

// AllView shows every task grouped by category. It is read-only.
type AllView struct {
	*BaseView
	list      *tasks.List
	rows      *components.TaskListModel
	sortBy    tasks.SortBy
	collapsed map[api.Category]bool
}

// NewAllView creates the view served at RouteAll.
func NewAllView(s *state.State) *AllView {
	rows := components.NewTaskList()
	rows.SetEmptyMessage("No tasks yet")
	return &AllView{
		BaseView:  NewBaseView(s, RouteAll, "All tasks"),
		list:      tasks.NewList(s.Client, s.Session, "", s.Log),
		rows:      rows,
		sortBy:    tasks.ParseSortBy(s.Config.UI.SortBy),
		collapsed: make(map[api.Category]bool),
	}
}

// SortBy returns the current ordering.
func (v *AllView) SortBy() tasks.SortBy {
	return v.sortBy
}

// Rows returns the rendered rows, group headers included.
func (v *AllView) Rows() []components.Row {
	return v.rows.Rows()
}

// OnEnter implements ViewHandler.
func (v *AllView) OnEnter(gen int) tea.Cmd {
	v.mount(gen)
	v.list.Reset()
	v.rows.Reset()
	v.sortBy = tasks.ParseSortBy(v.State.Config.UI.SortBy)
	v.collapsed = make(map[api.Category]bool)

	if _, cmd := v.Guard(); cmd != nil {
		return cmd
	}
	return v.fetch()
}

func (v *AllView) fetch() tea.Cmd {
	if err := v.list.Begin(); err != nil {
		return nil
	}
	origin, list := v.origin(), v.list
	ctx, cancel := v.requestContext()
	return func() tea.Msg {
		defer cancel()
		items, err := list.Fetch(ctx)
		return tasksLoadedMsg{Origin: origin, items: items, err: err}
	}
}

// rebuild regroups the cached tasks. Groups start expanded.
func (v *AllView) rebuild() {
	groups := tasks.GroupByCategory(v.list.Items(), v.sortBy)

	rows := make([]components.Row, 0, len(v.list.Items())+len(groups))
	for _, g := range groups {
		expanded := !v.collapsed[g.Category]
		rows = append(rows, components.Row{
			Kind:     components.RowGroup,
			Group:    g.Category,
			Count:    len(g.Tasks),
			Expanded: expanded,
		})
		if !expanded {
			continue
		}
		for _, t := range g.Tasks {
			rows = append(rows, components.Row{Kind: components.RowTask, Task: t})
		}
	}
	v.rows.SetRows(rows)
}

// HandleAction implements ViewHandler.
func (v *AllView) HandleAction(action string) tea.Cmd {
	switch action {
	case "up":
		v.rows.MoveCursor(-1)
	case "down":
		v.rows.MoveCursor(1)
	case "half_up":
		v.rows.MoveCursor(-10)
	case "half_down":
		v.rows.MoveCursor(10)
	case "top":
		v.rows.MoveToTop()
	case "bottom":
		v.rows.MoveToBottom()
	case "select":
		v.toggleGroup()
	case "sort":
		v.sortBy = v.sortBy.Toggle()
		v.rebuild()
		return Notify("Sorted by "+string(v.sortBy), components.NoticeInfo)
	case "refresh":
		if _, cmd := v.Guard(); cmd != nil {
			return cmd
		}
		return v.fetch()
	case "add", "delete":
		return Notify("Open a category to add or delete tasks", components.NoticeInfo)
	}
	return nil
}

// toggleGroup expands or collapses the group under the cursor.
func (v *AllView) toggleGroup() {
	row := v.rows.CurrentRow()
	if row == nil || row.Kind != components.RowGroup {
		return
	}
	v.collapsed[row.Group] = !v.collapsed[row.Group]
	v.rebuild()
}

// HandleResult implements ViewHandler.
func (v *AllView) HandleResult(msg Result) tea.Cmd {
	loaded, ok := msg.(tasksLoadedMsg)
	if !ok {
		return nil
	}
	v.list.End()
	if loaded.err != nil {
		return Fail(loaded.err)
	}
	v.list.Replace(loaded.items)
	v.rebuild()
	return nil
}

// Loading reports whether a request is in flight.
func (v *AllView) Loading() bool {
	return v.list.Loading()
}

// SelectedTask implements ViewHandler.
func (v *AllView) SelectedTask() *api.Task {
	return v.rows.SelectedTask()
}

// Render implements ViewHandler.
func (v *AllView) Render(width, height int) string {
	v.rows.SetTitle(v.Title() + " · by " + string(v.sortBy))
	v.rows.SetLoading(v.list.Loading(), v.State.Spinner.View())
	v.rows.SetSize(width, height)
	return v.rows.View()
}
