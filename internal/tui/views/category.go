package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/timely-planner/timely-tui/internal/api"
	"github.com/timely-planner/timely-tui/internal/tasks"
	"github.com/timely-planner/timely-tui/internal/tui/components"
	"github.com/timely-planner/timely-tui/internal/tui/state"
	"github.com/timely-planner/timely-tui/internal/tui/styles"
)

// CategoryView lists the tasks of one category and lets the user add
// and delete them.
type CategoryView struct {
	*BaseView
	category api.Category
	list     *tasks.List
	rows     *components.TaskListModel
	form     *state.TaskForm
}

// NewCategoryView creates the view served at route for category.
func NewCategoryView(s *state.State, route string, category api.Category) *CategoryView {
	rows := components.NewTaskList()
	rows.SetEmptyMessage("No tasks in " + category.Label())
	return &CategoryView{
		BaseView: NewBaseView(s, route, category.Label()+" · "+string(category)),
		category: category,
		list:     tasks.NewList(s.Client, s.Session, category, s.Log),
		rows:     rows,
	}
}

// Category returns the category the view is bound to.
func (v *CategoryView) Category() api.Category {
	return v.category
}

// List returns the task collection backing the view.
func (v *CategoryView) List() *tasks.List {
	return v.list
}

// FormOpen reports whether the new-task form is shown.
func (v *CategoryView) FormOpen() bool {
	return v.form != nil
}

// OnEnter implements ViewHandler.
func (v *CategoryView) OnEnter(gen int) tea.Cmd {
	v.mount(gen)
	v.list.Reset()
	v.rows.Reset()
	v.form = nil

	if _, cmd := v.Guard(); cmd != nil {
		return cmd
	}
	return v.fetch()
}

// OnExit implements ViewHandler.
func (v *CategoryView) OnExit() {
	v.form = nil
}

func (v *CategoryView) fetch() tea.Cmd {
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

// HandleAction implements ViewHandler.
func (v *CategoryView) HandleAction(action string) tea.Cmd {
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
	case "refresh":
		if _, cmd := v.Guard(); cmd != nil {
			return cmd
		}
		return v.fetch()
	case "add":
		if v.list.Loading() {
			return nil
		}
		v.form = state.NewTaskForm(v.category)
		return textinput.Blink
	case "delete":
		return v.deleteSelected()
	}
	return nil
}

func (v *CategoryView) deleteSelected() tea.Cmd {
	if v.list.Loading() {
		return nil
	}
	task := v.rows.SelectedTask()
	if task == nil {
		return nil
	}
	if err := v.list.Begin(); err != nil {
		return nil
	}

	origin, list, id := v.origin(), v.list, task.ID
	ctx, cancel := v.requestContext()
	return func() tea.Msg {
		defer cancel()
		err := list.Delete(ctx, id)
		return taskDeletedMsg{Origin: origin, id: id, err: err}
	}
}

// HandleInput implements ViewHandler.
func (v *CategoryView) HandleInput(msg tea.Msg) tea.Cmd {
	if v.form == nil {
		return nil
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc":
			v.form = nil
			return nil
		case "ctrl+s":
			return v.submit()
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

func (v *CategoryView) submit() tea.Cmd {
	if v.list.Loading() {
		return nil
	}
	draft := v.form.Draft()
	if err := draft.Validate(); err != nil {
		return Fail(err)
	}
	if err := v.list.Begin(); err != nil {
		return nil
	}

	origin, list := v.origin(), v.list
	ctx, cancel := v.requestContext()
	return func() tea.Msg {
		defer cancel()
		task, err := list.Create(ctx, draft)
		return taskCreatedMsg{Origin: origin, task: task, err: err}
	}
}

// HandleResult implements ViewHandler.
func (v *CategoryView) HandleResult(msg Result) tea.Cmd {
	switch msg := msg.(type) {
	case tasksLoadedMsg:
		v.list.End()
		if msg.err != nil {
			return Fail(msg.err)
		}
		v.list.Replace(msg.items)
		v.rows.SetTasks(v.list.Items())

	case taskCreatedMsg:
		v.list.End()
		if msg.err != nil {
			return Fail(msg.err)
		}
		v.list.Append(*msg.task)
		v.rows.SetTasks(v.list.Items())
		v.rows.MoveToBottom()
		if v.form != nil {
			v.form.Reset()
		}
		return Notify("Task added", components.NoticeSuccess)

	case taskDeletedMsg:
		v.list.End()
		if msg.err != nil {
			return Fail(msg.err)
		}
		v.list.RemoveByID(msg.id)
		v.rows.SetTasks(v.list.Items())
		return Notify("Task deleted", components.NoticeSuccess)
	}
	return nil
}

// Capturing implements ViewHandler.
func (v *CategoryView) Capturing() bool {
	return v.form != nil
}

// Loading reports whether a request is in flight.
func (v *CategoryView) Loading() bool {
	return v.list.Loading()
}

// SelectedTask implements ViewHandler.
func (v *CategoryView) SelectedTask() *api.Task {
	return v.rows.SelectedTask()
}

// Render implements ViewHandler.
func (v *CategoryView) Render(width, height int) string {
	v.rows.SetTitle(v.Title())
	v.rows.SetLoading(v.list.Loading(), v.State.Spinner.View())

	if v.form == nil {
		v.rows.SetSize(width, height)
		return v.rows.View()
	}

	form := v.renderForm(width)
	v.rows.SetSize(width, height-lipgloss.Height(form)-1)
	return lipgloss.JoinVertical(lipgloss.Left, form, "", v.rows.View())
}

func (v *CategoryView) renderForm(width int) string {
	f := v.form
	inputWidth := width - 8
	if inputWidth > 60 {
		inputWidth = 60
	}
	if inputWidth < 10 {
		inputWidth = 10
	}
	f.SetWidth(inputWidth)

	field := func(label string, input textinput.Model, focused bool) string {
		style := styles.Input
		if focused {
			style = styles.InputFocused
		}
		return styles.InputLabel.Render(label) + "\n" + style.Render(input.View())
	}

	var b strings.Builder
	b.WriteString(styles.DialogTitle.Render("New task in " + v.category.Label()))
	b.WriteString("\n")
	b.WriteString(field("Title", f.Title, f.FocusIndex == state.FormFieldTitle))
	b.WriteString("\n")
	b.WriteString(field("Description", f.Description, f.FocusIndex == state.FormFieldDescription))
	b.WriteString("\n")
	b.WriteString(field("Due date (YYYY-MM-DD)", f.DueDate, f.FocusIndex == state.FormFieldDue))
	b.WriteString("\n")
	b.WriteString(styles.HelpDesc.Render("tab: next field • ctrl+s: save • esc: cancel"))

	return styles.Dialog.Render(b.String())
}
