package components

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/timely-planner/timely-tui/internal/api"
	"github.com/timely-planner/timely-tui/internal/tui/styles"
	"github.com/timely-planner/timely-tui/internal/tui/utils"
)

// RowKind distinguishes task rows from group headers.
type RowKind int

const (
	RowTask RowKind = iota
	RowGroup
)

// Row is one selectable entry of a task list.
type Row struct {
	Kind     RowKind
	Task     api.Task
	Group    api.Category
	Count    int
	Expanded bool
}

// TaskListModel manages a scrollable list of tasks and group headers.
type TaskListModel struct {
	rows          []Row
	cursor        int
	scrollOffset  int
	width, height int
	title         string
	emptyMessage  string
	loading       bool
	spinner       string
	now           func() time.Time
}

// NewTaskList creates a new TaskListModel.
func NewTaskList() *TaskListModel {
	return &TaskListModel{
		title:        "Tasks",
		emptyMessage: "No tasks found",
		now:          time.Now,
	}
}

// Init implements Component.
func (t *TaskListModel) Init() tea.Cmd {
	return nil
}

// Update implements Component.
func (t *TaskListModel) Update(msg tea.Msg) (Component, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "j", "down":
			t.MoveCursor(1)
		case "k", "up":
			t.MoveCursor(-1)
		case "G":
			t.MoveToBottom()
		case "ctrl+d":
			t.MoveCursor(10)
		case "ctrl+u":
			t.MoveCursor(-10)
		}
	}
	return t, nil
}

// View implements Component.
func (t *TaskListModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render(t.title))
	if t.loading {
		b.WriteString(" " + t.spinner)
	}
	b.WriteString("\n\n")

	if len(t.rows) == 0 {
		if t.loading {
			b.WriteString(styles.EmptyList.Render("Loading tasks..."))
		} else {
			b.WriteString(styles.EmptyList.Render(t.emptyMessage))
		}
		return b.String()
	}

	lines := t.renderLines()
	contentHeight := t.height - 2 // Title takes 2 lines
	if contentHeight < 1 {
		contentHeight = 1
	}

	// Keep the first line of the cursor row visible.
	first := 0
	for i, l := range lines {
		if l.TaskIndex == t.cursor {
			first = i
			break
		}
	}
	if first < t.scrollOffset {
		t.scrollOffset = first
	}
	if first >= t.scrollOffset+contentHeight {
		t.scrollOffset = first - contentHeight + 1
	}
	t.scrollOffset = utils.Clamp(t.scrollOffset, 0, len(lines)-contentHeight)

	end := t.scrollOffset + contentHeight
	if end > len(lines) {
		end = len(lines)
	}
	for i := t.scrollOffset; i < end; i++ {
		b.WriteString(lines[i].Content)
		if i < end-1 {
			b.WriteString("\n")
		}
	}

	return b.String()
}

// renderLines renders every row. TaskIndex holds the row index of the
// row a line belongs to.
func (t *TaskListModel) renderLines() []LineInfo {
	lines := make([]LineInfo, 0, len(t.rows)*2)
	for i := range t.rows {
		row := &t.rows[i]
		selected := i == t.cursor

		switch row.Kind {
		case RowGroup:
			lines = append(lines, LineInfo{Content: t.renderGroup(row, selected), TaskIndex: i})
		default:
			lines = append(lines, LineInfo{Content: t.renderTask(&row.Task, selected), TaskIndex: i})
			desc := utils.TruncateString(row.Task.DescriptionDisplay(), t.width-8)
			lines = append(lines, LineInfo{Content: styles.TaskListDescription.Render(desc), TaskIndex: i})
		}
	}
	return lines
}

func (t *TaskListModel) renderGroup(row *Row, selected bool) string {
	icon := "▸"
	if row.Expanded {
		icon = "▾"
	}
	name := fmt.Sprintf("%s %s · %s", icon, row.Group.Label(), string(row.Group))

	style := styles.GroupHeader.Foreground(styles.CategoryColor(string(row.Group)))
	if selected {
		style = styles.GroupHeaderSelected.Foreground(styles.CategoryColor(string(row.Group)))
	}
	return style.Render(name) + styles.GroupCount.Render(fmt.Sprintf(" (%d)", row.Count))
}

func (t *TaskListModel) renderTask(task *api.Task, selected bool) string {
	due := task.DueDisplay()
	dueStyle := styles.TaskDue
	if d, ok := task.Due(); ok {
		now := t.now()
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		day := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
		switch {
		case day.Before(today):
			dueStyle = styles.TaskDueOverdue
		case day.Equal(today):
			dueStyle = styles.TaskDueToday
		}
	}

	titleWidth := t.width - lipgloss.Width(due) - 6
	title := utils.TruncateString(task.Title, titleWidth)

	style := styles.TaskItem
	if selected {
		style = styles.TaskSelected
	}
	return style.Render(title) + dueStyle.Render(due)
}

// SetSize implements Component.
func (t *TaskListModel) SetSize(width, height int) {
	t.width = width
	t.height = height
}

// SetRows replaces the rows and keeps the cursor in range.
func (t *TaskListModel) SetRows(rows []Row) {
	t.rows = rows
	t.cursor = utils.Clamp(t.cursor, 0, len(rows)-1)
}

// Rows returns the current rows.
func (t *TaskListModel) Rows() []Row {
	return t.rows
}

// SetTasks sets one task row per task.
func (t *TaskListModel) SetTasks(tasks []api.Task) {
	rows := make([]Row, len(tasks))
	for i, task := range tasks {
		rows[i] = Row{Kind: RowTask, Task: task}
	}
	t.SetRows(rows)
}

// SetTitle sets the title header.
func (t *TaskListModel) SetTitle(title string) {
	t.title = title
}

// SetEmptyMessage sets the message shown when no tasks exist.
func (t *TaskListModel) SetEmptyMessage(msg string) {
	t.emptyMessage = msg
}

// SetLoading sets loading state and the spinner frame shown next to the title.
func (t *TaskListModel) SetLoading(loading bool, spinner string) {
	t.loading = loading
	t.spinner = spinner
}

// Reset clears rows, cursor and scroll position.
func (t *TaskListModel) Reset() {
	t.rows = nil
	t.cursor = 0
	t.scrollOffset = 0
}

// MoveCursor moves the cursor by delta, respecting bounds.
func (t *TaskListModel) MoveCursor(delta int) {
	t.cursor = utils.Clamp(t.cursor+delta, 0, len(t.rows)-1)
}

// MoveToTop moves the cursor to the first row.
func (t *TaskListModel) MoveToTop() {
	t.cursor = 0
}

// MoveToBottom moves the cursor to the last row.
func (t *TaskListModel) MoveToBottom() {
	t.cursor = utils.Clamp(len(t.rows)-1, 0, len(t.rows)-1)
}

// Cursor returns the current cursor position.
func (t *TaskListModel) Cursor() int {
	return t.cursor
}

// SetCursor sets the cursor position.
func (t *TaskListModel) SetCursor(pos int) {
	t.cursor = utils.Clamp(pos, 0, len(t.rows)-1)
}

// CurrentRow returns the row under the cursor, or nil when empty.
func (t *TaskListModel) CurrentRow() *Row {
	if t.cursor >= 0 && t.cursor < len(t.rows) {
		return &t.rows[t.cursor]
	}
	return nil
}

// SelectedTask returns the task under the cursor, or nil on a header.
func (t *TaskListModel) SelectedTask() *api.Task {
	row := t.CurrentRow()
	if row == nil || row.Kind != RowTask {
		return nil
	}
	return &row.Task
}
