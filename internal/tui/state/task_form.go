package state

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/timely-planner/timely-tui/internal/api"
	"github.com/timely-planner/timely-tui/internal/tasks"
)

// FormField constants for focus management
const (
	FormFieldTitle = iota
	FormFieldDescription
	FormFieldDue
)

const formFieldCount = 3

// TaskForm represents the state of the new-task form.
type TaskForm struct {
	Title       textinput.Model
	Description textinput.Model
	DueDate     textinput.Model
	FocusIndex  int

	// Category the task will be created in.
	Category api.Category
}

// NewTaskForm creates an empty form for category.
func NewTaskForm(category api.Category) *TaskForm {
	title := textinput.New()
	title.Placeholder = "Task title"
	title.CharLimit = 200
	title.Width = 50

	desc := textinput.New()
	desc.Placeholder = "Description (optional)"
	desc.CharLimit = 1000
	desc.Width = 50

	due := textinput.New()
	due.Placeholder = time.Now().Format(api.DateLayout)
	due.CharLimit = len(api.DateLayout)
	due.Width = 12

	f := &TaskForm{
		Title:       title,
		Description: desc,
		DueDate:     due,
		Category:    category,
	}
	f.Focus(FormFieldTitle)
	return f
}

// Update updates the form models.
func (f *TaskForm) Update(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "tab", "down":
			f.NextField()
			return nil
		case "shift+tab", "up":
			f.PrevField()
			return nil
		}
	}

	// Only update the focused input
	var cmd tea.Cmd
	switch f.FocusIndex {
	case FormFieldTitle:
		f.Title, cmd = f.Title.Update(msg)
	case FormFieldDescription:
		f.Description, cmd = f.Description.Update(msg)
	case FormFieldDue:
		f.DueDate, cmd = f.DueDate.Update(msg)
	}
	return cmd
}

// NextField moves focus to the next field.
func (f *TaskForm) NextField() {
	f.Focus((f.FocusIndex + 1) % formFieldCount)
}

// PrevField moves focus to the previous field.
func (f *TaskForm) PrevField() {
	f.Focus((f.FocusIndex - 1 + formFieldCount) % formFieldCount)
}

// IsLastField reports whether the due date field is focused.
func (f *TaskForm) IsLastField() bool {
	return f.FocusIndex == formFieldCount-1
}

// Focus moves focus to the field at index.
func (f *TaskForm) Focus(index int) {
	f.FocusIndex = index
	f.Title.Blur()
	f.Description.Blur()
	f.DueDate.Blur()

	switch index {
	case FormFieldTitle:
		f.Title.Focus()
	case FormFieldDescription:
		f.Description.Focus()
	case FormFieldDue:
		f.DueDate.Focus()
	}
}

// Draft returns the current form content.
func (f *TaskForm) Draft() tasks.Draft {
	return tasks.Draft{
		Title:       f.Title.Value(),
		Description: f.Description.Value(),
		DueDate:     f.DueDate.Value(),
	}
}

// Reset clears every field and focuses the title.
func (f *TaskForm) Reset() {
	f.Title.SetValue("")
	f.Description.SetValue("")
	f.DueDate.SetValue("")
	f.Focus(FormFieldTitle)
}

// SetWidth sets width of the text inputs.
func (f *TaskForm) SetWidth(width int) {
	f.Title.Width = width
	f.Description.Width = width
}
