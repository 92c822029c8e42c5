// Package api provides a client for the Timely task REST API.
package api

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Category is the wire value of a task category.
type Category string

const (
	CategoryWork     Category = "Работа"
	CategoryHome     Category = "Дом"
	CategoryPersonal Category = "Личный"
	CategoryStudy    Category = "Учеба"
	CategoryWeekly   Category = "Недельный"

	// CategoryNone groups tasks whose category is missing or unknown.
	// It is never sent to the server.
	CategoryNone Category = "Без категории"
)

// Categories lists the categories in display order, CategoryNone last.
var Categories = []Category{
	CategoryWork,
	CategoryHome,
	CategoryPersonal,
	CategoryStudy,
	CategoryWeekly,
	CategoryNone,
}

// ParseCategory maps a wire value (or one of its aliases) to a Category.
// Unknown and empty values map to CategoryNone.
func ParseCategory(s string) Category {
	switch strings.TrimSpace(s) {
	case string(CategoryWork):
		return CategoryWork
	case string(CategoryHome), "Домашний":
		return CategoryHome
	case string(CategoryPersonal):
		return CategoryPersonal
	case string(CategoryStudy):
		return CategoryStudy
	case string(CategoryWeekly):
		return CategoryWeekly
	default:
		return CategoryNone
	}
}

// Label returns the English name of the category.
func (c Category) Label() string {
	switch c {
	case CategoryWork:
		return "Work"
	case CategoryHome:
		return "Home"
	case CategoryPersonal:
		return "Personal"
	case CategoryStudy:
		return "Study"
	case CategoryWeekly:
		return "Weekly"
	case "":
		return "All"
	default:
		return "Uncategorized"
	}
}

// DateLayout is the layout of due dates sent to the API.
const DateLayout = "2006-01-02"

// Task represents a task as returned by the API.
type Task struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	DueDate     string `json:"dueDate"`
	Category    string `json:"category,omitempty"`
	UserEmail   string `json:"userEmail,omitempty"`
}

// UnmarshalJSON accepts both "id" and the document-store "_id".
func (t *Task) UnmarshalJSON(data []byte) error {
	type alias Task
	aux := struct {
		*alias
		DocumentID string `json:"_id"`
	}{alias: (*alias)(t)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if t.ID == "" {
		t.ID = aux.DocumentID
	}
	return nil
}

// Due parses the due date. Both plain dates and RFC 3339 timestamps are accepted.
func (t *Task) Due() (time.Time, bool) {
	if t.DueDate == "" {
		return time.Time{}, false
	}
	if d, err := time.Parse(DateLayout, t.DueDate); err == nil {
		return d, true
	}
	if d, err := time.Parse(time.RFC3339, t.DueDate); err == nil {
		return d, true
	}
	return time.Time{}, false
}

// CategoryValue returns the parsed category, CategoryNone when absent or unknown.
func (t *Task) CategoryValue() Category {
	return ParseCategory(t.Category)
}

// DescriptionDisplay returns the description or a placeholder when empty.
func (t *Task) DescriptionDisplay() string {
	if strings.TrimSpace(t.Description) == "" {
		return "No description"
	}
	return t.Description
}

// DueDisplay returns a human-readable due date string.
func (t *Task) DueDisplay() string {
	dueDate, ok := t.Due()
	if !ok {
		return t.DueDate
	}

	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	day := time.Date(dueDate.Year(), dueDate.Month(), dueDate.Day(), 0, 0, 0, 0, time.UTC)
	diff := int(day.Sub(today).Hours() / 24)

	switch {
	case diff == -1:
		return "yesterday"
	case diff == 0:
		return "today"
	case diff == 1:
		return "tomorrow"
	case diff > 1 && diff < 7:
		return day.Weekday().String()
	case day.Year() == today.Year():
		return day.Format("2 Jan")
	default:
		return day.Format("2 Jan 2006")
	}
}

// CreateTaskRequest is the request body for creating a task.
type CreateTaskRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	DueDate     string   `json:"dueDate"`
	Category    Category `json:"category"`
	UserEmail   string   `json:"userEmail"`
}

// CreateTaskResponse is the response body of a successful create.
type CreateTaskResponse struct {
	Task *Task `json:"task"`
}

// Credentials is the request body for login and registration.
type Credentials struct {
	Username string `json:"username,omitempty"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is the response body of a successful login or registration.
type AuthResponse struct {
	Token string `json:"token"`
}

// errorBody is the shape of every non-success response.
type errorBody struct {
	Error *string `json:"error"`
}

func (c Category) String() string {
	if c == "" {
		return "all"
	}
	return fmt.Sprintf("%s (%s)", c.Label(), string(c))
}
