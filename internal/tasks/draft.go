package tasks

import (
	"strings"
	"time"

	"github.com/timely-planner/timely-tui/internal/api"
)

// Draft is the new-task form content.
type Draft struct {
	Title       string
	Description string
	DueDate     string
}

// Validate checks the required fields. It never touches the network.
func (d Draft) Validate() error {
	title := strings.TrimSpace(d.Title)
	due := strings.TrimSpace(d.DueDate)

	if title == "" || due == "" {
		field := "title"
		if title != "" {
			field = "dueDate"
		}
		return &api.ValidationError{Field: field, Message: "Title and due date are required"}
	}
	if _, err := time.Parse(api.DateLayout, due); err != nil {
		return &api.ValidationError{Field: "dueDate", Message: "Due date must look like 2025-01-31"}
	}
	return nil
}

// Request builds the create request for category on behalf of email.
func (d Draft) Request(category api.Category, email string) api.CreateTaskRequest {
	return api.CreateTaskRequest{
		Title:       strings.TrimSpace(d.Title),
		Description: strings.TrimSpace(d.Description),
		DueDate:     strings.TrimSpace(d.DueDate),
		Category:    category,
		UserEmail:   email,
	}
}

// IsEmpty reports whether every field is blank.
func (d Draft) IsEmpty() bool {
	return strings.TrimSpace(d.Title) == "" &&
		strings.TrimSpace(d.Description) == "" &&
		strings.TrimSpace(d.DueDate) == ""
}
