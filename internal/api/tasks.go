package api

import (
	"context"
	"fmt"
	"net/url"
)

// ListTasks returns the user's tasks in server order. An empty category
// returns every task.
func (c *Client) ListTasks(ctx context.Context, category Category) ([]Task, error) {
	query := url.Values{}
	if category != "" {
		query.Set("category", string(category))
	}

	tasks := make([]Task, 0)
	if err := c.GetWithQuery(ctx, "/tasks", query, &tasks); err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// CreateTask creates a new task and returns the server's copy of it.
func (c *Client) CreateTask(ctx context.Context, req CreateTaskRequest) (*Task, error) {
	var resp CreateTaskResponse
	if err := c.Post(ctx, "/tasks", req, &resp); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	if resp.Task == nil {
		return nil, fmt.Errorf("failed to create task: %w", &MalformedResponseError{Reason: "missing task object"})
	}
	return resp.Task, nil
}

// DeleteTask deletes a task.
func (c *Client) DeleteTask(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("task id cannot be empty")
	}
	if err := c.Delete(ctx, "/tasks/"+url.PathEscape(id)); err != nil {
		return fmt.Errorf("failed to delete task %s: %w", id, err)
	}
	return nil
}
