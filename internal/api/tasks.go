package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// TaskFilter narrows ListTasks. Zero values mean no filter.
type TaskFilter struct {
	Project    int
	AssignedTo int
	Status     TaskStatus
	Sprint     string
	Search     string
}

// TaskInput carries the writable task fields.
type TaskInput struct {
	Project      int        `json:"project,omitempty"`
	Title        string     `json:"title,omitempty"`
	Description  string     `json:"description,omitempty"`
	AssignedToID int        `json:"assigned_to_id,omitempty"`
	Status       TaskStatus `json:"status,omitempty"`
	Sprint       string     `json:"sprint,omitempty"`
	DueDate      string     `json:"due_date,omitempty"`
	GithubPRURL  string     `json:"github_pr_url,omitempty"`
}

// ListTasks returns the tasks visible to the current user.
func (c *Client) ListTasks(ctx context.Context, filter TaskFilter) ([]Task, error) {
	query := url.Values{}
	if filter.Project != 0 {
		query.Set("project", fmt.Sprintf("%d", filter.Project))
	}
	if filter.AssignedTo != 0 {
		query.Set("assigned_to", fmt.Sprintf("%d", filter.AssignedTo))
	}
	if filter.Status != "" {
		query.Set("status", string(filter.Status))
	}
	if filter.Sprint != "" {
		query.Set("sprint", filter.Sprint)
	}
	if filter.Search != "" {
		query.Set("search", filter.Search)
	}

	data, err := c.doRaw(ctx, http.MethodGet, "/tasks/", query, nil)
	if err != nil {
		return nil, err
	}

	return decodeList[Task](data)
}

// GetTask fetches a single task by ID.
func (c *Client) GetTask(ctx context.Context, id int) (*Task, error) {
	var task Task
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/tasks/%d/", id), nil, nil, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// CreateTask creates a task within a project.
func (c *Client) CreateTask(ctx context.Context, input TaskInput) (*Task, error) {
	var task Task
	if err := c.do(ctx, http.MethodPost, "/tasks/", nil, input, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// UpdateTask patches the given fields of a task.
func (c *Client) UpdateTask(ctx context.Context, id int, input TaskInput) (*Task, error) {
	var task Task
	if err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/tasks/%d/", id), nil, input, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// DeleteTask removes a task.
func (c *Client) DeleteTask(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/tasks/%d/", id), nil, nil, nil)
}

// AdvanceTask moves a task one step along the status pipeline and returns
// the updated task. A task that is already done is returned unchanged.
func (c *Client) AdvanceTask(ctx context.Context, id int) (*Task, error) {
	task, err := c.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}

	next := task.Status.Next()
	if next == task.Status {
		return task, nil
	}

	return c.UpdateTask(ctx, id, TaskInput{Status: next})
}
