package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// ProjectFilter narrows ListProjects. Zero values mean no filter.
type ProjectFilter struct {
	Search string
	PM     int
}

// ProjectInput carries the writable project fields.
type ProjectInput struct {
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	StartDate   string `json:"start_date,omitempty"`
	EndDate     string `json:"end_date,omitempty"`
	PMID        int    `json:"pm_id,omitempty"`
}

// ListProjects returns the projects visible to the current user. The
// backend already scopes the result set by role.
func (c *Client) ListProjects(ctx context.Context, filter ProjectFilter) ([]Project, error) {
	query := url.Values{}
	if filter.Search != "" {
		query.Set("search", filter.Search)
	}
	if filter.PM != 0 {
		query.Set("pm", fmt.Sprintf("%d", filter.PM))
	}

	data, err := c.doRaw(ctx, http.MethodGet, "/projects/", query, nil)
	if err != nil {
		return nil, err
	}

	return decodeList[Project](data)
}

// GetProject fetches a single project by ID.
func (c *Client) GetProject(ctx context.Context, id int) (*Project, error) {
	var project Project
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/projects/%d/", id), nil, nil, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

// CreateProject creates a new project.
func (c *Client) CreateProject(ctx context.Context, input ProjectInput) (*Project, error) {
	var project Project
	if err := c.do(ctx, http.MethodPost, "/projects/", nil, input, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

// UpdateProject patches the given fields of a project.
func (c *Client) UpdateProject(ctx context.Context, id int, input ProjectInput) (*Project, error) {
	var project Project
	if err := c.do(ctx, http.MethodPatch, fmt.Sprintf("/projects/%d/", id), nil, input, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

// DeleteProject removes a project.
func (c *Client) DeleteProject(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/projects/%d/", id), nil, nil, nil)
}
