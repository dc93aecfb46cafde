package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// CommentInput carries the writable comment fields.
type CommentInput struct {
	Task int    `json:"task"`
	Body string `json:"body"`
}

// ListComments returns the comments on a task, oldest first.
func (c *Client) ListComments(ctx context.Context, taskID int) ([]Comment, error) {
	query := url.Values{}
	query.Set("task", fmt.Sprintf("%d", taskID))

	data, err := c.doRaw(ctx, http.MethodGet, "/comments/", query, nil)
	if err != nil {
		return nil, err
	}

	return decodeList[Comment](data)
}

// CreateComment adds a comment to a task.
func (c *Client) CreateComment(ctx context.Context, input CommentInput) (*Comment, error) {
	var comment Comment
	if err := c.do(ctx, http.MethodPost, "/comments/", nil, input, &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}
