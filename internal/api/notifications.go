package api

import (
	"context"
	"fmt"
	"net/http"
)

// ListNotifications returns the current user's notifications, newest
// first.
func (c *Client) ListNotifications(ctx context.Context) ([]Notification, error) {
	data, err := c.doRaw(ctx, http.MethodGet, "/notifications/", nil, nil)
	if err != nil {
		return nil, err
	}

	return decodeList[Notification](data)
}

// MarkNotificationRead marks one notification as read.
func (c *Client) MarkNotificationRead(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/notifications/%d/mark_read/", id), nil, nil, nil)
}
