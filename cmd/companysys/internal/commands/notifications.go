package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/rs/zerolog/log"

	"github.com/alhassanmohamed2/companySYS/internal/api"
)

// NotificationsCmd reads notifications. Visible to every authenticated
// role.
type NotificationsCmd struct {
	List  NotificationsListCmd  `cmd:"" help:"List notifications"`
	Read  NotificationsReadCmd  `cmd:"" help:"Mark a notification as read"`
	Watch NotificationsWatchCmd `cmd:"" help:"Poll for new notifications"`
}

// NotificationsListCmd lists the current user's notifications.
type NotificationsListCmd struct {
	Unread bool `help:"Only show unread notifications"`
}

func (c *NotificationsListCmd) Run(ctx context.Context, globals *Globals) error {
	a, err := newApp(globals)
	if err != nil {
		return err
	}
	if _, err := a.requireSession(); err != nil {
		return err
	}

	notifications, err := a.client.ListNotifications(ctx)
	if err != nil {
		return fmt.Errorf("failed to list notifications: %w", err)
	}

	printNotifications(notifications, c.Unread)
	return nil
}

func printNotifications(notifications []api.Notification, unreadOnly bool) {
	shown := 0
	for _, n := range notifications {
		if unreadOnly && n.IsRead {
			continue
		}
		marker := " "
		if !n.IsRead {
			marker = "*"
		}
		fmt.Printf("%s %4d  [%s] %s\n", marker, n.ID, n.CreatedAt.Format("2006-01-02 15:04"), n.Message)
		shown++
	}

	if shown == 0 {
		fmt.Println("No notifications.")
	}
}

// NotificationsReadCmd marks one notification as read.
type NotificationsReadCmd struct {
	ID int `arg:"" help:"Notification ID"`
}

func (c *NotificationsReadCmd) Run(ctx context.Context, globals *Globals) error {
	a, err := newApp(globals)
	if err != nil {
		return err
	}
	if _, err := a.requireSession(); err != nil {
		return err
	}

	if err := a.client.MarkNotificationRead(ctx, c.ID); err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}

	fmt.Printf("Notification %d marked as read.\n", c.ID)
	return nil
}

// NotificationsWatchCmd polls for new notifications. Transient server or
// network failures back off exponentially instead of hammering the
// backend; an ended session stops the watch.
type NotificationsWatchCmd struct {
	Interval time.Duration `help:"Poll interval" default:"30s"`
}

func (c *NotificationsWatchCmd) Run(ctx context.Context, globals *Globals) error {
	a, err := newApp(globals)
	if err != nil {
		return err
	}
	if _, err := a.requireSession(); err != nil {
		return err
	}

	fmt.Println("Watching notifications (press Ctrl+C to stop)...")

	seen := make(map[int]bool)

	retry := backoff.NewExponentialBackOff()
	retry.InitialInterval = c.Interval
	retry.MaxInterval = 10 * time.Minute

	wait := c.Interval
	for {
		notifications, err := a.client.ListNotifications(ctx)
		switch {
		case errors.Is(err, api.ErrSessionExpired):
			return err
		case err != nil:
			wait = retry.NextBackOff()
			log.Warn().Err(err).Dur("next_poll", wait).Msg("failed to poll notifications, backing off")
		default:
			retry.Reset()
			wait = c.Interval
			for _, n := range notifications {
				if n.IsRead || seen[n.ID] {
					continue
				}
				seen[n.ID] = true
				fmt.Printf("* %4d  [%s] %s\n", n.ID, n.CreatedAt.Format("15:04:05"), n.Message)
			}
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
}
