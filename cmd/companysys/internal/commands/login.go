package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/alhassanmohamed2/companySYS/internal/policy"
)

// LoginCmd authenticates against the backend and stores the issued tokens.
type LoginCmd struct {
	Username string `arg:"" help:"Account username"`
	Password string `help:"Account password (prompted when omitted)"`
}

func (l *LoginCmd) Run(ctx context.Context, globals *Globals) error {
	a, err := newApp(globals)
	if err != nil {
		return err
	}

	password := l.Password
	if password == "" {
		fmt.Print("Password: ")
		if _, err := fmt.Scanln(&password); err != nil {
			return errors.New("a password is required")
		}
	}

	if err := a.manager.Login(ctx, a.client, l.Username, password); err != nil {
		return err
	}

	sess := a.manager.Current()
	fmt.Printf("Logged in as %s (%s).\n", sess.Username, sess.Role)

	return nil
}

// LogoutCmd clears both stored tokens and resets the session.
type LogoutCmd struct{}

func (l *LogoutCmd) Run(ctx context.Context, globals *Globals) error {
	a, err := newApp(globals)
	if err != nil {
		return err
	}

	a.manager.Logout()
	fmt.Println("Logged out.")

	return nil
}

// WhoamiCmd prints the current session and what it is allowed to see.
type WhoamiCmd struct{}

func (w *WhoamiCmd) Run(ctx context.Context, globals *Globals) error {
	a, err := newApp(globals)
	if err != nil {
		return err
	}

	sess := a.manager.Current()
	if !sess.Authenticated {
		fmt.Println("Not logged in.")
		return nil
	}

	fmt.Printf("Username: %s\n", sess.Username)
	fmt.Printf("User ID:  %d\n", sess.UserID)
	fmt.Printf("Role:     %s\n", sess.Role)
	fmt.Println()
	fmt.Println("Sections:")
	for _, section := range []struct {
		name string
		perm policy.Permission
	}{
		{"projects", policy.PermProjectsView},
		{"tasks", policy.PermTasksView},
		{"assets", policy.PermAssetsView},
		{"analytics", policy.PermAnalyticsView},
		{"users", policy.PermUsersView},
	} {
		if policy.HasPermission(sess.Role, section.perm) {
			fmt.Printf("  %s\n", section.name)
		}
	}
	fmt.Println("  notifications")
	fmt.Println("  settings")

	return nil
}
