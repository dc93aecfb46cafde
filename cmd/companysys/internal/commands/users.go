package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/alhassanmohamed2/companySYS/internal/api"
	"github.com/alhassanmohamed2/companySYS/internal/policy"
)

// UsersCmd manages user accounts. Admin only, except for the me and
// set-password subcommands which operate on the caller's own account.
type UsersCmd struct {
	List        UsersListCmd        `cmd:"" help:"List accounts"`
	Create      UsersCreateCmd      `cmd:"" help:"Create an account"`
	Update      UsersUpdateCmd      `cmd:"" help:"Update an account"`
	Delete      UsersDeleteCmd      `cmd:"" help:"Delete an account"`
	Me          UsersMeCmd          `cmd:"" help:"Show or update your own profile"`
	SetPassword UsersSetPasswordCmd `cmd:"" name:"set-password" help:"Change your own password"`
}

// UsersListCmd lists all accounts.
type UsersListCmd struct{}

func (c *UsersListCmd) Run(ctx context.Context, globals *Globals) error {
	a, err := newApp(globals)
	if err != nil {
		return err
	}
	if _, err := a.requirePermission(policy.PermUsersView); err != nil {
		return err
	}

	users, err := a.client.ListUsers(ctx)
	if err != nil {
		return fmt.Errorf("failed to list users: %w", err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tUSERNAME\tEMAIL\tROLE")
	for _, u := range users {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", u.ID, u.Username, u.Email, u.Role)
	}
	w.Flush()

	return nil
}

// UsersCreateCmd creates an account with one of the four roles.
type UsersCreateCmd struct {
	Username string `arg:"" help:"Account username"`
	Email    string `help:"Account email" required:""`
	Role     string `help:"Role (ADMIN, CEO, PM, DEV)" required:""`
	Password string `help:"Initial password" required:""`
}

func (c *UsersCreateCmd) Run(ctx context.Context, globals *Globals) error {
	a, err := newApp(globals)
	if err != nil {
		return err
	}
	if _, err := a.requirePermission(policy.PermUsersManage); err != nil {
		return err
	}

	role := policy.Role(c.Role)
	if !role.Valid() {
		return fmt.Errorf("unknown role %q", c.Role)
	}

	user, err := a.client.CreateUser(ctx, api.UserInput{
		Username: c.Username,
		Email:    c.Email,
		Password: c.Password,
		Role:     role,
	})
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	fmt.Printf("User %q created with ID %d.\n", user.Username, user.ID)
	return nil
}

// UsersUpdateCmd patches an account.
type UsersUpdateCmd struct {
	ID    int    `arg:"" help:"User ID"`
	Email string `help:"New email"`
	Role  string `help:"New role (ADMIN, CEO, PM, DEV)"`
}

func (c *UsersUpdateCmd) Run(ctx context.Context, globals *Globals) error {
	a, err := newApp(globals)
	if err != nil {
		return err
	}
	if _, err := a.requirePermission(policy.PermUsersManage); err != nil {
		return err
	}

	input := api.UserInput{Email: c.Email}
	if c.Role != "" {
		role := policy.Role(c.Role)
		if !role.Valid() {
			return fmt.Errorf("unknown role %q", c.Role)
		}
		input.Role = role
	}

	user, err := a.client.UpdateUser(ctx, c.ID, input)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}

	fmt.Printf("User %q updated.\n", user.Username)
	return nil
}

// UsersDeleteCmd removes an account.
type UsersDeleteCmd struct {
	ID    int  `arg:"" help:"User ID"`
	Force bool `help:"Skip confirmation" default:"false"`
}

func (c *UsersDeleteCmd) Run(ctx context.Context, globals *Globals) error {
	a, err := newApp(globals)
	if err != nil {
		return err
	}
	sess, err := a.requirePermission(policy.PermUsersManage)
	if err != nil {
		return err
	}

	if c.ID == sess.UserID {
		return errors.New("refusing to delete the account you are logged in as")
	}

	if !c.Force {
		fmt.Printf("Delete user %d? [y/N]: ", c.ID)

		var response string
		_, _ = fmt.Scanln(&response)
		if response != "y" && response != "Y" {
			fmt.Println("Aborted.")
			return nil
		}
	}

	if err := a.client.DeleteUser(ctx, c.ID); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	fmt.Printf("User %d deleted.\n", c.ID)
	return nil
}

// UsersMeCmd shows the caller's own profile, optionally updating the
// email first. Available to every authenticated role.
type UsersMeCmd struct {
	Email string `help:"Update your email"`
}

func (c *UsersMeCmd) Run(ctx context.Context, globals *Globals) error {
	a, err := newApp(globals)
	if err != nil {
		return err
	}
	if _, err := a.requireSession(); err != nil {
		return err
	}

	var user *api.User
	if c.Email != "" {
		user, err = a.client.UpdateMe(ctx, api.UserInput{Email: c.Email})
	} else {
		user, err = a.client.Me(ctx)
	}
	if err != nil {
		return fmt.Errorf("failed to fetch profile: %w", err)
	}

	fmt.Printf("Username: %s\n", user.Username)
	fmt.Printf("Email:    %s\n", user.Email)
	fmt.Printf("Role:     %s\n", user.Role)

	return nil
}

// UsersSetPasswordCmd changes the caller's own password.
type UsersSetPasswordCmd struct {
	Old string `help:"Current password (prompted when omitted)"`
	New string `help:"New password (prompted when omitted)"`
}

func (c *UsersSetPasswordCmd) Run(ctx context.Context, globals *Globals) error {
	a, err := newApp(globals)
	if err != nil {
		return err
	}
	if _, err := a.requireSession(); err != nil {
		return err
	}

	oldPassword := c.Old
	if oldPassword == "" {
		fmt.Print("Current password: ")
		if _, err := fmt.Scanln(&oldPassword); err != nil {
			return errors.New("the current password is required")
		}
	}

	newPassword := c.New
	if newPassword == "" {
		fmt.Print("New password: ")
		if _, err := fmt.Scanln(&newPassword); err != nil {
			return errors.New("a new password is required")
		}
	}

	if err := a.client.ChangePassword(ctx, oldPassword, newPassword); err != nil {
		return fmt.Errorf("failed to change password: %w", err)
	}

	fmt.Println("Password changed.")
	return nil
}
