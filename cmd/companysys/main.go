package main

import (
	"context"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/alhassanmohamed2/companySYS/cmd/companysys/internal/commands"
)

var (
	version = "dev"
	cli     struct {
		Login         commands.LoginCmd         `cmd:"" help:"Log in to the dashboard"`
		Logout        commands.LogoutCmd        `cmd:"" help:"Log out and clear stored tokens"`
		Whoami        commands.WhoamiCmd        `cmd:"" help:"Show the current session"`
		Projects      commands.ProjectsCmd      `cmd:"" help:"Manage projects"`
		Tasks         commands.TasksCmd         `cmd:"" help:"Manage tasks"`
		Assets        commands.AssetsCmd        `cmd:"" help:"Manage project assets"`
		Notifications commands.NotificationsCmd `cmd:"" help:"Read notifications"`
		Users         commands.UsersCmd         `cmd:"" help:"Manage users and your own profile"`
		Analytics     commands.AnalyticsCmd     `cmd:"" help:"Project and task rollups"`
		Server        string                    `help:"API base URL (overrides config file)"`
		Dir           string                    `help:"State directory (tokens and config)" default:""`
		Debug         bool                      `help:"Enable debug mode."`
		Version       kong.VersionFlag
	}
)

func main() {
	ctx := context.Background()
	cmd := kong.Parse(&cli,
		kong.Vars{
			"version": version,
		},
		kong.BindTo(ctx, (*context.Context)(nil)))

	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).With().Timestamp().Logger()
	if cli.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	}

	err := cmd.Run(&commands.Globals{Debug: cli.Debug, Server: cli.Server, Dir: cli.Dir, Version: version})
	cmd.FatalIfErrorf(err)
}
