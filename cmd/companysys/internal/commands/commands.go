package commands

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/alhassanmohamed2/companySYS/internal/api"
	"github.com/alhassanmohamed2/companySYS/internal/config"
	"github.com/alhassanmohamed2/companySYS/internal/policy"
	"github.com/alhassanmohamed2/companySYS/internal/session"
)

type Globals struct {
	Debug   bool
	Server  string
	Dir     string
	Version string
}

// app wires the session manager and API client for one command run. The
// session is hydrated from durable storage before the command executes.
type app struct {
	cfg     *config.Config
	manager *session.Manager
	client  *api.Client
}

func newApp(globals *Globals) (*app, error) {
	dir := globals.Dir
	if dir == "" {
		var err error
		dir, err = config.Dir()
		if err != nil {
			return nil, err
		}
	}

	cfg, err := config.Load(dir)
	if err != nil {
		return nil, err
	}
	if globals.Server != "" {
		cfg.ServerURL = globals.Server
	}

	tokens, err := session.NewTokenStore(dir)
	if err != nil {
		return nil, err
	}

	manager := session.NewManager(tokens)

	opts := []api.Option{
		api.WithSessionExpiredHook(func() {
			manager.Logout()
			log.Warn().Msg("session expired, run 'companysys login' to continue")
		}),
	}
	if cfg.CacheDir != "" {
		opts = append(opts, api.WithHTTPClient(api.NewCachingHTTPClient(cfg.CacheDir, 30*time.Second)))
	}

	client := api.NewClient(api.Config{BaseURL: cfg.ServerURL, Timeout: 30 * time.Second}, tokens, opts...)

	manager.Hydrate()

	return &app{cfg: cfg, manager: manager, client: client}, nil
}

// requirePermission gates a command on the role policy before any network
// call, the same check the dashboard uses to hide navigation entries and
// action buttons.
func (a *app) requirePermission(perm policy.Permission) (session.Session, error) {
	sess := a.manager.Current()
	if !sess.Authenticated {
		return sess, errors.New("not logged in\n\nRun 'companysys login' first")
	}

	if !policy.HasPermission(sess.Role, perm) {
		return sess, fmt.Errorf("role %s is not allowed to %s", sess.Role, perm)
	}

	return sess, nil
}

// requireSession only checks that the user is logged in; notifications and
// settings are visible to every authenticated role.
func (a *app) requireSession() (session.Session, error) {
	sess := a.manager.Current()
	if !sess.Authenticated {
		return sess, errors.New("not logged in\n\nRun 'companysys login' first")
	}
	return sess, nil
}
