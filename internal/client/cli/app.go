// Package cli is the interactive admin console. It wires the session gate,
// the REST client, and the local cache into a read-eval-print loop with one
// list screen per content collection.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/freelancework02/welfare-admin/internal/client/api"
	"github.com/freelancework02/welfare-admin/internal/client/cache"
	"github.com/freelancework02/welfare-admin/internal/client/config"
	"github.com/freelancework02/welfare-admin/internal/client/session"
	"github.com/freelancework02/welfare-admin/internal/logging"
)

// App holds everything a console session needs.
type App struct {
	config *config.Config
	logger logging.Logger
	client api.Client
	store  *cache.Store
	gate   *session.Gate
	reader *bufio.Reader
	out    io.Writer
}

func NewApp(cfg *config.Config, logger logging.Logger) (*App, error) {
	store, err := cache.NewStore(cfg.Cache.Dir)
	if err != nil {
		return nil, fmt.Errorf("opening local cache: %w", err)
	}

	client := api.NewHTTPClient(cfg.Server.URL)
	gate := session.NewGate(client, store, logger)

	return &App{
		config: cfg,
		logger: logger,
		client: client,
		store:  store,
		gate:   gate,
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}, nil
}

// Run restores the persisted session, starts the reachability watcher, and
// hands control to the REPL until the user exits or ctx is cancelled.
func (a *App) Run(ctx context.Context) {
	defer a.store.Close()

	if err := a.gate.Restore(ctx); err != nil {
		// A failed restore is not fatal: the token is kept and the
		// user can retry by logging in or reconnecting.
		a.logger.Warn(ctx, "session restore failed", "error", err)
	}
	if a.gate.IsAuthenticated() {
		fmt.Fprintf(a.out, "Welcome back, %s\n", a.gate.User().DisplayName)
	}

	go a.gate.StartStatusWatcher(ctx, a.config.Server.ProbeInterval)

	// Stdin has exactly one buffer: a.reader. The screens prompt from it
	// too, so input arriving faster than the prompts is not swallowed.
	runREPL(ctx, a, a.status, a.reader, a.out)
}

func (a *App) isLoggedIn() bool {
	return a.gate.IsAuthenticated()
}

// status renders the prompt suffix: the user name when logged in, plus the
// backend reachability when it is anything other than online.
func (a *App) status() string {
	s := ""
	if u := a.gate.User(); u != nil {
		s = u.Username
	}
	if st := a.gate.Status(); st != session.StatusOnline {
		if s != "" {
			s += " "
		}
		s += string(st)
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}
