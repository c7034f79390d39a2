package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/freelancework02/welfare-admin/internal/client/api"
	"github.com/freelancework02/welfare-admin/internal/client/session"
	"github.com/freelancework02/welfare-admin/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts for credentials and authenticates against the backend.
// Login is always an online operation: an unreachable backend fails it, and
// the user is told to retry once connectivity is back.
func (a *App) Login(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	user, err := a.gate.Login(ctx, username, string(password))
	if err != nil {
		switch {
		case errors.Is(err, api.ErrUnavailable):
			fmt.Fprintln(a.out, "Server unreachable, try again later.")
		case errors.Is(err, api.ErrUnauthorized):
			fmt.Fprintln(a.out, "Invalid username or password.")
		default:
			fmt.Fprintf(a.out, "Login failed: %s\n", err)
		}
		return err
	}

	fmt.Fprintf(a.out, "Logged in as %s (%s)\n", user.DisplayName, user.Role)
	return nil
}

// Logout drops the session and the persisted token.
func (a *App) Logout(ctx context.Context) error {
	if err := a.gate.Logout(ctx); err != nil {
		fmt.Fprintf(a.out, "Logout failed: %s\n", err)
		return err
	}
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}

// Reconnect re-runs the startup session restore. A token kept through an
// offline restore gets its retry here instead of requiring a process
// restart.
func (a *App) Reconnect(ctx context.Context) error {
	if err := a.gate.Restore(ctx); err != nil {
		fmt.Fprintf(a.out, "Reconnect failed: %s\n", err)
		return err
	}

	switch {
	case a.gate.IsAuthenticated():
		fmt.Fprintf(a.out, "Reconnected as %s\n", a.gate.User().Username)
	case a.gate.Status() == session.StatusOffline:
		fmt.Fprintln(a.out, "Backend still unreachable.")
	default:
		fmt.Fprintln(a.out, "Connected. Please log in.")
	}
	return nil
}

// WhoAmI prints the current session identity and backend reachability.
func (a *App) WhoAmI(ctx context.Context) error {
	u := a.gate.User()
	if u == nil {
		fmt.Fprintln(a.out, "Not logged in.")
		return nil
	}
	fmt.Fprintf(a.out, "%s <%s> role=%s backend=%s\n", u.DisplayName, u.Username, u.Role, a.gate.Status())
	return nil
}
