// Package guard decides whether a protected screen may render for the
// current session. Role information comes from the same profile the session
// gate populates; there is no second session representation to drift out of
// sync.
package guard

import "github.com/freelancework02/welfare-admin/internal/client/session"

// Decision is the outcome of a guard check.
type Decision int

const (
	// Render allows the screen to proceed.
	Render Decision = iota
	// RedirectLogin bounces the user to the login screen; no partial
	// screen state survives the bounce.
	RedirectLogin
)

// Allow gates a screen requiring any of requiredRoles. An empty role set
// means any authenticated user. Unauthenticated sessions and sessions whose
// role is not in the set are redirected.
func Allow(gate *session.Gate, requiredRoles []string) Decision {
	user := gate.User()
	if user == nil {
		return RedirectLogin
	}

	if len(requiredRoles) == 0 {
		return Render
	}

	for _, role := range requiredRoles {
		if user.Role == role {
			return Render
		}
	}

	return RedirectLogin
}
