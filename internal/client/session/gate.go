// Package session owns the client session lifecycle: restoring a persisted
// token at startup, login, logout, and tracking backend reachability.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/freelancework02/welfare-admin/internal/client/api"
	"github.com/freelancework02/welfare-admin/internal/logging"
)

// Status is the last known reachability of the backend. It is independent
// of whether a token exists: an offline backend does not log anyone out.
type Status string

const (
	StatusChecking Status = "checking"
	StatusOnline   Status = "online"
	StatusOffline  Status = "offline"
)

// TokenStore is the single persisted token slot surviving restarts.
type TokenStore interface {
	SaveToken(token string) error
	LoadToken() (string, error)
	ClearToken() error
}

// Gate is the session authority. It is constructed explicitly and passed to
// whatever needs session state; there is no package-level singleton.
//
// Invariant: user is non-nil only after a successful login or profile fetch
// with a live token; no token implies no user.
type Gate struct {
	client api.Client
	store  TokenStore
	logger logging.Logger

	mu       sync.RWMutex
	token    string
	user     *api.Profile
	status   Status
	restored bool
}

func NewGate(client api.Client, store TokenStore, logger logging.Logger) *Gate {
	return &Gate{
		client: client,
		store:  store,
		logger: logger,
		status: StatusChecking,
	}
}

// Restore resolves the persisted session once at startup.
//
// No stored token: the session resolves unauthenticated with status online —
// there is nothing to check, so the backend is presumed reachable until a
// real call says otherwise.
//
// Stored token: the backend is probed first. Unreachable leaves the token in
// place (status offline, no user); the session is neither valid nor dead
// until the backend can be asked. Reachable: the profile is fetched — a 401
// kills the session via Logout, any other failure keeps the token for a
// manual retry and is returned to the caller.
func (g *Gate) Restore(ctx context.Context) error {
	defer func() {
		g.mu.Lock()
		g.restored = true
		g.mu.Unlock()
	}()

	token, err := g.store.LoadToken()
	if err != nil {
		return fmt.Errorf("error loading token: %w", err)
	}

	if token == "" {
		g.setState("", nil, StatusOnline)
		return nil
	}

	if err := g.client.Ping(ctx); err != nil {
		g.logger.Warn(ctx, "backend unreachable, keeping session for retry", "error", err)
		g.setState(token, nil, StatusOffline)
		return nil
	}

	profile, err := g.client.FetchProfile(ctx, token)
	if err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			g.logger.Info(ctx, "stored token expired, logging out")
			return g.Logout(ctx)
		}
		g.setState(token, nil, StatusOnline)
		return fmt.Errorf("error restoring session: %w", err)
	}

	g.setState(token, profile, StatusOnline)
	return nil
}

// Login exchanges credentials for a session. The profile arrives with the
// token, so no follow-up fetch happens. On any failure the session state is
// left exactly as it was.
func (g *Gate) Login(ctx context.Context, username, password string) (*api.Profile, error) {
	profile, token, err := g.client.Login(ctx, username, password)
	if err != nil {
		return nil, err
	}

	if err := g.store.SaveToken(token); err != nil {
		return nil, fmt.Errorf("error persisting token: %w", err)
	}

	g.setState(token, profile, StatusOnline)
	return profile, nil
}

// Logout clears the persisted token and the in-memory session. Idempotent;
// no network call is made.
func (g *Gate) Logout(ctx context.Context) error {
	if err := g.store.ClearToken(); err != nil {
		return fmt.Errorf("error clearing token: %w", err)
	}

	g.mu.Lock()
	g.token = ""
	g.user = nil
	g.mu.Unlock()
	return nil
}

// HandleUnauthorized is the central reaction to a 401 from any screen:
// the session is dead, force a logout. Returns true when err was a 401.
func (g *Gate) HandleUnauthorized(ctx context.Context, err error) bool {
	if !errors.Is(err, api.ErrUnauthorized) {
		return false
	}
	if lerr := g.Logout(ctx); lerr != nil {
		g.logger.Error(ctx, "logout after expired token failed", "error", lerr)
	}
	return true
}

func (g *Gate) setState(token string, user *api.Profile, status Status) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.token = token
	g.user = user
	g.status = status
}

func (g *Gate) setStatus(status Status) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.status = status
}

// IsAuthenticated reports whether a user profile is loaded.
func (g *Gate) IsAuthenticated() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.user != nil
}

// User returns the session profile, or nil when unauthenticated.
func (g *Gate) User() *api.Profile {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.user
}

// Token returns the current bearer token ("" when none).
func (g *Gate) Token() string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.token
}

// Status returns the last known backend reachability.
func (g *Gate) Status() Status {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.status
}

// Restored reports whether Restore has completed.
func (g *Gate) Restored() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.restored
}

// StartStatusWatcher probes backend liveness every interval and flips the
// status between online and offline until ctx is cancelled. The probe never
// touches token or user: reachability and authentication are separate.
func (g *Gate) StartStatusWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			probeCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
			err := g.client.Ping(probeCtx)
			cancel()

			if err != nil {
				if g.Status() != StatusOffline {
					g.logger.Warn(ctx, "backend went offline")
					g.setStatus(StatusOffline)
				}
			} else {
				if g.Status() != StatusOnline {
					g.logger.Info(ctx, "backend back online")
					g.setStatus(StatusOnline)
				}
			}

		case <-ctx.Done():
			return
		}
	}
}
