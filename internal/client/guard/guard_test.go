package guard

import (
	"context"
	"log/slog"
	"testing"

	"github.com/freelancework02/welfare-admin/internal/client/api"
	"github.com/freelancework02/welfare-admin/internal/client/cache"
	"github.com/freelancework02/welfare-admin/internal/client/session"
	"github.com/freelancework02/welfare-admin/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type loginOnlyClient struct {
	profile *api.Profile
}

func (c *loginOnlyClient) Ping(ctx context.Context) error { return nil }
func (c *loginOnlyClient) Login(ctx context.Context, username, password string) (*api.Profile, string, error) {
	return c.profile, "tok", nil
}
func (c *loginOnlyClient) FetchProfile(ctx context.Context, token string) (*api.Profile, error) {
	return c.profile, nil
}
func (c *loginOnlyClient) List(ctx context.Context, token, collection string) ([]byte, error) {
	return nil, nil
}
func (c *loginOnlyClient) Create(ctx context.Context, token, collection string, body []byte) error {
	return nil
}
func (c *loginOnlyClient) Update(ctx context.Context, token, collection, id string, body []byte) error {
	return nil
}
func (c *loginOnlyClient) Delete(ctx context.Context, token, collection, id string) error { return nil }
func (c *loginOnlyClient) UploadURL(ctx context.Context, token string) (string, string, error) {
	return "", "", nil
}

func gateWithRole(t *testing.T, role string) *session.Gate {
	t.Helper()
	store, err := cache.NewStore("")
	require.NoError(t, err)
	logger := logging.NewSlogLogger(slog.New(slog.DiscardHandler))

	gate := session.NewGate(&loginOnlyClient{profile: &api.Profile{ID: "u-1", Role: role}}, store, logger)
	_, err = gate.Login(context.Background(), "alice", "pw")
	require.NoError(t, err)
	return gate
}

func anonymousGate(t *testing.T) *session.Gate {
	t.Helper()
	store, err := cache.NewStore("")
	require.NoError(t, err)
	logger := logging.NewSlogLogger(slog.New(slog.DiscardHandler))
	return session.NewGate(&loginOnlyClient{}, store, logger)
}

func TestAllow(t *testing.T) {
	tests := []struct {
		name     string
		gate     *session.Gate
		required []string
		want     Decision
	}{
		{"unauthenticated always redirected", anonymousGate(t), nil, RedirectLogin},
		{"unauthenticated redirected even for open screens", anonymousGate(t), []string{}, RedirectLogin},
		{"authenticated, no role requirement", gateWithRole(t, "editor"), nil, Render},
		{"role in set", gateWithRole(t, "admin"), []string{"admin", "superadmin"}, Render},
		{"role not in set", gateWithRole(t, "admin"), []string{"superadmin"}, RedirectLogin},
		{"empty role denied against requirement", gateWithRole(t, ""), []string{"admin"}, RedirectLogin},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Allow(tc.gate, tc.required))
		})
	}
}

func TestAllow_AfterLogout(t *testing.T) {
	gate := gateWithRole(t, "admin")
	require.NoError(t, gate.Logout(context.Background()))

	assert.Equal(t, RedirectLogin, Allow(gate, []string{"admin"}))
}
