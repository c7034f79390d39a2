package session

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/freelancework02/welfare-admin/internal/client/api"
	"github.com/freelancework02/welfare-admin/internal/client/cache"
	"github.com/freelancework02/welfare-admin/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClient scripts the backend's behavior per test.
type fakeClient struct {
	pingErr error

	loginProfile *api.Profile
	loginToken   string
	loginErr     error
	loginCalls   int

	profileOut   *api.Profile
	profileErr   error
	profileCalls int
}

func (f *fakeClient) Ping(ctx context.Context) error { return f.pingErr }

func (f *fakeClient) Login(ctx context.Context, username, password string) (*api.Profile, string, error) {
	f.loginCalls++
	if f.loginErr != nil {
		return nil, "", f.loginErr
	}
	return f.loginProfile, f.loginToken, nil
}

func (f *fakeClient) FetchProfile(ctx context.Context, token string) (*api.Profile, error) {
	f.profileCalls++
	if f.profileErr != nil {
		return nil, f.profileErr
	}
	return f.profileOut, nil
}

func (f *fakeClient) List(ctx context.Context, token, collection string) ([]byte, error) {
	return nil, nil
}
func (f *fakeClient) Create(ctx context.Context, token, collection string, body []byte) error {
	return nil
}
func (f *fakeClient) Update(ctx context.Context, token, collection, id string, body []byte) error {
	return nil
}
func (f *fakeClient) Delete(ctx context.Context, token, collection, id string) error { return nil }
func (f *fakeClient) UploadURL(ctx context.Context, token string) (string, string, error) {
	return "", "", nil
}

func newTestGate(t *testing.T, client api.Client) (*Gate, *cache.Store) {
	t.Helper()
	store, err := cache.NewStore("")
	require.NoError(t, err)
	logger := logging.NewSlogLogger(slog.New(slog.DiscardHandler))
	return NewGate(client, store, logger), store
}

func TestRestore_NoToken(t *testing.T) {
	client := &fakeClient{}
	gate, _ := newTestGate(t, client)

	require.NoError(t, gate.Restore(context.Background()))

	assert.False(t, gate.IsAuthenticated())
	assert.Equal(t, StatusOnline, gate.Status(), "nothing to check means presumed online")
	assert.True(t, gate.Restored())
	assert.Equal(t, 0, client.profileCalls, "no token, no profile fetch")
}

func TestRestore_BackendOffline_KeepsToken(t *testing.T) {
	client := &fakeClient{pingErr: api.ErrUnavailable}
	gate, store := newTestGate(t, client)
	require.NoError(t, store.SaveToken("tok-123"))

	require.NoError(t, gate.Restore(context.Background()))

	assert.False(t, gate.IsAuthenticated())
	assert.Equal(t, StatusOffline, gate.Status())

	tok, err := store.LoadToken()
	require.NoError(t, err)
	assert.Equal(t, "tok-123", tok, "offline must not destroy the session")
}

func TestRestore_ExpiredToken_ForcesLogout(t *testing.T) {
	client := &fakeClient{profileErr: api.ErrUnauthorized}
	gate, store := newTestGate(t, client)
	require.NoError(t, store.SaveToken("tok-expired"))

	require.NoError(t, gate.Restore(context.Background()))

	assert.False(t, gate.IsAuthenticated())

	tok, err := store.LoadToken()
	require.NoError(t, err)
	assert.Empty(t, tok, "expired token must be cleared")
}

func TestRestore_ProfileFetchFails_KeepsTokenAndReports(t *testing.T) {
	client := &fakeClient{profileErr: errors.New("boom")}
	gate, store := newTestGate(t, client)
	require.NoError(t, store.SaveToken("tok-123"))

	err := gate.Restore(context.Background())
	require.Error(t, err, "non-401 failures are reported, not swallowed")

	assert.False(t, gate.IsAuthenticated())

	tok, lerr := store.LoadToken()
	require.NoError(t, lerr)
	assert.Equal(t, "tok-123", tok, "token kept for manual retry")
}

func TestRestore_Success(t *testing.T) {
	client := &fakeClient{profileOut: &api.Profile{ID: "u-1", Username: "alice", Role: "admin"}}
	gate, store := newTestGate(t, client)
	require.NoError(t, store.SaveToken("tok-123"))

	require.NoError(t, gate.Restore(context.Background()))

	require.True(t, gate.IsAuthenticated())
	assert.Equal(t, "alice", gate.User().Username)
	assert.Equal(t, StatusOnline, gate.Status())
}

func TestLogin_SetsUserWithoutProfileFetch(t *testing.T) {
	client := &fakeClient{
		loginProfile: &api.Profile{ID: "u-1", Username: "alice", Role: "admin"},
		loginToken:   "tok-new",
	}
	gate, store := newTestGate(t, client)

	profile, err := gate.Login(context.Background(), "alice", "pw")
	require.NoError(t, err)
	assert.Equal(t, "u-1", profile.ID)

	assert.True(t, gate.IsAuthenticated())
	assert.Equal(t, 0, client.profileCalls, "login must not trigger a second profile call")

	tok, err := store.LoadToken()
	require.NoError(t, err)
	assert.Equal(t, "tok-new", tok)
}

func TestLogin_FailureLeavesStateUntouched(t *testing.T) {
	client := &fakeClient{loginErr: api.ErrUnauthorized}
	gate, store := newTestGate(t, client)

	_, err := gate.Login(context.Background(), "alice", "wrong")
	require.Error(t, err)

	assert.False(t, gate.IsAuthenticated())
	tok, _ := store.LoadToken()
	assert.Empty(t, tok)
}

func TestLogout_Idempotent(t *testing.T) {
	client := &fakeClient{
		loginProfile: &api.Profile{ID: "u-1"},
		loginToken:   "tok",
	}
	gate, store := newTestGate(t, client)

	_, err := gate.Login(context.Background(), "alice", "pw")
	require.NoError(t, err)

	require.NoError(t, gate.Logout(context.Background()))
	assert.False(t, gate.IsAuthenticated())
	assert.Empty(t, gate.Token())

	require.NoError(t, gate.Logout(context.Background()), "second logout is a no-op")

	tok, _ := store.LoadToken()
	assert.Empty(t, tok)
}

func TestHandleUnauthorized(t *testing.T) {
	client := &fakeClient{
		loginProfile: &api.Profile{ID: "u-1"},
		loginToken:   "tok",
	}
	gate, _ := newTestGate(t, client)

	_, err := gate.Login(context.Background(), "alice", "pw")
	require.NoError(t, err)

	assert.False(t, gate.HandleUnauthorized(context.Background(), errors.New("other")))
	assert.True(t, gate.IsAuthenticated(), "non-401 errors leave the session alone")

	assert.True(t, gate.HandleUnauthorized(context.Background(), api.ErrUnauthorized))
	assert.False(t, gate.IsAuthenticated(), "401 forces logout")
}
