package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPing_OK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/health", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL)
	assert.NoError(t, c.Ping(context.Background()))
}

func TestPing_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing is listening any more

	c := NewHTTPClient(srv.URL)
	assert.ErrorIs(t, c.Ping(context.Background()), ErrUnavailable)
}

func TestLogin_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/auth/login", r.URL.Path)

		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "alice", req["username"])

		_ = json.NewEncoder(w).Encode(map[string]any{
			"profile": Profile{ID: "u-1", Username: "alice", Role: "admin"},
			"token":   "tok-123",
		})
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL)
	profile, token, err := c.Login(context.Background(), "alice", "pw")
	require.NoError(t, err)
	assert.Equal(t, "u-1", profile.ID)
	assert.Equal(t, "tok-123", token)
}

func TestLogin_BadCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL)
	_, _, err := c.Login(context.Background(), "alice", "wrong")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestFetchProfile_SendsBearerToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode(Profile{ID: "u-1", Role: "editor"})
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL)
	profile, err := c.FetchProfile(context.Background(), "tok-123")
	require.NoError(t, err)
	assert.Equal(t, "editor", profile.Role)
}

func TestList_ReturnsRawJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/blogs", r.URL.Path)
		_, _ = w.Write([]byte(`[{"id":"r-1"},{"id":"r-2"}]`))
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL)
	body, err := c.List(context.Background(), "tok", "blogs")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"r-1"},{"id":"r-2"}]`, string(body))
}

func TestDelete_RemoteRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL)
	err := c.Delete(context.Background(), "tok", "blogs", "missing")
	assert.ErrorIs(t, err, ErrRejected)
}

func TestUpdate_SendsBody(t *testing.T) {
	var gotMethod, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL)
	err := c.Update(context.Background(), "tok", "books", "r-1", []byte(`{"title":"T"}`))
	require.NoError(t, err)
	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "/books/r-1", gotPath)
}
