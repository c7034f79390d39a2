package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// HTTPClient talks to the content API over HTTP/JSON.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewHTTPClient creates a client for the API rooted at baseURL.
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *HTTPClient) newRequest(ctx context.Context, method, path, token string, body []byte) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return req, nil
}

// do executes the request and maps the response onto the error taxonomy:
// transport failure -> ErrUnavailable, 401 -> ErrUnauthorized, any other
// non-2xx -> ErrRejected. The body is returned for 2xx responses.
func (c *HTTPClient) do(req *http.Request) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, ErrUnavailable
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, ErrUnauthorized
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, fmt.Errorf("%w: status %d: %s", ErrRejected, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	return body, nil
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	req, err := c.newRequest(ctx, http.MethodGet, "/health", "", nil)
	if err != nil {
		return err
	}
	_, err = c.do(req)
	return err
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Profile *Profile `json:"profile"`
	Token   string   `json:"token"`
}

func (c *HTTPClient) Login(ctx context.Context, username, password string) (*Profile, string, error) {
	payload, err := json.Marshal(loginRequest{Username: username, Password: password})
	if err != nil {
		return nil, "", err
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/auth/login", "", payload)
	if err != nil {
		return nil, "", err
	}

	body, err := c.do(req)
	if err != nil {
		return nil, "", err
	}

	var resp loginResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, "", fmt.Errorf("failed to parse login response: %w", err)
	}
	if resp.Profile == nil || resp.Token == "" {
		return nil, "", fmt.Errorf("%w: incomplete login response", ErrRejected)
	}

	return resp.Profile, resp.Token, nil
}

func (c *HTTPClient) FetchProfile(ctx context.Context, token string) (*Profile, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/auth/profile", token, nil)
	if err != nil {
		return nil, err
	}

	body, err := c.do(req)
	if err != nil {
		return nil, err
	}

	profile := &Profile{}
	if err := json.Unmarshal(body, profile); err != nil {
		return nil, fmt.Errorf("failed to parse profile: %w", err)
	}

	return profile, nil
}

func (c *HTTPClient) List(ctx context.Context, token, collection string) ([]byte, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/"+collection, token, nil)
	if err != nil {
		return nil, err
	}
	return c.do(req)
}

func (c *HTTPClient) Create(ctx context.Context, token, collection string, body []byte) error {
	req, err := c.newRequest(ctx, http.MethodPost, "/"+collection, token, body)
	if err != nil {
		return err
	}
	_, err = c.do(req)
	return err
}

func (c *HTTPClient) Update(ctx context.Context, token, collection, id string, body []byte) error {
	req, err := c.newRequest(ctx, http.MethodPut, "/"+collection+"/"+id, token, body)
	if err != nil {
		return err
	}
	_, err = c.do(req)
	return err
}

func (c *HTTPClient) Delete(ctx context.Context, token, collection, id string) error {
	req, err := c.newRequest(ctx, http.MethodDelete, "/"+collection+"/"+id, token, nil)
	if err != nil {
		return err
	}
	_, err = c.do(req)
	return err
}

type uploadURLResponse struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

func (c *HTTPClient) UploadURL(ctx context.Context, token string) (string, string, error) {
	req, err := c.newRequest(ctx, http.MethodPost, "/media/upload-url", token, nil)
	if err != nil {
		return "", "", err
	}

	body, err := c.do(req)
	if err != nil {
		return "", "", err
	}

	var resp uploadURLResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", "", fmt.Errorf("failed to parse upload url response: %w", err)
	}

	return resp.Key, resp.URL, nil
}
