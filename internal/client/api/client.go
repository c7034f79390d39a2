// Package api implements the client side of the content platform's REST
// contract. The admin console treats the backend as an opaque document
// store: list a collection, create/update/delete a record, plus the auth
// and liveness endpoints.
package api

import "context"

// Client is the surface the admin console uses to reach the backend.
//
// Collection payloads are raw JSON: each screen decodes them into its own
// record type, and the transport stays collection-agnostic.
type Client interface {
	// Ping checks backend liveness. Any error means unreachable.
	Ping(ctx context.Context) error

	// Login exchanges credentials for a profile and a bearer token.
	Login(ctx context.Context, username, password string) (*Profile, string, error)

	// FetchProfile returns the profile for the stored token.
	FetchProfile(ctx context.Context, token string) (*Profile, error)

	// List fetches every record of a collection as raw JSON.
	List(ctx context.Context, token, collection string) ([]byte, error)

	// Create posts a new record; body is the JSON-encoded record.
	Create(ctx context.Context, token, collection string, body []byte) error

	// Update replaces the record with the given id.
	Update(ctx context.Context, token, collection, id string, body []byte) error

	// Delete removes the record with the given id.
	Delete(ctx context.Context, token, collection, id string) error

	// UploadURL requests a presigned PUT URL from the media store.
	UploadURL(ctx context.Context, token string) (key string, url string, err error)
}

// Profile is the session identity returned by login and the profile
// endpoint. The same shape feeds both the auth gate and role checks.
type Profile struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	Role        string `json:"role"`
}
