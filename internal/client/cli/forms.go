package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/freelancework02/welfare-admin/internal/client/api"
)

// recordPayload is the common write shape of every collection. Screens give
// the fields collection-specific meaning; the backend stores them as-is.
type recordPayload struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Body        string `json:"body,omitempty"`
}

// createRecord prompts for a new record and posts it. Returns true when the
// backend accepted it, so the caller knows to reload the list.
func (a *App) createRecord(ctx context.Context, collection string) bool {
	payload, ok := a.promptRecord()
	if !ok {
		return false
	}

	body, err := json.Marshal(payload)
	if err != nil {
		fmt.Fprintf(a.out, "Error: %s\n", err)
		return false
	}

	if err := a.client.Create(ctx, a.gate.Token(), collection, body); err != nil {
		a.reportWriteError(ctx, err)
		return false
	}
	fmt.Fprintln(a.out, "Created.")
	return true
}

// editRecord prompts for replacement values and updates the record.
func (a *App) editRecord(ctx context.Context, collection, id string) bool {
	payload, ok := a.promptRecord()
	if !ok {
		return false
	}

	body, err := json.Marshal(payload)
	if err != nil {
		fmt.Fprintf(a.out, "Error: %s\n", err)
		return false
	}

	if err := a.client.Update(ctx, a.gate.Token(), collection, id, body); err != nil {
		a.reportWriteError(ctx, err)
		return false
	}
	fmt.Fprintln(a.out, "Updated.")
	return true
}

// promptRecord collects the record fields. The title is validated locally
// so an obviously invalid record never reaches the backend.
func (a *App) promptRecord() (recordPayload, bool) {
	title, err := getSimpleText(a.reader, "Title", a.out)
	if err != nil {
		return recordPayload{}, false
	}
	if title == "" {
		fmt.Fprintln(a.out, "Title is required.")
		return recordPayload{}, false
	}

	description, err := getSimpleText(a.reader, "Description", a.out)
	if err != nil {
		return recordPayload{}, false
	}

	body, err := GetMultiline(a.reader, "Body", a.out)
	if err != nil {
		return recordPayload{}, false
	}

	return recordPayload{Title: title, Description: description, Body: body}, true
}

func (a *App) reportWriteError(ctx context.Context, err error) {
	switch {
	case a.gate.HandleUnauthorized(ctx, err):
		fmt.Fprintln(a.out, "Session expired, please log in again.")
	case errors.Is(err, api.ErrUnavailable):
		fmt.Fprintln(a.out, "Server unreachable, try again later.")
	default:
		fmt.Fprintf(a.out, "Rejected: %s\n", err)
	}
}

// Upload requests a presigned upload URL from the media store and prints
// it; the actual file transfer happens outside the console.
func (a *App) Upload(ctx context.Context) error {
	if !a.isLoggedIn() {
		fmt.Fprintln(a.out, "Please log in first.")
		return nil
	}

	key, url, err := a.client.UploadURL(ctx, a.gate.Token())
	if err != nil {
		a.reportWriteError(ctx, err)
		return err
	}

	fmt.Fprintf(a.out, "Object key: %s\nUpload with: curl -X PUT --upload-file <file> '%s'\n", key, url)
	return nil
}
