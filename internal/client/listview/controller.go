// Package listview implements the one list-management contract every
// collection screen shares: load, search-filter, sort, paginate, and
// delete-with-confirmation. Screens differ only in their record type and a
// small config; the logic lives here exactly once.
package listview

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

// Record is any row a list screen can display.
type Record interface {
	ID() string
}

// SortDirection orders a sorted column.
type SortDirection int

const (
	Ascending SortDirection = iota
	Descending
)

var (
	// ErrNotConfirmed is returned when a delete was requested but the
	// user did not confirm it. Nothing was sent to the backend.
	ErrNotConfirmed = errors.New("delete not confirmed")

	// ErrDeleteInFlight guards against a second delete for an id whose
	// first delete has not completed yet.
	ErrDeleteInFlight = errors.New("delete already in flight")
)

// Config parametrizes a Controller for one screen.
//
// Field returns the value of a named field for searching and sorting.
// Supported value types are string (compared case-insensitively) and
// time.Time (compared chronologically).
type Config[T Record] struct {
	// SearchFields are the field names matched against the search term.
	SearchFields []string

	// SortKey is the initial sort column ("" for fetch order).
	SortKey string

	// PageSize must be positive.
	PageSize int

	// Field extracts a named field's value from a record.
	Field func(record T, name string) any

	// Fetch loads the full collection from the backend.
	Fetch func(ctx context.Context) ([]T, error)

	// Delete removes one record on the backend.
	Delete func(ctx context.Context, id string) error
}

// Controller holds the view state of one list screen. The derived views
// (Filtered, Page, TotalPages) are pure functions of the state and are
// recomputed on every call; nothing derived is stored.
type Controller[T Record] struct {
	cfg Config[T]

	mu         sync.Mutex
	records    []T
	searchTerm string
	sortKey    string
	sortDir    SortDirection
	page       int
	loadErr    error
	loading    bool
	generation int
	deleting   map[string]bool
}

func NewController[T Record](cfg Config[T]) (*Controller[T], error) {
	if cfg.PageSize <= 0 {
		return nil, fmt.Errorf("page size must be positive, got %d", cfg.PageSize)
	}
	if cfg.Field == nil || cfg.Fetch == nil || cfg.Delete == nil {
		return nil, errors.New("field, fetch, and delete callbacks are required")
	}
	return &Controller[T]{
		cfg:      cfg,
		sortKey:  cfg.SortKey,
		page:     1,
		deleting: make(map[string]bool),
	}, nil
}

// Load fetches the collection and replaces the local records, resetting to
// page 1. On failure the previous records are kept and the error is stored
// for the screen's retry affordance. A result arriving after Abandon (or
// after a newer Load started) is discarded: a screen that was left must not
// be written to.
func (c *Controller[T]) Load(ctx context.Context) error {
	c.mu.Lock()
	c.generation++
	gen := c.generation
	c.loading = true
	c.mu.Unlock()

	records, err := c.cfg.Fetch(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.generation {
		// A newer load started or the screen was abandoned.
		return nil
	}
	c.loading = false

	if err != nil {
		c.loadErr = err
		return err
	}

	c.records = records
	c.loadErr = nil
	c.page = 1
	return nil
}

// Abandon invalidates any in-flight Load. Called when the user navigates
// away from the screen.
func (c *Controller[T]) Abandon() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generation++
	c.loading = false
}

// Loading reports whether a Load is in flight.
func (c *Controller[T]) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// Err returns the error of the last failed load, nil after a success.
func (c *Controller[T]) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loadErr
}

// SetSearchTerm updates the filter and jumps back to page 1.
func (c *Controller[T]) SetSearchTerm(term string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.searchTerm = term
	c.page = 1
}

// SortBy sorts on field, toggling the direction when the field repeats the
// current sort key.
func (c *Controller[T]) SortBy(field string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.sortKey == field {
		if c.sortDir == Ascending {
			c.sortDir = Descending
		} else {
			c.sortDir = Ascending
		}
		return
	}
	c.sortKey = field
	c.sortDir = Ascending
}

// SortState returns the current sort column and direction.
func (c *Controller[T]) SortState() (string, SortDirection) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sortKey, c.sortDir
}

// Paginate moves to page p; out-of-range values are ignored.
func (c *Controller[T]) Paginate(p int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if p < 1 || p > c.totalPagesLocked() {
		return
	}
	c.page = p
}

// CurrentPage returns the page number clamped to the valid range; the
// clamp matters when a search term shrinks the result set under the
// current page.
func (c *Controller[T]) CurrentPage() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.currentPageLocked()
}

func (c *Controller[T]) currentPageLocked() int {
	total := c.totalPagesLocked()
	if c.page > total {
		return total
	}
	if c.page < 1 {
		return 1
	}
	return c.page
}

// TotalPages is at least 1, even for an empty result set.
func (c *Controller[T]) TotalPages() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.totalPagesLocked()
}

func (c *Controller[T]) totalPagesLocked() int {
	n := len(c.filteredLocked())
	if n == 0 {
		return 1
	}
	return (n + c.cfg.PageSize - 1) / c.cfg.PageSize
}

// Count returns the number of records after filtering.
func (c *Controller[T]) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.filteredLocked())
}

// Filtered returns the records matching the search term, sorted by the
// current sort state. Always a fresh slice; the backing records are never
// reordered.
func (c *Controller[T]) Filtered() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filteredLocked()
}

func (c *Controller[T]) filteredLocked() []T {
	out := make([]T, 0, len(c.records))

	term := strings.ToLower(strings.TrimSpace(c.searchTerm))
	for _, rec := range c.records {
		if term == "" || c.matches(rec, term) {
			out = append(out, rec)
		}
	}

	if c.sortKey != "" {
		key := c.sortKey
		desc := c.sortDir == Descending
		sort.SliceStable(out, func(i, j int) bool {
			cmp := compareValues(c.cfg.Field(out[i], key), c.cfg.Field(out[j], key))
			if desc {
				return cmp > 0
			}
			return cmp < 0
		})
	}

	return out
}

func (c *Controller[T]) matches(rec T, term string) bool {
	for _, name := range c.cfg.SearchFields {
		s, ok := c.cfg.Field(rec, name).(string)
		if !ok {
			continue
		}
		if strings.Contains(strings.ToLower(s), term) {
			return true
		}
	}
	return false
}

// Page returns the records of the current page.
func (c *Controller[T]) Page() []T {
	c.mu.Lock()
	defer c.mu.Unlock()

	filtered := c.filteredLocked()
	page := c.currentPageLocked()

	start := (page - 1) * c.cfg.PageSize
	if start >= len(filtered) {
		return nil
	}
	end := start + c.cfg.PageSize
	if end > len(filtered) {
		end = len(filtered)
	}
	return filtered[start:end]
}

// Remove deletes the record with the given id after confirm approves it.
// The local copy is dropped only after the backend reports success; a
// failed delete leaves the records untouched. A second Remove for the same
// id while the first is in flight returns ErrDeleteInFlight.
func (c *Controller[T]) Remove(ctx context.Context, id string, confirm func() bool) error {
	c.mu.Lock()
	if c.deleting[id] {
		c.mu.Unlock()
		return ErrDeleteInFlight
	}
	c.deleting[id] = true
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		delete(c.deleting, id)
		c.mu.Unlock()
	}()

	if !confirm() {
		return ErrNotConfirmed
	}

	if err := c.cfg.Delete(ctx, id); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for i, rec := range c.records {
		if rec.ID() == id {
			c.records = append(c.records[:i], c.records[i+1:]...)
			break
		}
	}
	return nil
}

// compareValues orders two field values: strings case-insensitively,
// times chronologically. Unknown types compare equal, which keeps the
// stable sort's input order.
func compareValues(a, b any) int {
	switch av := a.(type) {
	case string:
		bv, _ := b.(string)
		return strings.Compare(strings.ToLower(av), strings.ToLower(bv))
	case time.Time:
		bv, _ := b.(time.Time)
		switch {
		case av.Before(bv):
			return -1
		case av.After(bv):
			return 1
		}
		return 0
	}
	return 0
}
