package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/freelancework02/welfare-admin/internal/client/api"
	"github.com/freelancework02/welfare-admin/internal/client/guard"
	"github.com/freelancework02/welfare-admin/internal/client/listview"
	"github.com/freelancework02/welfare-admin/internal/client/models"
)

// lister is the non-generic face of a list controller, letting one screen
// loop drive any record type.
type lister interface {
	Load(ctx context.Context) error
	Abandon()
	SetSearchTerm(term string)
	SortBy(field string)
	Paginate(p int)
	CurrentPage() int
	TotalPages() int
	Count() int
	Remove(ctx context.Context, id string, confirm func() bool) error
	Columns() []string
	Rows() [][]string
}

// table adapts a typed listview controller to the lister interface.
type table[T listview.Record] struct {
	ctrl    *listview.Controller[T]
	columns []string
	render  func(T) []string
}

func (t *table[T]) Load(ctx context.Context) error { return t.ctrl.Load(ctx) }
func (t *table[T]) Abandon()                       { t.ctrl.Abandon() }
func (t *table[T]) SetSearchTerm(term string)      { t.ctrl.SetSearchTerm(term) }
func (t *table[T]) SortBy(field string)            { t.ctrl.SortBy(field) }
func (t *table[T]) Paginate(p int)                 { t.ctrl.Paginate(p) }
func (t *table[T]) CurrentPage() int               { return t.ctrl.CurrentPage() }
func (t *table[T]) TotalPages() int                { return t.ctrl.TotalPages() }
func (t *table[T]) Count() int                     { return t.ctrl.Count() }
func (t *table[T]) Columns() []string              { return t.columns }

func (t *table[T]) Remove(ctx context.Context, id string, confirm func() bool) error {
	return t.ctrl.Remove(ctx, id, confirm)
}

func (t *table[T]) Rows() [][]string {
	page := t.ctrl.Page()
	rows := make([][]string, 0, len(page))
	for _, rec := range page {
		rows = append(rows, t.render(rec))
	}
	return rows
}

// screenDef describes one collection screen: who may open it and how its
// records are searched, sorted, and displayed.
type screenDef struct {
	roles []string
	build func(a *App) (lister, error)
}

var screens = map[string]screenDef{
	"blogs": {build: func(a *App) (lister, error) {
		return newScreen(a, "blogs",
			[]string{"title", "description"},
			[]string{"ID", "TITLE", "DESCRIPTION", "CREATED"},
			func(r models.Blog, name string) any {
				switch name {
				case "title":
					return r.Title
				case "description":
					return r.Description
				case "created":
					return r.CreatedAt
				}
				return nil
			},
			func(r models.Blog) []string {
				return []string{r.RecordID, r.Title, r.Description, r.CreatedAt.Format("2006-01-02")}
			})
	}},
	"topics": {build: func(a *App) (lister, error) {
		return newScreen(a, "topics",
			[]string{"title", "description"},
			[]string{"ID", "TITLE", "DESCRIPTION", "CREATED"},
			func(r models.Topic, name string) any {
				switch name {
				case "title":
					return r.Title
				case "description":
					return r.Description
				case "created":
					return r.CreatedAt
				}
				return nil
			},
			func(r models.Topic) []string {
				return []string{r.RecordID, r.Title, r.Description, r.CreatedAt.Format("2006-01-02")}
			})
	}},
	"categories": {build: func(a *App) (lister, error) {
		return newScreen(a, "categories",
			[]string{"title", "description"},
			[]string{"ID", "TITLE", "DESCRIPTION", "CREATED"},
			func(r models.Category, name string) any {
				switch name {
				case "title":
					return r.Title
				case "description":
					return r.Description
				case "created":
					return r.CreatedAt
				}
				return nil
			},
			func(r models.Category) []string {
				return []string{r.RecordID, r.Title, r.Description, r.CreatedAt.Format("2006-01-02")}
			})
	}},
	"articles": {build: func(a *App) (lister, error) {
		return newScreen(a, "articles",
			[]string{"title", "description"},
			[]string{"ID", "TITLE", "DESCRIPTION", "UPDATED"},
			func(r models.Article, name string) any {
				switch name {
				case "title":
					return r.Title
				case "description":
					return r.Description
				case "created":
					return r.CreatedAt
				case "updated":
					return r.UpdatedAt
				}
				return nil
			},
			func(r models.Article) []string {
				return []string{r.RecordID, r.Title, r.Description, r.UpdatedAt.Format("2006-01-02 15:04")}
			})
	}},
	"writers": {build: func(a *App) (lister, error) {
		return newScreen(a, "writers",
			[]string{"name", "bio"},
			[]string{"ID", "NAME", "BIO", "CREATED"},
			func(r models.Writer, name string) any {
				switch name {
				case "name":
					return r.Name
				case "bio":
					return r.Bio
				case "created":
					return r.CreatedAt
				}
				return nil
			},
			func(r models.Writer) []string {
				return []string{r.RecordID, r.Name, r.Bio, r.CreatedAt.Format("2006-01-02")}
			})
	}},
	"books": {build: func(a *App) (lister, error) {
		return newScreen(a, "books",
			[]string{"title", "description"},
			[]string{"ID", "TITLE", "DESCRIPTION", "CREATED"},
			func(r models.Book, name string) any {
				switch name {
				case "title":
					return r.Title
				case "description":
					return r.Description
				case "created":
					return r.CreatedAt
				}
				return nil
			},
			func(r models.Book) []string {
				return []string{r.RecordID, r.Title, r.Description, r.CreatedAt.Format("2006-01-02")}
			})
	}},
	"languages": {build: func(a *App) (lister, error) {
		return newScreen(a, "languages",
			[]string{"name", "code"},
			[]string{"ID", "NAME", "CODE"},
			func(r models.Language, name string) any {
				switch name {
				case "name":
					return r.Name
				case "code":
					return r.Code
				case "created":
					return r.CreatedAt
				}
				return nil
			},
			func(r models.Language) []string {
				return []string{r.RecordID, r.Name, r.Code}
			})
	}},
	// Contact submissions carry visitor addresses, so the screen is
	// limited to administrators.
	"contacts": {roles: []string{"admin", "superadmin"}, build: func(a *App) (lister, error) {
		return newScreen(a, "contacts",
			[]string{"name", "email", "message"},
			[]string{"ID", "NAME", "EMAIL", "MESSAGE", "RECEIVED"},
			func(r models.Contact, name string) any {
				switch name {
				case "name":
					return r.Name
				case "email":
					return r.Email
				case "message":
					return r.Message
				case "created":
					return r.CreatedAt
				}
				return nil
			},
			func(r models.Contact) []string {
				return []string{r.RecordID, r.Name, r.Email, r.Message, r.CreatedAt.Format("2006-01-02 15:04")}
			})
	}},
}

func collectionNames() []string {
	names := make([]string, 0, len(screens))
	for name := range screens {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func newScreen[T listview.Record](a *App, collection string, searchFields, columns []string, field func(T, string) any, render func(T) []string) (lister, error) {
	ctrl, err := listview.NewController(listview.Config[T]{
		SearchFields: searchFields,
		PageSize:     a.config.UI.PageSize,
		Field:        field,
		Fetch:        fetchCollection[T](a, collection),
		Delete:       deleteRecord(a, collection),
	})
	if err != nil {
		return nil, err
	}
	return &table[T]{ctrl: ctrl, columns: columns, render: render}, nil
}

// fetchCollection loads a collection from the backend, keeping the local
// snapshot current. When the backend is unreachable the last snapshot is
// shown instead; a 401 forces a logout and is never retried.
func fetchCollection[T any](a *App, collection string) func(context.Context) ([]T, error) {
	return func(ctx context.Context) ([]T, error) {
		raw, err := a.client.List(ctx, a.gate.Token(), collection)
		switch {
		case err == nil:
			if serr := a.store.SaveSnapshot(collection, raw); serr != nil {
				a.logger.Warn(ctx, "saving snapshot failed", "collection", collection, "error", serr)
			}
		case a.gate.HandleUnauthorized(ctx, err):
			return nil, err
		case errors.Is(err, api.ErrUnavailable):
			snap, serr := a.store.LoadSnapshot(collection)
			if serr != nil || snap == nil {
				return nil, err
			}
			a.logger.Info(ctx, "backend unreachable, showing cached records", "collection", collection)
			raw = snap
		default:
			return nil, err
		}

		var out []T
		if err := json.Unmarshal(raw, &out); err != nil {
			return nil, fmt.Errorf("decoding %s records: %w", collection, err)
		}
		return out, nil
	}
}

func deleteRecord(a *App, collection string) func(context.Context, string) error {
	return func(ctx context.Context, id string) error {
		err := a.client.Delete(ctx, a.gate.Token(), collection, id)
		if err != nil {
			a.gate.HandleUnauthorized(ctx, err)
		}
		return err
	}
}

// Open runs one collection screen until the user types "back". The role
// check happens before anything is built or fetched.
func (a *App) Open(ctx context.Context, name string) error {
	def, ok := screens[name]
	if !ok {
		fmt.Fprintln(a.out, "Unknown collection:", name)
		return nil
	}

	if guard.Allow(a.gate, def.roles) != guard.Render {
		if !a.gate.IsAuthenticated() {
			fmt.Fprintln(a.out, "Please log in first.")
		} else {
			fmt.Fprintf(a.out, "Your role does not allow access to %s.\n", name)
		}
		return nil
	}

	scr, err := def.build(a)
	if err != nil {
		return err
	}
	defer scr.Abandon()

	if err := scr.Load(ctx); err != nil {
		fmt.Fprintf(a.out, "Load failed: %s (type 'refresh' to retry)\n", err)
	} else {
		a.renderPage(scr)
	}

	for {
		if ctx.Err() != nil {
			return nil
		}
		line, err := getSimpleText(a.reader, fmt.Sprintf("[%s] search/sort/page/next/prev/new/edit/delete/refresh/back", name), a.out)
		if err != nil {
			return nil
		}
		if !a.gate.IsAuthenticated() {
			// The session may have been killed by a 401 mid-screen.
			fmt.Fprintln(a.out, "Session expired, please log in again.")
			return nil
		}

		cmd, arg := splitCommand(line)
		switch cmd {
		case "":
			continue

		case "search":
			scr.SetSearchTerm(arg)
			a.renderPage(scr)

		case "sort":
			if arg == "" {
				fmt.Fprintln(a.out, "Usage: sort <field>")
				continue
			}
			scr.SortBy(arg)
			a.renderPage(scr)

		case "page":
			var p int
			if _, err := fmt.Sscanf(arg, "%d", &p); err != nil {
				fmt.Fprintln(a.out, "Usage: page <number>")
				continue
			}
			scr.Paginate(p)
			a.renderPage(scr)

		case "next":
			scr.Paginate(scr.CurrentPage() + 1)
			a.renderPage(scr)

		case "prev":
			scr.Paginate(scr.CurrentPage() - 1)
			a.renderPage(scr)

		case "new":
			if a.createRecord(ctx, name) {
				a.reload(ctx, scr)
			}

		case "edit":
			if arg == "" {
				fmt.Fprintln(a.out, "Usage: edit <id>")
				continue
			}
			if a.editRecord(ctx, name, arg) {
				a.reload(ctx, scr)
			}

		case "delete":
			if arg == "" {
				fmt.Fprintln(a.out, "Usage: delete <id>")
				continue
			}
			a.deleteWithConfirm(ctx, scr, arg)

		case "refresh":
			a.reload(ctx, scr)

		case "back", "exit", "quit":
			return nil

		default:
			fmt.Fprintln(a.out, "Unknown command:", cmd)
		}
	}
}

// reload refetches the screen's records and re-renders, reporting a failed
// load instead of silently showing the stale page.
func (a *App) reload(ctx context.Context, scr lister) {
	if err := scr.Load(ctx); err != nil {
		fmt.Fprintf(a.out, "Load failed: %s\n", err)
		return
	}
	a.renderPage(scr)
}

func (a *App) deleteWithConfirm(ctx context.Context, scr lister, id string) {
	confirm := func() bool {
		answer, err := getSimpleText(a.reader, fmt.Sprintf("Delete record %s? (y/N)", id), a.out)
		return err == nil && (answer == "y" || answer == "Y" || answer == "yes")
	}

	err := scr.Remove(ctx, id, confirm)
	switch {
	case err == nil:
		fmt.Fprintln(a.out, "Deleted.")
		a.renderPage(scr)
	case errors.Is(err, listview.ErrNotConfirmed):
		fmt.Fprintln(a.out, "Cancelled.")
	case errors.Is(err, listview.ErrDeleteInFlight):
		fmt.Fprintln(a.out, "A delete for this record is already in progress.")
	default:
		fmt.Fprintf(a.out, "Delete failed: %s\n", err)
	}
}

func (a *App) renderPage(scr lister) {
	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	for i, col := range scr.Columns() {
		if i > 0 {
			fmt.Fprint(w, "\t")
		}
		fmt.Fprint(w, col)
	}
	fmt.Fprintln(w)
	for _, row := range scr.Rows() {
		for i, cell := range row {
			if i > 0 {
				fmt.Fprint(w, "\t")
			}
			fmt.Fprint(w, cell)
		}
		fmt.Fprintln(w)
	}
	w.Flush()
	fmt.Fprintf(a.out, "page %d/%d, %d records\n", scr.CurrentPage(), scr.TotalPages(), scr.Count())
}

func splitCommand(line string) (string, string) {
	cmd, rest, _ := strings.Cut(strings.TrimSpace(line), " ")
	return cmd, strings.TrimSpace(rest)
}
