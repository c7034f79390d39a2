// Package models holds the typed records each admin screen works with.
// The transport delivers raw JSON; these are the per-screen decodings.
package models

import "time"

// Blog is a top-level publication grouping articles.
type Blog struct {
	RecordID    string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (b Blog) ID() string { return b.RecordID }

// Topic is a subject tag articles can be filed under.
type Topic struct {
	RecordID    string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

func (t Topic) ID() string { return t.RecordID }

// Category groups books and articles for navigation.
type Category struct {
	RecordID    string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

func (c Category) ID() string { return c.RecordID }

// Article is a published piece, owned by a writer.
type Article struct {
	RecordID    string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Body        string    `json:"body,omitempty"`
	WriterID    string    `json:"owner_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (a Article) ID() string { return a.RecordID }

// Writer is an author profile.
type Writer struct {
	RecordID  string    `json:"id"`
	Name      string    `json:"title"`
	Bio       string    `json:"description"`
	CreatedAt time.Time `json:"created_at"`
}

func (w Writer) ID() string { return w.RecordID }

// Book is a catalogued publication.
type Book struct {
	RecordID    string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	WriterID    string    `json:"owner_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func (b Book) ID() string { return b.RecordID }

// Language is a language option content can be published in.
type Language struct {
	RecordID  string    `json:"id"`
	Name      string    `json:"title"`
	Code      string    `json:"description"`
	CreatedAt time.Time `json:"created_at"`
}

func (l Language) ID() string { return l.RecordID }

// Contact is a submitted contact-form message.
type Contact struct {
	RecordID  string    `json:"id"`
	Name      string    `json:"title"`
	Message   string    `json:"description"`
	Email     string    `json:"body,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (c Contact) ID() string { return c.RecordID }
