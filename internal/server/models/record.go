package models

import "time"

// Collection names served by the content API. Every collection shares the
// same storage shape; clients attach their own meaning to the fields.
const (
	CollectionBlogs      = "blogs"
	CollectionTopics     = "topics"
	CollectionCategories = "categories"
	CollectionArticles   = "articles"
	CollectionWriters    = "writers"
	CollectionBooks      = "books"
	CollectionLanguages  = "languages"
	CollectionContacts   = "contacts"
)

// KnownCollections lists every collection the server stores, in the order
// screens present them.
var KnownCollections = []string{
	CollectionBlogs,
	CollectionTopics,
	CollectionCategories,
	CollectionArticles,
	CollectionWriters,
	CollectionBooks,
	CollectionLanguages,
	CollectionContacts,
}

// IsKnownCollection reports whether name is a collection this server stores.
func IsKnownCollection(name string) bool {
	for _, c := range KnownCollections {
		if c == name {
			return true
		}
	}
	return false
}

// Record is one content document. The identifier is assigned by the server
// on create and never changes afterwards.
type Record struct {
	ID          string    `json:"id"`
	Collection  string    `json:"-"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Body        string    `json:"body,omitempty"`
	OwnerID     string    `json:"owner_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
