package recipekit

import (
	"context"
	"time"
)

// Entry is a recipe recorded in the local index.
type Entry struct {
	ID          string    `json:"id"`
	URL         string    `json:"url"`
	Name        string    `json:"name"`
	Recipe      *Recipe   `json:"recipe"`
	ContentHash string    `json:"contentHash"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Validate returns an error if the entry contains invalid fields.
func (e *Entry) Validate() error {
	if e.URL == "" {
		return Errorf(EINVALID, "entry URL required")
	}
	if e.Recipe == nil {
		return Errorf(EINVALID, "entry recipe required")
	}
	return nil
}

// EntryService represents a service for managing indexed recipes.
type EntryService interface {
	// SaveEntry inserts the entry, or replaces the entry with the same URL.
	SaveEntry(ctx context.Context, entry *Entry) error

	// FindEntryByURL retrieves an entry by its recipe URL.
	// Returns ENOTFOUND if the entry does not exist.
	FindEntryByURL(ctx context.Context, url string) (*Entry, error)

	// FindEntries retrieves entries matching the filter.
	FindEntries(ctx context.Context, filter EntryFilter) ([]*Entry, error)

	// DeleteEntry permanently removes an entry.
	// Returns ENOTFOUND if the entry does not exist.
	DeleteEntry(ctx context.Context, id string) error
}

// EntryFilter represents a filter for FindEntries.
type EntryFilter struct {
	URL  *string `json:"url"`
	Name *string `json:"name"` // substring match

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
