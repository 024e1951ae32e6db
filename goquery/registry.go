package goquery

import (
	"strings"

	"github.com/keyran/recipekit"
)

var _ recipekit.ExtractorRegistry = (*Registry)(nil)

// Site pairs a site identifier with the extractor for its pages.
type Site struct {
	// ID is matched as a substring of the page URL (e.g., "eda.ru").
	ID        string
	Extractor recipekit.Extractor
}

// Registry selects the extractor for a recipe page by its URL. Sites are
// tried in registration order and the first match wins. A Registry is
// immutable after construction and safe for concurrent use.
type Registry struct {
	sites []Site
}

// NewRegistry creates a Registry trying sites in the given order.
func NewRegistry(sites ...Site) *Registry {
	return &Registry{sites: append([]Site(nil), sites...)}
}

// NewDefaultRegistry creates a Registry with every supported recipe site.
func NewDefaultRegistry() *Registry {
	wprm := NewWPRMExtractor()
	return NewRegistry(
		Site{ID: "www.recipetineats.com", Extractor: wprm},
		Site{ID: "196flavors.com", Extractor: wprm},
		Site{ID: "eda.ru", Extractor: NewMicrodataExtractor(EdaRuClasses)},
	)
}

// Lookup returns the extractor of the first site whose ID occurs in url.
// Returns *recipekit.UnsupportedSiteError if no site matches.
func (r *Registry) Lookup(url string) (recipekit.Extractor, error) {
	for _, s := range r.sites {
		if strings.Contains(url, s.ID) {
			return s.Extractor, nil
		}
	}
	return nil, &recipekit.UnsupportedSiteError{URL: url}
}

// Sites returns the registered site IDs in lookup order.
func (r *Registry) Sites() []string {
	ids := make([]string, 0, len(r.sites))
	for _, s := range r.sites {
		ids = append(ids, s.ID)
	}
	return ids
}
