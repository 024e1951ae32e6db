package recipekit

import (
	"context"

	"golang.org/x/net/html"
)

// Extractor builds a Recipe from a parsed recipe page.
// Implementations hold no mutable state and are safe for concurrent use.
type Extractor interface {
	// Extract processes the parsed document and returns the recipe.
	// The url is the page's canonical source address and is always
	// copied into the record. Fields missing from the page are omitted;
	// an error is returned only for conditions the extractor cannot
	// recover from.
	Extract(doc *html.Node, url string) (*Recipe, error)

	// Name returns the extractor's identifier (e.g., "wprm", "microdata").
	Name() string
}

// ExtractorRegistry maps recipe page URLs to the extractor for their site.
type ExtractorRegistry interface {
	// Lookup returns the extractor responsible for url.
	// Returns *UnsupportedSiteError if no extractor is registered.
	Lookup(url string) (Extractor, error)

	// Sites returns the registered site identifiers in lookup order.
	Sites() []string
}

// RecipeParser retrieves a recipe page and extracts its recipe.
// Implementations hide URL canonicalization, extractor selection,
// fetching and HTML parsing.
type RecipeParser interface {
	Parse(ctx context.Context, url string) (*Recipe, error)
}
