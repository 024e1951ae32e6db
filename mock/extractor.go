package mock

import (
	"context"

	"github.com/keyran/recipekit"
	"golang.org/x/net/html"
)

var (
	_ recipekit.Extractor         = (*Extractor)(nil)
	_ recipekit.ExtractorRegistry = (*ExtractorRegistry)(nil)
	_ recipekit.RecipeParser      = (*RecipeParser)(nil)
)

// Extractor is a mock implementation of recipekit.Extractor.
type Extractor struct {
	ExtractFn func(doc *html.Node, url string) (*recipekit.Recipe, error)
	NameFn    func() string
}

func (e *Extractor) Extract(doc *html.Node, url string) (*recipekit.Recipe, error) {
	return e.ExtractFn(doc, url)
}

func (e *Extractor) Name() string {
	return e.NameFn()
}

// ExtractorRegistry is a mock implementation of recipekit.ExtractorRegistry.
type ExtractorRegistry struct {
	LookupFn func(url string) (recipekit.Extractor, error)
	SitesFn  func() []string
}

func (r *ExtractorRegistry) Lookup(url string) (recipekit.Extractor, error) {
	return r.LookupFn(url)
}

func (r *ExtractorRegistry) Sites() []string {
	return r.SitesFn()
}

// RecipeParser is a mock implementation of recipekit.RecipeParser.
type RecipeParser struct {
	ParseFn func(ctx context.Context, url string) (*recipekit.Recipe, error)
}

func (p *RecipeParser) Parse(ctx context.Context, url string) (*recipekit.Recipe, error) {
	return p.ParseFn(ctx, url)
}
