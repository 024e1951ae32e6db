// Package crawl retrieves recipe pages and runs them through the extraction
// pipeline, one page at a time or as a rate limited batch import.
package crawl

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/keyran/recipekit"
	"golang.org/x/net/html"
)

var _ recipekit.RecipeParser = (*Parser)(nil)

// Parser fetches a recipe page and extracts its recipe with the extractor
// registered for the page's site.
type Parser struct {
	Fetcher     recipekit.Fetcher
	Extractors  recipekit.ExtractorRegistry
	RetryDelays []time.Duration
	Logf        LogFunc
}

// Parse implements recipekit.RecipeParser. The extractor is selected before
// any network I/O so unsupported sites fail without a request.
func (p *Parser) Parse(ctx context.Context, rawURL string) (*recipekit.Recipe, error) {
	url, err := recipekit.CanonicalURL(rawURL)
	if err != nil {
		return nil, err
	}

	extractor, err := p.Extractors.Lookup(url)
	if err != nil {
		return nil, err
	}

	body, err := FetchWithRetry(ctx, url, p.Fetcher.Fetch, p.Logf, p.RetryDelays)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}

	doc, err := html.Parse(strings.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", url, err)
	}

	recipe, err := extractor.Extract(doc, url)
	if err != nil {
		return nil, fmt.Errorf("extract %s: %w", url, err)
	}
	return recipe, nil
}
