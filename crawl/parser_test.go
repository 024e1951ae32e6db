package crawl_test

import (
	"context"
	"errors"
	"testing"

	"github.com/keyran/recipekit"
	"github.com/keyran/recipekit/crawl"
	"github.com/keyran/recipekit/goquery"
	"github.com/keyran/recipekit/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func TestParser_Parse(t *testing.T) {
	t.Parallel()

	t.Run("fetches canonical URL and extracts with selected extractor", func(t *testing.T) {
		t.Parallel()

		var fetched, extracted string
		fetcher := &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (string, error) {
				fetched = url
				return "<html><body><h1>Soup</h1></body></html>", nil
			},
		}
		extractor := &mock.Extractor{
			ExtractFn: func(doc *html.Node, url string) (*recipekit.Recipe, error) {
				require.NotNil(t, doc)
				extracted = url
				return &recipekit.Recipe{Name: "Soup", URL: url}, nil
			},
		}
		registry := &mock.ExtractorRegistry{
			LookupFn: func(string) (recipekit.Extractor, error) { return extractor, nil },
		}
		p := &crawl.Parser{Fetcher: fetcher, Extractors: registry}

		r, err := p.Parse(context.Background(), "  https://eda.ru/recepty/soup/  ")

		require.NoError(t, err)
		assert.Equal(t, "Soup", r.Name)
		assert.Equal(t, "https://eda.ru/recepty/soup", fetched)
		assert.Equal(t, "https://eda.ru/recepty/soup", extracted)
	})

	t.Run("fails unsupported site without fetching", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(context.Context, string) (string, error) {
				t.Fatal("unexpected fetch")
				return "", nil
			},
		}
		p := &crawl.Parser{Fetcher: fetcher, Extractors: goquery.NewDefaultRegistry()}

		_, err := p.Parse(context.Background(), "https://www.allrecipes.com/recipe/1")

		var unsupported *recipekit.UnsupportedSiteError
		require.ErrorAs(t, err, &unsupported)
		assert.Equal(t, "https://www.allrecipes.com/recipe/1", unsupported.URL)
	})

	t.Run("rejects invalid URL", func(t *testing.T) {
		t.Parallel()

		p := &crawl.Parser{Extractors: goquery.NewDefaultRegistry()}

		_, err := p.Parse(context.Background(), "eda.ru/recepty/1")

		assert.Equal(t, recipekit.EINVALID, recipekit.ErrorCode(err))
	})

	t.Run("wraps fetch errors", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(context.Context, string) (string, error) {
				return "", recipekit.Errorf(recipekit.ENOTFOUND, "page not found")
			},
		}
		p := &crawl.Parser{Fetcher: fetcher, Extractors: goquery.NewDefaultRegistry()}

		_, err := p.Parse(context.Background(), "https://eda.ru/recepty/missing")

		assert.Equal(t, recipekit.ENOTFOUND, recipekit.ErrorCode(err))
		assert.Contains(t, err.Error(), "fetch https://eda.ru/recepty/missing")
	})

	t.Run("propagates extractor errors", func(t *testing.T) {
		t.Parallel()

		want := errors.New("broken extractor")
		fetcher := &mock.Fetcher{
			FetchFn: func(context.Context, string) (string, error) { return "<html></html>", nil },
		}
		registry := &mock.ExtractorRegistry{
			LookupFn: func(string) (recipekit.Extractor, error) {
				return &mock.Extractor{
					ExtractFn: func(*html.Node, string) (*recipekit.Recipe, error) { return nil, want },
				}, nil
			},
		}
		p := &crawl.Parser{Fetcher: fetcher, Extractors: registry}

		_, err := p.Parse(context.Background(), "https://eda.ru/recepty/1")

		assert.ErrorIs(t, err, want)
	})

	t.Run("runs the default registry end to end", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(context.Context, string) (string, error) {
				return `<html><body><div itemscope itemtype="http://schema.org/Recipe">
<div itemprop="name"><h1 class="emotion-gl52ge">Borscht</h1></div>
</div></body></html>`, nil
			},
		}
		p := &crawl.Parser{Fetcher: fetcher, Extractors: goquery.NewDefaultRegistry()}

		r, err := p.Parse(context.Background(), "https://eda.ru/recepty/supy/borsch-1")

		require.NoError(t, err)
		assert.Equal(t, &recipekit.Recipe{Name: "Borscht", URL: "https://eda.ru/recepty/supy/borsch-1"}, r)
	})
}
