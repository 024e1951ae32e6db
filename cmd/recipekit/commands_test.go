package main_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/keyran/recipekit"
	main "github.com/keyran/recipekit/cmd/recipekit"
	"github.com/keyran/recipekit/crawl"
	"github.com/keyran/recipekit/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDeps() (*main.Dependencies, *bytes.Buffer, *bytes.Buffer) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	return &main.Dependencies{
		Ctx:    context.Background(),
		Stdout: stdout,
		Stderr: stderr,
	}, stdout, stderr
}

func borscht() *recipekit.Recipe {
	return &recipekit.Recipe{
		Name:             "Borscht",
		URL:              "https://eda.ru/recepty/supy/borsch-12345",
		RecipeIngredient: []string{"Beetroot (2 pcs)"},
	}
}

func TestParseCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints recipe JSON", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := newDeps()
		deps.Parser = &mock.RecipeParser{
			ParseFn: func(_ context.Context, url string) (*recipekit.Recipe, error) {
				assert.Equal(t, "https://eda.ru/recepty/supy/borsch-12345", url)
				return borscht(), nil
			},
		}

		err := (&main.ParseCmd{URL: "https://eda.ru/recepty/supy/borsch-12345"}).Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), `"name": "Borscht"`)
	})

	t.Run("writes recipe to output file", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := newDeps()
		deps.Parser = &mock.RecipeParser{
			ParseFn: func(context.Context, string) (*recipekit.Recipe, error) {
				return borscht(), nil
			},
		}
		out := filepath.Join(t.TempDir(), "borscht.json")

		err := (&main.ParseCmd{URL: "https://eda.ru/recepty/supy/borsch-12345", Output: out}).Run(deps)

		require.NoError(t, err)
		data, err := os.ReadFile(out)
		require.NoError(t, err)
		assert.Contains(t, string(data), "Borscht")
		assert.NotContains(t, stdout.String(), `"name"`)
	})

	t.Run("stores recipe when directory given", func(t *testing.T) {
		t.Parallel()

		var saved *recipekit.Recipe
		deps, stdout, _ := newDeps()
		deps.Parser = &mock.RecipeParser{
			ParseFn: func(context.Context, string) (*recipekit.Recipe, error) {
				return borscht(), nil
			},
		}
		deps.Store = &mock.RecipeStore{
			SaveRecipeFn: func(_ context.Context, r *recipekit.Recipe) error {
				saved = r
				return nil
			},
		}

		err := (&main.ParseCmd{URL: "https://eda.ru/recepty/supy/borsch-12345", Dir: "/recipes"}).Run(deps)

		require.NoError(t, err)
		require.NotNil(t, saved)
		assert.Equal(t, "Borscht", saved.Name)
		assert.Contains(t, stdout.String(), "Saved")
	})

	t.Run("reports unsupported site", func(t *testing.T) {
		t.Parallel()

		deps, stdout, stderr := newDeps()
		deps.Parser = &mock.RecipeParser{
			ParseFn: func(_ context.Context, url string) (*recipekit.Recipe, error) {
				return nil, &recipekit.UnsupportedSiteError{URL: url}
			},
		}

		err := (&main.ParseCmd{URL: "https://example.com/recipe"}).Run(deps)

		require.Error(t, err)
		assert.Equal(t, recipekit.EUNSUPPORTED, recipekit.ErrorCode(err))
		assert.Contains(t, stderr.String(), "unsupported URL: https://example.com/recipe")
		assert.Empty(t, stdout.String())
	})
}

func TestImportCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("imports listed URLs and skips duplicates", func(t *testing.T) {
		t.Parallel()

		list := filepath.Join(t.TempDir(), "urls.txt")
		require.NoError(t, os.WriteFile(list, []byte(
			"# weekly plan\nhttps://eda.ru/recepty/a\n\nhttps://eda.ru/recepty/b\nhttps://eda.ru/recepty/a/\n"), 0644))

		var stored []string
		deps, stdout, _ := newDeps()
		deps.Importer = &crawl.Importer{
			Parser: &mock.RecipeParser{
				ParseFn: func(_ context.Context, url string) (*recipekit.Recipe, error) {
					return &recipekit.Recipe{Name: "x", URL: url}, nil
				},
			},
			Store: &mock.RecipeStore{
				SaveRecipeFn: func(_ context.Context, r *recipekit.Recipe) error {
					stored = append(stored, r.URL)
					return nil
				},
			},
		}

		err := (&main.ImportCmd{File: list, Concurrency: 1}).Run(deps)

		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"https://eda.ru/recepty/a", "https://eda.ru/recepty/b"}, stored)
		assert.Contains(t, stdout.String(), "Imported 2 recipes (1 duplicates, 0 failed)")
	})

	t.Run("rejects empty list", func(t *testing.T) {
		t.Parallel()

		list := filepath.Join(t.TempDir(), "urls.txt")
		require.NoError(t, os.WriteFile(list, []byte("# nothing yet\n"), 0644))

		deps, _, stderr := newDeps()
		deps.Importer = &crawl.Importer{}

		err := (&main.ImportCmd{File: list}).Run(deps)

		require.Error(t, err)
		assert.Equal(t, recipekit.EINVALID, recipekit.ErrorCode(err))
		assert.Contains(t, stderr.String(), "lists no URLs")
	})
}

func TestListCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("lists entries with date, name, and URL", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := newDeps()
		deps.Entries = &mock.EntryService{
			FindEntriesFn: func(_ context.Context, filter recipekit.EntryFilter) ([]*recipekit.Entry, error) {
				require.NotNil(t, filter.Name)
				assert.Equal(t, "Bor", *filter.Name)
				assert.Equal(t, 5, filter.Limit)
				return []*recipekit.Entry{{
					ID:        "e1",
					Name:      "Borscht",
					URL:       "https://eda.ru/recepty/supy/borsch-12345",
					UpdatedAt: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
				}}, nil
			},
		}

		err := (&main.ListCmd{Name: "Bor", Limit: 5}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "2026-03-01  Borscht  https://eda.ru/recepty/supy/borsch-12345\n", stdout.String())
	})

	t.Run("shows helpful message when index is empty", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := newDeps()
		deps.Entries = &mock.EntryService{
			FindEntriesFn: func(_ context.Context, filter recipekit.EntryFilter) ([]*recipekit.Entry, error) {
				assert.Nil(t, filter.Name)
				return nil, nil
			},
		}

		err := (&main.ListCmd{}).Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "No recipes found")
	})

	t.Run("returns service error", func(t *testing.T) {
		t.Parallel()

		deps, _, stderr := newDeps()
		deps.Entries = &mock.EntryService{
			FindEntriesFn: func(context.Context, recipekit.EntryFilter) ([]*recipekit.Entry, error) {
				return nil, errors.New("database locked")
			},
		}

		err := (&main.ListCmd{}).Run(deps)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "error:")
	})
}

func TestShowCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints stored recipe", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := newDeps()
		deps.Entries = &mock.EntryService{
			FindEntryByURLFn: func(_ context.Context, url string) (*recipekit.Entry, error) {
				assert.Equal(t, "https://eda.ru/recepty/supy/borsch-12345", url)
				return &recipekit.Entry{ID: "e1", URL: url, Recipe: borscht()}, nil
			},
		}

		err := (&main.ShowCmd{URL: " https://eda.ru/recepty/supy/borsch-12345/ "}).Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), `"recipeIngredient"`)
	})

	t.Run("reports missing recipe", func(t *testing.T) {
		t.Parallel()

		deps, _, stderr := newDeps()
		deps.Entries = &mock.EntryService{
			FindEntryByURLFn: func(context.Context, string) (*recipekit.Entry, error) {
				return nil, recipekit.Errorf(recipekit.ENOTFOUND, "entry not found")
			},
		}

		err := (&main.ShowCmd{URL: "https://eda.ru/recepty/missing"}).Run(deps)

		require.Error(t, err)
		assert.Equal(t, recipekit.ENOTFOUND, recipekit.ErrorCode(err))
		assert.Contains(t, stderr.String(), "recipekit list")
	})

	t.Run("rejects invalid URL", func(t *testing.T) {
		t.Parallel()

		deps, _, _ := newDeps()
		deps.Entries = &mock.EntryService{}

		err := (&main.ShowCmd{URL: "not a url"}).Run(deps)

		assert.Equal(t, recipekit.EINVALID, recipekit.ErrorCode(err))
	})
}

func TestDeleteCmd_Run(t *testing.T) {
	t.Parallel()

	var deleted string
	deps, stdout, _ := newDeps()
	deps.Entries = &mock.EntryService{
		FindEntryByURLFn: func(_ context.Context, url string) (*recipekit.Entry, error) {
			return &recipekit.Entry{ID: "e1", URL: url, Recipe: borscht()}, nil
		},
		DeleteEntryFn: func(_ context.Context, id string) error {
			deleted = id
			return nil
		},
	}

	err := (&main.DeleteCmd{URL: "https://eda.ru/recepty/supy/borsch-12345"}).Run(deps)

	require.NoError(t, err)
	assert.Equal(t, "e1", deleted)
	assert.Contains(t, stdout.String(), "Deleted recipe")
}

func TestSitesCmd_Run(t *testing.T) {
	t.Parallel()

	deps, stdout, _ := newDeps()
	deps.Extractors = &mock.ExtractorRegistry{
		SitesFn: func() []string { return []string{"a.com", "b.org"} },
	}

	err := (&main.SitesCmd{}).Run(deps)

	require.NoError(t, err)
	assert.Equal(t, "a.com\nb.org\n", stdout.String())
}
