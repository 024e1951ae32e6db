package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/keyran/recipekit"
	"github.com/keyran/recipekit/mock"
	recipeslog "github.com/keyran/recipekit/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingStore_SaveRecipe(t *testing.T) {
	t.Parallel()

	t.Run("logs store name and url", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.RecipeStore{
			SaveRecipeFn: func(context.Context, *recipekit.Recipe) error { return nil },
		}

		err := recipeslog.NewLoggingStore(inner, "fs", logger).SaveRecipe(context.Background(), &recipekit.Recipe{URL: "https://eda.ru/recepty/1"})

		require.NoError(t, err)
		assert.Contains(t, buf.String(), `msg="save recipe"`)
		assert.Contains(t, buf.String(), "store=fs")
		assert.Contains(t, buf.String(), "url=https://eda.ru/recepty/1")
	})

	t.Run("logs and returns error", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.RecipeStore{
			SaveRecipeFn: func(context.Context, *recipekit.Recipe) error { return errors.New("disk full") },
		}

		err := recipeslog.NewLoggingStore(inner, "fs", logger).SaveRecipe(context.Background(), &recipekit.Recipe{})

		require.EqualError(t, err, "disk full")
		assert.Contains(t, buf.String(), `err="disk full"`)
	})
}

func TestLoggingImageService_SaveImage(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	var gotDir string
	inner := &mock.ImageService{
		SaveImageFn: func(_ context.Context, _, dir string) error {
			gotDir = dir
			return nil
		},
	}

	err := recipeslog.NewLoggingImageService(inner, logger).SaveImage(context.Background(), "https://eda.ru/img/a.jpg", "/tmp/borsch")

	require.NoError(t, err)
	assert.Equal(t, "/tmp/borsch", gotDir)
	assert.Contains(t, buf.String(), `msg="save image"`)
	assert.Contains(t, buf.String(), "dir=/tmp/borsch")
}
