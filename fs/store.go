// Package fs stores extracted recipes as directories of recipe.json and
// images, the layout used by Nextcloud Cookbook.
package fs

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/keyran/recipekit"
)

// RecipeFile is the name of the recipe JSON file inside a recipe directory.
const RecipeFile = "recipe.json"

// Ensure Store implements recipekit.RecipeStore at compile time.
var _ recipekit.RecipeStore = (*Store)(nil)

// Store writes each recipe to <baseDir>/<slug>/recipe.json, where slug is
// the last path segment of the recipe URL.
type Store struct {
	baseDir string

	// Images, when set, receives the recipe image and the directory to
	// write it to. Image failures are logged and do not fail the save.
	Images recipekit.ImageService

	Logger *slog.Logger
}

// NewStore creates a Store rooted at baseDir.
func NewStore(baseDir string) *Store {
	return &Store{
		baseDir: baseDir,
		Logger:  slog.New(slog.DiscardHandler),
	}
}

// Dir returns the directory a recipe with the given URL is stored in.
func (s *Store) Dir(url string) (string, error) {
	slug, err := recipekit.Slug(url)
	if err != nil {
		return "", err
	}
	return filepath.Join(s.baseDir, slug), nil
}

// SaveRecipe implements recipekit.RecipeStore. The JSON file is replaced
// atomically; the image is fetched afterwards when the recipe has one. A
// recipe whose image cannot be saved is still stored.
func (s *Store) SaveRecipe(ctx context.Context, recipe *recipekit.Recipe) error {
	if err := recipe.Validate(); err != nil {
		return err
	}

	dir, err := s.Dir(recipe.URL)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	if err := WriteRecipe(filepath.Join(dir, RecipeFile), recipe); err != nil {
		return err
	}

	if s.Images != nil && recipe.Image != "" {
		if err := s.Images.SaveImage(ctx, recipe.Image, dir); err != nil {
			s.Logger.Warn("recipe saved without image",
				"url", recipe.URL,
				"image", recipe.Image,
				"err", err,
			)
		}
	}
	return nil
}

// WriteRecipe writes the recipe JSON to path through a temporary file in
// the same directory, so readers never see a partial file.
func WriteRecipe(path string, recipe *recipekit.Recipe) error {
	return writeAtomic(path, func(f *os.File) error {
		return recipe.WriteJSON(f)
	})
}

func writeAtomic(path string, write func(f *os.File) error) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if err := write(tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
