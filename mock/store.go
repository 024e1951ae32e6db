package mock

import (
	"context"

	"github.com/keyran/recipekit"
)

var (
	_ recipekit.RecipeStore  = (*RecipeStore)(nil)
	_ recipekit.ImageService = (*ImageService)(nil)
)

// RecipeStore is a mock implementation of recipekit.RecipeStore.
type RecipeStore struct {
	SaveRecipeFn func(ctx context.Context, recipe *recipekit.Recipe) error
}

func (s *RecipeStore) SaveRecipe(ctx context.Context, recipe *recipekit.Recipe) error {
	return s.SaveRecipeFn(ctx, recipe)
}

// ImageService is a mock implementation of recipekit.ImageService.
type ImageService struct {
	SaveImageFn func(ctx context.Context, imageURL, dir string) error
}

func (s *ImageService) SaveImage(ctx context.Context, imageURL, dir string) error {
	return s.SaveImageFn(ctx, imageURL, dir)
}
