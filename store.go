package recipekit

import "context"

// RecipeStore persists extracted recipes.
type RecipeStore interface {
	SaveRecipe(ctx context.Context, recipe *Recipe) error
}

// ImageService downloads a recipe image and writes it, along with its
// thumbnails, into a directory.
type ImageService interface {
	SaveImage(ctx context.Context, imageURL, dir string) error
}

// MultiStore saves a recipe to each store in order, stopping at the first error.
type MultiStore []RecipeStore

// SaveRecipe implements RecipeStore.
func (m MultiStore) SaveRecipe(ctx context.Context, recipe *Recipe) error {
	for _, s := range m {
		if err := s.SaveRecipe(ctx, recipe); err != nil {
			return err
		}
	}
	return nil
}
