package recipekit_test

import (
	"context"
	"errors"
	"testing"

	"github.com/keyran/recipekit"
	"github.com/keyran/recipekit/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMultiStore_SaveRecipe(t *testing.T) {
	t.Parallel()

	t.Run("saves to every store in order", func(t *testing.T) {
		t.Parallel()

		var calls []string
		first := &mock.RecipeStore{SaveRecipeFn: func(_ context.Context, _ *recipekit.Recipe) error {
			calls = append(calls, "first")
			return nil
		}}
		second := &mock.RecipeStore{SaveRecipeFn: func(_ context.Context, _ *recipekit.Recipe) error {
			calls = append(calls, "second")
			return nil
		}}

		err := recipekit.MultiStore{first, second}.SaveRecipe(context.Background(), &recipekit.Recipe{URL: "https://eda.ru/x"})

		require.NoError(t, err)
		assert.Equal(t, []string{"first", "second"}, calls)
	})

	t.Run("stops at first error", func(t *testing.T) {
		t.Parallel()

		secondCalled := false
		first := &mock.RecipeStore{SaveRecipeFn: func(_ context.Context, _ *recipekit.Recipe) error {
			return errors.New("disk full")
		}}
		second := &mock.RecipeStore{SaveRecipeFn: func(_ context.Context, _ *recipekit.Recipe) error {
			secondCalled = true
			return nil
		}}

		err := recipekit.MultiStore{first, second}.SaveRecipe(context.Background(), &recipekit.Recipe{})

		require.EqualError(t, err, "disk full")
		assert.False(t, secondCalled)
	})
}
