package main

import (
	"fmt"

	"github.com/keyran/recipekit"
	"github.com/keyran/recipekit/fs"
)

// Run executes the parse command.
func (c *ParseCmd) Run(deps *Dependencies) error {
	recipe, err := deps.Parser.Parse(deps.Ctx, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", recipekit.ErrorMessage(err))
		return err
	}

	if c.Dir != "" {
		if deps.Store == nil {
			return recipekit.Errorf(recipekit.EINTERNAL, "no recipe store configured")
		}
		if err := deps.Store.SaveRecipe(deps.Ctx, recipe); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", recipekit.ErrorMessage(err))
			return err
		}
		fmt.Fprintf(deps.Stdout, "Saved %s to %s\n", recipe.URL, c.Dir)
	}

	if c.Output != "" {
		if err := fs.WriteRecipe(c.Output, recipe); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", recipekit.ErrorMessage(err))
			return err
		}
		fmt.Fprintf(deps.Stdout, "Wrote %s\n", c.Output)
	}

	if c.Dir == "" && c.Output == "" {
		return recipe.WriteJSON(deps.Stdout)
	}
	return nil
}
