package main

import (
	"fmt"

	"github.com/keyran/recipekit"
)

// Run executes the delete command. Files written by parse -d are left in
// place.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	entry, err := findEntry(deps, c.URL)
	if err != nil {
		return err
	}

	if err := deps.Entries.DeleteEntry(deps.Ctx, entry.ID); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", recipekit.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted recipe %q\n", entry.URL)
	return nil
}
