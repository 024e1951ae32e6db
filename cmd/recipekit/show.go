package main

import (
	"fmt"

	"github.com/keyran/recipekit"
)

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	entry, err := findEntry(deps, c.URL)
	if err != nil {
		return err
	}
	return entry.Recipe.WriteJSON(deps.Stdout)
}

// findEntry looks up the index entry for a recipe URL given on the command
// line, reporting failures on stderr.
func findEntry(deps *Dependencies, rawURL string) (*recipekit.Entry, error) {
	url, err := recipekit.CanonicalURL(rawURL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", recipekit.ErrorMessage(err))
		return nil, err
	}

	entry, err := deps.Entries.FindEntryByURL(deps.Ctx, url)
	if recipekit.ErrorCode(err) == recipekit.ENOTFOUND {
		fmt.Fprintf(deps.Stderr, "error: recipe %q not found. Use 'recipekit list' to see stored recipes.\n", url)
		return nil, err
	} else if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", recipekit.ErrorMessage(err))
		return nil, err
	}
	return entry, nil
}
