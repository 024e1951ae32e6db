package main

import (
	"fmt"

	"github.com/keyran/recipekit"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	filter := recipekit.EntryFilter{Limit: c.Limit}
	if c.Name != "" {
		filter.Name = &c.Name
	}

	entries, err := deps.Entries.FindEntries(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", recipekit.ErrorMessage(err))
		return err
	}

	if len(entries) == 0 {
		fmt.Fprintln(deps.Stdout, "No recipes found. Use 'recipekit parse -d' or 'recipekit import' to add some.")
		return nil
	}

	for _, e := range entries {
		name := e.Name
		if name == "" {
			name = "(untitled)"
		}
		fmt.Fprintf(deps.Stdout, "%s  %s  %s\n", e.UpdatedAt.Format("2006-01-02"), name, e.URL)
	}

	return nil
}
