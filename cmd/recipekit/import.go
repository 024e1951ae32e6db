package main

import (
	"fmt"
	"os"

	"github.com/keyran/recipekit"
	"github.com/keyran/recipekit/bloom"
	"github.com/keyran/recipekit/crawl"
)

// dedupeFalsePositiveRate bounds how often a new URL is mistaken for a
// duplicate during an import.
const dedupeFalsePositiveRate = 0.0001

// progressURLWidth is the widest URL printed in a progress line.
const progressURLWidth = 60

// Run executes the import command.
func (c *ImportCmd) Run(deps *Dependencies) error {
	f, err := os.Open(c.File)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}
	defer f.Close()

	urls, err := crawl.ReadURLs(f)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error reading %s: %v\n", c.File, err)
		return err
	}
	if len(urls) == 0 {
		fmt.Fprintf(deps.Stderr, "error: %s lists no URLs\n", c.File)
		return recipekit.Errorf(recipekit.EINVALID, "%s lists no URLs", c.File)
	}

	if c.Concurrency > 0 {
		deps.Importer.Concurrency = c.Concurrency
	}
	deps.Importer.RateLimiter = crawl.NewDomainLimiter(c.RPS)
	deps.Importer.Seen = bloom.NewFilter(uint(len(urls)), dedupeFalsePositiveRate)

	progress := func(event crawl.ProgressEvent) {
		switch event.Type {
		case crawl.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "  Importing %d URLs\n", event.Total)
		case crawl.ProgressCompleted:
			fmt.Fprintf(deps.Stdout, "  [%d/%d] %s\n", event.Completed, event.Total, crawl.ShortURL(event.URL, progressURLWidth))
		case crawl.ProgressSkipped:
			fmt.Fprintf(deps.Stdout, "  duplicate %s\n", crawl.ShortURL(event.URL, progressURLWidth))
		case crawl.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  skip %s: %v\n", event.URL, event.Error)
		case crawl.ProgressFinished:
		}
	}

	result, err := deps.Importer.Import(deps.Ctx, urls, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error importing: %v\n", err)
		return err
	}

	fmt.Fprintf(deps.Stdout, "Imported %d recipes (%d duplicates, %d failed)\n",
		result.Saved, result.Skipped, result.Failed)
	return nil
}
