package crawl

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync/atomic"

	"github.com/keyran/recipekit"
	"golang.org/x/sync/errgroup"
)

// Importer parses and stores a batch of recipe URLs concurrently.
type Importer struct {
	Parser      recipekit.RecipeParser
	Store       recipekit.RecipeStore
	RateLimiter recipekit.DomainLimiter
	Seen        recipekit.URLSet
	Concurrency int
}

// Result holds the outcome of an import.
type Result struct {
	Saved   int
	Skipped int
	Failed  int
}

// ProgressEvent reports progress during an import.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressSkipped
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting import progress.
type ProgressFunc func(event ProgressEvent)

type importResult struct {
	url string
	err error
}

// Import parses and stores every URL. Duplicate URLs, after
// canonicalization, are skipped. A failing URL is reported through progress
// and counted, it does not stop the import. The returned error is non-nil
// only when ctx is canceled.
func (im *Importer) Import(ctx context.Context, urls []string, progress ProgressFunc) (*Result, error) {
	if progress == nil {
		progress = func(ProgressEvent) {}
	}

	result := &Result{}
	var pending []string
	for _, raw := range urls {
		url, err := recipekit.CanonicalURL(raw)
		if err != nil {
			result.Failed++
			progress(ProgressEvent{Type: ProgressFailed, URL: raw, Error: err})
			continue
		}
		if im.Seen != nil && im.Seen.Seen(url) {
			result.Skipped++
			progress(ProgressEvent{Type: ProgressSkipped, URL: url})
			continue
		}
		pending = append(pending, url)
	}

	total := len(pending)
	progress(ProgressEvent{Type: ProgressStarted, Total: total})

	concurrency := im.Concurrency
	if concurrency <= 0 {
		concurrency = 4
	}

	resultCh := make(chan importResult, total)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for _, url := range pending {
			g.Go(func() error {
				resultCh <- importResult{url: url, err: im.importURL(gctx, url)}
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	var completed atomic.Int64
	for r := range resultCh {
		n := int(completed.Add(1))
		if r.err != nil {
			result.Failed++
			progress(ProgressEvent{Type: ProgressFailed, Completed: n, Total: total, URL: r.url, Error: r.err})
			continue
		}
		result.Saved++
		progress(ProgressEvent{Type: ProgressCompleted, Completed: n, Total: total, URL: r.url})
	}

	if err := ctx.Err(); err != nil {
		return result, err
	}

	progress(ProgressEvent{Type: ProgressFinished, Completed: total, Total: total})
	return result, nil
}

func (im *Importer) importURL(ctx context.Context, url string) error {
	if im.RateLimiter != nil {
		if err := im.RateLimiter.Wait(ctx, Domain(url)); err != nil {
			return err
		}
	}

	recipe, err := im.Parser.Parse(ctx, url)
	if err != nil {
		return err
	}

	if err := im.Store.SaveRecipe(ctx, recipe); err != nil {
		return fmt.Errorf("save %s: %w", url, err)
	}
	return nil
}

// ReadURLs reads one URL per line from r, skipping blank lines and lines
// starting with "#".
func ReadURLs(r io.Reader) ([]string, error) {
	var urls []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read URL list: %w", err)
	}
	return urls, nil
}
