package mock

import (
	"context"

	"github.com/keyran/recipekit"
)

var _ recipekit.EntryService = (*EntryService)(nil)

// EntryService is a mock implementation of recipekit.EntryService.
type EntryService struct {
	SaveEntryFn      func(ctx context.Context, entry *recipekit.Entry) error
	FindEntryByURLFn func(ctx context.Context, url string) (*recipekit.Entry, error)
	FindEntriesFn    func(ctx context.Context, filter recipekit.EntryFilter) ([]*recipekit.Entry, error)
	DeleteEntryFn    func(ctx context.Context, id string) error
}

func (s *EntryService) SaveEntry(ctx context.Context, entry *recipekit.Entry) error {
	return s.SaveEntryFn(ctx, entry)
}

func (s *EntryService) FindEntryByURL(ctx context.Context, url string) (*recipekit.Entry, error) {
	return s.FindEntryByURLFn(ctx, url)
}

func (s *EntryService) FindEntries(ctx context.Context, filter recipekit.EntryFilter) ([]*recipekit.Entry, error) {
	return s.FindEntriesFn(ctx, filter)
}

func (s *EntryService) DeleteEntry(ctx context.Context, id string) error {
	return s.DeleteEntryFn(ctx, id)
}
