package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/keyran/recipekit"
)

var (
	_ recipekit.RecipeStore  = (*LoggingStore)(nil)
	_ recipekit.ImageService = (*LoggingImageService)(nil)
)

// LoggingStore wraps a RecipeStore with logging.
type LoggingStore struct {
	next   recipekit.RecipeStore
	name   string
	logger *slog.Logger
}

// NewLoggingStore creates a new LoggingStore. The name tells stores apart
// in the log (e.g., "fs", "sqlite").
func NewLoggingStore(next recipekit.RecipeStore, name string, logger *slog.Logger) *LoggingStore {
	return &LoggingStore{next: next, name: name, logger: logger}
}

// SaveRecipe delegates to the wrapped store and logs the operation.
func (s *LoggingStore) SaveRecipe(ctx context.Context, recipe *recipekit.Recipe) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("save recipe",
			"store", s.name,
			"url", recipe.URL,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.SaveRecipe(ctx, recipe)
}

// LoggingImageService wraps an ImageService with logging.
type LoggingImageService struct {
	next   recipekit.ImageService
	logger *slog.Logger
}

// NewLoggingImageService creates a new LoggingImageService.
func NewLoggingImageService(next recipekit.ImageService, logger *slog.Logger) *LoggingImageService {
	return &LoggingImageService{next: next, logger: logger}
}

// SaveImage delegates to the wrapped service and logs the operation.
func (s *LoggingImageService) SaveImage(ctx context.Context, imageURL, dir string) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("save image",
			"url", imageURL,
			"dir", dir,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.SaveImage(ctx, imageURL, dir)
}
