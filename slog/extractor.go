package slog

import (
	"log/slog"
	"time"

	"github.com/keyran/recipekit"
	"golang.org/x/net/html"
)

// Ensure LoggingExtractor implements recipekit.Extractor.
var _ recipekit.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor with logging.
type LoggingExtractor struct {
	next   recipekit.Extractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next recipekit.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor and logs the operation.
func (e *LoggingExtractor) Extract(doc *html.Node, url string) (recipe *recipekit.Recipe, err error) {
	defer func(begin time.Time) {
		var name string
		var ingredients, steps int
		if recipe != nil {
			name = recipe.Name
			ingredients = len(recipe.RecipeIngredient)
			steps = len(recipe.RecipeInstructions)
		}
		e.logger.Info("extract",
			"extractor", e.next.Name(),
			"url", url,
			"name", name,
			"ingredients", ingredients,
			"steps", steps,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Extract(doc, url)
}

// Name delegates to the wrapped extractor.
func (e *LoggingExtractor) Name() string {
	return e.next.Name()
}
