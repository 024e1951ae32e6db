package slog

import (
	"log/slog"
	"time"

	"github.com/keyran/recipekit"
)

// Ensure LoggingRegistry implements recipekit.ExtractorRegistry.
var _ recipekit.ExtractorRegistry = (*LoggingRegistry)(nil)

// LoggingRegistry wraps an ExtractorRegistry with logging for site
// selection. Extractors it returns are wrapped with LoggingExtractor.
type LoggingRegistry struct {
	next   recipekit.ExtractorRegistry
	logger *slog.Logger
}

// NewLoggingRegistry creates a new LoggingRegistry.
func NewLoggingRegistry(next recipekit.ExtractorRegistry, logger *slog.Logger) *LoggingRegistry {
	return &LoggingRegistry{next: next, logger: logger}
}

// Lookup delegates to the wrapped registry and logs the selected extractor.
func (r *LoggingRegistry) Lookup(url string) (recipekit.Extractor, error) {
	begin := time.Now()
	extractor, err := r.next.Lookup(url)
	if err != nil {
		r.logger.Info("extractor lookup",
			"url", url,
			"duration", time.Since(begin),
			"err", err,
		)
		return nil, err
	}
	r.logger.Debug("extractor lookup",
		"url", url,
		"extractor", extractor.Name(),
		"duration", time.Since(begin),
	)
	return NewLoggingExtractor(extractor, r.logger), nil
}

// Sites delegates to the wrapped registry.
func (r *LoggingRegistry) Sites() []string {
	return r.next.Sites()
}
