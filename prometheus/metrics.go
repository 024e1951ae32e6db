// Package prometheus records recipe extraction metrics with the Prometheus
// client library.
package prometheus

import (
	"net/http"
	"time"

	"github.com/keyran/recipekit"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/net/html"
)

const namespace = "recipekit"

// Extraction outcomes.
const (
	OutcomeOK          = "ok"
	OutcomeEmpty       = "empty"
	OutcomeError       = "error"
	OutcomeUnsupported = "unsupported"
)

// Metrics holds the extraction collectors and the registry they belong to.
type Metrics struct {
	registry *prometheus.Registry

	// Extractions counts extractions by extractor and outcome.
	Extractions *prometheus.CounterVec

	// ExtractionDuration observes extraction time by extractor.
	ExtractionDuration *prometheus.HistogramVec
}

// NewMetrics creates Metrics on a fresh registry that also carries the Go
// runtime and process collectors.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	factory := promauto.With(reg)
	return &Metrics{
		registry: reg,
		Extractions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "extractions_total",
				Help:      "Total number of recipe extractions by extractor and outcome",
			},
			[]string{"extractor", "outcome"},
		),
		ExtractionDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "extraction_duration_seconds",
				Help:      "Recipe extraction duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"extractor"},
		),
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Gatherer returns the underlying registry.
func (m *Metrics) Gatherer() prometheus.Gatherer {
	return m.registry
}

// Ensure MetricsRegistry implements recipekit.ExtractorRegistry.
var _ recipekit.ExtractorRegistry = (*MetricsRegistry)(nil)

// MetricsRegistry wraps an ExtractorRegistry so that every extraction
// through it is counted and timed.
type MetricsRegistry struct {
	next    recipekit.ExtractorRegistry
	metrics *Metrics
}

// NewMetricsRegistry creates a new MetricsRegistry.
func NewMetricsRegistry(next recipekit.ExtractorRegistry, metrics *Metrics) *MetricsRegistry {
	return &MetricsRegistry{next: next, metrics: metrics}
}

// Lookup delegates to the wrapped registry. Unsupported sites are counted
// under the "none" extractor.
func (r *MetricsRegistry) Lookup(url string) (recipekit.Extractor, error) {
	extractor, err := r.next.Lookup(url)
	if err != nil {
		r.metrics.Extractions.WithLabelValues("none", OutcomeUnsupported).Inc()
		return nil, err
	}
	return NewMetricsExtractor(extractor, r.metrics), nil
}

// Sites delegates to the wrapped registry.
func (r *MetricsRegistry) Sites() []string {
	return r.next.Sites()
}

// Ensure MetricsExtractor implements recipekit.Extractor.
var _ recipekit.Extractor = (*MetricsExtractor)(nil)

// MetricsExtractor wraps an Extractor with metrics.
type MetricsExtractor struct {
	next    recipekit.Extractor
	metrics *Metrics
}

// NewMetricsExtractor creates a new MetricsExtractor.
func NewMetricsExtractor(next recipekit.Extractor, metrics *Metrics) *MetricsExtractor {
	return &MetricsExtractor{next: next, metrics: metrics}
}

// Extract delegates to the wrapped extractor and records the outcome.
// A recipe with neither ingredients nor instructions counts as empty.
func (e *MetricsExtractor) Extract(doc *html.Node, url string) (recipe *recipekit.Recipe, err error) {
	name := e.next.Name()
	defer func(begin time.Time) {
		e.metrics.ExtractionDuration.WithLabelValues(name).Observe(time.Since(begin).Seconds())
		e.metrics.Extractions.WithLabelValues(name, outcome(recipe, err)).Inc()
	}(time.Now())
	return e.next.Extract(doc, url)
}

// Name delegates to the wrapped extractor.
func (e *MetricsExtractor) Name() string {
	return e.next.Name()
}

func outcome(recipe *recipekit.Recipe, err error) string {
	switch {
	case err != nil:
		return OutcomeError
	case recipe == nil || (len(recipe.RecipeIngredient) == 0 && len(recipe.RecipeInstructions) == 0):
		return OutcomeEmpty
	}
	return OutcomeOK
}
