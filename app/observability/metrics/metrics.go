package metrics

import (
	"log"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// AppMetrics holds the application's metric instruments.
// Make fields public so they can be accessed from other packages.
type AppMetrics struct {
	ItineraryRequestsTotal metric.Int64Counter
	CacheHitsTotal         metric.Int64Counter
	RateLimitDeniedTotal   metric.Int64Counter
	ModelErrorsTotal       metric.Int64Counter
	ModelLatencySeconds    metric.Float64Histogram
}

var (
	appMetrics *AppMetrics
	once       sync.Once
)

// InitAppMetrics initializes the global metrics instruments ONLY ONCE.
// It gets the Meter from the globally configured MeterProvider.
func InitAppMetrics() {
	once.Do(func() {
		meter := otel.GetMeterProvider().Meter("itinerary-api")
		var err error
		m := &AppMetrics{}

		m.ItineraryRequestsTotal, err = meter.Int64Counter(
			"itinerary_requests_total",
			metric.WithDescription("Total number of itinerary requests completed"),
			metric.WithUnit("{request}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create itinerary_requests_total: %v", err)
		}

		m.CacheHitsTotal, err = meter.Int64Counter(
			"itinerary_cache_hits_total",
			metric.WithDescription("Total number of itinerary responses served from cache"),
			metric.WithUnit("{hit}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create itinerary_cache_hits_total: %v", err)
		}

		m.RateLimitDeniedTotal, err = meter.Int64Counter(
			"rate_limit_denied_total",
			metric.WithDescription("Total number of requests denied by the rate limiter"),
			metric.WithUnit("{request}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create rate_limit_denied_total: %v", err)
		}

		m.ModelErrorsTotal, err = meter.Int64Counter(
			"model_errors_total",
			metric.WithDescription("Total number of failed model invocations"),
			metric.WithUnit("{error}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create model_errors_total: %v", err)
		}

		m.ModelLatencySeconds, err = meter.Float64Histogram(
			"model_latency_seconds",
			metric.WithDescription("Duration of model invocations in seconds"),
			metric.WithUnit("s"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create model_latency_seconds: %v", err)
		}

		appMetrics = m
	})
}

// Get returns the globally initialized AppMetrics instance.
// Panics if InitAppMetrics was not called first.
func Get() *AppMetrics {
	if appMetrics == nil {
		panic("metrics: InitAppMetrics must be called during startup")
	}
	return appMetrics
}
