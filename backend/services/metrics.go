// ABOUTME: Prometheus metrics for spring searches
// ABOUTME: Counts outcomes and tracks sweep duration and retained candidates

package services

import (
	"time"

	"github.com/Kevin-Gith/spring-design-calculator/backend/models"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Search outcome label values
const (
	outcomeFull      = "full"
	outcomeShortfall = "shortfall"
	outcomeEmpty     = "empty"
	outcomeCanceled  = "canceled"
	outcomeRejected  = "rejected"
)

var (
	// searchTotal counts searches by outcome
	searchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "spring_search_total",
		Help: "Total spring searches by outcome",
	}, []string{"outcome"})

	// searchDuration tracks sweep latency
	searchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "spring_search_duration_seconds",
		Help:    "Spring search duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12), // 0.5ms to ~1s
	})

	// searchRetained tracks how many candidates reach the minimum score
	searchRetained = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "spring_search_candidates",
		Help:    "Candidates retained per search",
		Buckets: []float64{0, 1, 5, 10, 50, 100, 500, 1000, 5000},
	})
)

func observeSearch(result models.SearchResult, elapsed time.Duration) {
	outcome := outcomeFull
	switch {
	case result.Empty:
		outcome = outcomeEmpty
	case result.Shortfall:
		outcome = outcomeShortfall
	}
	searchTotal.WithLabelValues(outcome).Inc()
	searchDuration.Observe(elapsed.Seconds())
	searchRetained.Observe(float64(result.TotalRetained))
}
