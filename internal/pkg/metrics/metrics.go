// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "pagecraft"

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"method", "route"},
	)

	// GenerationsTotal counts generation attempts by tone and outcome
	// (success, rejected, error, canceled).
	GenerationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "generation",
			Name:      "total",
			Help:      "Total number of description generations",
		},
		[]string{"tone", "status"},
	)

	GenerationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "generation",
			Name:      "duration_seconds",
			Help:      "Description generation duration in seconds",
			Buckets:   []float64{.05, .1, .25, .5, 1, 2, 5, 10},
		},
		[]string{"tone"},
	)

	VariantWordCount = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "generation",
			Name:      "variant_word_count",
			Help:      "Word count of generated variants",
			Buckets:   []float64{10, 25, 50, 75, 100, 150, 200, 300},
		},
	)

	GenerationsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "generation",
			Name:      "in_flight",
			Help:      "Number of generations currently holding a subject guard",
		},
	)

	BulkItemsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "bulk",
			Name:      "items_total",
			Help:      "Bulk generation items by outcome",
		},
		[]string{"status"},
	)

	QualityOverallScore = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "quality",
			Name:      "overall_score",
			Help:      "Overall quality score of analyzed descriptions",
			Buckets:   prometheus.LinearBuckets(0, 10, 11),
		},
	)
)
