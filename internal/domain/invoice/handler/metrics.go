package handler

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	parsesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "invoice",
		Name:      "parses_total",
		Help:      "Workbook parse requests by outcome.",
	}, []string{"status"})

	parsedItems = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "invoice",
		Name:      "parsed_items_total",
		Help:      "Line items returned across all parse requests.",
	})

	parseDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "invoice",
		Name:      "parse_duration_seconds",
		Help:      "End-to-end parse request duration.",
		Buckets:   prometheus.DefBuckets,
	})

	exportsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "invoice",
		Name:      "exports_total",
		Help:      "Successful export downloads by format.",
	}, []string{"format"})
)
