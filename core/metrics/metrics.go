// Package metrics exposes the Prometheus instrumentation shared by the
// monitor and detection features.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ParsePasses counts completed full parse passes over the save directory.
	ParsePasses = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "grail",
		Name:      "parse_passes_total",
		Help:      "Completed parse passes over the watched save directories.",
	})

	// FilesDecoded counts successfully decoded save files.
	FilesDecoded = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "grail",
		Name:      "files_decoded_total",
		Help:      "Save files decoded successfully.",
	})

	// DecodeFailures counts files that could not be read or decoded.
	DecodeFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "grail",
		Name:      "decode_failures_total",
		Help:      "Save files that failed to read or decode.",
	})

	// ItemsDetected counts first-time item detections.
	ItemsDetected = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "grail",
		Name:      "items_detected_total",
		Help:      "First-time grail item detections.",
	})
)
