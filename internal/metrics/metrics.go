// Package metrics defines the Prometheus collectors shared across the
// ingest pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// DatagramsReceived counts datagrams read from the UDP socket.
	DatagramsReceived = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ft8spots_datagrams_received_total",
		Help: "Datagrams read from the UDP listener socket.",
	})

	// ParseFailures counts datagrams rejected by the decode grammar.
	ParseFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ft8spots_parse_failures_total",
		Help: "Datagrams that did not match the FT8 decode grammar.",
	})

	// QueueDrops counts parsed decodes dropped because the enrichment
	// queue was full.
	QueueDrops = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ft8spots_queue_drops_total",
		Help: "Parsed decodes dropped due to a full enrichment queue.",
	})

	// SpotsInserted counts spots added to the live store.
	SpotsInserted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ft8spots_spots_inserted_total",
		Help: "Spots inserted into the live store.",
	})

	// SpotsEvicted counts spots removed by the eviction sweep.
	SpotsEvicted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ft8spots_spots_evicted_total",
		Help: "Spots evicted from the live store by the sweep.",
	})

	// Lookups counts external classification calls.
	Lookups = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ft8spots_lookups_total",
		Help: "External callsign classification calls.",
	})

	// LookupFailures counts external classification calls that failed.
	LookupFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ft8spots_lookup_failures_total",
		Help: "External callsign classification calls that failed.",
	})

	// ActiveSpots tracks the current live store size.
	ActiveSpots = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "ft8spots_active_spots",
		Help: "Spots currently retained in the live store.",
	})
)
