package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RecordsUpserted counts records written to the warehouse per entity
	RecordsUpserted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "syncer_records_upserted_total",
			Help: "Total number of records upserted into the warehouse",
		},
		[]string{"entity"},
	)

	// RecordsSkipped counts unchanged records skipped by change detection
	RecordsSkipped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "syncer_records_skipped_total",
			Help: "Total number of unchanged records skipped",
		},
		[]string{"entity"},
	)

	// BatchesFailed counts batch writes that failed and were skipped
	BatchesFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "syncer_batches_failed_total",
			Help: "Total number of failed batch writes",
		},
		[]string{"entity"},
	)

	// PhaseDuration tracks per-phase processing time
	PhaseDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "syncer_phase_duration_seconds",
			Help:    "Sync phase duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"entity"},
	)

	// AgreementsDeactivated counts agreements marked inactive by reconciliation
	AgreementsDeactivated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "syncer_agreements_deactivated_total",
			Help: "Total number of agreements soft-deleted by reconciliation",
		},
	)

	// DealerResolutionMisses counts agreement dealer references that fell back
	// to the default dealer
	DealerResolutionMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "syncer_dealer_resolution_misses_total",
			Help: "Total number of agreements written with the default dealer key",
		},
	)
)
