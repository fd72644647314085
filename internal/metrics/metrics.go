// Package metrics holds the Prometheus collectors of the service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	VotesRecordedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moviematch_votes_recorded_total",
			Help: "Total number of votes persisted, by decision",
		},
		[]string{"decision"},
	)

	MatchesCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "moviematch_matches_created_total",
			Help: "Total number of matches created",
		},
	)

	// MatchRaceResolvedTotal counts creations that lost the insert race and
	// returned the winner's row.
	MatchRaceResolvedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "moviematch_match_race_resolved_total",
			Help: "Total number of match creations resolved to an existing row",
		},
	)

	NotificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moviematch_notifications_total",
			Help: "Total number of notification deliveries, by stage and result",
		},
		[]string{"stage", "result"},
	)

	RoomsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "moviematch_rooms_active",
			Help: "Rooms created minus rooms removed since process start",
		},
	)

	CatalogImportedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "moviematch_catalog_imported_total",
			Help: "Total number of movies imported from the external catalog",
		},
	)

	CatalogPrunedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "moviematch_catalog_pruned_total",
			Help: "Total number of movies pruned above the catalog ceiling",
		},
	)

	CatalogActiveMovies = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "moviematch_catalog_active_movies",
			Help: "Active movies seen by the last catalog maintenance run",
		},
	)

	// CircuitBreakerState is 0 closed, 1 half-open, 2 open.
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "moviematch_circuit_breaker_state",
			Help: "Circuit breaker state by dependency",
		},
		[]string{"dependency"},
	)
)

const (
	StageEnqueue = "enqueue"
	StageDeliver = "deliver"

	ResultOK     = "ok"
	ResultFailed = "failed"
)
