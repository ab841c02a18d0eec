// Package metrics exposes Prometheus counters for the bill engine.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// BillsCreated counts bills inserted, labeled by mode
	// (single, installment, recurring).
	BillsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "contas_bills_created_total",
		Help: "Number of bills created, by mode.",
	}, []string{"mode"})

	// Settlements counts bill payments, labeled by result
	// (paid, conflict, not_found).
	Settlements = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "contas_settlements_total",
		Help: "Number of bill settlement attempts, by result.",
	}, []string{"result"})

	// RecurrencesSpawned counts successor bills created on settlement.
	RecurrencesSpawned = promauto.NewCounter(prometheus.CounterOpts{
		Name: "contas_recurrences_spawned_total",
		Help: "Number of recurrence successor bills created.",
	})

	// IntegrityRejections counts deletes blocked by referential checks,
	// labeled by entity kind (account, category).
	IntegrityRejections = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "contas_integrity_rejections_total",
		Help: "Number of deletes rejected because the entity is still referenced.",
	}, []string{"entity"})
)
