// Package metrics exposes Prometheus counters for the dispatch engine.
// Counters are registered on a private registry so tests can create
// independent instances without duplicate-registration panics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "dispatch"

// Engine counts the business-level outcomes of the dispatch operations.
type Engine struct {
	registry *prometheus.Registry

	couriersCreated prometheus.Counter
	ordersCreated   prometheus.Counter
	runsAssigned    prometheus.Counter
	assignNoRun     prometheus.Counter
	ordersCompleted prometheus.Counter
}

// NewEngine creates an Engine with all counters registered.
func NewEngine() *Engine {
	registry := prometheus.NewRegistry()
	auto := promauto.With(registry)

	return &Engine{
		registry: registry,
		couriersCreated: auto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "couriers_created_total",
			Help:      "Couriers registered.",
		}),
		ordersCreated: auto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orders_created_total",
			Help:      "Orders ingested.",
		}),
		runsAssigned: auto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_assigned_total",
			Help:      "Assign operations that returned a run, new or existing.",
		}),
		assignNoRun: auto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "assign_no_run_total",
			Help:      "Assign operations that found nothing to pack.",
		}),
		ordersCompleted: auto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orders_completed_total",
			Help:      "Orders delivered.",
		}),
	}
}

// Handler serves the engine's registry in the Prometheus text format.
func (e *Engine) Handler() http.Handler {
	return promhttp.HandlerFor(e.registry, promhttp.HandlerOpts{})
}

// CouriersCreated records n registered couriers.
func (e *Engine) CouriersCreated(n int) {
	e.couriersCreated.Add(float64(n))
}

// OrdersCreated records n ingested orders.
func (e *Engine) OrdersCreated(n int) {
	e.ordersCreated.Add(float64(n))
}

// RunAssigned records an assign operation that returned a run.
func (e *Engine) RunAssigned() {
	e.runsAssigned.Inc()
}

// AssignNoRun records an assign operation with nothing to pack.
func (e *Engine) AssignNoRun() {
	e.assignNoRun.Inc()
}

// OrderCompleted records one delivered order.
func (e *Engine) OrderCompleted() {
	e.ordersCompleted.Inc()
}
