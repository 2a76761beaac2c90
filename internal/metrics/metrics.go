// Package metrics holds the Prometheus collectors for the logistics core.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var (
	// Registry is the dedicated Prometheus registry for the service.
	Registry = prometheus.NewRegistry()

	// PlanningCycles counts completed planning cycles by outcome.
	PlanningCycles = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "logistics_planning_cycles_total", Help: "Completed planning cycles by outcome."},
		[]string{"outcome"},
	)
	// PlanningDuration records planning cycle durations in seconds.
	PlanningDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{Name: "logistics_planning_duration_seconds", Help: "Planning cycle duration in seconds.", Buckets: prometheus.DefBuckets},
	)
	// OrdersPlanned counts orders processed by planning cycles, by result.
	OrdersPlanned = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "logistics_orders_planned_total", Help: "Orders processed by planning cycles, by result."},
		[]string{"result"},
	)
	// DegradedRoutes counts routes that used fallback distance estimates.
	DegradedRoutes = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "logistics_degraded_routes_total", Help: "Routes built on fallback estimates because the distance oracle was unavailable."},
	)
	// HTTPRequests counts requests by method, path, and status.
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "http_requests_total", Help: "Total HTTP requests."},
		[]string{"method", "path", "status"},
	)
)

// RegisterDefault registers all collectors on the package registry.
func RegisterDefault() {
	regOnce.Do(func() {
		Registry.MustRegister(PlanningCycles)
		Registry.MustRegister(PlanningDuration)
		Registry.MustRegister(OrdersPlanned)
		Registry.MustRegister(DegradedRoutes)
		Registry.MustRegister(HTTPRequests)
		// Go/process collectors on our registry
		Registry.MustRegister(collectors.NewGoCollector())
		Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	})
}

var regOnce sync.Once
