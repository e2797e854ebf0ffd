// Package metrics exposes Prometheus instrumentation for the catalog store.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"coffeecatalog/internal/database"
	"coffeecatalog/internal/models"
)

// Result label values.
const (
	ResultOK       = "ok"
	ResultNotFound = "not_found"
	ResultError    = "error"
)

// Metrics holds the collectors registered for one registry.
type Metrics struct {
	registry   *prometheus.Registry
	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
}

// New registers the store collectors on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "coffee_catalog",
			Name:      "store_operations_total",
			Help:      "Catalog store operations by operation and result.",
		}, []string{"operation", "result"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "coffee_catalog",
			Name:      "store_operation_duration_seconds",
			Help:      "Catalog store operation latency.",
			Buckets:   []float64{.0005, .001, .005, .01, .05, .1, .5, 1},
		}, []string{"operation"}),
	}
	reg.MustRegister(m.operations, m.duration)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Operations returns the operation counter, mostly for tests.
func (m *Metrics) Operations() *prometheus.CounterVec {
	return m.operations
}

func (m *Metrics) observe(op string, start time.Time, err error) {
	m.duration.WithLabelValues(op).Observe(time.Since(start).Seconds())

	result := ResultOK
	switch {
	case err == nil:
	case errors.Is(err, database.ErrNotFound):
		result = ResultNotFound
	default:
		result = ResultError
	}
	m.operations.WithLabelValues(op, result).Inc()
}

// InstrumentStore wraps store so each call is counted and timed.
func InstrumentStore(store database.Store, m *Metrics) database.Store {
	return &instrumentedStore{next: store, m: m}
}

type instrumentedStore struct {
	next database.Store
	m    *Metrics
}

func (s *instrumentedStore) ListCoffee(ctx context.Context) (coffees []*models.Coffee, err error) {
	defer func(start time.Time) { s.m.observe("list", start, err) }(time.Now())
	return s.next.ListCoffee(ctx)
}

func (s *instrumentedStore) GetCoffee(ctx context.Context, id int64) (coffee *models.Coffee, err error) {
	defer func(start time.Time) { s.m.observe("get", start, err) }(time.Now())
	return s.next.GetCoffee(ctx, id)
}

func (s *instrumentedStore) CreateCoffee(ctx context.Context, req *models.CoffeeInput) (id int64, err error) {
	defer func(start time.Time) { s.m.observe("create", start, err) }(time.Now())
	return s.next.CreateCoffee(ctx, req)
}

func (s *instrumentedStore) UpdateCoffee(ctx context.Context, id int64, req *models.CoffeeInput) (err error) {
	defer func(start time.Time) { s.m.observe("update", start, err) }(time.Now())
	return s.next.UpdateCoffee(ctx, id, req)
}
