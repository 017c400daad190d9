// Package prom exports lrumap metrics to Prometheus.
package prom

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/HenkesKaiser/lrumap"
)

// Adapter implements lrumap.Metrics backed by Prometheus collectors.
// Prometheus metric types are goroutine-safe, so the adapter may be shared
// by a synchronized map without extra locking.
type Adapter struct {
	hits     prometheus.Counter
	misses   prometheus.Counter
	removals *prometheus.CounterVec
	size     prometheus.Gauge
}

// New constructs a Prometheus metrics adapter and registers its collectors.
//   - reg:         registry to register with (nil => prometheus.DefaultRegisterer)
//   - ns, sub:     Prometheus namespace and subsystem
//   - constLabels: static labels applied to all metrics (may be nil)
func New(reg prometheus.Registerer, ns, sub string, constLabels prometheus.Labels) *Adapter {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	a := &Adapter{
		hits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   ns,
			Subsystem:   sub,
			Name:        "hits_total",
			Help:        "Map hits",
			ConstLabels: constLabels,
		}),
		misses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   ns,
			Subsystem:   sub,
			Name:        "misses_total",
			Help:        "Map misses",
			ConstLabels: constLabels,
		}),
		removals: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace:   ns,
				Subsystem:   sub,
				Name:        "removals_total",
				Help:        "Entries removed, by cause",
				ConstLabels: constLabels,
			},
			[]string{"cause"},
		),
		size: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   ns,
			Subsystem:   sub,
			Name:        "size_entries",
			Help:        "Number of live entries",
			ConstLabels: constLabels,
		}),
	}
	reg.MustRegister(a.hits, a.misses, a.removals, a.size)
	return a
}

// Hit increments the hit counter.
func (a *Adapter) Hit() { a.hits.Inc() }

// Miss increments the miss counter.
func (a *Adapter) Miss() { a.misses.Inc() }

// Removal increments the removal counter labeled by cause.
func (a *Adapter) Removal(automatic bool) {
	a.removals.WithLabelValues(cause(automatic)).Inc()
}

// Size updates the live-entry gauge.
func (a *Adapter) Size(entries int) {
	a.size.Set(float64(entries))
}

// cause maps the automatic flag to a stable label value.
func cause(automatic bool) string {
	if automatic {
		return "automatic"
	}
	return "explicit"
}

// Compile-time check: ensure Adapter implements lrumap.Metrics.
var _ lrumap.Metrics = (*Adapter)(nil)
