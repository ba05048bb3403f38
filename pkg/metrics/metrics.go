// Package metrics provides Prometheus instrumentation for repool pools.
//
// # Overview
//
// The metrics package provides:
//   - Prometheus-compatible metrics collection
//   - Pre-defined metrics for pool lifecycle events
//   - A per-pool Collector that pools report through
//   - Automatic metric registration via promauto
//
// # Basic Usage
//
//	collector := metrics.NewCollector("sprite/ember")
//	p := respool.New(proto, cfg, factory, lifecycle,
//	    respool.WithCollector[*Sprite](collector))
//
// Idle-buffer growth during Free is the signal to watch: it means the
// configured pre-warm count underestimated steady-state demand.
//
//	rate(repool_idle_growth_total{pool="sprite/ember"}[5m])
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Manufactured tracks the total number of instances cloned from a
	// prototype, whether at pre-warm time or on demand when the idle
	// buffer ran dry.
	// Labels: pool (pool key), reason (prewarm/demand)
	Manufactured = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "repool_manufactured_total",
			Help: "Total number of instances manufactured from prototypes",
		},
		[]string{"pool", "reason"},
	)

	// IdleGrowth tracks idle-buffer growth events during Free. Each event
	// grows the buffer by exactly one slot and indicates the pre-warm
	// count was insufficient for observed demand.
	IdleGrowth = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "repool_idle_growth_total",
			Help: "Total idle buffer growth events (pre-warm undersized)",
		},
		[]string{"pool"},
	)

	// Destroyed tracks instances permanently destroyed by Release.
	Destroyed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "repool_destroyed_total",
			Help: "Total number of instances destroyed by release",
		},
		[]string{"pool"},
	)

	// Idle tracks the current number of idle instances per pool.
	Idle = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "repool_idle_instances",
			Help: "Current number of idle instances in the pool",
		},
		[]string{"pool"},
	)

	// Active tracks the current number of checked-out instances per pool.
	// Only populated for pools constructed with active tracking.
	Active = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "repool_active_instances",
			Help: "Current number of checked-out instances in the pool",
		},
		[]string{"pool"},
	)

	// RegistryPools tracks the number of pools owned by a registry.
	RegistryPools = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "repool_registry_pools",
			Help: "Number of pools owned by the registry",
		},
		[]string{"registry"},
	)
)

// Collector is the per-pool reporting handle. A pool constructed with one
// reports lifecycle events through it; pools without a collector skip
// instrumentation entirely.
type Collector struct {
	pool      string
	startTime time.Time
}

// NewCollector creates a metrics collector labeled with the pool key.
func NewCollector(pool string) *Collector {
	return &Collector{
		pool:      pool,
		startTime: time.Now(),
	}
}

// Pool returns the pool key this collector reports for.
func (c *Collector) Pool() string {
	return c.pool
}

// StartTime returns when the collector was created.
func (c *Collector) StartTime() time.Time {
	return c.startTime
}

// Manufactured records a manufacture event. The reason is "prewarm" for
// construction-time manufacturing and "demand" for Obtain on an empty
// idle buffer.
func (c *Collector) Manufactured(reason string) {
	Manufactured.WithLabelValues(c.pool, reason).Inc()
}

// Grew records an idle-buffer growth event.
func (c *Collector) Grew() {
	IdleGrowth.WithLabelValues(c.pool).Inc()
}

// Destroyed records n instances destroyed by release.
func (c *Collector) Destroyed(n int) {
	Destroyed.WithLabelValues(c.pool).Add(float64(n))
}

// Occupancy updates the idle and active gauges.
func (c *Collector) Occupancy(idle, active int) {
	Idle.WithLabelValues(c.pool).Set(float64(idle))
	Active.WithLabelValues(c.pool).Set(float64(active))
}

// Timer provides a simple timing mechanism for measuring operation durations.
type Timer struct {
	start time.Time
	name  string
}

// NewTimer creates a new timer and starts timing immediately.
func NewTimer(name string) *Timer {
	return &Timer{
		start: time.Now(),
		name:  name,
	}
}

// Stop returns the elapsed duration since creation. It can be called more
// than once, each call returning the total elapsed time.
func (t *Timer) Stop() time.Duration {
	return time.Since(t.start)
}
