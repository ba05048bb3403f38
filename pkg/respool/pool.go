package respool

import (
	"go.uber.org/zap"

	"github.com/poolforge/repool/pkg/logger"
	"github.com/poolforge/repool/pkg/metrics"
)

// DefaultPrewarm is the pre-warm count applied when a pool is constructed
// with a negative count and no configured default.
const DefaultPrewarm = 16

// Config carries pool construction parameters.
type Config struct {
	// Prewarm is the number of instances manufactured eagerly at pool
	// construction. Zero starts the pool logically empty; a negative value
	// means "use the configured default".
	Prewarm int

	// DefaultPrewarm replaces the package-level DefaultPrewarm constant for
	// this pool when Prewarm is negative. Zero keeps the package default.
	DefaultPrewarm int

	// TrackActive enables the active roster. Fixed for the pool's lifetime.
	TrackActive bool

	// Name labels the pool in logs and metrics. Defaults to the prototype's
	// identity.
	Name string
}

// Stats holds the pool's lifetime counters. The pool is driven by a single
// logical owner, so the counters are plain integers.
type Stats struct {
	// Manufactured is the total number of instances cloned from the prototype
	Manufactured int64
	// Grown is the number of idle-buffer growth events during Free
	Grown int64
	// Obtained is the total number of checkouts
	Obtained int64
	// Freed is the total number of returns
	Freed int64
	// Destroyed is the total number of instances disposed of by Release
	Destroyed int64
}

// Option configures optional pool collaborators.
type Option[T comparable] func(*Pool[T])

// WithLogger replaces the pool's logger.
func WithLogger[T comparable](log *zap.Logger) Option[T] {
	return func(p *Pool[T]) { p.log = log }
}

// WithCollector attaches a metrics collector. Pools without one skip
// instrumentation entirely.
func WithCollector[T comparable](c *metrics.Collector) Option[T] {
	return func(p *Pool[T]) { p.collector = c }
}

// Pool manages one resource kind's idle/active lifecycle with pre-warming
// and controlled growth. The idle buffer is a free list driven by a cursor:
// slots [0..idleTop] hold idle instances, the most recently returned one on
// top, and idleTop < 0 means no idle instance is available.
//
// A Pool is exclusively owned by a single logical owner (typically one
// update tick) and performs no internal locking. Concurrent callers need an
// external mutual-exclusion wrapper.
type Pool[T comparable] struct {
	prototype T
	factory   Factory[T]
	lifecycle Lifecycle[T]

	idle        []T
	idleTop     int
	active      []T
	trackActive bool

	name      string
	log       *zap.Logger
	collector *metrics.Collector
	stats     Stats
}

// New creates a pool for the given prototype and pre-warms it per cfg.
// The prototype is immutable for the pool's lifetime; every manufactured
// instance is a factory clone of it, handed out deactivated with this pool
// attached as its Home.
func New[T comparable](prototype T, cfg Config, factory Factory[T], lifecycle Lifecycle[T], opts ...Option[T]) *Pool[T] {
	p := &Pool[T]{
		prototype:   prototype,
		factory:     factory,
		lifecycle:   lifecycle,
		trackActive: cfg.TrackActive,
		name:        cfg.Name,
		idleTop:     -1,
	}
	if p.name == "" {
		p.name = NameOf(prototype)
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.log == nil {
		p.log = logger.With(zap.String("pool", p.name))
	}

	prewarm := cfg.Prewarm
	if prewarm < 0 {
		prewarm = cfg.DefaultPrewarm
		if prewarm <= 0 {
			prewarm = DefaultPrewarm
		}
	}

	if prewarm == 0 {
		// Logically empty, with one slot reserved so the first on-demand
		// manufacture lands without growing.
		p.idle = make([]T, 1)
	} else {
		p.idle = make([]T, prewarm)
		for i := 0; i < prewarm; i++ {
			p.idle[i] = p.manufacture("prewarm")
		}
		p.idleTop = prewarm - 1
	}
	if p.trackActive {
		p.active = make([]T, 0, len(p.idle))
	}
	p.occupancy()
	return p
}

// Obtain checks an instance out of the pool. If no idle instance is
// available, one is manufactured on the spot; exhaustion is absorbed by
// manufacturing, never surfaced as an error.
func (p *Pool[T]) Obtain() T {
	if p.idleTop < 0 {
		v := p.manufacture("demand")
		p.idle[0] = v
		p.idleTop = 0
	}

	v := p.idle[p.idleTop]
	var zero T
	p.idle[p.idleTop] = zero // idle slot must not alias a checked-out instance
	p.idleTop--

	if p.trackActive {
		p.active = append(p.active, v)
	}
	p.stats.Obtained++
	p.occupancy()
	return v
}

// Free returns an instance to the pool: it is deactivated through the
// lifecycle collaborator and becomes the next instance Obtain hands out.
// When the return lands exactly on the idle buffer's boundary the buffer
// grows by one slot, the only capacity-growth policy the pool has, and a
// diagnostic is emitted, since growth means the pre-warm count
// underestimated observed demand.
func (p *Pool[T]) Free(v T) {
	p.lifecycle.Deactivate(v)

	p.idleTop++
	if p.idleTop == len(p.idle) {
		p.idle = append(p.idle, v)
		p.stats.Grown++
		p.log.Warn("idle buffer grew beyond pre-warm capacity",
			zap.Int("capacity", len(p.idle)))
		if p.collector != nil {
			p.collector.Grew()
		}
	} else {
		p.idle[p.idleTop] = v
	}

	if p.trackActive {
		p.removeActive(v)
	}
	p.stats.Freed++
	p.occupancy()
}

// removeActive removes v from the roster by identity. The roster is not
// ordered by return order, so this scans; it starts from the end because
// LIFO drains free the most recently obtained instances first.
func (p *Pool[T]) removeActive(v T) {
	for i := len(p.active) - 1; i >= 0; i-- {
		if p.active[i] == v {
			last := len(p.active) - 1
			p.active[i] = p.active[last]
			var zero T
			p.active[last] = zero
			p.active = p.active[:last]
			return
		}
	}
}

// FreeAll returns every checked-out instance to the idle buffer, draining
// the active roster last-added first until it is empty. It is a no-op for
// pools without active tracking.
func (p *Pool[T]) FreeAll() {
	for p.trackActive && len(p.active) > 0 {
		p.Free(p.active[len(p.active)-1])
	}
}

// Release permanently destroys the pool's contents. Every idle instance is
// destroyed from the top of the free list backward and the idle buffer
// shrinks to a single empty slot; with destroyActive, every instance on the
// active roster is destroyed too and the roster cleared.
//
// The pool remains usable afterward: a subsequent Obtain manufactures a
// fresh instance. With destroyActive false, instances still checked out are
// left entirely to the caller: the pool neither destroys them nor repairs
// references the caller may have dropped.
func (p *Pool[T]) Release(destroyActive bool) {
	destroyed := 0

	if destroyActive && p.trackActive {
		for i := len(p.active) - 1; i >= 0; i-- {
			p.lifecycle.Destroy(p.active[i])
			destroyed++
		}
		p.active = p.active[:0]
	}

	for i := p.idleTop; i >= 0; i-- {
		p.lifecycle.Destroy(p.idle[i])
		destroyed++
	}
	p.idle = make([]T, 1)
	p.idleTop = -1

	p.stats.Destroyed += int64(destroyed)
	if p.collector != nil {
		p.collector.Destroyed(destroyed)
	}
	p.occupancy()
}

// ReleaseIdle is shorthand for Release(false): idle-only cleanup that
// leaves checked-out instances alone.
func (p *Pool[T]) ReleaseIdle() {
	p.Release(false)
}

// IdleCount returns the number of idle instances available for reuse.
func (p *Pool[T]) IdleCount() int {
	return p.idleTop + 1
}

// ActiveCount returns the number of instances currently checked out.
// Always zero for pools without active tracking.
func (p *Pool[T]) ActiveCount() int {
	return len(p.active)
}

// Tracking reports whether the pool maintains an active roster.
func (p *Pool[T]) Tracking() bool {
	return p.trackActive
}

// Name returns the pool's label.
func (p *Pool[T]) Name() string {
	return p.name
}

// Prototype returns the template instance this pool manufactures from.
func (p *Pool[T]) Prototype() T {
	return p.prototype
}

// Stats returns a snapshot of the pool's lifetime counters.
func (p *Pool[T]) Stats() Stats {
	return p.stats
}

func (p *Pool[T]) manufacture(reason string) T {
	v := p.factory.Manufacture(p.prototype, p)
	p.stats.Manufactured++
	if p.collector != nil {
		p.collector.Manufactured(reason)
	}
	return v
}

func (p *Pool[T]) occupancy() {
	if p.collector != nil {
		p.collector.Occupancy(p.IdleCount(), len(p.active))
	}
}
