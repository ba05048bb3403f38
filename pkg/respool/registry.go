package respool

import (
	"sort"

	"go.uber.org/zap"

	"github.com/poolforge/repool/pkg/logger"
	"github.com/poolforge/repool/pkg/metrics"
	"github.com/poolforge/repool/pkg/poolerrors"
)

// RegistryConfig carries registry construction parameters.
type RegistryConfig struct {
	// CatalogPath is the catalog location handed to the catalog collaborator
	// on every load.
	CatalogPath string

	// DefaultPrewarm seeds Config.DefaultPrewarm for every pool the registry
	// creates.
	DefaultPrewarm int

	// TrackActive is applied to pools the registry creates lazily on Obtain.
	// Explicit AddPool calls choose per call.
	TrackActive bool

	// Key derives the pool key for a prototype or instance. Defaults to
	// NameOf (identity capability, DefaultKey fallback).
	Key func(v any) string

	// Name labels the registry in logs and metrics.
	Name string

	// Logger replaces the registry's logger. Defaults to the global logger
	// tagged with the registry name.
	Logger *zap.Logger

	// Metrics attaches a per-pool metrics collector to every pool the
	// registry creates.
	Metrics bool
}

// Registry multiplexes many pools of one resource family under string keys.
// It exclusively owns the pools it creates; each pool exclusively owns its
// idle buffer and active roster.
//
// Like Pool, a Registry assumes a single logical owner and performs no
// internal locking. Fan-out operations iterate pools in map order, which is
// unspecified, so callers must not rely on cross-pool ordering.
type Registry[T comparable] struct {
	pools     map[string]*Pool[T]
	catalog   Catalog[T]
	factory   Factory[T]
	lifecycle Lifecycle[T]
	cfg       RegistryConfig
	log       *zap.Logger
}

// NewRegistry creates an empty registry over the given collaborators.
// Call Preload to populate it from the catalog, or let Obtain and AddPool
// grow it lazily.
func NewRegistry[T comparable](cat Catalog[T], factory Factory[T], lifecycle Lifecycle[T], cfg RegistryConfig) *Registry[T] {
	if cfg.Name == "" {
		cfg.Name = DefaultKey
	}
	if cfg.Key == nil {
		cfg.Key = NameOf
	}
	log := cfg.Logger
	if log == nil {
		log = logger.With(zap.String("registry", cfg.Name))
	}
	return &Registry[T]{
		pools:     make(map[string]*Pool[T]),
		catalog:   cat,
		factory:   factory,
		lifecycle: lifecycle,
		cfg:       cfg,
		log:       log,
	}
}

// Preload enumerates every prototype at the configured catalog path and
// creates a backing pool per prototype with the given pre-warm count and
// tracking flag. Keys that already have a pool are skipped.
func (r *Registry[T]) Preload(count int, trackActive bool) error {
	protos, err := r.catalog.LoadAll(r.cfg.CatalogPath)
	if err != nil {
		return poolerrors.Wrap(err, poolerrors.ErrorTypeCatalog, "catalog enumeration failed").
			WithDetail("path", r.cfg.CatalogPath)
	}

	for _, proto := range protos {
		key := r.cfg.Key(proto)
		if _, ok := r.pools[key]; ok {
			continue
		}
		r.insert(key, r.newPool(proto, key, count, trackActive))
	}

	r.log.Info("registry preloaded",
		zap.Int("pools", len(r.pools)),
		zap.Int("prewarm", count))
	return nil
}

// AddPool returns the existing pool for key, or loads the named prototype
// from the catalog and creates one. Idempotent: calling it twice with the
// same key returns the same pool.
func (r *Registry[T]) AddPool(key string, count int, trackActive bool) (*Pool[T], error) {
	if p, ok := r.pools[key]; ok {
		return p, nil
	}

	proto, err := r.catalog.Load(r.cfg.CatalogPath, key)
	if err != nil {
		return nil, poolerrors.Wrap(err, poolerrors.ErrorTypeCatalog, "prototype load failed").
			WithDetail("key", key).
			WithDetail("path", r.cfg.CatalogPath)
	}

	p := r.newPool(proto, key, count, trackActive)
	r.insert(key, p)
	return p, nil
}

// AddPoolFor is AddPool keyed by the prototype's own identity, for
// prototypes the caller already holds. The catalog is not consulted.
func (r *Registry[T]) AddPoolFor(prototype T, count int, trackActive bool) *Pool[T] {
	key := r.cfg.Key(prototype)
	if p, ok := r.pools[key]; ok {
		return p
	}
	p := r.newPool(prototype, key, count, trackActive)
	r.insert(key, p)
	return p
}

// GetPool looks up the pool for key. Absence is not an error.
func (r *Registry[T]) GetPool(key string) (*Pool[T], bool) {
	p, ok := r.pools[key]
	return p, ok
}

// Obtain checks an instance out of the pool for key, lazily creating the
// pool with a pre-warm count of 1 when absent. A key the catalog cannot
// satisfy fails explicitly; the registry never substitutes an instance of
// another kind.
func (r *Registry[T]) Obtain(key string) (T, error) {
	p, ok := r.pools[key]
	if !ok {
		var err error
		p, err = r.AddPool(key, 1, r.cfg.TrackActive)
		if err != nil {
			var zero T
			return zero, err
		}
	}
	return p.Obtain(), nil
}

// ObtainFor checks out an instance of the same kind as src, resolving the
// pool key from src's identity.
func (r *Registry[T]) ObtainFor(src T) (T, error) {
	return r.Obtain(r.cfg.Key(src))
}

// FreeTo returns an instance to the pool for key. Freeing to a key with no
// pool is a hard failure: the return path disagrees with the acquire path,
// which is a caller bug the registry refuses to mask by creating capacity.
func (r *Registry[T]) FreeTo(v T, key string) error {
	p, ok := r.pools[key]
	if !ok {
		return poolerrors.New(poolerrors.ErrorTypeNotFound, "no pool for key").
			WithDetail("key", key)
	}
	p.Free(v)
	return nil
}

// Free returns an instance to the pool matching its identity.
func (r *Registry[T]) Free(v T) error {
	return r.FreeTo(v, r.cfg.Key(v))
}

// FreeAll drains every owned pool's active roster back to idle.
func (r *Registry[T]) FreeAll() {
	for _, p := range r.pools {
		p.FreeAll()
	}
}

// ReleaseAll destroys the contents of every owned pool. The pools themselves
// stay registered and usable.
func (r *Registry[T]) ReleaseAll(destroyActive bool) {
	for _, p := range r.pools {
		p.Release(destroyActive)
	}
}

// Contains reports whether a pool exists for key.
func (r *Registry[T]) Contains(key string) bool {
	_, ok := r.pools[key]
	return ok
}

// Remove detaches the pool for key from the registry, reporting whether one
// existed. The pool's contents are untouched; release them first if the
// instances should be destroyed.
func (r *Registry[T]) Remove(key string) bool {
	if _, ok := r.pools[key]; !ok {
		return false
	}
	delete(r.pools, key)
	r.size()
	return true
}

// Keys returns the registered pool keys in sorted order.
func (r *Registry[T]) Keys() []string {
	keys := make([]string, 0, len(r.pools))
	for key := range r.pools {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of owned pools.
func (r *Registry[T]) Len() int {
	return len(r.pools)
}

// Range calls fn for every key/pool pair until fn returns false. Iteration
// order is unspecified.
func (r *Registry[T]) Range(fn func(key string, p *Pool[T]) bool) {
	for key, p := range r.pools {
		if !fn(key, p) {
			return
		}
	}
}

func (r *Registry[T]) newPool(proto T, key string, count int, trackActive bool) *Pool[T] {
	opts := []Option[T]{WithLogger[T](r.log.With(zap.String("pool", key)))}
	if r.cfg.Metrics {
		opts = append(opts, WithCollector[T](metrics.NewCollector(key)))
	}
	return New(proto, Config{
		Prewarm:        count,
		DefaultPrewarm: r.cfg.DefaultPrewarm,
		TrackActive:    trackActive,
		Name:           key,
	}, r.factory, r.lifecycle, opts...)
}

func (r *Registry[T]) insert(key string, p *Pool[T]) {
	r.pools[key] = p
	r.size()
}

func (r *Registry[T]) size() {
	if r.cfg.Metrics {
		metrics.RegistryPools.WithLabelValues(r.cfg.Name).Set(float64(len(r.pools)))
	}
}
