// Package respool implements the core object-reuse engine of repool: a
// free-list pool that tracks which instances are checked out versus idle,
// supports pre-warming and controlled growth, and a string-keyed registry
// that multiplexes many such pools behind one access surface.
//
// # Architecture
//
// Pool[T] owns a growable idle buffer driven by a cursor (slots [0..top]
// hold idle instances, the most recently returned one on top) plus an
// optional roster of checked-out instances. Everything the engine does not
// understand about the pooled type is injected as a capability:
//
//   - Factory[T]: clone a prototype into a new, deactivated live instance
//   - Lifecycle[T]: deactivate an instance on return, destroy it on release
//   - Named: optional stable identity, used only for registry keying
//   - Catalog[T]: bulk-load prototypes from an external location
//
// Registry[T] maps string keys to pools, preloads them from a catalog,
// creates them lazily on first Obtain, and fans out bulk operations
// (FreeAll, ReleaseAll) to every owned pool.
//
// # Lifecycle Rules
//
// Exhaustion is not an error: Obtain manufactures on demand when the idle
// buffer is empty. Growth is not an error either, but it is diagnostic-worthy:
// the idle buffer grows by exactly one slot when a Free lands on its
// boundary, and the pool logs a warning because that means the pre-warm
// count underestimated demand. The one hard failure is freeing through the
// registry to a key that has no pool: the return path disagrees with the
// acquire path, and the registry surfaces that instead of masking it.
//
// # Usage
//
//	p := respool.New(proto, respool.Config{Prewarm: 8, TrackActive: true},
//	    factory, lifecycle)
//
//	v := p.Obtain()
//	// ... use v ...
//	p.Free(v)       // v is the next instance Obtain returns
//
//	p.FreeAll()     // drain the active roster back to idle
//	p.Release(true) // destroy everything; the pool stays usable
//
// With a registry:
//
//	reg := respool.NewRegistry(cat, factory, lifecycle, respool.RegistryConfig{
//	    CatalogPath: "assets/prototypes",
//	    TrackActive: true,
//	})
//	if err := reg.Preload(2, true); err != nil { ... }
//
//	v, err := reg.Obtain("sprite/ember")
//	// ...
//	err = reg.Free(v) // key re-derived from v's identity
//
// # Concurrency
//
// The engine assumes a single logical owner drives each pool and registry,
// typically inside one update tick. There is no internal locking; parallel
// callers need an external mutual-exclusion wrapper. Idle reuse is
// last-returned-first-obtained within a pool. Registry fan-out iterates
// pools in map order, which callers must not rely on.
package respool
