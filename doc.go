// Package repool provides an in-process object-reuse layer: it hands out
// previously-constructed instances of expensive resources instead of
// constructing new ones on every request, and reclaims instances for later
// reuse instead of destroying them.
//
// # Architecture
//
// repool is organized as three layers, leaves first:
//
// 1. pool.SimplePool[T]: a minimal LIFO reuse stack for any
// default-constructible value, with no identity tracking.
//
// 2. respool.Pool[T]: the core engine. It owns a growable idle buffer plus
// an optional roster of checked-out instances, pre-warms on construction,
// manufactures on demand through an injected factory, and grows its free
// list by exactly one slot when a return lands on the buffer boundary.
//
// 3. respool.Registry[T]: a string-keyed multiplexer over many pools.
// It preloads pools from a prototype catalog, creates them lazily on first
// checkout, and fans out bulk reclamation to every owned pool.
//
// Everything the engine does not understand about the pooled type is an
// injected capability: cloning a prototype, deactivating or destroying an
// instance, exposing an identity, and loading prototypes from a catalog.
// The catalog package ships a directory-backed implementation (YAML/JSON,
// one prototype per file).
//
// # Quick Start
//
//	import (
//	    "github.com/poolforge/repool/pkg/catalog"
//	    "github.com/poolforge/repool/pkg/respool"
//	)
//
//	cat := catalog.NewDir(func() *Sprite { return &Sprite{} })
//	reg := respool.NewRegistry[*Sprite](cat, spriteFactory{}, spriteLifecycle{},
//	    respool.RegistryConfig{CatalogPath: "assets/prototypes", TrackActive: true})
//
//	if err := reg.Preload(2, true); err != nil { ... }
//
//	s, err := reg.Obtain("sprite/ember")
//	// ... place s in the scene ...
//	err = reg.Free(s) // key re-derived from s's identity
//
// # Concurrency Model
//
// A single logical owner drives each pool and registry, typically inside one
// update tick. The engine performs no internal locking; concurrent callers
// need an external mutual-exclusion wrapper. Idle reuse within a pool is
// strictly last-returned-first-obtained.
//
// # Observability
//
// Pools log idle-buffer growth through zap (growth means the pre-warm count
// underestimated steady-state demand) and optionally report manufacture,
// growth, destruction, and occupancy through prometheus collectors in the
// metrics package.
package repool
