package respool

// DefaultKey is the registry key used for values that expose no identity.
const DefaultKey = "default"

// Home is the non-owning handle a manufactured instance keeps back to the
// pool that owns it, so the instance can return itself without the caller
// remembering which pool it came from. It exposes only the return path;
// ownership of the instance flows strictly from pool to instance.
type Home[T any] interface {
	Free(v T)
}

// Factory manufactures new live instances from a prototype. Implementations
// clone the prototype, apply a default deactivated state, assign a name, and
// attach the Home handle when the instance supports it. Manufacture is
// expected to succeed deterministically; the engine absorbs exhaustion by
// manufacturing on demand and never surfaces it as an error.
type Factory[T any] interface {
	Manufacture(prototype T, home Home[T]) T
}

// Lifecycle hides and disposes of instances on behalf of the engine.
// Deactivate is called whenever an instance returns to the idle buffer: it
// must make the instance invisible/inert and detach it from any container
// it was placed into. Destroy permanently disposes of an instance during a
// destructive release.
type Lifecycle[T any] interface {
	Deactivate(v T)
	Destroy(v T)
}

// Named is the optional identity capability. Prototypes and instances that
// report a stable, non-empty pool name are keyed by it in the registry;
// everything else falls back to DefaultKey. Identity is read-only to the
// engine.
type Named interface {
	PoolName() string
}

// Catalog loads candidate prototypes from an external location. LoadAll
// enumerates every prototype at the path for registry pre-population; Load
// fetches a single named prototype on demand. See the catalog package for
// a directory-backed implementation.
type Catalog[T any] interface {
	LoadAll(path string) ([]T, error)
	Load(path, name string) (T, error)
}

// NameOf resolves the pool key for a value: its PoolName when the value
// implements Named with a non-empty name, DefaultKey otherwise.
func NameOf(v any) string {
	if n, ok := v.(Named); ok {
		if name := n.PoolName(); name != "" {
			return name
		}
	}
	return DefaultKey
}
