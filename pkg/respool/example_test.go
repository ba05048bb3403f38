// Package respool_test provides example usage of the object-reuse engine.
package respool_test

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/poolforge/repool/pkg/catalog"
	"github.com/poolforge/repool/pkg/respool"
)

// Example demonstrates the checkout/return cycle on a single pool and the
// stack discipline of the free list.
func Example() {
	factory := &widgetFactory{}
	lifecycle := &widgetLifecycle{}

	p := respool.New(&widget{kind: "ember"}, respool.Config{
		Prewarm:     2,
		TrackActive: true,
	}, factory, lifecycle, respool.WithLogger[*widget](zap.NewNop()))

	v := p.Obtain()
	fmt.Printf("idle=%d active=%d\n", p.IdleCount(), p.ActiveCount())

	// The instance just returned is the next one handed out
	p.Free(v)
	fmt.Printf("reused=%v\n", p.Obtain() == v)

	// Output:
	// idle=1 active=1
	// reused=true
}

// ExampleRegistry demonstrates keyed multiplexing over a prototype catalog.
func ExampleRegistry() {
	cat := catalog.NewStatic(map[string]*widget{
		"ember": {kind: "ember"},
		"frost": {kind: "frost"},
	})

	reg := respool.NewRegistry[*widget](cat, &widgetFactory{}, &widgetLifecycle{}, respool.RegistryConfig{
		TrackActive: true,
		Logger:      zap.NewNop(),
	})
	if err := reg.Preload(2, true); err != nil {
		fmt.Println(err)
		return
	}

	v, err := reg.Obtain("frost")
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("kind=%s\n", v.kind)

	// The return key is re-derived from the instance's identity
	if err := reg.Free(v); err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("pools=%v\n", reg.Keys())

	// Output:
	// kind=frost
	// pools=[ember frost]
}
