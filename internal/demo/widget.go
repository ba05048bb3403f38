// Package demo provides a concrete pooled resource for the repool CLI: a
// sprite-like widget with visibility and attachment state, a catalog-
// loadable prototype shape, and the factory/lifecycle collaborators the
// engine needs to drive it.
package demo

import (
	"github.com/poolforge/repool/pkg/respool"
)

// Widget is a reusable scene object. Prototypes are decoded straight from
// catalog documents; live widgets are factory clones of a prototype.
type Widget struct {
	// Name is the widget's stable identity, used for registry keying.
	Name string `yaml:"name" json:"name"`
	// Payload is the widget's simulated resource weight.
	Payload int `yaml:"payload" json:"payload"`

	// Visible and Attached model the live scene state a lifecycle
	// deactivation clears.
	Visible  bool `yaml:"-" json:"-"`
	Attached bool `yaml:"-" json:"-"`

	destroyed bool
	home      respool.Home[*Widget]
}

// PoolName implements the identity capability.
func (w *Widget) PoolName() string {
	return w.Name
}

// Recycle returns the widget to the pool that manufactured it, using the
// back-reference attached at manufacture time. A widget without a home
// (a bare prototype) is left alone.
func (w *Widget) Recycle() {
	if w.home != nil {
		w.home.Free(w)
	}
}

// Destroyed reports whether a destructive release disposed of this widget.
func (w *Widget) Destroyed() bool {
	return w.destroyed
}

// Factory clones prototypes into deactivated live widgets.
type Factory struct{}

// Manufacture implements respool.Factory.
func (Factory) Manufacture(proto *Widget, home respool.Home[*Widget]) *Widget {
	return &Widget{
		Name:    proto.Name,
		Payload: proto.Payload,
		home:    home,
	}
}

// Lifecycle hides, detaches, and disposes of widgets.
type Lifecycle struct{}

// Deactivate implements respool.Lifecycle.
func (Lifecycle) Deactivate(w *Widget) {
	w.Visible = false
	w.Attached = false
}

// Destroy implements respool.Lifecycle.
func (Lifecycle) Destroy(w *Widget) {
	w.destroyed = true
	w.home = nil
}
