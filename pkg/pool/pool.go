// Package pool provides a minimal LIFO reuse stack for default-constructible
// values. It has no identity tracking and no active/idle distinction beyond
// "in the stack or not". For pre-warming, checkout rosters, and keyed
// multiplexing see the respool package.
//
// The pool assumes a single logical owner drives it; it is not safe for
// concurrent use. Wrap it externally or use sync.Pool when parallel callers
// are in play.
//
// Example usage:
//
//	scratch := pool.NewSimplePool(func() *bytes.Buffer {
//	    return bytes.NewBuffer(make([]byte, 0, 1024))
//	})
//
//	buf := scratch.Obtain()
//	buf.Reset()
//	// ... use buf ...
//	scratch.Free(buf)
package pool

import "reflect"

// SimplePool is a generic reuse stack. The most recently freed value is the
// next one handed out. The zero value is usable; without a New hook, Obtain
// returns the zero value of T on an empty stack.
type SimplePool[T any] struct {
	items []T

	// New constructs a fresh value when the stack is empty. Optional.
	New func() T
}

// NewSimplePool creates a reuse stack with the given constructor hook.
func NewSimplePool[T any](newFn func() T) *SimplePool[T] {
	return &SimplePool[T]{New: newFn}
}

// Obtain pops and returns the top of the reuse stack if non-empty, otherwise
// it constructs and returns a fresh value. It never fails.
func (p *SimplePool[T]) Obtain() T {
	n := len(p.items)
	if n == 0 {
		if p.New != nil {
			return p.New()
		}
		var zero T
		return zero
	}
	item := p.items[n-1]
	var zero T
	p.items[n-1] = zero // drop the stack's reference
	p.items = p.items[:n-1]
	return item
}

// TryObtain pops and returns the top of the reuse stack, reporting whether a
// reused value was available. On a miss it returns the zero value and false
// without constructing anything.
func (p *SimplePool[T]) TryObtain() (T, bool) {
	n := len(p.items)
	if n == 0 {
		var zero T
		return zero, false
	}
	item := p.items[n-1]
	var zero T
	p.items[n-1] = zero
	p.items = p.items[:n-1]
	return item, true
}

// Free pushes a value back onto the reuse stack. Nil pointers, maps, slices,
// channels, and functions are ignored so a caller can unconditionally free
// optional values.
func (p *SimplePool[T]) Free(v T) {
	if isNil(v) {
		return
	}
	p.items = append(p.items, v)
}

// Release discards all currently held idle values. Values already obtained
// from the pool are unaffected.
func (p *SimplePool[T]) Release() {
	p.items = nil
}

// Len returns the number of idle values currently held.
func (p *SimplePool[T]) Len() int {
	return len(p.items)
}

// isNil reports whether v is a nil value of a nillable kind. T is
// unconstrained, so typed nils need a reflective check.
func isNil[T any](v T) bool {
	rv := reflect.ValueOf(&v).Elem()
	switch rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}
