package respool_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/poolforge/repool/pkg/respool"
)

// widget is the pooled resource the engine tests drive: a scene-object
// stand-in with visibility/attachment state and the back-reference to its
// owning pool.
type widget struct {
	kind      string
	serial    int
	visible   bool
	attached  bool
	destroyed bool
	home      respool.Home[*widget]
}

func (w *widget) PoolName() string {
	return w.kind
}

type widgetFactory struct {
	made int
}

func (f *widgetFactory) Manufacture(proto *widget, home respool.Home[*widget]) *widget {
	f.made++
	return &widget{kind: proto.kind, serial: f.made, home: home}
}

type widgetLifecycle struct {
	deactivated int
	destroyed   int
}

func (l *widgetLifecycle) Deactivate(w *widget) {
	w.visible = false
	w.attached = false
	l.deactivated++
}

func (l *widgetLifecycle) Destroy(w *widget) {
	w.destroyed = true
	l.destroyed++
}

func newTestPool(prewarm int, track bool) (*respool.Pool[*widget], *widgetFactory, *widgetLifecycle) {
	factory := &widgetFactory{}
	lifecycle := &widgetLifecycle{}
	p := respool.New(&widget{kind: "ember"}, respool.Config{
		Prewarm:     prewarm,
		TrackActive: track,
	}, factory, lifecycle, respool.WithLogger[*widget](zap.NewNop()))
	return p, factory, lifecycle
}

func TestPrewarmManufacturesExactly(t *testing.T) {
	p, factory, _ := newTestPool(4, true)

	assert.Equal(t, 4, factory.made)
	assert.Equal(t, 4, p.IdleCount())
	assert.Zero(t, p.ActiveCount())
	assert.Equal(t, int64(4), p.Stats().Manufactured)
}

func TestNegativePrewarmUsesConfiguredDefault(t *testing.T) {
	factory := &widgetFactory{}
	p := respool.New(&widget{kind: "ember"}, respool.Config{
		Prewarm:        -1,
		DefaultPrewarm: 3,
	}, factory, &widgetLifecycle{})

	assert.Equal(t, 3, factory.made)
	assert.Equal(t, 3, p.IdleCount())
}

func TestNegativePrewarmFallsBackToPackageDefault(t *testing.T) {
	factory := &widgetFactory{}
	p := respool.New(&widget{kind: "ember"}, respool.Config{
		Prewarm: -1,
	}, factory, &widgetLifecycle{})

	assert.Equal(t, respool.DefaultPrewarm, factory.made)
	assert.Equal(t, respool.DefaultPrewarm, p.IdleCount())
}

func TestZeroPrewarmStartsLogicallyEmpty(t *testing.T) {
	p, factory, _ := newTestPool(0, false)

	assert.Zero(t, factory.made)
	assert.Zero(t, p.IdleCount())

	// Exhaustion is absorbed by on-demand manufacturing, not an error
	v := p.Obtain()
	require.NotNil(t, v)
	assert.Equal(t, 1, factory.made)
}

func TestFreeThenObtainReturnsSameInstance(t *testing.T) {
	p, _, _ := newTestPool(2, false)

	v := p.Obtain()
	p.Free(v)

	assert.Same(t, v, p.Obtain())
}

func TestObtainHandsOutMostRecentlyReturned(t *testing.T) {
	p, _, _ := newTestPool(0, false)

	a := p.Obtain()
	b := p.Obtain()
	p.Free(a)
	p.Free(b)

	assert.Same(t, b, p.Obtain())
	assert.Same(t, a, p.Obtain())
}

func TestLiveInstancesBoundedByManufactures(t *testing.T) {
	p, factory, _ := newTestPool(2, true)

	seen := make(map[*widget]bool)
	for i := 0; i < 5; i++ {
		seen[p.Obtain()] = true
	}

	// 2 pre-warmed + 3 manufactured on demand
	assert.Len(t, seen, 5)
	assert.Equal(t, 5, factory.made)
	assert.Equal(t, 5, p.ActiveCount())
}

func TestFreeGrowsBufferOnlyOnBoundary(t *testing.T) {
	p, _, _ := newTestPool(0, false)

	a := p.Obtain()
	b := p.Obtain()

	// First return lands in the reserved slot, no growth
	p.Free(a)
	assert.Zero(t, p.Stats().Grown)

	// Second return lands exactly on the buffer boundary and grows it by one
	p.Free(b)
	assert.Equal(t, int64(1), p.Stats().Grown)
	assert.Equal(t, 2, p.IdleCount())
}

func TestFreeDeactivatesInstance(t *testing.T) {
	p, _, lifecycle := newTestPool(1, false)

	v := p.Obtain()
	v.visible = true
	v.attached = true

	p.Free(v)
	assert.False(t, v.visible)
	assert.False(t, v.attached)
	assert.Equal(t, 1, lifecycle.deactivated)
}

func TestFreeAllDrainsActiveRoster(t *testing.T) {
	p, factory, _ := newTestPool(3, true)

	for i := 0; i < 3; i++ {
		p.Obtain()
	}
	require.Equal(t, 3, p.ActiveCount())
	require.Zero(t, p.IdleCount())

	p.FreeAll()
	assert.Zero(t, p.ActiveCount())
	assert.Equal(t, 3, p.IdleCount())

	// Every drained instance is obtainable again without manufacturing
	made := factory.made
	for i := 0; i < 3; i++ {
		p.Obtain()
	}
	assert.Equal(t, made, factory.made)
}

func TestFreeAllWithoutTrackingIsNoop(t *testing.T) {
	p, _, _ := newTestPool(1, false)

	p.Obtain()
	p.FreeAll()

	assert.Zero(t, p.IdleCount())
	assert.Zero(t, p.ActiveCount())
}

func TestReleaseIdleLeavesActiveAlone(t *testing.T) {
	p, factory, lifecycle := newTestPool(4, true)

	a := p.Obtain()
	b := p.Obtain()
	require.Equal(t, 2, p.IdleCount())

	p.Release(false)

	assert.Zero(t, p.IdleCount())
	assert.Equal(t, 2, p.ActiveCount())
	assert.Equal(t, 2, lifecycle.destroyed)
	assert.False(t, a.destroyed)
	assert.False(t, b.destroyed)

	// A subsequent obtain manufactures fresh rather than reusing a
	// destroyed instance
	made := factory.made
	v := p.Obtain()
	assert.Equal(t, made+1, factory.made)
	assert.False(t, v.destroyed)
}

func TestReleaseDestroyActiveEmptiesEverything(t *testing.T) {
	p, factory, lifecycle := newTestPool(3, true)

	a := p.Obtain()
	p.Release(true)

	assert.Zero(t, p.IdleCount())
	assert.Zero(t, p.ActiveCount())
	assert.Equal(t, 3, lifecycle.destroyed)
	assert.True(t, a.destroyed)
	assert.Equal(t, int64(3), p.Stats().Destroyed)

	made := factory.made
	v := p.Obtain()
	assert.Equal(t, made+1, factory.made)
	assert.False(t, v.destroyed)
}

func TestReleaseIdleShorthand(t *testing.T) {
	p, _, lifecycle := newTestPool(2, true)

	v := p.Obtain()
	p.ReleaseIdle()

	assert.Zero(t, p.IdleCount())
	assert.Equal(t, 1, p.ActiveCount())
	assert.False(t, v.destroyed)
	assert.Equal(t, 1, lifecycle.destroyed)
}

func TestInstanceReturnsItselfThroughHome(t *testing.T) {
	p, _, _ := newTestPool(1, true)

	v := p.Obtain()
	require.NotNil(t, v.home)

	v.home.Free(v)
	assert.Zero(t, p.ActiveCount())
	assert.Equal(t, 1, p.IdleCount())
	assert.Same(t, v, p.Obtain())
}

func TestPoolNameDefaultsToPrototypeIdentity(t *testing.T) {
	p, _, _ := newTestPool(0, false)
	assert.Equal(t, "ember", p.Name())
}

func TestStatsCounters(t *testing.T) {
	p, _, _ := newTestPool(1, true)

	v := p.Obtain()
	p.Free(v)
	p.Obtain()

	stats := p.Stats()
	assert.Equal(t, int64(1), stats.Manufactured)
	assert.Equal(t, int64(2), stats.Obtained)
	assert.Equal(t, int64(1), stats.Freed)
}
