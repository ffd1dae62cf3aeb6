package registry_test

import (
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/go-injector/registry"
)

// ── test fixtures ────────────────────────────────────────────────────────────

type Engine struct {
	Cylinders int
}

func NewEngine() *Engine { return &Engine{Cylinders: 8} }

type Car struct {
	Engine *Engine
}

func NewCar(e *Engine) *Car { return &Car{Engine: e} }

// countingFactory returns a factory that counts its invocations.
func countingFactory(n *atomic.Int32) registry.Factory {
	return func(registry.Scope) (any, error) {
		return n.Add(1), nil
	}
}

// ── Bind ─────────────────────────────────────────────────────────────────────

func TestBind_ClassKeyAsImplementation(t *testing.T) {
	engineClass := registry.NewClass(NewEngine)
	r := registry.New().Bind(engineClass.Key())

	v, err := r.Get(engineClass.Key())
	require.NoError(t, err)
	assert.Equal(t, 8, v.(*Engine).Cylinders)
}

func TestBind_NamedKeyWithExplicitClass(t *testing.T) {
	engineClass := registry.NewClass(NewEngine)
	r := registry.New().Bind(registry.Named("engine"), engineClass)

	v, err := r.Get(registry.Named("engine"))
	require.NoError(t, err)
	assert.IsType(t, &Engine{}, v)
}

func TestBind_NamedKeyWithoutClassPanics(t *testing.T) {
	assert.Panics(t, func() {
		registry.New().Bind(registry.Named("engine"))
	})
}

func TestBind_IsLazy(t *testing.T) {
	var built atomic.Int32
	class := registry.NewClass(func() int {
		built.Add(1)
		return 1
	})
	registry.New().Bind(class.Key())

	assert.Equal(t, int32(0), built.Load(), "Bind must not construct eagerly")
}

func TestBind_LastRegistrationWins(t *testing.T) {
	key := registry.Named("engine")
	r := registry.New().
		Bind(key, registry.NewClass(func() string { return "first" })).
		Bind(key, registry.NewClass(func() string { return "second" }))

	v, err := r.Get(key)
	require.NoError(t, err)
	assert.Equal(t, "second", v)
}

// Rebinding after the first resolution does not invalidate the memo cache:
// the already-memoized value keeps winning. This pins the historical
// last-bind-before-first-get semantics.
func TestBind_AfterResolutionKeepsMemoizedValue(t *testing.T) {
	key := registry.Named("engine")
	r := registry.New().Bind(key, registry.NewClass(func() string { return "old" }))

	v, err := r.Get(key)
	require.NoError(t, err)
	require.Equal(t, "old", v)

	r.Bind(key, registry.NewClass(func() string { return "new" }))

	v, err = r.Get(key)
	require.NoError(t, err)
	assert.Equal(t, "old", v, "memoized value must survive rebinding")
}

// ── Create ───────────────────────────────────────────────────────────────────

func TestCreate_FactoryReceivesScope(t *testing.T) {
	r := registry.New().
		Use(registry.Named("greeting"), "hello").
		Create(registry.Named("message"), func(s registry.Scope) (any, error) {
			g, err := s.Get(registry.Named("greeting"))
			if err != nil {
				return nil, err
			}
			return g.(string) + " world", nil
		})

	v, err := r.Get(registry.Named("message"))
	require.NoError(t, err)
	assert.Equal(t, "hello world", v)
}

func TestCreate_NilFactoryPanics(t *testing.T) {
	assert.Panics(t, func() {
		registry.New().Create(registry.Named("x"), nil)
	})
}

// ── Use ──────────────────────────────────────────────────────────────────────

func TestUse_ValueIsResolvedImmediately(t *testing.T) {
	cfg := &Engine{Cylinders: 4}
	r := registry.New().Use(registry.Named("engine"), cfg)

	v, err := r.Get(registry.Named("engine"))
	require.NoError(t, err)
	assert.Same(t, cfg, v)
}

func TestUse_AdoptsPendingPromise(t *testing.T) {
	release := make(chan struct{})
	key := registry.Named("slow")

	lazy := registry.New().Create(key, func(registry.Scope) (any, error) {
		<-release
		return "done", nil
	}).GetPromise(key)

	r := registry.New().Use(registry.Named("adopted"), lazy)
	close(release)

	v, err := r.Get(registry.Named("adopted"))
	require.NoError(t, err)
	assert.Equal(t, "done", v)
}

func TestUse_AdoptsRejectedPromise(t *testing.T) {
	boom := errors.New("boom")
	r := registry.New().Use(registry.Named("bad"), registry.Rejected(boom))

	_, err := r.Get(registry.Named("bad"))
	assert.ErrorIs(t, err, boom)
}

func TestUse_ShadowsEarlierBind(t *testing.T) {
	key := registry.Named("x")
	r := registry.New().
		Bind(key, registry.NewClass(func() string { return "bound" })).
		Use(key, "used")

	v, err := r.Get(key)
	require.NoError(t, err)
	assert.Equal(t, "used", v)
}

// ── Chaining ─────────────────────────────────────────────────────────────────

func TestRegistration_IsChainable(t *testing.T) {
	r := registry.New()
	returned := r.
		Use(registry.Named("a"), 1).
		Bind(registry.Named("b"), registry.NewClass(func() int { return 2 })).
		Create(registry.Named("c"), func(registry.Scope) (any, error) { return 3, nil })

	assert.Same(t, r, returned)
}

// ── Singleton guarantee ──────────────────────────────────────────────────────

func TestGet_SingletonPerBinding(t *testing.T) {
	var n atomic.Int32
	key := registry.Named("counter")
	r := registry.New().Create(key, countingFactory(&n))

	first, err := r.Get(key)
	require.NoError(t, err)
	second, err := r.Get(key)
	require.NoError(t, err)

	assert.Equal(t, int32(1), first)
	assert.Equal(t, int32(1), second)
	assert.Equal(t, int32(1), n.Load(), "producer must run exactly once")
}

func TestGet_SameInstanceByIdentity(t *testing.T) {
	engineClass := registry.NewClass(NewEngine)
	r := registry.New().Bind(engineClass.Key())

	a, err := r.Get(engineClass.Key())
	require.NoError(t, err)
	b, err := r.Get(engineClass.Key())
	require.NoError(t, err)
	assert.Same(t, a, b)
}

// ── Bound ────────────────────────────────────────────────────────────────────

func TestBound_ChecksSelfAndAncestors(t *testing.T) {
	parent := registry.New().Use(registry.Named("x"), 1)
	child := parent.Child()

	assert.True(t, parent.Bound(registry.Named("x")))
	assert.True(t, child.Bound(registry.Named("x")))
	assert.False(t, child.Bound(registry.Named("y")))
}

// ── Generic helpers ──────────────────────────────────────────────────────────

func TestResolve_TypedValue(t *testing.T) {
	engineClass := registry.NewClass(NewEngine)
	r := registry.New().Bind(engineClass.Key())

	e, err := registry.Resolve[*Engine](r, engineClass.Key())
	require.NoError(t, err)
	assert.Equal(t, 8, e.Cylinders)
}

func TestResolve_TypeMismatch(t *testing.T) {
	r := registry.New().Use(registry.Named("x"), "a string")

	_, err := registry.Resolve[int](r, registry.Named("x"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "resolved to string")
}

func TestMustResolve_PanicsOnMissingBinding(t *testing.T) {
	assert.Panics(t, func() {
		registry.MustResolve[int](registry.New(), registry.Named("missing"))
	})
}
