package registry

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// ── Producers ────────────────────────────────────────────────────────────────

// Factory is a user-supplied producer. It receives a restricted resolution
// surface — Get/Inject/Child, no registration methods — scoped to the call
// stack active at invocation time.
type Factory func(Scope) (any, error)

type producerKind int

const (
	producerConstructed producerKind = iota
	producerFactory
)

// producer is the tagged variant dispatched by the resolver: a constructible
// class or a user factory. Pre-resolved values (Use) never enter the
// producer map — they live directly in the memo cache.
type producer struct {
	kind    producerKind
	class   *Class
	factory Factory
}

// ── Registry ─────────────────────────────────────────────────────────────────

// Registry is a hierarchical dependency-injection registry. Bindings are
// declared with Bind, Create and Use, resolved lazily with Get, and memoized
// so each producer runs at most once per registry instance. A child registry
// (Child) inherits lookups from its parent and may shadow parent bindings
// without mutating them.
//
//	r := registry.New()
//	r.Bind(engineClass.Key()).
//	  Create(registry.Named("db"), openDatabase).
//	  Use(registry.Named("config"), cfg)
//
//	db, err := r.Get(registry.Named("db"))
type Registry struct {
	mu     sync.Mutex
	parent *Registry

	// key → producer; last registration wins
	producers map[Key]*producer

	// key → in-flight or settled promise; one producer run per entry
	memo map[Key]*Promise

	logger *zap.Logger
}

// New creates an empty root registry.
func New(opts ...Option) *Registry {
	r := &Registry{
		producers: make(map[Key]*producer),
		memo:      make(map[Key]*Promise),
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ── Registration ─────────────────────────────────────────────────────────────

// Bind registers a constructible binding for key. With an explicit class the
// producer constructs that class; without one the key itself must be a class
// key and its own class is constructed. A later Bind for the same key
// replaces the earlier producer. Nothing is constructed until the key is
// first resolved.
//
//	r.Bind(carClass.Key())                       // key doubles as implementation
//	r.Bind(registry.Named("engine"), v8Class)    // named key, explicit class
func (r *Registry) Bind(key Key, class ...*Class) *Registry {
	impl := optionalClass(class)
	if impl == nil {
		if !key.IsClass() {
			panic(fmt.Sprintf("registry: Bind(%s) without an implementation requires a class key", key))
		}
		impl = key.Class()
	}
	r.mu.Lock()
	r.producers[key] = &producer{kind: producerConstructed, class: impl}
	r.mu.Unlock()
	r.logger.Debug("binding registered",
		zap.Stringer("key", key), zap.String("class", impl.Name()))
	return r
}

// Create registers a factory-produced binding for key. The factory runs at
// most once, on first resolution, and receives a Scope bound to the call
// stack active at that moment.
//
//	r.Create(registry.Named("db"), func(s registry.Scope) (any, error) {
//	    cfg, err := s.Get(registry.Named("config"))
//	    if err != nil {
//	        return nil, err
//	    }
//	    return sql.Open("postgres", cfg.(*Config).DSN)
//	})
func (r *Registry) Create(key Key, factory Factory) *Registry {
	if factory == nil {
		panic(fmt.Sprintf("registry: Create(%s) requires a factory", key))
	}
	r.mu.Lock()
	r.producers[key] = &producer{kind: producerFactory, factory: factory}
	r.mu.Unlock()
	r.logger.Debug("factory registered", zap.Stringer("key", key))
	return r
}

// Use registers a pre-resolved value for key, straight into the memo cache.
// A *Promise value is adopted as-is — pending or already rejected — so
// promise-shaped inputs are normalized rather than double-wrapped. Lookups
// for the key find the entry immediately; no producer is involved.
func (r *Registry) Use(key Key, value any) *Registry {
	p, ok := value.(*Promise)
	if !ok {
		p = Resolved(value)
	}
	r.mu.Lock()
	r.memo[key] = p
	r.mu.Unlock()
	r.logger.Debug("value registered", zap.Stringer("key", key))
	return r
}

// ── Hierarchy ────────────────────────────────────────────────────────────────

// Child returns a new registry with empty bindings and memo whose lookups
// fall through to r on a local miss. Bindings added to the child shadow the
// parent's without mutating them; the parent pointer is fixed for the
// child's lifetime.
func (r *Registry) Child() *Registry {
	return &Registry{
		parent:    r,
		producers: make(map[Key]*producer),
		memo:      make(map[Key]*Promise),
		logger:    r.logger,
	}
}

// Bound reports whether key has a producer or a memoized value in this
// registry or any ancestor.
func (r *Registry) Bound(key Key) bool {
	r.mu.Lock()
	_, hasProducer := r.producers[key]
	_, hasMemo := r.memo[key]
	r.mu.Unlock()
	if hasProducer || hasMemo {
		return true
	}
	if r.parent != nil {
		return r.parent.Bound(key)
	}
	return false
}

func optionalClass(class []*Class) *Class {
	if len(class) == 0 {
		return nil
	}
	return class[0]
}

// ── Generics helpers ─────────────────────────────────────────────────────────

// Resolve resolves key and type-asserts the result.
//
//	cfg, err := registry.Resolve[*config.Config](r, registry.Named("config"))
func Resolve[T any](r *Registry, key Key) (T, error) {
	var zero T
	v, err := r.Get(key)
	if err != nil {
		return zero, err
	}
	typed, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("registry: %s resolved to %T, want %T", key, v, zero)
	}
	return typed, nil
}

// MustResolve is like Resolve but panics on failure. Intended for bootstrap
// code where a missing binding is a programming error.
func MustResolve[T any](r *Registry, key Key) T {
	v, err := Resolve[T](r, key)
	if err != nil {
		panic(fmt.Sprintf("registry: %v", err))
	}
	return v
}
