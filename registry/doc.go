// Package registry provides a hierarchical, lazily-resolving dependency
// injection registry.
//
// # Overview
//
// A Registry maps binding keys — class handles or string names — to
// producers of values. Resolution is lazy and memoized: the first Get for a
// key triggers its producer, every later Get (including concurrent ones)
// shares the same result. Registries nest: a child created with Child
// inherits lookups from its parent and may shadow parent bindings without
// touching them.
//
// # Keys and classes
//
//	// A class bundles a constructor with its declared dependencies.
//	engineClass := registry.NewClass(NewEngine)
//	carClass := registry.NewClass(NewCar, registry.Inject(engineClass.Key()))
//
//	// Name keys address bindings by string.
//	cfgKey := registry.Named("config")
//
// # Bindings
//
//	r := registry.New()
//
//	// Constructible — built on first Get, memoized afterwards
//	r.Bind(carClass.Key())
//
//	// Factory — user code, restricted Scope, runs at most once
//	r.Create(registry.Named("db"), func(s registry.Scope) (any, error) {
//	    cfg, err := s.Get(cfgKey)
//	    if err != nil {
//	        return nil, err
//	    }
//	    return openDatabase(cfg.(*Config))
//	})
//
//	// Pre-resolved value — stored directly in the memo cache
//	r.Use(cfgKey, cfg)
//
// # Resolving
//
//	car, err := r.Get(carClass.Key())
//
//	// Typed, via the generic helper
//	car, err := registry.Resolve[*Car](r, carClass.Key())
//
//	// On-demand construction — a fresh instance every call, never memoized
//	another, err := r.Inject(carClass)
//
// # Deferred dependencies
//
// A dependency declared with Deferred is handed to the constructor as a
// *Promise instead of a resolved value. Construction does not wait for it;
// awaiting the promise later triggers (or joins) the resolution.
//
//	reportClass := registry.NewClass(
//	    func(db *registry.Promise) *Reporter { return &Reporter{db: db} },
//	    registry.Deferred(registry.Named("db")),
//	)
//
// # Hierarchy
//
//	parent := registry.New().Use(registry.Named("greeting"), "hello")
//	child := parent.Child().Use(registry.Named("greeting"), "hi")
//
//	child.Get(registry.Named("greeting"))  // "hi"
//	parent.Get(registry.Named("greeting")) // "hello" — parent untouched
//
// # Failure semantics
//
// Unresolvable keys reject with *UnresolvedError, same-path cycles with
// *CycleError, and constructor or factory failures propagate unchanged. A
// failed memoized promise replays the same rejection to every holder;
// nothing is retried and no failure is fatal to the process.
package registry
