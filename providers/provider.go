package providers

import (
	"sync"

	"github.com/km-arc/go-injector/registry"
)

// ── ServiceProvider interface ─────────────────────────────────────────────────

// ServiceProvider groups related registrations so applications can be
// assembled from modular pieces.
//
// Every provider must implement at minimum Register().
// Boot() is called after ALL providers have been registered, making it safe
// to resolve other bindings inside Boot().
//
//	type AppServiceProvider struct{ providers.BaseProvider }
//
//	func (p *AppServiceProvider) Register(app *registry.Registry) {
//	    app.Create(registry.Named("mailer"), func(s registry.Scope) (any, error) {
//	        cfg, err := s.Get(providers.ConfigKey)
//	        if err != nil {
//	            return nil, err
//	        }
//	        return mail.NewSMTP(cfg.(*config.Config)), nil
//	    })
//	}
type ServiceProvider interface {
	// Register declares bindings on the registry.
	// Do NOT resolve other bindings here — use Boot() for that.
	Register(app *registry.Registry)

	// Boot is called after all providers are registered.
	// Safe to resolve and use any binding here.
	Boot(app *registry.Registry)

	// Provides returns the binding keys this provider registers.
	// Used for deferred (lazy) provider loading.
	// Return nil / empty slice if the provider is always eager.
	Provides() []registry.Key

	// IsDeferred returns true if this provider should be loaded lazily —
	// only when one of its Provides() keys is first resolved.
	IsDeferred() bool
}

// ── BaseProvider ──────────────────────────────────────────────────────────────

// BaseProvider is an embeddable struct that provides no-op implementations
// of Boot(), Provides(), and IsDeferred().
// Embed it in your provider and only override what you need.
type BaseProvider struct{}

func (p *BaseProvider) Boot(_ *registry.Registry)  {}
func (p *BaseProvider) Provides() []registry.Key   { return nil }
func (p *BaseProvider) IsDeferred() bool           { return false }

// ── ProviderRegistry ──────────────────────────────────────────────────────────

// ProviderRegistry manages registration and booting of ServiceProviders,
// including deferred (lazy) providers.
type ProviderRegistry struct {
	mu         sync.Mutex
	app        *registry.Registry
	eager      []ServiceProvider
	loaded     map[ServiceProvider]*deferredLoad
	registered map[ServiceProvider]bool
	booted     bool
}

// deferredLoad tracks one deferred provider's staging registry. done closes
// only after the provider's Register has completed, so a concurrent lookup of
// another of its keys never observes a half-registered staging registry —
// that lookup would miss locally, delegate to the application registry and
// await its own intercepting promise forever.
type deferredLoad struct {
	staging *registry.Registry
	done    chan struct{}
}

// NewProviderRegistry creates a registry bound to app.
func NewProviderRegistry(app *registry.Registry) *ProviderRegistry {
	return &ProviderRegistry{
		app:        app,
		loaded:     make(map[ServiceProvider]*deferredLoad),
		registered: make(map[ServiceProvider]bool),
	}
}

// Register adds a provider and calls its Register() method (unless deferred).
func (r *ProviderRegistry) Register(provider ServiceProvider) {
	r.mu.Lock()
	if r.registered[provider] {
		r.mu.Unlock()
		return
	}
	r.registered[provider] = true
	r.mu.Unlock()

	if provider.IsDeferred() {
		r.interceptDeferred(provider)
		return
	}

	provider.Register(r.app)

	// The append and the booted check share one critical section with Boot's
	// snapshot, so a Register racing Boot() boots the provider exactly once:
	// either Boot's snapshot already has it, or the flag is set here.
	r.mu.Lock()
	r.eager = append(r.eager, provider)
	booted := r.booted
	r.mu.Unlock()

	if booted {
		provider.Boot(r.app)
	}
}

// interceptDeferred registers a lazy producer for each deferred key. The
// first Get triggers the provider's real registration into a staging child
// registry, so the provider's bindings can still resolve application-level
// dependencies while its lazy producer is mid-resolution.
func (r *ProviderRegistry) interceptDeferred(provider ServiceProvider) {
	for _, key := range provider.Provides() {
		k := key
		r.app.Create(k, func(registry.Scope) (any, error) {
			return r.load(provider).Get(k)
		})
	}
}

// load registers a deferred provider into its staging registry on first use.
// Callers that lose the race block until registration has completed.
func (r *ProviderRegistry) load(provider ServiceProvider) *registry.Registry {
	r.mu.Lock()
	if l, ok := r.loaded[provider]; ok {
		r.mu.Unlock()
		<-l.done
		return l.staging
	}
	l := &deferredLoad{staging: r.app.Child(), done: make(chan struct{})}
	r.loaded[provider] = l
	r.mu.Unlock()

	provider.Register(l.staging)
	close(l.done)

	r.mu.Lock()
	booted := r.booted
	r.mu.Unlock()
	if booted {
		provider.Boot(l.staging)
	}
	return l.staging
}

// Boot calls Boot() on all eager providers.
// Must be called after ALL providers have been registered.
func (r *ProviderRegistry) Boot() {
	r.mu.Lock()
	if r.booted {
		r.mu.Unlock()
		return
	}
	r.booted = true
	eager := append([]ServiceProvider(nil), r.eager...)
	r.mu.Unlock()

	for _, provider := range eager {
		provider.Boot(r.app)
	}
}

// Booted returns true if Boot() has been called.
func (r *ProviderRegistry) Booted() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.booted
}

// Providers returns all registered eager providers.
func (r *ProviderRegistry) Providers() []ServiceProvider {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]ServiceProvider(nil), r.eager...)
}
