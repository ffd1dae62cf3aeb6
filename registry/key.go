package registry

import "strconv"

// ── Binding keys ─────────────────────────────────────────────────────────────

// Key addresses a binding within a registry. A key is either a class key —
// the identity of a *Class handle — or a plain string name. Keys are
// comparable and usable as map keys; class keys compare by handle identity,
// so two otherwise-identical classes never collide.
type Key struct {
	class *Class
	name  string
}

// Named builds a string-named key.
//
//	r.Use(registry.Named("config"), cfg)
func Named(name string) Key {
	return Key{name: name}
}

// IsClass reports whether the key addresses a class binding.
func (k Key) IsClass() bool { return k.class != nil }

// IsZero reports whether the key is the zero value (neither class nor name).
func (k Key) IsZero() bool { return k.class == nil && k.name == "" }

// Class returns the class handle for a class key, or nil for a name key.
func (k Key) Class() *Class { return k.class }

// String returns the display form used in error messages: the class name for
// class keys, the quoted name for string keys.
func (k Key) String() string {
	if k.class != nil {
		return k.class.Name()
	}
	return strconv.Quote(k.name)
}

// ── Dependency declarations ──────────────────────────────────────────────────

// Injection is one entry of a class's declared dependency list: a binding
// key, optionally marked deferred.
type Injection struct {
	key      Key
	deferred bool
}

// Inject declares an eagerly-resolved dependency: the constructor receives
// the resolved value itself.
func Inject(key Key) Injection {
	return Injection{key: key}
}

// Deferred declares a lazily-resolved dependency: the constructor receives a
// *Promise instead of the value, and resolution is triggered only when the
// promise is first awaited.
//
//	registry.NewClass(NewServer, registry.Inject(configKey), registry.Deferred(dbKey))
func Deferred(key Key) Injection {
	return Injection{key: key, deferred: true}
}

// Key returns the binding key the injection refers to.
func (i Injection) Key() Key { return i.key }

// IsDeferred reports whether the injection is resolved lazily.
func (i Injection) IsDeferred() bool { return i.deferred }
