package registry

import (
	"fmt"
	"reflect"
)

var errType = reflect.TypeOf((*error)(nil)).Elem()

// Class describes a constructible type: a constructor function plus the
// ordered list of binding keys its parameters are wired from. The declared
// list is trusted to match the constructor's parameters — validating that
// match is the caller's concern, not the resolver's.
type Class struct {
	ctor reflect.Value
	deps []Injection
	name string
}

// NewClass builds a class handle from a constructor and its dependency
// declaration. The constructor must be a func returning either (T) or
// (T, error), taking exactly one parameter per declared injection. Deferred
// injections arrive as *Promise parameters; plain injections arrive as the
// resolved values themselves.
//
//	engineClass := registry.NewClass(NewEngine)
//	carClass := registry.NewClass(NewCar, registry.Inject(engineClass.Key()))
//
// NewClass panics on a malformed constructor — class handles are built at
// registration time, where misuse is a programming error.
func NewClass(ctor any, deps ...Injection) *Class {
	v := reflect.ValueOf(ctor)
	if !v.IsValid() || v.Kind() != reflect.Func {
		panic(fmt.Sprintf("registry: constructor must be a function, got %T", ctor))
	}
	t := v.Type()
	if t.NumOut() < 1 || t.NumOut() > 2 {
		panic(fmt.Sprintf("registry: constructor %s must return (T) or (T, error)", t))
	}
	if t.NumOut() == 2 && !t.Out(1).Implements(errType) {
		panic(fmt.Sprintf("registry: constructor %s second return value must be error", t))
	}
	if t.IsVariadic() {
		panic(fmt.Sprintf("registry: constructor %s must not be variadic", t))
	}
	if t.NumIn() != len(deps) {
		panic(fmt.Sprintf("registry: constructor %s takes %d parameters but %d dependencies are declared",
			t, t.NumIn(), len(deps)))
	}
	return &Class{
		ctor: v,
		deps: append([]Injection(nil), deps...),
		name: typeName(t.Out(0)),
	}
}

// Key returns the class's own binding key. Identity of the handle, not the
// underlying Go type, is what the registry keys on.
func (c *Class) Key() Key { return Key{class: c} }

// Name returns the display name of the constructed type, used in error
// messages and logs.
func (c *Class) Name() string { return c.name }

// Dependencies returns a copy of the declared dependency list.
func (c *Class) Dependencies() []Injection {
	return append([]Injection(nil), c.deps...)
}

// typeName returns a readable name for a constructed type, dereferencing
// pointers so *Engine and Engine both display as the underlying type.
func typeName(t reflect.Type) string {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.String()
}
