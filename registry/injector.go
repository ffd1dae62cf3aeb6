package registry

import (
	"fmt"
	"reflect"
)

// Inject constructs a fresh, dependency-wired instance of class and blocks
// until it is ready. Unlike Get, injection is never memoized: every call
// invokes the constructor again.
func (r *Registry) Inject(class *Class) (any, error) {
	return r.instantiate(class, nil)
}

// InjectPromise is Inject without the wait: construction runs concurrently
// and the returned promise settles with the instance or the first failure.
func (r *Registry) InjectPromise(class *Class) *Promise {
	p := newPromise()
	go func() {
		p.settle(r.instantiate(class, nil))
	}()
	return p
}

// instantiate resolves the class's declared dependencies on the given stack
// and invokes its constructor positionally.
//
// Deferred declarations never block construction: the constructor receives a
// lazy *Promise that, when first awaited, resolves the underlying key with
// the same stack captured here — so a deferred dependency still participates
// in the cycle and parent rules of the original call.
func (r *Registry) instantiate(class *Class, stack callStack) (v any, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("constructor for %s panicked: %v", class.Name(), rec)
		}
	}()

	ctorType := class.ctor.Type()
	args := make([]reflect.Value, len(class.deps))
	for i, dep := range class.deps {
		if dep.deferred {
			key := dep.key
			captured := stack
			handle := lazyPromise(func() (any, error) {
				return r.resolve(key, captured).Await()
			})
			args[i] = reflect.ValueOf(handle)
			continue
		}
		val, derr := r.resolve(dep.key, stack).Await()
		if derr != nil {
			return nil, derr
		}
		args[i] = argValue(val, ctorType.In(i))
	}

	out := class.ctor.Call(args)
	if len(out) == 2 && !out[1].IsNil() {
		return nil, out[1].Interface().(error)
	}
	return out[0].Interface(), nil
}

// argValue adapts a resolved value to a constructor parameter. Typed nils
// and untyped nils both need the parameter's zero value rather than an
// invalid reflect.Value.
func argValue(v any, param reflect.Type) reflect.Value {
	if v == nil {
		return reflect.Zero(param)
	}
	rv := reflect.ValueOf(v)
	if !rv.Type().AssignableTo(param) && rv.Type().ConvertibleTo(param) {
		return rv.Convert(param)
	}
	return rv
}
