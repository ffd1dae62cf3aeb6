package registry

import (
	"fmt"

	"go.uber.org/zap"
)

// callStack is the ordered sequence of keys currently being resolved on one
// resolution path within a single registry. It is the cycle-detection
// context; parent delegation always restarts with a nil stack.
type callStack []Key

func (s callStack) contains(k Key) bool {
	for _, key := range s {
		if key == k {
			return true
		}
	}
	return false
}

// push returns a new stack with k appended. The backing array is never
// shared with the receiver, so sibling resolutions cannot observe each
// other's frames.
func (s callStack) push(k Key) callStack {
	next := make(callStack, len(s), len(s)+1)
	copy(next, s)
	return append(next, k)
}

// ── Resolution ───────────────────────────────────────────────────────────────

// Get resolves key and blocks until its value is available. Repeated calls
// return the identical value: the producer behind key runs at most once per
// registry instance.
func (r *Registry) Get(key Key) (any, error) {
	return r.resolve(key, nil).Await()
}

// GetPromise returns the memoized promise for key without awaiting it. All
// callers for the same key receive the same promise.
func (r *Registry) GetPromise(key Key) *Promise {
	return r.resolve(key, nil)
}

// resolve turns a key into the memoized promise of its value.
//
// The order of checks is the observable contract: cycle check first, then
// memo, then local producer, then parent delegation, then failure. The memo
// insertion and producer lookup happen in one critical section, so
// concurrent resolvers racing for an unresolved key all observe the single
// in-flight promise.
func (r *Registry) resolve(key Key, stack callStack) *Promise {
	if stack.contains(key) {
		// A cycle on this registry's own path. An ancestor may still hold a
		// legitimate binding for the key, so delegation — with the ancestor's
		// own fresh stack — beats failing outright.
		if r.parent != nil {
			return r.parent.resolve(key, nil)
		}
		return Rejected(&CycleError{Key: key})
	}

	r.mu.Lock()
	if p, ok := r.memo[key]; ok {
		r.mu.Unlock()
		return p
	}
	prod, ok := r.producers[key]
	if !ok {
		r.mu.Unlock()
		if r.parent != nil {
			return r.parent.resolve(key, nil)
		}
		return Rejected(&UnresolvedError{Key: key})
	}
	p := newPromise()
	r.memo[key] = p
	r.mu.Unlock()

	r.logger.Debug("producing", zap.Stringer("key", key))
	go func() {
		p.settle(r.invoke(key, prod, stack.push(key)))
	}()
	return p
}

// invoke runs a producer with the given stack. Panics inside user
// constructors or factories become rejections rather than taking down the
// resolving goroutine.
func (r *Registry) invoke(key Key, prod *producer, stack callStack) (v any, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("producer for %s panicked: %v", key, rec)
		}
	}()
	switch prod.kind {
	case producerFactory:
		return prod.factory(&boundScope{registry: r, stack: stack})
	default:
		return r.instantiate(prod.class, stack)
	}
}
