package registry

import "sync"

// Promise is a write-once future of a resolved value. A promise settles
// exactly once — with a value or with an error — and replays that outcome to
// every caller of Await, so all holders observe the same value by identity.
//
// Promises back the registry's memo cache and are handed to constructors for
// deferred dependencies.
type Promise struct {
	settleOnce sync.Once
	startOnce  sync.Once
	work       func() (any, error) // set only on lazy promises
	done       chan struct{}
	value      any
	err        error
}

func newPromise() *Promise {
	return &Promise{done: make(chan struct{})}
}

// Resolved returns a promise already settled with v.
func Resolved(v any) *Promise {
	p := newPromise()
	p.fulfill(v)
	return p
}

// Rejected returns a promise already settled with err.
func Rejected(err error) *Promise {
	p := newPromise()
	p.reject(err)
	return p
}

// lazyPromise defers its work until the first Await. Used for deferred
// injections: construction proceeds immediately, resolution of the underlying
// key starts only when consumer code awaits the handle.
func lazyPromise(work func() (any, error)) *Promise {
	p := newPromise()
	p.work = work
	return p
}

func (p *Promise) fulfill(v any) {
	p.settleOnce.Do(func() {
		p.value = v
		close(p.done)
	})
}

func (p *Promise) reject(err error) {
	p.settleOnce.Do(func() {
		p.err = err
		close(p.done)
	})
}

func (p *Promise) settle(v any, err error) {
	if err != nil {
		p.reject(err)
		return
	}
	p.fulfill(v)
}

// Await blocks until the promise settles and returns its outcome. Awaiting a
// settled promise returns immediately; awaiting from any number of
// goroutines yields the same value or the same error. There is no
// cancellation — an abandoned Await does not stop the underlying producer.
func (p *Promise) Await() (any, error) {
	if p.work != nil {
		p.startOnce.Do(func() {
			work := p.work
			go func() {
				p.settle(work())
			}()
		})
	}
	<-p.done
	return p.value, p.err
}

// Settled reports whether the promise has an outcome yet, without blocking.
func (p *Promise) Settled() bool {
	select {
	case <-p.done:
		return true
	default:
		return false
	}
}
