package registry

// Scope is the narrowed capability surface handed to factories: resolution,
// injection and child creation only. Registration methods (Bind, Create,
// Use) are deliberately absent, so a producer can never mutate the registry
// that is mid-resolution for it.
//
// *Registry itself satisfies Scope, which makes it easy to pass an
// application's root registry anywhere a read-only surface is expected.
type Scope interface {
	Get(key Key) (any, error)
	GetPromise(key Key) *Promise
	Inject(class *Class) (any, error)
	InjectPromise(class *Class) *Promise
	Child() *Registry
}

var _ Scope = (*Registry)(nil)

// boundScope is the Scope given to factory invocations. It carries the call
// stack active when the factory's producer fired, so a factory resolving
// further keys participates in the same cycle-detection path.
type boundScope struct {
	registry *Registry
	stack    callStack
}

func (s *boundScope) Get(key Key) (any, error) {
	return s.registry.resolve(key, s.stack).Await()
}

func (s *boundScope) GetPromise(key Key) *Promise {
	return s.registry.resolve(key, s.stack)
}

func (s *boundScope) Inject(class *Class) (any, error) {
	return s.registry.instantiate(class, s.stack)
}

func (s *boundScope) InjectPromise(class *Class) *Promise {
	p := newPromise()
	go func() {
		p.settle(s.registry.instantiate(class, s.stack))
	}()
	return p
}

func (s *boundScope) Child() *Registry {
	return s.registry.Child()
}
