package registry

import "go.uber.org/zap"

// Option configures a Registry at construction time.
type Option func(*Registry)

// WithLogger attaches a structured logger; registration and producer
// invocations are logged at debug level. Child registries inherit the
// logger. The default is a no-op logger.
//
//	r := registry.New(registry.WithLogger(logger))
func WithLogger(logger *zap.Logger) Option {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}
