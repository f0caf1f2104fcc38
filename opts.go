package cavia

import "github.com/xraph/go-utils/log"

// Option configures a Container.
type Option func(*Container)

// WithMetadata sets the metadata accessor consulted for constructible types.
// The default is an empty Registry, so every type is rejected as not
// injectable until declared.
func WithMetadata(meta MetadataAccessor) Option {
	return func(c *Container) {
		if meta != nil {
			c.metadata = meta
		}
	}
}

// WithLogger sets the logger used for container diagnostics.
func WithLogger(logger log.Logger) Option {
	return func(c *Container) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithMiddleware adds middleware, called in the order given.
func WithMiddleware(middleware ...Middleware) Option {
	return func(c *Container) {
		c.middleware.add(middleware...)
	}
}
