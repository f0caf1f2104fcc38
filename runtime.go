package cavia

import (
	"github.com/xraph/go-utils/log"
	"github.com/xraph/go-utils/metrics"
)

// Runtime holds what every application built in a process shares: the
// metadata accessor, the built-in providers and the diagnostics logger.
// Create it once and pass it where applications are built.
type Runtime struct {
	config     Config
	metadata   MetadataAccessor
	builtins   []Provider
	logger     log.Logger
	middleware []Middleware
}

// RuntimeOption configures a Runtime.
type RuntimeOption func(*Runtime)

// WithRuntimeMetadata sets the metadata accessor. The default is an empty Registry.
func WithRuntimeMetadata(meta MetadataAccessor) RuntimeOption {
	return func(r *Runtime) {
		if meta != nil {
			r.metadata = meta
		}
	}
}

// WithBuiltins appends providers to the built-in set every application receives.
func WithBuiltins(providers ...Provider) RuntimeOption {
	return func(r *Runtime) {
		r.builtins = append(r.builtins, providers...)
	}
}

// WithRuntimeLogger sets the logger containers use for diagnostics. It is
// distinct from the application logger provided under LoggerToken.
func WithRuntimeLogger(logger log.Logger) RuntimeOption {
	return func(r *Runtime) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithRuntimeMiddleware adds middleware to every container built by the runtime.
func WithRuntimeMiddleware(middleware ...Middleware) RuntimeOption {
	return func(r *Runtime) {
		r.middleware = append(r.middleware, middleware...)
	}
}

// WithRuntimeMetrics registers m under MetricsToken for every application
// and counts the resolutions and hooks of every container on it.
func WithRuntimeMetrics(m metrics.Metrics) RuntimeOption {
	return func(r *Runtime) {
		if m == nil {
			return
		}

		r.builtins = append(r.builtins, ValueProvider{Provide: MetricsToken, UseValue: m})
		r.middleware = append(r.middleware, MetricsMiddleware(m))
	}
}

// NewRuntime validates cfg and creates a runtime whose built-ins are the
// logger level and logger providers.
func NewRuntime(cfg Config, opts ...RuntimeOption) (*Runtime, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	level, err := ParseLoggerLevel(cfg.Logging.Level)
	if err != nil {
		return nil, ErrInvalidConfig("logging.level", err.Error())
	}

	r := &Runtime{
		config:   cfg,
		metadata: NewRegistry(),
		logger:   log.NewNoopLogger(),
		builtins: []Provider{
			LoggerLevelProvider(level),
			LoggerProvider(cfg.Logging),
		},
	}

	for _, opt := range opts {
		opt(r)
	}

	return r, nil
}

// Config returns the configuration the runtime was created with.
func (r *Runtime) Config() Config {
	return r.config
}

// Metadata returns the metadata accessor.
func (r *Runtime) Metadata() MetadataAccessor {
	return r.metadata
}

// Builtins returns a copy of the built-in providers.
func (r *Runtime) Builtins() []Provider {
	return append([]Provider(nil), r.builtins...)
}

// containerOptions returns the options every container of this runtime uses.
func (r *Runtime) containerOptions() []Option {
	return []Option{
		WithMetadata(r.metadata),
		WithLogger(r.logger),
		WithMiddleware(r.middleware...),
	}
}
