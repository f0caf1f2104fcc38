package cavia

import (
	"context"

	"github.com/xraph/go-utils/log"
	"github.com/xraph/go-utils/metrics"
)

// Counter names recorded by MetricsMiddleware.
const (
	MetricResolutions      = "cavia_resolutions_total"
	MetricResolutionErrors = "cavia_resolution_errors_total"
	MetricHooks            = "cavia_hooks_total"
	MetricHookErrors       = "cavia_hook_errors_total"
)

// MetricsToken is the token of the metrics collector. A constructor
// parameter of type metrics.Metrics infers it.
var MetricsToken = TypeOf[metrics.Metrics]()

// MetricsProvider provides a metrics collector named name under
// MetricsToken. The collector logs through the application logger when one
// is registered.
func MetricsProvider(name string) FactoryProvider {
	return FactoryProvider{
		Provide:      MetricsToken,
		Dependencies: []Dependency{OptionalDep(LoggerToken)},
		UseFactory: func(ctx context.Context, deps []any) (any, error) {
			var opts []metrics.MetricOption
			if logger, ok := deps[0].(log.Logger); ok {
				opts = append(opts, metrics.WithLogger(logger))
			}

			return metrics.NewMetricsCollector(name, opts...), nil
		},
	}
}

// MetricsMiddleware counts recipe executions and lifecycle hook calls, and
// their failures, on factory.
func MetricsMiddleware(factory metrics.MetricFactory) Middleware {
	resolutions := factory.Counter(MetricResolutions, metrics.WithDescription("Provider recipes executed"))
	resolutionErrors := factory.Counter(MetricResolutionErrors, metrics.WithDescription("Provider recipes that failed"))
	hooks := factory.Counter(MetricHooks, metrics.WithDescription("Lifecycle hooks invoked"))
	hookErrors := factory.Counter(MetricHookErrors, metrics.WithDescription("Lifecycle hooks that failed"))

	return &FuncMiddleware{
		AfterResolveFunc: func(ctx context.Context, token Token, value any, err error) error {
			resolutions.Inc()

			if err != nil {
				resolutionErrors.Inc()
			}

			return nil
		},
		AfterHookFunc: func(ctx context.Context, hook Hook, token Token, err error) error {
			hooks.Inc()

			if err != nil {
				hookErrors.Inc()
			}

			return nil
		},
	}
}
