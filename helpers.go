package cavia

import (
	"context"
	"fmt"

	"github.com/samber/mo"
	"github.com/xraph/go-utils/errs"
	"github.com/xraph/go-utils/log"
	"github.com/xraph/go-utils/metrics"
)

// Find resolves the value registered under token with type safety. The
// boolean is false when no provider is registered under token.
func Find[T any](ctx context.Context, c *Container, token Token) (T, bool, error) {
	var zero T

	value, ok, err := c.FindToken(ctx, token)
	if err != nil || !ok {
		return zero, ok, err
	}

	if value == nil {
		return zero, true, nil
	}

	typed, isT := value.(T)
	if !isT {
		return zero, true, ErrTypeMismatch(TokenName(token), value)
	}

	return typed, true, nil
}

// FindOption resolves the value registered under token as an option, None
// when nothing is registered.
func FindOption[T any](ctx context.Context, c *Container, token Token) (mo.Option[T], error) {
	value, ok, err := Find[T](ctx, c, token)
	if err != nil {
		return mo.None[T](), err
	}

	if !ok {
		return mo.None[T](), nil
	}

	return mo.Some(value), nil
}

// MustFind resolves or panics - use only during startup.
func MustFind[T any](ctx context.Context, c *Container, token Token) T {
	value, ok, err := Find[T](ctx, c, token)
	if err != nil {
		panic(fmt.Sprintf("failed to resolve %s: %v", TokenName(token), err))
	}

	if !ok {
		panic(fmt.Sprintf("failed to resolve %s: no provider registered", TokenName(token)))
	}

	return value
}

// FilterAs resolves every provider matching pred and keeps the values of
// type T, in provider-list order.
func FilterAs[T any](ctx context.Context, c *Container, pred Predicate) ([]T, error) {
	values, err := c.Filter(ctx, pred)
	if err != nil {
		return nil, err
	}

	result := make([]T, 0, len(values))

	for _, value := range values {
		if typed, ok := value.(T); ok {
			result = append(result, typed)
		}
	}

	return result, nil
}

// GetLogger resolves the application logger registered under LoggerToken.
func GetLogger(ctx context.Context, c *Container) (log.Logger, error) {
	logger, ok, err := Find[log.Logger](ctx, c, LoggerToken)
	if err != nil {
		return nil, err
	}

	if !ok {
		return nil, errs.ErrNotFound(TokenName(LoggerToken))
	}

	return logger, nil
}

// GetMetrics resolves the metrics collector registered under MetricsToken.
func GetMetrics(ctx context.Context, c *Container) (metrics.Metrics, error) {
	m, ok, err := Find[metrics.Metrics](ctx, c, MetricsToken)
	if err != nil {
		return nil, err
	}

	if !ok {
		return nil, errs.ErrNotFound(TokenName(MetricsToken))
	}

	return m, nil
}
