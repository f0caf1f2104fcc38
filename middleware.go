package cavia

import (
	"context"

	"github.com/xraph/go-utils/log"
)

// Middleware provides hooks for intercepting container operations.
// Middleware can be used for logging, tracing, testing, etc.
type Middleware interface {
	// BeforeResolve is called before a provider recipe runs.
	// Return error to abort resolution.
	BeforeResolve(ctx context.Context, token Token) error

	// AfterResolve is called after a provider recipe ran.
	// Called even if resolution failed (value and err may both be set).
	AfterResolve(ctx context.Context, token Token, value any, err error) error

	// BeforeHook is called before a lifecycle hook is invoked on an instance.
	// Return error to abort the lifecycle phase.
	BeforeHook(ctx context.Context, hook Hook, token Token) error

	// AfterHook is called after a lifecycle hook returned.
	// Called even if the hook failed.
	AfterHook(ctx context.Context, hook Hook, token Token, err error) error
}

// middlewareChain manages multiple middleware.
type middlewareChain struct {
	middleware []Middleware
}

// newMiddlewareChain creates a new middleware chain.
func newMiddlewareChain(middleware ...Middleware) *middlewareChain {
	return &middlewareChain{
		middleware: append(make([]Middleware, 0, len(middleware)), middleware...),
	}
}

// add appends middleware to the chain.
func (m *middlewareChain) add(middleware ...Middleware) {
	m.middleware = append(m.middleware, middleware...)
}

// beforeResolve calls BeforeResolve on all middleware.
func (m *middlewareChain) beforeResolve(ctx context.Context, token Token) error {
	for _, mw := range m.middleware {
		if err := mw.BeforeResolve(ctx, token); err != nil {
			return err
		}
	}
	return nil
}

// afterResolve calls AfterResolve on all middleware.
func (m *middlewareChain) afterResolve(ctx context.Context, token Token, value any, err error) error {
	for _, mw := range m.middleware {
		if mwErr := mw.AfterResolve(ctx, token, value, err); mwErr != nil {
			return mwErr
		}
	}
	return nil
}

// beforeHook calls BeforeHook on all middleware.
func (m *middlewareChain) beforeHook(ctx context.Context, hook Hook, token Token) error {
	for _, mw := range m.middleware {
		if err := mw.BeforeHook(ctx, hook, token); err != nil {
			return err
		}
	}
	return nil
}

// afterHook calls AfterHook on all middleware.
func (m *middlewareChain) afterHook(ctx context.Context, hook Hook, token Token, err error) error {
	for _, mw := range m.middleware {
		if mwErr := mw.AfterHook(ctx, hook, token, err); mwErr != nil {
			return mwErr
		}
	}
	return nil
}

// FuncMiddleware wraps functions as Middleware.
type FuncMiddleware struct {
	BeforeResolveFunc func(ctx context.Context, token Token) error
	AfterResolveFunc  func(ctx context.Context, token Token, value any, err error) error
	BeforeHookFunc    func(ctx context.Context, hook Hook, token Token) error
	AfterHookFunc     func(ctx context.Context, hook Hook, token Token, err error) error
}

// BeforeResolve implements Middleware.
func (f *FuncMiddleware) BeforeResolve(ctx context.Context, token Token) error {
	if f.BeforeResolveFunc != nil {
		return f.BeforeResolveFunc(ctx, token)
	}
	return nil
}

// AfterResolve implements Middleware.
func (f *FuncMiddleware) AfterResolve(ctx context.Context, token Token, value any, err error) error {
	if f.AfterResolveFunc != nil {
		return f.AfterResolveFunc(ctx, token, value, err)
	}
	return nil
}

// BeforeHook implements Middleware.
func (f *FuncMiddleware) BeforeHook(ctx context.Context, hook Hook, token Token) error {
	if f.BeforeHookFunc != nil {
		return f.BeforeHookFunc(ctx, hook, token)
	}
	return nil
}

// AfterHook implements Middleware.
func (f *FuncMiddleware) AfterHook(ctx context.Context, hook Hook, token Token, err error) error {
	if f.AfterHookFunc != nil {
		return f.AfterHookFunc(ctx, hook, token, err)
	}
	return nil
}

// LoggingMiddleware logs every recipe execution and lifecycle hook at debug
// level, and failures at error level.
func LoggingMiddleware(logger log.Logger) Middleware {
	if logger == nil {
		logger = log.NewNoopLogger()
	}

	return &FuncMiddleware{
		AfterResolveFunc: func(ctx context.Context, token Token, value any, err error) error {
			if err != nil {
				logger.Error("provider resolution failed", log.String("token", TokenName(token)), log.Error(err))

				return nil
			}

			logger.Debug("provider resolved", log.String("token", TokenName(token)), log.String("type", typeName(value)))

			return nil
		},
		AfterHookFunc: func(ctx context.Context, hook Hook, token Token, err error) error {
			if err != nil {
				logger.Error("lifecycle hook failed", log.String("hook", string(hook)), log.String("token", TokenName(token)), log.Error(err))

				return nil
			}

			logger.Debug("lifecycle hook completed", log.String("hook", string(hook)), log.String("token", TokenName(token)))

			return nil
		},
	}
}
