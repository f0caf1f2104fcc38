// Package cavia builds object graphs from declarative provider lists.
//
// A provider is a recipe for the value behind a token: a constructible
// *Type, a ClassProvider, a FactoryProvider or a ValueProvider. A Container
// resolves every provider of its list once, eagerly, threading resolved
// dependencies into constructors and factories, and memoises the result
// per token.
//
// Applications are composed with a Runtime:
//
//	rt, _ := cavia.NewRuntime(cavia.DefaultConfig(), cavia.WithRuntimeMetadata(reg))
//	b, _ := rt.Init(AppType)
//	b.OverrideProvider(cavia.String("db")).UseValue(fakeDB)
//	app, _ := b.Compile(ctx)
//	_ = app.Run(ctx)
package cavia

import "context"

// New creates a container over providers using the default options.
func New(ctx context.Context, providers ...Provider) (*Container, error) {
	return NewContainer(ctx, providers)
}
