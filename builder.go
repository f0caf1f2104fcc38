package cavia

import (
	"context"
	"slices"

	"github.com/samber/lo"
	"github.com/xraph/go-utils/log"
)

// Builder composes the provider list of an application from its root type.
// Overrides are applied to the list before Compile hands it to a container.
type Builder struct {
	runtime   *Runtime
	root      *Type
	providers []Provider
}

// Init starts building the application rooted at root. It fails when root
// has no application metadata.
//
// The provider list is the providers of every package in package order,
// then the runtime built-ins, then the root's own providers, then root
// itself. Compile reverses it, so a token registered more than once
// resolves to its last registration.
func (r *Runtime) Init(root *Type) (*Builder, error) {
	if root == nil || !r.metadata.HasApplicationMetadata(root) {
		name := "<nil>"
		if root != nil {
			name = root.Name()
		}

		return nil, ErrApplicationMetadata(name)
	}

	app := r.metadata.ApplicationMetadata(root)

	providers := lo.FlatMap(app.Packages, func(pkg Package, _ int) []Provider {
		return pkg.Providers
	})
	providers = append(providers, r.builtins...)
	providers = append(providers, app.Providers...)
	providers = append(providers, root)

	r.logger.Debug("application initialised",
		log.String("root", root.Name()),
		log.Int("packages", len(app.Packages)),
		log.Int("providers", len(providers)),
	)

	return &Builder{runtime: r, root: root, providers: providers}, nil
}

// InitTesting is Init with the application logger silenced.
func (r *Runtime) InitTesting(root *Type) (*Builder, error) {
	b, err := r.Init(root)
	if err != nil {
		return nil, err
	}

	b.OverrideProvider(LoggerLevelToken).UseValue(LevelOff)

	return b, nil
}

// Root returns the composition root.
func (b *Builder) Root() *Type {
	return b.root
}

// Providers returns a copy of the provider list before reversal.
func (b *Builder) Providers() []Provider {
	return slices.Clone(b.providers)
}

// OverrideBy replaces the recipe of a registered token.
type OverrideBy struct {
	builder *Builder
	token   Token
}

// OverrideProvider selects the first provider registered under token. The
// chosen replacement takes its place in the list. When no provider is
// registered under token the replacement is discarded.
func (b *Builder) OverrideProvider(token Token) OverrideBy {
	return OverrideBy{builder: b, token: token}
}

// UseClass replaces the provider with one constructing class.
func (o OverrideBy) UseClass(class *Type) *Builder {
	return o.builder.override(o.token, ClassProvider{Provide: o.token, UseClass: class})
}

// UseFactory replaces the provider with a factory over deps.
func (o OverrideBy) UseFactory(factory Factory, deps ...Dependency) *Builder {
	return o.builder.override(o.token, FactoryProvider{Provide: o.token, UseFactory: factory, Dependencies: deps})
}

// UseValue replaces the provider with a literal value.
func (o OverrideBy) UseValue(value any) *Builder {
	return o.builder.override(o.token, ValueProvider{Provide: o.token, UseValue: value})
}

// override swaps the first provider registered under token for replacement.
func (b *Builder) override(token Token, replacement Provider) *Builder {
	_, index, found := lo.FindIndexOf(b.providers, func(p Provider) bool {
		return !isMissingToken(token) && ProviderToken(p) == token
	})
	if !found {
		b.runtime.logger.Debug("override skipped, token not registered", log.String("token", TokenName(token)))

		return b
	}

	b.providers[index] = replacement

	return b
}

// Compile reverses the provider list, builds the container and returns the
// application. The builder is left untouched, so it may be compiled again.
func (b *Builder) Compile(ctx context.Context) (*Application, error) {
	providers := slices.Clone(b.providers)
	slices.Reverse(providers)

	c, err := NewContainer(ctx, providers, b.runtime.containerOptions()...)
	if err != nil {
		return nil, err
	}

	return NewApplication(c), nil
}
