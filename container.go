package cavia

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/samber/lo"
	"github.com/xraph/go-utils/log"
	"golang.org/x/sync/singleflight"
)

// ContainerToken is the token every container registers itself under, so
// any provider may depend on the container. A constructor parameter of type
// *Container infers this token.
var ContainerToken = TypeOf[*Container]()

// ResolvedProvider records that the recipe of a token has been executed.
type ResolvedProvider struct {
	Provide Token
	Value   any
}

// Predicate selects providers.
type Predicate func(p Provider) bool

// Container owns an ordered provider list and the memoised values resolved
// from it. Each token is resolved at most once per container.
type Container struct {
	providers  []Provider
	metadata   MetadataAccessor
	logger     log.Logger
	middleware *middlewareChain

	resolved map[Token]*ResolvedProvider
	order    []*ResolvedProvider
	graph    *DependencyGraph
	flight   singleflight.Group
	mu       sync.RWMutex
}

// NewContainer creates a container over providers and eagerly resolves every
// provider in list order. The container first registers itself under
// ContainerToken. Any resolution failure aborts creation.
func NewContainer(ctx context.Context, providers []Provider, opts ...Option) (*Container, error) {
	c := &Container{
		providers:  make([]Provider, 0, len(providers)+1),
		metadata:   NewRegistry(),
		logger:     log.NewNoopLogger(),
		middleware: newMiddlewareChain(),
		resolved:   make(map[Token]*ResolvedProvider),
		graph:      NewDependencyGraph(),
	}

	for _, opt := range opts {
		opt(c)
	}

	c.providers = append(c.providers, ValueProvider{Provide: ContainerToken, UseValue: c})
	c.providers = append(c.providers, providers...)

	c.logger.Debug("creating container", log.Int("providers", len(c.providers)))

	for _, p := range c.providers {
		if _, err := c.resolveProvider(ctx, p); err != nil {
			c.logger.Debug("container creation failed", log.String("provider", ProviderName(p)), log.Error(err))

			return nil, err
		}
	}

	return c, nil
}

// Providers returns the provider list, the container's own provider first.
func (c *Container) Providers() []Provider {
	return slices.Clone(c.providers)
}

// Resolved returns the resolved entries in the order their recipes completed.
func (c *Container) Resolved() []ResolvedProvider {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return lo.Map(c.order, func(rp *ResolvedProvider, _ int) ResolvedProvider {
		return *rp
	})
}

// Graph returns a copy of the dependency edges observed during resolution.
func (c *Container) Graph() *DependencyGraph {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.graph.Clone()
}

// Filter returns the resolved values of all providers matching pred, in
// provider-list order.
func (c *Container) Filter(ctx context.Context, pred Predicate) ([]any, error) {
	return c.resolveAll(ctx, lo.Filter(c.providers, func(p Provider, _ int) bool {
		return pred(p)
	}))
}

// FilterTokens returns the resolved values of all providers registered under
// one of tokens, in provider-list order.
func (c *Container) FilterTokens(ctx context.Context, tokens ...Token) ([]any, error) {
	return c.Filter(ctx, ByToken(tokens...))
}

// Find returns the resolved value of the first provider matching pred. The
// boolean is false when nothing matches; that is not an error.
func (c *Container) Find(ctx context.Context, pred Predicate) (any, bool, error) {
	p, ok := lo.Find(c.providers, func(p Provider) bool {
		return pred(p)
	})
	if !ok {
		return nil, false, nil
	}

	rp, err := c.resolveProvider(ctx, p)
	if err != nil {
		return nil, false, err
	}

	return rp.Value, true, nil
}

// FindToken returns the resolved value registered under token.
func (c *Container) FindToken(ctx context.Context, token Token) (any, bool, error) {
	return c.Find(ctx, ByToken(token))
}

// resolveAll resolves providers one at a time, in order.
func (c *Container) resolveAll(ctx context.Context, providers []Provider) ([]any, error) {
	values := make([]any, 0, len(providers))

	for _, p := range providers {
		rp, err := c.resolveProvider(ctx, p)
		if err != nil {
			return nil, err
		}

		values = append(values, rp.Value)
	}

	return values, nil
}

// cached returns the resolved entry for token, if any.
func (c *Container) cached(token Token) (*ResolvedProvider, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	rp, ok := c.resolved[token]

	return rp, ok
}

// resolveProvider returns the memoised entry for the token of p, running
// the recipe of p when the token has not been resolved yet. Concurrent
// callers for the same token share one execution.
func (c *Container) resolveProvider(ctx context.Context, p Provider) (*ResolvedProvider, error) {
	token := ProviderToken(p)

	if isMissingToken(token) {
		return nil, ErrInvalidProvider(p, "provider has no token")
	}

	if rp, ok := c.cached(token); ok {
		return rp, nil
	}

	path := resolutionPath(ctx)
	if slices.Contains(path, token) {
		return nil, ErrCircularDependency(lo.Map(append(slices.Clone(path), token), func(t Token, _ int) string {
			return TokenName(t)
		}))
	}

	v, err, _ := c.flight.Do(tokenKey(token), func() (any, error) {
		if rp, ok := c.cached(token); ok {
			return rp, nil
		}

		return c.runRecipe(withResolutionPath(ctx, token), token, p)
	})
	if err != nil {
		return nil, err
	}

	return v.(*ResolvedProvider), nil
}

// runRecipe instantiates p, stores the result under token and returns it.
func (c *Container) runRecipe(ctx context.Context, token Token, p Provider) (*ResolvedProvider, error) {
	if err := c.middleware.beforeResolve(ctx, token); err != nil {
		return nil, err
	}

	c.logger.Debug("resolving provider", log.String("token", TokenName(token)))

	value, err := c.instantiate(ctx, token, p)

	if mwErr := c.middleware.afterResolve(ctx, token, value, err); mwErr != nil {
		return nil, mwErr
	}

	if err != nil {
		return nil, err
	}

	rp := &ResolvedProvider{Provide: token, Value: value}

	c.mu.Lock()
	c.resolved[token] = rp
	c.order = append(c.order, rp)
	c.mu.Unlock()

	return rp, nil
}

// instantiate executes the recipe of p.
func (c *Container) instantiate(ctx context.Context, token Token, p Provider) (any, error) {
	deps, err := dependenciesOf(c.metadata, p)
	if err != nil {
		return nil, err
	}

	np, kind := normalize(p)

	if kind == kindValue {
		return np.(ValueProvider).UseValue, nil
	}

	ownerName := ProviderName(p)
	if kind == kindClass {
		ownerName = np.(ClassProvider).UseClass.Name()
	}

	args, err := c.resolveDependencies(ctx, token, ownerName, deps)
	if err != nil {
		return nil, err
	}

	switch kind {
	case kindType:
		return np.(*Type).construct(ctx, args)
	case kindClass:
		return np.(ClassProvider).UseClass.construct(ctx, args)
	case kindFactory:
		value, err := np.(FactoryProvider).UseFactory(ctx, args)
		if err != nil {
			return nil, fmt.Errorf("factory %s: %w", ProviderName(p), err)
		}

		return value, nil
	default:
		return nil, ErrInvalidProvider(p, "unrecognised provider shape")
	}
}

// resolveDependencies resolves deps one at a time, in declaration order,
// looking each up in the full provider list. A missing optional dependency
// resolves to nil.
func (c *Container) resolveDependencies(ctx context.Context, owner Token, ownerName string, deps []Dependency) ([]any, error) {
	c.mu.Lock()
	c.graph.AddNode(owner, DependencyTokens(deps))
	c.mu.Unlock()

	args := make([]any, len(deps))

	for i, dep := range deps {
		dp, ok := c.lookup(dep.Token)
		if !ok {
			if dep.Optional {
				continue
			}

			return nil, ErrMissingDependency(ownerName, i, dep.Token)
		}

		rp, err := c.resolveProvider(ctx, dp)
		if err != nil {
			return nil, err
		}

		args[i] = rp.Value
	}

	return args, nil
}

// lookup returns the first provider registered under token.
func (c *Container) lookup(token Token) (Provider, bool) {
	if isMissingToken(token) {
		return nil, false
	}

	return lo.Find(c.providers, func(p Provider) bool {
		return ProviderToken(p) == token
	})
}

// resolutionPathKey carries the tokens currently being resolved.
type resolutionPathKey struct{}

// resolutionPath returns the tokens being resolved on the current call chain.
func resolutionPath(ctx context.Context) []Token {
	if ctx == nil {
		return nil
	}

	path, _ := ctx.Value(resolutionPathKey{}).([]Token)

	return path
}

// withResolutionPath returns a context whose resolution path ends with token.
func withResolutionPath(ctx context.Context, token Token) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}

	path := append(slices.Clone(resolutionPath(ctx)), token)

	return context.WithValue(ctx, resolutionPathKey{}, path)
}

// typeName renders the dynamic type of v.
func typeName(v any) string {
	return fmt.Sprintf("%T", v)
}
