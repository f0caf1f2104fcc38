package cavia

import (
	"context"
	"fmt"
)

// Provider is a recipe producing the value behind a token. The engine
// recognises four shapes: *Type, ClassProvider, FactoryProvider and
// ValueProvider (pointers to the struct shapes are accepted too). Any other
// implementation is rejected as an invalid provider.
type Provider interface {
	ProviderToken() Token
}

// ClassProvider constructs UseClass and registers the result under Provide.
type ClassProvider struct {
	Provide  Token
	UseClass *Type
}

// ProviderToken implements Provider.
func (p ClassProvider) ProviderToken() Token {
	return p.Provide
}

// Factory builds a value from resolved dependencies, in declaration order.
// A missing optional dependency is passed as nil.
type Factory func(ctx context.Context, deps []any) (any, error)

// FactoryProvider invokes UseFactory with its resolved Dependencies.
type FactoryProvider struct {
	Provide      Token
	UseFactory   Factory
	Dependencies []Dependency
}

// ProviderToken implements Provider.
func (p FactoryProvider) ProviderToken() Token {
	return p.Provide
}

// ValueProvider registers a literal value.
type ValueProvider struct {
	Provide  Token
	UseValue any
}

// ProviderToken implements Provider.
func (p ValueProvider) ProviderToken() Token {
	return p.Provide
}

// Func adapts a typed function into a Factory. The function follows the
// constructor convention of NewType; its parameters receive the resolved
// dependencies positionally.
//
// Example:
//
//	cavia.FactoryProvider{
//	    Provide:      cavia.String("dsn"),
//	    Dependencies: cavia.Deps(cavia.String("host")),
//	    UseFactory: cavia.Func(func(host string) string {
//	        return "postgres://" + host
//	    }),
//	}
func Func(fn any) Factory {
	info, err := analyzeFunc(fn)

	return func(ctx context.Context, deps []any) (any, error) {
		if err != nil {
			return nil, fmt.Errorf("factory: %w", err)
		}

		return info.call(ctx, deps)
	}
}

// ProviderToken returns the token p is registered under, or nil for nil
// providers.
func ProviderToken(p Provider) Token {
	switch v := p.(type) {
	case nil:
		return nil
	case *Type:
		if v == nil {
			return nil
		}
	case *ClassProvider:
		if v == nil {
			return nil
		}
	case *FactoryProvider:
		if v == nil {
			return nil
		}
	case *ValueProvider:
		if v == nil {
			return nil
		}
	}

	return p.ProviderToken()
}

// ProviderName returns the printable name of the token p is registered under.
func ProviderName(p Provider) string {
	return TokenName(ProviderToken(p))
}

// providerKind classifies a provider shape.
type providerKind int

const (
	kindInvalid providerKind = iota
	kindType
	kindClass
	kindFactory
	kindValue
)

// String returns the human-readable name of the kind.
func (k providerKind) String() string {
	switch k {
	case kindType:
		return "type"
	case kindClass:
		return "class"
	case kindFactory:
		return "factory"
	case kindValue:
		return "value"
	default:
		return "invalid"
	}
}

// normalize classifies p and dereferences pointer shapes. The returned
// provider is only meaningful when the kind is not kindInvalid.
func normalize(p Provider) (Provider, providerKind) {
	switch v := p.(type) {
	case *Type:
		if v == nil {
			return nil, kindInvalid
		}

		return v, kindType
	case ClassProvider:
		return v, kindClass
	case *ClassProvider:
		if v == nil {
			return nil, kindInvalid
		}

		return *v, kindClass
	case FactoryProvider:
		return v, kindFactory
	case *FactoryProvider:
		if v == nil {
			return nil, kindInvalid
		}

		return *v, kindFactory
	case ValueProvider:
		return v, kindValue
	case *ValueProvider:
		if v == nil {
			return nil, kindInvalid
		}

		return *v, kindValue
	default:
		return nil, kindInvalid
	}
}

// kindOf returns the shape of p.
func kindOf(p Provider) providerKind {
	_, kind := normalize(p)

	return kind
}

// dependenciesOf computes the dependency list of p and validates its shape.
// For types it consults the metadata accessor: a parameter without a token
// fails as a circular dependency, an inject override replaces the inferred
// token, and deferred tokens are resolved here and nowhere earlier.
func dependenciesOf(meta MetadataAccessor, p Provider) ([]Dependency, error) {
	np, kind := normalize(p)

	switch kind {
	case kindValue:
		if isMissingToken(np.(ValueProvider).Provide) {
			return nil, ErrInvalidProvider(p, "value provider has no token")
		}

		return nil, nil
	case kindType:
		return typeDependencies(meta, np.(*Type))
	case kindClass:
		cp := np.(ClassProvider)
		if isMissingToken(cp.Provide) {
			return nil, ErrInvalidProvider(p, "class provider has no token")
		}

		if cp.UseClass == nil {
			return nil, ErrInvalidProvider(p, "class provider has no class")
		}

		return typeDependencies(meta, cp.UseClass)
	case kindFactory:
		fp := np.(FactoryProvider)
		if isMissingToken(fp.Provide) {
			return nil, ErrInvalidProvider(p, "factory provider has no token")
		}

		if fp.UseFactory == nil {
			return nil, ErrInvalidProvider(p, "factory provider has no factory")
		}

		deps := make([]Dependency, len(fp.Dependencies))
		for i, dep := range fp.Dependencies {
			deps[i] = Dependency{Token: resolveForward(dep.Token), Optional: dep.Optional}
		}

		return deps, nil
	default:
		return nil, ErrInvalidProvider(p, "unrecognised provider shape")
	}
}

// typeDependencies computes the constructor dependencies of t.
func typeDependencies(meta MetadataAccessor, t *Type) ([]Dependency, error) {
	if t.fn == nil {
		return nil, ErrInvalidProvider(t, "type has no constructor")
	}

	if !meta.IsInjectable(t) {
		return nil, ErrNotInjectable(t.Name())
	}

	params := meta.ParamTokens(t)
	overrides := meta.InjectOverrides(t)
	optional := meta.OptionalParams(t)

	deps := make([]Dependency, len(params))

	for i, token := range params {
		if isMissingToken(token) {
			return nil, ErrUndeterminedParam(t.Name(), i)
		}

		if override, ok := overrides[i]; ok && !isMissingToken(override) {
			token = override
		}

		token = resolveForward(token)
		if isMissingToken(token) {
			return nil, ErrUndeterminedParam(t.Name(), i)
		}

		deps[i] = Dependency{Token: token, Optional: optional[i]}
	}

	return deps, nil
}
